// Package cli implements the ragvault command-line client: cobra commands
// for the session, vault browsing, submissions, verification, edit review,
// the personal collection and locally saved searches.
//
// Commands share an App that owns the configuration, the local SQLite
// database and the services. The stored session is restored before every
// command; commands annotated as needing a login fail early without one.
package cli
