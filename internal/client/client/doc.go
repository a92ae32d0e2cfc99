// Package client contains the CLI's connection to the RagVault server and
// its local SQLite store.
//
// GRPCClient implements Client over the api.RagVaultClient stub. It attaches
// the access token to every call, refreshes it once when the server reports
// "token expired", and maps gRPC status codes to sentinel errors that
// callers match with errors.Is.
//
// InitDatabase opens the local SQLite database and applies the embedded
// goose migrations.
package client
