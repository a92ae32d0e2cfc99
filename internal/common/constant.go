// Package common contains shared constants and sentinel errors used across
// RagVault components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// ErrorDomain is reported in gRPC error details so clients can tell
// RagVault reasons apart from transport failures.
const ErrorDomain = "ragvault"
