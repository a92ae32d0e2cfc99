// Package common defines shared constants and sentinel errors used across
// client and server layers of RagVault. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal      = errors.New("internal error")
	ErrorUnauthorized  = errors.New("unauthorized")
	ErrorValidation    = errors.New("validation error")
	ErrVersionConflict = errors.New("version conflict")

	// ErrPermissionDenied is returned when the caller's karma tier does not
	// allow the requested action.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrUnknownPermission is a programmer error: the permission name is not
	// present in the static permission table.
	ErrUnknownPermission = errors.New("unknown permission")

	// ErrQueryFailed wraps any error returned by the tabular store while
	// fetching a vault page. The store's message is kept verbatim.
	ErrQueryFailed = errors.New("query failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Token lifecycle errors.
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
)
