package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// errorMapping pairs a sentinel error with its gRPC code and the reason
// reported in errdetails.ErrorInfo. Order matters: the first match wins.
var errorMapping = []struct {
	err    error
	code   codes.Code
	reason string
}{
	{common.ErrTokenExpired, codes.Unauthenticated, "TOKEN_EXPIRED"},
	{common.ErrRefreshTokenExpired, codes.Unauthenticated, "REFRESH_TOKEN_EXPIRED"},
	{common.ErrInvalidToken, codes.Unauthenticated, "INVALID_TOKEN"},
	{common.ErrorUnauthorized, codes.Unauthenticated, "UNAUTHORIZED"},
	{common.ErrPermissionDenied, codes.PermissionDenied, "PERMISSION_DENIED"},
	{common.ErrorNotFound, codes.NotFound, "NOT_FOUND"},
	{common.ErrorAlreadyExists, codes.AlreadyExists, "ALREADY_EXISTS"},
	{common.ErrorValidation, codes.InvalidArgument, "VALIDATION"},
	{vault.ErrInvalidOffset, codes.InvalidArgument, "INVALID_OFFSET"},
	{common.ErrVersionConflict, codes.FailedPrecondition, "VERSION_CONFLICT"},
	{common.ErrQueryFailed, codes.Unavailable, "QUERY_FAILED"},
}

// toStatus converts a service error into a gRPC status error. Known
// sentinels keep their message; anything else is logged and reported as
// an opaque internal error.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			return statusWithReason(m.code, err.Error(), m.reason)
		}
	}
	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}
	s.logger.Error(ctx, "request failed", "error", err)
	return statusWithReason(codes.Internal, "internal error", "INTERNAL")
}

func statusWithReason(code codes.Code, msg, reason string) error {
	st := status.New(code, msg)
	withDetails, err := st.WithDetails(&errdetails.ErrorInfo{Reason: reason, Domain: common.ErrorDomain})
	if err != nil {
		return st.Err()
	}
	return withDetails.Err()
}

// ReasonOf extracts the ErrorInfo reason from a status error, or "".
func ReasonOf(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok && info.GetDomain() == common.ErrorDomain {
			return info.GetReason()
		}
	}
	return ""
}
