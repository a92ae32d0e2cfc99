package grpc

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

type ctxKey string

// UserIDKey holds the authenticated user ID in the request context.
const UserIDKey ctxKey = "userID"

// publicMethods may be called without an access token.
var publicMethods = map[string]bool{
	api.MethodRegister:     true,
	api.MethodLogin:        true,
	api.MethodRefreshToken: true,
	api.MethodPing:         true,
	api.MethodBrowseVault:  true,
	api.MethodGetItem:      true,
}

func (s *GRPCServer) accessTokenInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	if publicMethods[info.FullMethod] {
		return handler(ctx, req)
	}

	var accessToken string
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(common.AccessTokenHeaderName); len(values) > 0 {
			accessToken = values[0]
		}
	}
	if accessToken == "" {
		return nil, status.Error(codes.Unauthenticated, "missing token")
	}

	userID, err := auth.GetUserIDFromToken(accessToken, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return nil, statusWithReason(codes.Unauthenticated, common.ErrTokenExpired.Error(), "TOKEN_EXPIRED")
		}
		return nil, statusWithReason(codes.Unauthenticated, "invalid token", "INVALID_TOKEN")
	}

	return handler(context.WithValue(ctx, UserIDKey, userID), req)
}

// loggingInterceptor records method, code and latency of every call.
func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	start := time.Now()
	resp, err := handler(ctx, req)
	s.logger.Debug(ctx, "rpc", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
	return resp, err
}

func userIDFrom(ctx context.Context) (string, error) {
	id, ok := ctx.Value(UserIDKey).(string)
	if !ok || id == "" {
		return "", status.Error(codes.Unauthenticated, "missing user")
	}
	return id, nil
}
