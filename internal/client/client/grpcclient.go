package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

var _ Client = (*GRPCClient)(nil)

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      api.RagVaultClient

	mu        sync.Mutex
	tokens    Tokens
	onRefresh func(Tokens)
}

func withAccessToken(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AccessTokenHeaderName, token)
	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) session() Tokens {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tokens
}

// accessTokenInterceptor attaches the access token and, when the server
// says it expired, rotates the session once and retries the call.
func (s *GRPCClient) accessTokenInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {
	tokens := s.session()
	if tokens.AccessToken != "" {
		ctx = withAccessToken(ctx, tokens.AccessToken)
	}
	err := invoker(ctx, method, req, reply, cc, opts...)
	if err == nil || method == api.MethodRefreshToken {
		return err
	}

	st, ok := status.FromError(err)
	if !ok || st.Code() != codes.Unauthenticated || st.Message() != common.ErrTokenExpired.Error() {
		return err
	}
	if tokens.RefreshToken == "" {
		return err
	}

	resp, rerr := s.client.RefreshToken(ctx, &api.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	if rerr != nil {
		return rerr
	}
	fresh := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}

	s.mu.Lock()
	s.tokens = fresh
	notify := s.onRefresh
	s.mu.Unlock()
	if notify != nil {
		notify(fresh)
	}

	return invoker(withAccessToken(ctx, fresh.AccessToken), method, req, reply, cc, opts...)
}

// NewRagVaultClient dials endpointURL lazily; no I/O happens until the
// first call.
func NewRagVaultClient(endpointURL string) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	conn, err := grpc.NewClient(endpointURL,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.accessTokenInterceptor),
	)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewRagVaultClient(conn)
	return c, nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) SetTokens(t Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens = t
}

// OnTokensRefreshed registers fn to be called with the rotated session.
func (s *GRPCClient) OnTokensRefreshed(fn func(Tokens)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRefresh = fn
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return s.mapError(err)
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (s *GRPCClient) Register(ctx context.Context, username, password string) (string, error) {
	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: username, Password: password})
	if err != nil {
		return "", s.mapError(err)
	}
	return resp.UserID, nil
}

func (s *GRPCClient) Login(ctx context.Context, username, password string) (Tokens, error) {
	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return Tokens{}, s.mapError(err)
	}
	t := Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	s.SetTokens(t)
	return t, nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	resp, err := s.client.GetProfile(ctx, &emptypb.Empty{})
	return resp, s.mapError(err)
}

func (s *GRPCClient) Browse(ctx context.Context, offset int, filters vault.Filters) (*api.BrowseVaultResponse, error) {
	resp, err := s.client.BrowseVault(ctx, &api.BrowseVaultRequest{Offset: offset, Filters: filters})
	return resp, s.mapError(err)
}

func (s *GRPCClient) GetItem(ctx context.Context, id string) (*api.ItemView, error) {
	resp, err := s.client.GetItem(ctx, &api.GetItemRequest{ID: id})
	return resp, s.mapError(err)
}

func (s *GRPCClient) Submit(ctx context.Context, req *api.SubmitItemRequest) (*api.SubmitItemResponse, error) {
	resp, err := s.client.SubmitItem(ctx, req)
	return resp, s.mapError(err)
}

func (s *GRPCClient) MarkImageUploaded(ctx context.Context, itemID string) (*api.ItemView, error) {
	resp, err := s.client.MarkImageUploaded(ctx, &api.ItemRequest{ItemID: itemID})
	return resp, s.mapError(err)
}

func (s *GRPCClient) RequestImageUpload(ctx context.Context, itemID, contentType string) (*api.ImageUpload, error) {
	resp, err := s.client.RequestImageUpload(ctx, &api.RequestImageUploadRequest{ItemID: itemID, ContentType: contentType})
	return resp, s.mapError(err)
}

func (s *GRPCClient) Verify(ctx context.Context, itemID string) (*api.VerifyItemResponse, error) {
	resp, err := s.client.VerifyItem(ctx, &api.ItemRequest{ItemID: itemID})
	return resp, s.mapError(err)
}

func (s *GRPCClient) ProposeEdit(ctx context.Context, itemID string, fields map[string]string, comment string) (*api.EditProposal, error) {
	resp, err := s.client.ProposeEdit(ctx, &api.ProposeEditRequest{ItemID: itemID, Fields: fields, Comment: comment})
	return resp, s.mapError(err)
}

func (s *GRPCClient) ReviewEdit(ctx context.Context, editID string, approve bool) (*api.EditProposal, error) {
	resp, err := s.client.ReviewEdit(ctx, &api.ReviewEditRequest{EditID: editID, Approve: approve})
	return resp, s.mapError(err)
}

func (s *GRPCClient) PendingEdits(ctx context.Context, itemID string) ([]api.EditProposal, error) {
	resp, err := s.client.ListPendingEdits(ctx, &api.ListPendingEditsRequest{ItemID: itemID})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Edits, nil
}

func (s *GRPCClient) AddToCollection(ctx context.Context, itemID string) error {
	_, err := s.client.AddToCollection(ctx, &api.ItemRequest{ItemID: itemID})
	return s.mapError(err)
}

func (s *GRPCClient) RemoveFromCollection(ctx context.Context, itemID string) error {
	_, err := s.client.RemoveFromCollection(ctx, &api.ItemRequest{ItemID: itemID})
	return s.mapError(err)
}

func (s *GRPCClient) Collection(ctx context.Context) ([]api.ItemView, error) {
	resp, err := s.client.ListCollection(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp.Items, nil
}

// remoteError carries the server's message while matching a local sentinel.
type remoteError struct {
	kind error
	msg  string
}

func (e *remoteError) Error() string { return e.msg }
func (e *remoteError) Unwrap() error { return e.kind }

var codeErrors = map[codes.Code]error{
	codes.Unauthenticated:    ErrUnauthorized,
	codes.PermissionDenied:   common.ErrPermissionDenied,
	codes.Unavailable:        ErrUnavailable,
	codes.DeadlineExceeded:   ErrUnavailable,
	codes.NotFound:           common.ErrorNotFound,
	codes.AlreadyExists:      common.ErrorAlreadyExists,
	codes.InvalidArgument:    common.ErrorValidation,
	codes.FailedPrecondition: common.ErrVersionConflict,
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("rpc error: %w", err)
	}
	if kind, found := codeErrors[st.Code()]; found {
		return &remoteError{kind: kind, msg: st.Message()}
	}
	return fmt.Errorf("rpc error: %w", err)
}
