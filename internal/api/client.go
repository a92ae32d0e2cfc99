package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
)

// RagVaultClient is the client API for the RagVault service.
type RagVaultClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error)
	GetProfile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProfileResponse, error)
	BrowseVault(ctx context.Context, in *BrowseVaultRequest, opts ...grpc.CallOption) (*BrowseVaultResponse, error)
	GetItem(ctx context.Context, in *GetItemRequest, opts ...grpc.CallOption) (*ItemView, error)
	SubmitItem(ctx context.Context, in *SubmitItemRequest, opts ...grpc.CallOption) (*SubmitItemResponse, error)
	MarkImageUploaded(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*ItemView, error)
	RequestImageUpload(ctx context.Context, in *RequestImageUploadRequest, opts ...grpc.CallOption) (*ImageUpload, error)
	VerifyItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*VerifyItemResponse, error)
	ProposeEdit(ctx context.Context, in *ProposeEditRequest, opts ...grpc.CallOption) (*EditProposal, error)
	ReviewEdit(ctx context.Context, in *ReviewEditRequest, opts ...grpc.CallOption) (*EditProposal, error)
	ListPendingEdits(ctx context.Context, in *ListPendingEditsRequest, opts ...grpc.CallOption) (*ListPendingEditsResponse, error)
	AddToCollection(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	RemoveFromCollection(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*emptypb.Empty, error)
	ListCollection(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCollectionResponse, error)
}

type ragVaultClient struct {
	cc grpc.ClientConnInterface
}

// NewRagVaultClient returns a client that sends every call in the JSON codec.
func NewRagVaultClient(cc grpc.ClientConnInterface) RagVaultClient {
	return &ragVaultClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ragVaultClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*RegisterResponse, error) {
	return invoke[RegisterResponse](ctx, c.cc, MethodRegister, in, opts)
}

func (c *ragVaultClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodLogin, in, opts)
}

func (c *ragVaultClient) RefreshToken(ctx context.Context, in *RefreshTokenRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, MethodRefreshToken, in, opts)
}

func (c *ragVaultClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, MethodPing, in, opts)
}

func (c *ragVaultClient) GetProfile(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, MethodGetProfile, in, opts)
}

func (c *ragVaultClient) BrowseVault(ctx context.Context, in *BrowseVaultRequest, opts ...grpc.CallOption) (*BrowseVaultResponse, error) {
	return invoke[BrowseVaultResponse](ctx, c.cc, MethodBrowseVault, in, opts)
}

func (c *ragVaultClient) GetItem(ctx context.Context, in *GetItemRequest, opts ...grpc.CallOption) (*ItemView, error) {
	return invoke[ItemView](ctx, c.cc, MethodGetItem, in, opts)
}

func (c *ragVaultClient) SubmitItem(ctx context.Context, in *SubmitItemRequest, opts ...grpc.CallOption) (*SubmitItemResponse, error) {
	return invoke[SubmitItemResponse](ctx, c.cc, MethodSubmitItem, in, opts)
}

func (c *ragVaultClient) MarkImageUploaded(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*ItemView, error) {
	return invoke[ItemView](ctx, c.cc, MethodMarkImageUploaded, in, opts)
}

func (c *ragVaultClient) RequestImageUpload(ctx context.Context, in *RequestImageUploadRequest, opts ...grpc.CallOption) (*ImageUpload, error) {
	return invoke[ImageUpload](ctx, c.cc, MethodRequestImageUpload, in, opts)
}

func (c *ragVaultClient) VerifyItem(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*VerifyItemResponse, error) {
	return invoke[VerifyItemResponse](ctx, c.cc, MethodVerifyItem, in, opts)
}

func (c *ragVaultClient) ProposeEdit(ctx context.Context, in *ProposeEditRequest, opts ...grpc.CallOption) (*EditProposal, error) {
	return invoke[EditProposal](ctx, c.cc, MethodProposeEdit, in, opts)
}

func (c *ragVaultClient) ReviewEdit(ctx context.Context, in *ReviewEditRequest, opts ...grpc.CallOption) (*EditProposal, error) {
	return invoke[EditProposal](ctx, c.cc, MethodReviewEdit, in, opts)
}

func (c *ragVaultClient) ListPendingEdits(ctx context.Context, in *ListPendingEditsRequest, opts ...grpc.CallOption) (*ListPendingEditsResponse, error) {
	return invoke[ListPendingEditsResponse](ctx, c.cc, MethodListPendingEdits, in, opts)
}

func (c *ragVaultClient) AddToCollection(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodAddToCollection, in, opts)
}

func (c *ragVaultClient) RemoveFromCollection(ctx context.Context, in *ItemRequest, opts ...grpc.CallOption) (*emptypb.Empty, error) {
	return invoke[emptypb.Empty](ctx, c.cc, MethodRemoveFromCollection, in, opts)
}

func (c *ragVaultClient) ListCollection(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListCollectionResponse, error) {
	return invoke[ListCollectionResponse](ctx, c.cc, MethodListCollection, in, opts)
}
