package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "ragvault.v1.RagVault"

// Full method names, as seen by interceptors.
const (
	MethodRegister             = "/" + ServiceName + "/Register"
	MethodLogin                = "/" + ServiceName + "/Login"
	MethodRefreshToken         = "/" + ServiceName + "/RefreshToken"
	MethodPing                 = "/" + ServiceName + "/Ping"
	MethodGetProfile           = "/" + ServiceName + "/GetProfile"
	MethodBrowseVault          = "/" + ServiceName + "/BrowseVault"
	MethodGetItem              = "/" + ServiceName + "/GetItem"
	MethodSubmitItem           = "/" + ServiceName + "/SubmitItem"
	MethodMarkImageUploaded    = "/" + ServiceName + "/MarkImageUploaded"
	MethodRequestImageUpload   = "/" + ServiceName + "/RequestImageUpload"
	MethodVerifyItem           = "/" + ServiceName + "/VerifyItem"
	MethodProposeEdit          = "/" + ServiceName + "/ProposeEdit"
	MethodReviewEdit           = "/" + ServiceName + "/ReviewEdit"
	MethodListPendingEdits     = "/" + ServiceName + "/ListPendingEdits"
	MethodAddToCollection      = "/" + ServiceName + "/AddToCollection"
	MethodRemoveFromCollection = "/" + ServiceName + "/RemoveFromCollection"
	MethodListCollection       = "/" + ServiceName + "/ListCollection"
)

// RagVaultServer is the server API for the RagVault service.
type RagVaultServer interface {
	Register(context.Context, *RegisterRequest) (*RegisterResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error)
	Ping(context.Context, *emptypb.Empty) (*PingResponse, error)
	GetProfile(context.Context, *emptypb.Empty) (*ProfileResponse, error)
	BrowseVault(context.Context, *BrowseVaultRequest) (*BrowseVaultResponse, error)
	GetItem(context.Context, *GetItemRequest) (*ItemView, error)
	SubmitItem(context.Context, *SubmitItemRequest) (*SubmitItemResponse, error)
	MarkImageUploaded(context.Context, *ItemRequest) (*ItemView, error)
	RequestImageUpload(context.Context, *RequestImageUploadRequest) (*ImageUpload, error)
	VerifyItem(context.Context, *ItemRequest) (*VerifyItemResponse, error)
	ProposeEdit(context.Context, *ProposeEditRequest) (*EditProposal, error)
	ReviewEdit(context.Context, *ReviewEditRequest) (*EditProposal, error)
	ListPendingEdits(context.Context, *ListPendingEditsRequest) (*ListPendingEditsResponse, error)
	AddToCollection(context.Context, *ItemRequest) (*emptypb.Empty, error)
	RemoveFromCollection(context.Context, *ItemRequest) (*emptypb.Empty, error)
	ListCollection(context.Context, *emptypb.Empty) (*ListCollectionResponse, error)
}

// UnimplementedRagVaultServer answers every method with codes.Unimplemented.
// Embed it to stay forward compatible.
type UnimplementedRagVaultServer struct{}

func unimplemented(name string) error {
	return status.Errorf(codes.Unimplemented, "method %s not implemented", name)
}

func (UnimplementedRagVaultServer) Register(context.Context, *RegisterRequest) (*RegisterResponse, error) {
	return nil, unimplemented("Register")
}
func (UnimplementedRagVaultServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, unimplemented("Login")
}
func (UnimplementedRagVaultServer) RefreshToken(context.Context, *RefreshTokenRequest) (*TokenResponse, error) {
	return nil, unimplemented("RefreshToken")
}
func (UnimplementedRagVaultServer) Ping(context.Context, *emptypb.Empty) (*PingResponse, error) {
	return nil, unimplemented("Ping")
}
func (UnimplementedRagVaultServer) GetProfile(context.Context, *emptypb.Empty) (*ProfileResponse, error) {
	return nil, unimplemented("GetProfile")
}
func (UnimplementedRagVaultServer) BrowseVault(context.Context, *BrowseVaultRequest) (*BrowseVaultResponse, error) {
	return nil, unimplemented("BrowseVault")
}
func (UnimplementedRagVaultServer) GetItem(context.Context, *GetItemRequest) (*ItemView, error) {
	return nil, unimplemented("GetItem")
}
func (UnimplementedRagVaultServer) SubmitItem(context.Context, *SubmitItemRequest) (*SubmitItemResponse, error) {
	return nil, unimplemented("SubmitItem")
}
func (UnimplementedRagVaultServer) MarkImageUploaded(context.Context, *ItemRequest) (*ItemView, error) {
	return nil, unimplemented("MarkImageUploaded")
}
func (UnimplementedRagVaultServer) RequestImageUpload(context.Context, *RequestImageUploadRequest) (*ImageUpload, error) {
	return nil, unimplemented("RequestImageUpload")
}
func (UnimplementedRagVaultServer) VerifyItem(context.Context, *ItemRequest) (*VerifyItemResponse, error) {
	return nil, unimplemented("VerifyItem")
}
func (UnimplementedRagVaultServer) ProposeEdit(context.Context, *ProposeEditRequest) (*EditProposal, error) {
	return nil, unimplemented("ProposeEdit")
}
func (UnimplementedRagVaultServer) ReviewEdit(context.Context, *ReviewEditRequest) (*EditProposal, error) {
	return nil, unimplemented("ReviewEdit")
}
func (UnimplementedRagVaultServer) ListPendingEdits(context.Context, *ListPendingEditsRequest) (*ListPendingEditsResponse, error) {
	return nil, unimplemented("ListPendingEdits")
}
func (UnimplementedRagVaultServer) AddToCollection(context.Context, *ItemRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("AddToCollection")
}
func (UnimplementedRagVaultServer) RemoveFromCollection(context.Context, *ItemRequest) (*emptypb.Empty, error) {
	return nil, unimplemented("RemoveFromCollection")
}
func (UnimplementedRagVaultServer) ListCollection(context.Context, *emptypb.Empty) (*ListCollectionResponse, error) {
	return nil, unimplemented("ListCollection")
}

// unary adapts a RagVaultServer method expression to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(RagVaultServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(RagVaultServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ServiceName + "/" + name}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(RagVaultServer), ctx, req.(*Req))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

// ServiceDesc describes ragvault.v1.RagVault for grpc.Server.RegisterService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*RagVaultServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("Register", RagVaultServer.Register),
		unary("Login", RagVaultServer.Login),
		unary("RefreshToken", RagVaultServer.RefreshToken),
		unary("Ping", RagVaultServer.Ping),
		unary("GetProfile", RagVaultServer.GetProfile),
		unary("BrowseVault", RagVaultServer.BrowseVault),
		unary("GetItem", RagVaultServer.GetItem),
		unary("SubmitItem", RagVaultServer.SubmitItem),
		unary("MarkImageUploaded", RagVaultServer.MarkImageUploaded),
		unary("RequestImageUpload", RagVaultServer.RequestImageUpload),
		unary("VerifyItem", RagVaultServer.VerifyItem),
		unary("ProposeEdit", RagVaultServer.ProposeEdit),
		unary("ReviewEdit", RagVaultServer.ReviewEdit),
		unary("ListPendingEdits", RagVaultServer.ListPendingEdits),
		unary("AddToCollection", RagVaultServer.AddToCollection),
		unary("RemoveFromCollection", RagVaultServer.RemoveFromCollection),
		unary("ListCollection", RagVaultServer.ListCollection),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ragvault/v1/ragvault.json",
}

// RegisterRagVaultServer registers srv on s.
func RegisterRagVaultServer(s grpc.ServiceRegistrar, srv RagVaultServer) {
	s.RegisterService(&ServiceDesc, srv)
}
