// Package grpc exposes the RagVault services over gRPC.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/logging"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/server/services"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
)

type userSvc interface {
	Register(ctx context.Context, username, password string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	GetProfile(ctx context.Context, userID string) (*services.ProfileView, error)
}

type vaultSvc interface {
	Browse(ctx context.Context, offset int, filters vault.Filters) (*vault.Page, map[string]string, error)
	GetItem(ctx context.Context, id string) (*vault.Item, string, error)
	Submit(ctx context.Context, userID string, in services.SubmitInput) (*vault.Item, *models.ImageUploadTask, error)
	RequestImageUpload(ctx context.Context, userID, itemID, contentType string) (*models.ImageUploadTask, error)
	MarkImageUploaded(ctx context.Context, userID, itemID string) (*vault.Item, error)
	Verify(ctx context.Context, userID, itemID string) (*services.VerifyResult, error)
}

type editSvc interface {
	Propose(ctx context.Context, userID, itemID string, fields map[string]string, comment string) (*models.EditProposal, error)
	Review(ctx context.Context, reviewerID, editID string, approve bool) (*models.EditProposal, error)
	ListPending(ctx context.Context, userID, itemID string) ([]models.EditProposal, error)
}

type collectionSvc interface {
	Add(ctx context.Context, userID, itemID string) error
	Remove(ctx context.Context, userID, itemID string) error
	List(ctx context.Context, userID string) ([]vault.Item, error)
}

// Services bundles the business services the server dispatches to.
type Services struct {
	Users       userSvc
	Vault       vaultSvc
	Edits       editSvc
	Collections collectionSvc
}

type GRPCServer struct {
	api.UnimplementedRagVaultServer
	address     string
	users       userSvc
	vault       vaultSvc
	edits       editSvc
	collections collectionSvc
	logger      logging.Logger
	jwtSecret   []byte
}

func NewGRPCServer(a string, l logging.Logger, svc Services, secretKey string) *GRPCServer {
	return &GRPCServer{
		address:     a,
		logger:      l.With("module", "grpc_server"),
		users:       svc.Users,
		vault:       svc.Vault,
		edits:       svc.Edits,
		collections: svc.Collections,
		jwtSecret:   []byte(secretKey),
	}
}

// newServer builds the grpc.Server with interceptors, tracing and the
// RagVault service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.accessTokenInterceptor),
	)
	api.RegisterRagVaultServer(srv, s)
	return srv
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := s.newServer()

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
