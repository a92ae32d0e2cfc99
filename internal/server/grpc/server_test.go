package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/ragvault/internal/api"
	"github.com/dmitrijs2005/ragvault/internal/common"
	"github.com/dmitrijs2005/ragvault/internal/server/auth"
	"github.com/dmitrijs2005/ragvault/internal/server/models"
	"github.com/dmitrijs2005/ragvault/internal/vault"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	srv, _ := newServer(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Run(ctx)
	}()

	select {
	case err := <-done:
		t.Fatalf("server exited too early: %v", err)
	case <-time.After(150 * time.Millisecond):
	}

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err, "Run returned error on graceful stop")
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop within timeout after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	srv, _ := newServer(t)
	srv.address = "127.0.0.1:99999"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	assert.Error(t, srv.Run(ctx))
}

// startBufconn serves srv over an in-memory listener and returns a client.
func startBufconn(t *testing.T, srv *GRPCServer) api.RagVaultClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		conn.Close()
		cancel()
		require.NoError(t, <-done)
	})
	return api.NewRagVaultClient(conn)
}

func TestEndToEnd_PublicAndProtectedCalls(t *testing.T) {
	srv, f := newServer(t)
	f.vault.page = &vault.Page{Items: []vault.Item{{ID: "a", Subject: "Slayer"}}, TotalCount: 1, NextOffset: 1}
	f.vault.item = &vault.Item{ID: "i1", Subject: "Nirvana", Category: "Band"}
	client := startBufconn(t, srv)
	ctx := context.Background()

	pong, err := client.Ping(ctx, &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "OK", pong.Status)

	page, err := client.BrowseVault(ctx, &api.BrowseVaultRequest{Filters: vault.Filters{Search: "slayer"}})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Slayer", page.Items[0].Item.Subject)
	assert.False(t, page.HasMore)

	_, err = client.SubmitItem(ctx, &api.SubmitItemRequest{Subject: "Nirvana", Category: "Band"})
	requireCode(t, err, codes.Unauthenticated)

	token, err := auth.GenerateToken("u1", []byte("k"), time.Minute)
	require.NoError(t, err)
	authCtx := metadata.AppendToOutgoingContext(ctx, common.AccessTokenHeaderName, token)

	resp, err := client.SubmitItem(authCtx, &api.SubmitItemRequest{Subject: "Nirvana", Category: "Band", Tags: []string{"grunge"}})
	require.NoError(t, err)
	assert.Equal(t, "i1", resp.Item.Item.ID)
	assert.Equal(t, "u1", f.vault.lastUser)
	assert.Equal(t, []string{"grunge"}, f.vault.lastIn.Tags)

	f.users.regErr = common.ErrorAlreadyExists
	_, err = client.Register(ctx, &api.RegisterRequest{Username: "kurt", Password: "password1"})
	requireCode(t, err, codes.AlreadyExists)
	assert.Equal(t, "ALREADY_EXISTS", ReasonOf(err), "error details survive the wire")

	f.users.regErr = nil
	f.users.regResp = &models.User{ID: "u7"}
	reg, err := client.Register(ctx, &api.RegisterRequest{Username: "kurt", Password: "password1"})
	require.NoError(t, err)
	assert.Equal(t, "u7", reg.UserID)

	_, err = client.AddToCollection(authCtx, &api.ItemRequest{ItemID: "i1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"add:u1:i1"}, f.collections.calls)
}
