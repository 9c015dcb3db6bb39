package router

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	grpcContext "github.com/dtroode/bookshelf-server/internal/api/grpc/context"
	"github.com/dtroode/bookshelf-server/internal/api/grpc/rpc"
	"github.com/dtroode/bookshelf-server/internal/crypto"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/mocks"
	"github.com/dtroode/bookshelf-server/internal/repository/memory"
	"github.com/dtroode/bookshelf-server/internal/service"
	"github.com/dtroode/bookshelf-server/internal/testutil"
	"github.com/dtroode/bookshelf-server/internal/token"
)

func TestRouter_Register(t *testing.T) {
	t.Parallel()

	ctxMgr := mocks.NewContextManager(t)
	lg := testutil.MakeNoopLogger()

	r := New(Services{}, ctxMgr, nil, lg)
	s := r.Register()
	require.NotNil(t, s)

	info := s.GetServiceInfo()
	assert.Contains(t, info, "bookshelf.Account")
	assert.Contains(t, info, "bookshelf.Catalog")
	assert.Contains(t, info, "bookshelf.Reading")
}

func TestRequiresAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		want   bool
	}{
		{rpc.AccountRegisterMethod, false},
		{rpc.AccountLoginMethod, false},
		{rpc.AccountChangePasswordMethod, false},
		{rpc.CatalogGetMethod, false},
		{rpc.CatalogListMethod, false},
		{rpc.CatalogAddMethod, true},
		{rpc.CatalogRemoveMethod, true},
		{rpc.CatalogExportSnapshotMethod, true},
		{rpc.ReadingMarkAsReadMethod, true},
		{rpc.ReadingProgressMethod, true},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			meta := interceptors.NewServerCallMeta(tt.method, nil, nil)
			assert.Equal(t, tt.want, requiresAuth(context.Background(), meta))
		})
	}
}

func dialRouter(t *testing.T) *grpc.ClientConn {
	t.Helper()

	lg := testutil.MakeNoopLogger()
	m := metrics.New()
	users := memory.NewUserRepository()
	books := memory.NewBookRepository()
	account := service.NewAccount(users, crypto.NewBcrypt(bcrypt.MinCost), lg, m)

	r := New(Services{
		Account:  account,
		Catalog:  service.NewCatalog(books, lg, m),
		Snapshot: service.NewSnapshot(books, nil, lg, m),
		Reading:  service.NewReading(users, books, lg, m),
		Token:    service.NewTokenService(token.NewJWT("secret", time.Minute), lg),
	}, grpcContext.NewManager(), m, lg)

	lis := bufconn.Listen(1 << 20)
	srv := r.Register()
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return conn
}

func TestRouter_ReadingFlow(t *testing.T) {
	t.Parallel()

	conn := dialRouter(t)
	ctx := context.Background()

	accounts := rpc.NewAccountClient(conn)
	catalog := rpc.NewCatalogClient(conn)
	reading := rpc.NewReadingClient(conn)

	creds := &rpc.CredentialsRequest{Username: "jeff", Password: "jeff-secret"}
	registered, err := accounts.Register(ctx, creds)
	require.NoError(t, err)
	assert.Equal(t, "jeff", registered.Username)
	assert.NotEmpty(t, registered.ID)

	_, err = accounts.Register(ctx, creds)
	assert.Equal(t, codes.AlreadyExists, status.Code(err))

	login, err := accounts.Login(ctx, creds)
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)
	assert.Equal(t, registered.ID, login.Account.ID)

	book := &rpc.Book{ISBN: "978-0", Title: "Dune", Author: "Herbert", Pages: 412}

	_, err = catalog.Add(ctx, book)
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+login.AccessToken)

	added, err := catalog.Add(authed, book)
	require.NoError(t, err)
	assert.Equal(t, book, added)

	list, err := catalog.List(ctx, &rpc.Empty{})
	require.NoError(t, err)
	assert.Len(t, list.Books, 1)

	_, err = reading.MarkAsRead(ctx, &rpc.ISBNRequest{ISBN: book.ISBN})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	started, err := reading.StartReading(authed, &rpc.ISBNRequest{ISBN: book.ISBN})
	require.NoError(t, err)
	assert.Equal(t, []string{book.ISBN}, started.CurrentlyReading)

	progress, err := reading.MarkAsRead(authed, &rpc.ISBNRequest{ISBN: book.ISBN})
	require.NoError(t, err)
	assert.Empty(t, progress.CurrentlyReading)
	assert.Equal(t, []string{book.ISBN}, progress.ReadBooks)

	_, err = reading.MarkAsRead(authed, &rpc.ISBNRequest{ISBN: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = catalog.ExportSnapshot(authed, &rpc.SnapshotRequest{})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))

	_, err = accounts.Deactivate(ctx, creds)
	require.NoError(t, err)

	_, err = accounts.Login(ctx, creds)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))
}

func TestRouter_DeactivatedTokenRejected(t *testing.T) {
	t.Parallel()

	conn := dialRouter(t)
	ctx := context.Background()

	accounts := rpc.NewAccountClient(conn)
	catalog := rpc.NewCatalogClient(conn)
	reading := rpc.NewReadingClient(conn)

	creds := &rpc.CredentialsRequest{Username: "jeff", Password: "jeff-secret"}
	_, err := accounts.Register(ctx, creds)
	require.NoError(t, err)

	login, err := accounts.Login(ctx, creds)
	require.NoError(t, err)
	authed := metadata.AppendToOutgoingContext(ctx, "authorization", "Bearer "+login.AccessToken)

	book := &rpc.Book{ISBN: "123", Title: "Dune", Author: "Herbert", Pages: 412}
	_, err = catalog.Add(authed, book)
	require.NoError(t, err)

	_, err = accounts.Deactivate(ctx, creds)
	require.NoError(t, err)

	_, err = catalog.Add(authed, &rpc.Book{ISBN: "456", Title: "Emma", Author: "Austen", Pages: 474})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = catalog.Update(authed, book)
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = catalog.Remove(authed, &rpc.ISBNRequest{ISBN: book.ISBN})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = reading.MarkAsRead(authed, &rpc.ISBNRequest{ISBN: book.ISBN})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	_, err = reading.StartReading(authed, &rpc.ISBNRequest{ISBN: book.ISBN})
	assert.Equal(t, codes.PermissionDenied, status.Code(err))

	list, err := catalog.List(ctx, &rpc.Empty{})
	require.NoError(t, err)
	require.Len(t, list.Books, 1)
	assert.Equal(t, "Dune", list.Books[0].Title)
}

func TestRouter_RejectsForgedToken(t *testing.T) {
	t.Parallel()

	conn := dialRouter(t)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer forged")

	_, err := rpc.NewReadingClient(conn).Progress(ctx, &rpc.Empty{})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))
}
