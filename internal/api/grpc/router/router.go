package router

import (
	"context"
	"strings"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/auth"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/selector"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/dtroode/bookshelf-server/internal/api/grpc/handler"
	"github.com/dtroode/bookshelf-server/internal/api/grpc/middleware"
	"github.com/dtroode/bookshelf-server/internal/api/grpc/rpc"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
)

// TokenService issues access tokens on login and resolves them on every
// authenticated call.
type TokenService interface {
	handler.TokenIssuer
	middleware.TokenService
}

// Services groups the domain services exposed over gRPC.
type Services struct {
	Account  handler.AccountService
	Catalog  handler.CatalogService
	Snapshot handler.SnapshotService
	Reading  handler.ReadingService
	Token    TokenService
}

// Router represents a gRPC router for bookshelf operations.
// It manages gRPC service registration and middleware configuration.
type Router struct {
	services       Services
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new gRPC Router instance.
//
// Parameters:
//   - services: The account, catalog, snapshot, reading and token services
//   - contextManager: Carries the authenticated username between middleware and handlers
//   - metrics: Request metrics, may be nil
//   - logger: The logger for request logging
//
// Returns a pointer to the newly created Router instance.
func New(
	services Services,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// requiresAuth reports whether a call must carry a bearer token. Account
// calls check credentials themselves and catalog reads are public.
func requiresAuth(_ context.Context, c interceptors.CallMeta) bool {
	method := c.FullMethod()
	switch {
	case strings.HasPrefix(method, "/bookshelf.Account/"):
		return false
	case method == rpc.CatalogGetMethod, method == rpc.CatalogListMethod:
		return false
	case strings.HasPrefix(method, "/grpc.reflection."):
		return false
	}
	return true
}

// Register registers all gRPC services and middleware.
// It sets up the gRPC server with recovery, request logging, metrics and
// authentication interceptors.
//
// Returns the configured gRPC server instance.
func (r *Router) Register(opts ...grpc.ServerOption) *grpc.Server {
	logging := middleware.NewLogging(r.logger)
	requests := middleware.NewMetrics(r.metrics)
	authenticate := middleware.NewAuthenticate(r.services.Token, r.services.Account, r.contextManager, r.logger)
	recoverer := middleware.NewRecovery(r.logger)

	opts = append(opts,
		grpc.ChainUnaryInterceptor(
			recovery.UnaryServerInterceptor(recoverer),
			logging.HandleGRPC,
			requests.HandleGRPC,
			selector.UnaryServerInterceptor(
				auth.UnaryServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
		grpc.ChainStreamInterceptor(
			recovery.StreamServerInterceptor(recoverer),
			selector.StreamServerInterceptor(
				auth.StreamServerInterceptor(authenticate.AuthFunc),
				selector.MatchFunc(requiresAuth),
			),
		),
	)

	s := grpc.NewServer(opts...)
	r.registerAccountRoutes(s)
	r.registerCatalogRoutes(s)
	r.registerReadingRoutes(s)
	reflection.Register(s)

	return s
}

func (r *Router) registerAccountRoutes(server *grpc.Server) {
	accountHandler := handler.NewAccount(r.services.Account, r.services.Token, r.logger)
	rpc.RegisterAccountServer(server, accountHandler)
}

func (r *Router) registerCatalogRoutes(server *grpc.Server) {
	catalogHandler := handler.NewCatalog(r.services.Catalog, r.services.Snapshot, r.logger)
	rpc.RegisterCatalogServer(server, catalogHandler)
}

func (r *Router) registerReadingRoutes(server *grpc.Server) {
	readingHandler := handler.NewReading(r.services.Reading, r.services.Account, r.contextManager, r.logger)
	rpc.RegisterReadingServer(server, readingHandler)
}
