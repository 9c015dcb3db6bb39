package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	grpcctx "github.com/dtroode/bookshelf-server/internal/api/grpc/context"
	"github.com/dtroode/bookshelf-server/internal/api/grpc/router"
	grpcServer "github.com/dtroode/bookshelf-server/internal/api/grpc/server"
	"github.com/dtroode/bookshelf-server/internal/crypto"
	"github.com/dtroode/bookshelf-server/internal/metrics"
	"github.com/dtroode/bookshelf-server/internal/model"
	"github.com/dtroode/bookshelf-server/internal/server"
	"github.com/dtroode/bookshelf-server/internal/service"
	storage "github.com/dtroode/bookshelf-server/internal/storage/minio"
	"github.com/dtroode/bookshelf-server/internal/token"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC server and the metrics endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	logger := a.logger

	st, err := a.openStores(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	m := metrics.New()
	tokenManager := token.NewJWT(a.cfg.JWT.Secret, a.cfg.JWT.AccessTTL)

	var snapshots model.Storage
	if a.cfg.Snapshot.Enabled {
		store, err := storage.NewSnapshotStore(ctx, a.cfg.Snapshot)
		if err != nil {
			return fmt.Errorf("failed to initialize snapshot storage: %w", err)
		}
		snapshots = store
	}

	services := router.Services{
		Account:  service.NewAccount(st.users, crypto.NewBcrypt(a.cfg.Bcrypt.Cost), logger, m),
		Catalog:  service.NewCatalog(st.books, logger, m),
		Snapshot: service.NewSnapshot(st.books, snapshots, logger, m),
		Reading:  service.NewReading(st.users, st.books, logger, m),
		Token:    service.NewTokenService(tokenManager, logger),
	}

	r := router.New(services, grpcctx.NewManager(), m, logger)
	servers := []model.Server{
		grpcServer.NewGRPCServer(r.Register(), fmt.Sprintf(":%s", a.cfg.GRPC.Port)),
		metrics.NewServer(a.cfg.MetricsAddr, m),
	}
	layers := []model.SecurityLayer{
		server.NewSecurityLayer(a.cfg.GRPC),
		server.NewPlainListener(),
	}

	var wg sync.WaitGroup
	for i, s := range servers {
		wg.Add(1)
		go func(s model.Server, sl model.SecurityLayer) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			if err := s.Start(sl); err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
			}
		}(s, layers[i])
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	for _, s := range servers {
		if err := s.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", s.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
	return nil
}
