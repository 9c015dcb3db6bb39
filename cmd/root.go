package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dtroode/bookshelf-server/internal/config"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
	"github.com/dtroode/bookshelf-server/internal/repository/memory"
	"github.com/dtroode/bookshelf-server/internal/repository/postgres"
)

// app holds what every subcommand needs once configuration is loaded.
type app struct {
	cfg    *config.Config
	logger *logger.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "bookshelf",
		Short:         "Book catalog and reading progress server",
		Version:       buildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger.NewWithFile(cfg.LogLevel, cfg.LogFile)
			return nil
		},
	}

	root.AddCommand(
		newServeCmd(a),
		newMigrateCmd(a),
		newImportBooksCmd(a),
		newAddUserCmd(a),
	)

	return root
}

// errEphemeralBackend rejects one-shot commands whose writes would vanish
// with the process.
var errEphemeralBackend = errors.New("in-memory storage does not outlive this command, set STORAGE_BACKEND=postgres")

// stores bundles the repositories of the configured backend.
type stores struct {
	books model.BookStore
	users model.UserStore
	io.Closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func (a *app) openStores(ctx context.Context) (*stores, error) {
	switch a.cfg.StorageBackend {
	case config.BackendPostgres:
		db, err := postgres.NewConnection(ctx, a.cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		return &stores{
			books:  postgres.NewBookRepository(db),
			users:  postgres.NewUserRepository(db),
			Closer: db,
		}, nil
	default:
		a.logger.Warn("using in-memory storage, data is lost on exit")
		return &stores{
			books:  memory.NewBookRepository(),
			users:  memory.NewUserRepository(),
			Closer: nopCloser{},
		}, nil
	}
}

// openPersistentStores is openStores for commands that exit right after writing.
func (a *app) openPersistentStores(ctx context.Context) (*stores, error) {
	if a.cfg.StorageBackend == config.BackendMemory {
		return nil, errEphemeralBackend
	}
	return a.openStores(ctx)
}
