package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
	"github.com/dtroode/bookshelf-server/internal/service"
)

func newImportBooksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import-books <file.json>",
		Short: "Add or update catalog books from a JSON file",
		Long: "Reads a JSON array of books, or a catalog snapshot, and saves every " +
			"book into the configured backend. Nothing is written if any book is invalid. " +
			"Requires STORAGE_BACKEND=postgres.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openPersistentStores(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			return importBooks(cmd.Context(), st.books, a.logger, args[0], cmd.OutOrStdout())
		},
	}
}

func importBooks(ctx context.Context, books model.BookStore, logger *logger.Logger, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := service.NewSnapshot(books, nil, logger, nil).Restore(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to import books: %w", err)
	}

	fmt.Fprintf(out, "imported %d books\n", n)
	return nil
}
