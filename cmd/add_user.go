package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dtroode/bookshelf-server/internal/crypto"
	"github.com/dtroode/bookshelf-server/internal/logger"
	"github.com/dtroode/bookshelf-server/internal/model"
	"github.com/dtroode/bookshelf-server/internal/service"
)

func newAddUserCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-user <username>",
		Short: "Register an account directly in the configured backend",
		Long: "Prompts for the password without echo when stdin is a terminal, " +
			"otherwise reads it from the first line of stdin. Requires STORAGE_BACKEND=postgres.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openPersistentStores(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			password, err := readPassword(cmd.InOrStdin(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			verifier := crypto.NewBcrypt(a.cfg.Bcrypt.Cost)
			return addUser(cmd.Context(), st.users, verifier, a.logger, args[0], password, cmd.OutOrStdout())
		},
	}
}

func addUser(
	ctx context.Context,
	users model.UserStore,
	verifier model.CredentialVerifier,
	logger *logger.Logger,
	username, password string,
	out io.Writer,
) error {
	account, err := service.NewAccount(users, verifier, logger, nil).Register(ctx, username, password)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", username, err)
	}

	fmt.Fprintf(out, "registered %s (%s)\n", account.Username, account.ID)
	return nil
}

// readPassword reads a password with masking when in is a terminal.
// Only the line ending is stripped; surrounding spaces belong to the password.
func readPassword(in io.Reader, prompt io.Writer) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(prompt, "Password: ")
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(prompt)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
