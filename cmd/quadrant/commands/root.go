// Package commands implements the quadrant CLI, a thin driver over the
// client core: it logs in, dispatches intents, waits for them to settle
// and renders the resulting store snapshot.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadrant/core/internal/client/api"
	clientauth "github.com/quadrant/core/internal/client/auth"
	"github.com/quadrant/core/internal/client/state"
	clientsync "github.com/quadrant/core/internal/client/sync"
	"github.com/quadrant/core/internal/infrastructure/config"
	"github.com/quadrant/core/internal/infrastructure/logger"
)

// NewRootCommand builds the quadrant CLI root.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "quadrant",
		Short:        "Quadrant todo CLI",
		Long:         `Manage your todos from the terminal: flat list or Eisenhower-matrix view.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().String("server", envOr("QUADRANT_SERVER", "http://localhost:8080"), "API server base URL")
	rootCmd.PersistentFlags().String("email", os.Getenv("QUADRANT_EMAIL"), "account email")
	rootCmd.PersistentFlags().String("password", os.Getenv("QUADRANT_PASSWORD"), "account password")

	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newMatrixCommand())
	rootCmd.AddCommand(newAddCommand())
	rootCmd.AddCommand(newDoneCommand())
	rootCmd.AddCommand(newRemoveCommand())

	return rootCmd
}

// session bundles the wired-up client core for one CLI invocation.
type session struct {
	store      *state.Store
	dispatcher *clientsync.Dispatcher
}

// connect logs in and wires the client core together.
func connect(cmd *cobra.Command) (*session, error) {
	server, _ := cmd.Flags().GetString("server")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")

	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required (flags or QUADRANT_EMAIL/QUADRANT_PASSWORD)")
	}

	creds, err := clientauth.Login(cmd.Context(), server, email, password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	cliLogger, err := logger.New(loggerConfig())
	if err != nil {
		return nil, err
	}

	store := state.NewStore()
	dispatcher := clientsync.New(api.NewClient(server, creds), store, cliLogger)

	return &session{store: store, dispatcher: dispatcher}, nil
}

// settled dispatches fn, drains in-flight work and returns the final
// snapshot, surfacing the store's error message if one was recorded.
func (s *session) settled(fn func(ctx context.Context)) (state.State, error) {
	fn(context.Background())
	s.dispatcher.Wait()

	snap := s.store.Snapshot()
	if snap.Error != "" {
		return snap, fmt.Errorf("%s", snap.Error)
	}
	return snap, nil
}

// loggerConfig keeps CLI output quiet; intent failures surface through
// the store's error message, not the log.
func loggerConfig() config.LoggerConfig {
	return config.LoggerConfig{Level: "warn", Format: "console", Output: "stdout"}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
