// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/internal/mockapi"
	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/spf13/cobra"
)

// shutdownTimeout bounds how long in-flight mock API requests may take once
// the command is interrupted.
const shutdownTimeout = 5 * time.Second

// shutdownSignals stop the mock-api command gracefully.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func newMockAPICommand(env Env) *cobra.Command {
	var (
		addr  string
		dbDSN string
	)
	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Serve a local SQLite-backed business associate API",
		Long: "Serve the business associate HTTP API from a local SQLite database.\n" +
			"Point api.baseUrl (or BA_API_BASE_URL) at it to develop without the real system.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals...)
			defer stop()

			s, err := env.settings()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = s.MockAddress
			}
			if !cmd.Flags().Changed("db") {
				dbDSN = s.MockDatabase
			}

			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return fmt.Errorf("failed to listen on %s: %w", addr, err)
			}
			return ServeMockAPI(ctx, ln, dbDSN, env.logger(cmd))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config mock.address)")
	cmd.Flags().StringVar(&dbDSN, "db", "", "SQLite database path (default from config mock.database)")
	return cmd
}

// ServeMockAPI serves the mock business associate API on ln until ctx is
// cancelled. The database at dsn is created and migrated on start.
//
// Cancellation is a clean shutdown and returns nil.
func ServeMockAPI(ctx context.Context, ln net.Listener, dsn string, log logger.Logger) error {
	db, err := mockapi.OpenDB(dsn)
	if err != nil {
		ln.Close()
		return err
	}
	defer db.Close()

	if err := mockapi.Migrate(ctx, db); err != nil {
		ln.Close()
		return err
	}

	handler, err := mockapi.NewServer(db, mockapi.WithLogger(log))
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()
	log.Printf("Mock business associate API listening on %s (database %s)", ln.Addr(), dsn)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mock API server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down mock API server: %w", err)
	}
	log.Printf("Mock business associate API stopped")
	return nil
}
