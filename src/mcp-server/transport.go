// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/H0llyW00dzZ/business-associate-mcp/src/logger"
	"github.com/mark3labs/mcp-go/server"
)

// httpShutdownTimeout bounds how long open HTTP sessions get to finish
// after a shutdown signal before their connections are closed.
const httpShutdownTimeout = 5 * time.Second

// newHTTPHandler returns a handler serving the streamable HTTP transport of s
// at endpointPath. Other paths answer 404.
func newHTTPHandler(s *server.MCPServer, endpointPath string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(endpointPath, server.NewStreamableHTTPServer(s,
		server.WithEndpointPath(endpointPath),
	))
	return mux
}

// serve runs s on the transport selected in config until ctx is cancelled.
//
// For stdio, in and out carry the protocol stream and log must write
// elsewhere. Cancellation is a clean shutdown and returns nil.
func serve(ctx context.Context, s *server.MCPServer, config *Config, log logger.Logger, in io.Reader, out io.Writer) error {
	switch config.Server.Transport {
	case transportHTTP:
		ln, err := net.Listen("tcp", config.Server.Address)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", config.Server.Address, err)
		}
		log.Printf("%s listening on http://%s%s", serverName, ln.Addr(), config.Server.EndpointPath)
		return serveHTTP(ctx, ln, newHTTPHandler(s, config.Server.EndpointPath), log)

	case transportStdio, "":
		log.Printf("%s started on stdio", serverName)
		err := server.NewStdioServer(s).Listen(ctx, in, out)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil

	default:
		return fmt.Errorf("unsupported transport %q", config.Server.Transport)
	}
}

// serveHTTP serves handler on ln and shuts the server down once ctx is done.
func serveHTTP(ctx context.Context, ln net.Listener, handler http.Handler, log logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP transport failed: %w", err)
	case <-ctx.Done():
	}

	log.Printf("Shutting down HTTP transport")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		// Streaming GET sessions never become idle; close them.
		if closeErr := srv.Close(); closeErr != nil {
			return fmt.Errorf("failed to close HTTP transport: %w", closeErr)
		}
	}
	return nil
}
