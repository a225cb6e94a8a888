// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package mcp

// In this file: MCP server construction and transport management.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"

	"github.com/rusq/discordmcp/internal/tools"
)

const (
	serverName    = "discord-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client.
type Transport string

const (
	// TransportStdio uses stdin/stdout for communication (default, suitable
	// for local agent integrations such as Claude Desktop).
	TransportStdio Transport = "stdio"
	// TransportHTTP uses Streamable HTTP transport (suitable for remote
	// agents or when multiple concurrent clients are needed).
	TransportHTTP Transport = "http"
)

// Server wraps an MCP server and the tool dispatcher.
type Server struct {
	mcp    *mcpsrv.MCPServer
	disp   *Dispatcher
	gate   *Gate
	logger *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger is ignored.
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New creates a new MCP server that serves the tools implemented by h.  Tool
// calls wait until gate is resolved.  The server does not start listening
// until one of the Serve* methods is called.
func New(h *tools.Handlers, gate *Gate, opts ...Option) *Server {
	s := &Server{gate: gate, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}
	s.disp = NewDispatcher(h, gate, s.logger)

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions),
		mcpsrv.WithToolCapabilities(false),
		mcpsrv.WithRecovery(),
	)
	for _, t := range registry {
		mcpServer.AddTool(t, s.handle)
	}

	s.mcp = mcpServer
	return s
}

// instructions describe the server to the connecting agent.
const instructions = `You are connected to a Discord MCP server acting on behalf of a Discord account.

Available tools allow you to:
- List the guilds (servers) the account is in, and their channels
- Read recent messages from a channel
- Search messages in a channel, or across all text channels of a guild
- List guild members, optionally with their roles
- Get information about the logged-in user
- Send a message to a channel, optionally as a reply

Identifiers (guilds, channels, users, messages) are Discord snowflakes passed as decimal strings.
Timestamps are Unix epoch milliseconds.  Message lists are ordered oldest first.
send_message posts on behalf of the account; all other tools are read-only.
`

// handle is the mcp-go handler for all tools.
func (s *Server) handle(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	return s.disp.Call(ctx, req.Params.Name, req.Params.Arguments)
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the standard transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	return s.serveStdio(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serveStdio(ctx context.Context, r io.Reader, w io.Writer) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, r, w); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ListenAndServe runs the MCP server as a Streamable HTTP server on addr
// until ctx is cancelled.  addr should be a host:port string such as
// "127.0.0.1:8484".
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.httpHandler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		s.logger.InfoContext(ctx, "mcp server listening on http", "addr", addr, "endpoint", httpEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("mcp http server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-ctx.Done()
		s.logger.Info("mcp server shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	})
	return eg.Wait()
}

const (
	httpEndpoint    = "/mcp"
	shutdownTimeout = 5 * time.Second
)

// httpHandler returns the HTTP routes: the MCP endpoint and the health
// check.
func (s *Server) httpHandler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle(httpEndpoint, mcpsrv.NewStreamableHTTPServer(s.mcp, mcpsrv.WithEndpointPath(httpEndpoint)))
	mux.HandleFunc("GET /healthz", s.healthHandler)
	return middleware.Recoverer(middleware.Logger(mux))
}

type health struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthHandler reports the state of the Discord connection: 200 once it is
// ready, 503 while connecting or after it has failed.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	h := health{Status: "connecting"}
	code := http.StatusServiceUnavailable
	select {
	case <-s.gate.Done():
		if err := s.gate.Err(); err != nil {
			h = health{Status: "failed", Error: err.Error()}
		} else {
			h.Status = "ready"
			code = http.StatusOK
		}
	default:
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(h); err != nil {
		s.logger.DebugContext(r.Context(), "health response", "error", err)
	}
}

// Serve runs the server on the given transport until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, t Transport, addr string) error {
	switch t {
	case TransportStdio, "":
		return s.ServeStdio(ctx)
	case TransportHTTP:
		return s.ListenAndServe(ctx, addr)
	}
	return fmt.Errorf("unknown transport: %q", t)
}
