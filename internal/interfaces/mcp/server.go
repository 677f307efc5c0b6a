package mcp

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	ticketuc "helpdesk/internal/application/ticket/usecases"
	threaduc "helpdesk/internal/application/thread/usecases"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/shared/logger"
)

const (
	serverName    = "helpdesk-mcp"
	serverVersion = "1.0.0"
)

// Transport selects how the MCP server communicates with its client. The
// values match the mcp.transport config key.
type Transport string

const (
	// TransportStdio serves over stdin/stdout, for local agent integrations.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves over Streamable HTTP, for remote agents. Bearer
	// tokens ride in the Authorization header of each request.
	TransportHTTP Transport = "http"
)

// UseCases carries the ticket and thread executors the tools bridge to.
type UseCases struct {
	CreateTicket       ticketuc.CreateTicketExecutor
	GetTicket          ticketuc.GetTicketExecutor
	ListTickets        ticketuc.ListTicketsExecutor
	SearchTickets      ticketuc.SearchTicketsExecutor
	AddComment         ticketuc.AddCommentExecutor
	ChangeTicketStatus ticketuc.ChangeStatusExecutor
	ListThreads        threaduc.ListThreadsExecutor
	GetThread          threaduc.GetThreadExecutor
	PostMessage        threaduc.PostMessageExecutor
}

// Server exposes the helpdesk to AI agents over the Model Context Protocol.
// Every tool call authenticates a bearer token and passes through the role
// to tool policy table before it reaches a use case.
type Server struct {
	mcp     *mcpsrv.MCPServer
	authn   *Authenticator
	checker permission.Checker
	limiter ratelimit.RateLimiter
	uc      UseCases
	logger  logger.Interface
}

// New builds the MCP server with all tools registered. The limiter is
// optional; when nil, tool calls are not rate limited.
func New(
	uc UseCases,
	authn *Authenticator,
	checker permission.Checker,
	limiter ratelimit.RateLimiter,
	log logger.Interface,
) *Server {
	s := &Server{
		authn:   authn,
		checker: checker,
		limiter: limiter,
		uc:      uc,
		logger:  log,
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithToolCapabilities(true),
		mcpsrv.WithRecovery(),
		mcpsrv.WithInstructions(instructions()),
	)

	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, s.guarded(t.Tool.Name, t.Handler))
	}

	s.mcp = mcpServer
	return s
}

func instructions() string {
	return `You are connected to a helpdesk MCP server.

Available tools let you file and read support tickets, comment on them,
change their status, and converse with the built-in AI support agents
through chat threads.

Every call requires a valid access token; what you can see and do is
scoped to the authenticated account. Ticket numbers look like TKT-0000001042
and can be passed to get_ticket in place of the numeric ID.`
}

// Serve runs the server on the given transport until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, transport Transport, addr string) error {
	switch transport {
	case TransportHTTP:
		return s.ServeHTTP(ctx, addr)
	case TransportStdio, "":
		return s.ServeStdio(ctx)
	default:
		return fmt.Errorf("unknown mcp transport %q", transport)
	}
}

// ServeStdio runs the server over stdin/stdout until ctx is cancelled. The
// bearer token for the session is read from ctx, see ContextWithToken.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.Infow("mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// ServeHTTP runs the server as a Streamable HTTP server on addr until ctx is
// cancelled. addr is a host:port string such as "127.0.0.1:8090".
func (s *Server) ServeHTTP(ctx context.Context, addr string) error {
	httpSrv := &http.Server{Addr: addr}
	streamSrv := mcpsrv.NewStreamableHTTPServer(s.mcp,
		mcpsrv.WithStreamableHTTPServer(httpSrv),
		mcpsrv.WithHTTPContextFunc(bearerTokenToContext),
	)

	s.logger.Infow("mcp server listening on http", "addr", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := streamSrv.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("mcp http server error: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("mcp server shutting down")
		if err := streamSrv.Shutdown(context.Background()); err != nil {
			return fmt.Errorf("mcp http server shutdown error: %w", err)
		}
		return nil
	case err := <-errCh:
		return err
	}
}

// guarded wraps a tool handler with authentication, rate limiting and the
// role to tool permission check. The authenticated principal is placed in
// ctx for the handler.
func (s *Server) guarded(toolName string, handler mcpsrv.ToolHandlerFunc) mcpsrv.ToolHandlerFunc {
	return func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		p, err := s.authn.Authenticate(ctx)
		if err != nil {
			s.logger.Warnw("mcp call rejected", "tool", toolName, "error", err)
			return resultErr(err), nil
		}

		if s.limiter != nil {
			allowed, err := s.limiter.Allow(ratelimit.KeyFor("tool", p.UserUUID), ratelimit.ToolCallLimit)
			if err != nil {
				// Fail open, a limiter outage must not take tool calls down.
				s.logger.Errorw("tool rate limiter unavailable", "tool", toolName, "error", err)
			} else if !allowed {
				return resultErr(fmt.Errorf("rate limit exceeded, please retry later")), nil
			}
		}

		allowed, err := s.checker.CanUseTool(p.Role, toolName)
		if err != nil {
			s.logger.Errorw("tool permission check failed", "tool", toolName, "error", err)
			return resultErr(fmt.Errorf("permission check failed")), nil
		}
		if !allowed {
			s.logger.Warnw("tool call forbidden", "tool", toolName, "role", p.Role)
			return resultErr(fmt.Errorf("role %q is not allowed to call %s", p.Role, toolName)), nil
		}

		return handler(contextWithPrincipal(ctx, p), req)
	}
}

func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		s.toolCreateTicket(),
		s.toolGetTicket(),
		s.toolListTickets(),
		s.toolSearchTickets(),
		s.toolAddComment(),
		s.toolChangeTicketStatus(),
		s.toolListThreads(),
		s.toolGetThread(),
		s.toolPostMessage(),
	}
}
