package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"helpdesk/internal/application/ticket/dto"
	ticketuc "helpdesk/internal/application/ticket/usecases"
	threaduc "helpdesk/internal/application/thread/usecases"
	"helpdesk/internal/domain/user"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/shared/authorization"
)

type testMocks struct {
	createTicket  *mockCreateTicket
	getTicket     *mockGetTicket
	listTickets   *mockListTickets
	searchTickets *mockSearchTickets
	addComment    *mockAddComment
	changeStatus  *mockChangeStatus
	listThreads   *mockListThreads
	getThread     *mockGetThread
	postMessage   *mockPostMessage
	checker       *mockChecker
	limiter       *mockRateLimiter
	userRepo      *mockUserRepository
	sessionRepo   *mockSessionRepository
}

func newTestServer(t *testing.T) (*Server, *testMocks) {
	t.Helper()
	m := &testMocks{
		createTicket:  &mockCreateTicket{},
		getTicket:     &mockGetTicket{},
		listTickets:   &mockListTickets{},
		searchTickets: &mockSearchTickets{},
		addComment:    &mockAddComment{},
		changeStatus:  &mockChangeStatus{},
		listThreads:   &mockListThreads{},
		getThread:     &mockGetThread{},
		postMessage:   &mockPostMessage{},
		checker:       &mockChecker{},
		limiter:       &mockRateLimiter{},
		userRepo:      &mockUserRepository{},
		sessionRepo:   &mockSessionRepository{},
	}
	authn, _, _ := newAuthenticator(m.userRepo, m.sessionRepo)
	srv := New(UseCases{
		CreateTicket:       m.createTicket,
		GetTicket:          m.getTicket,
		ListTickets:        m.listTickets,
		SearchTickets:      m.searchTickets,
		AddComment:         m.addComment,
		ChangeTicketStatus: m.changeStatus,
		ListThreads:        m.listThreads,
		GetThread:          m.getThread,
		PostMessage:        m.postMessage,
	}, authn, m.checker, m.limiter, &mockLogger{})
	require.NotNil(t, srv)
	require.NotNil(t, srv.mcp)
	return srv, m
}

// callerCtx returns a context carrying an already authenticated principal,
// for exercising handlers directly.
func callerCtx(role string) context.Context {
	return contextWithPrincipal(context.Background(), &Principal{
		UserID:    42,
		UserUUID:  testUserUUID,
		SessionID: "sess-mcp-1",
		Role:      role,
	})
}

func toolReq(args map[string]any) mcplib.CallToolRequest {
	req := mcplib.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func firstText(t *testing.T, r *mcplib.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, r.Content, "result has no content")
	txt, ok := r.Content[0].(mcplib.TextContent)
	require.True(t, ok, "first content item is not TextContent")
	return txt.Text
}

func TestHandleCreateTicket(t *testing.T) {
	srv, m := newTestServer(t)

	var got ticketuc.CreateTicketCommand
	m.createTicket.ExecuteFunc = func(ctx context.Context, cmd ticketuc.CreateTicketCommand) (*ticketuc.CreateTicketResult, error) {
		got = cmd
		return &ticketuc.CreateTicketResult{
			TicketID:  101,
			Number:    "TKT-0000000101",
			Status:    "new",
			CreatedAt: time.Now(),
		}, nil
	}

	result, err := srv.handleCreateTicket(callerCtx("customer"), toolReq(map[string]any{
		"title":       "VPN drops every hour",
		"description": "The tunnel resets at minute 59.",
		"priority":    "high",
		"tags":        "vpn, network",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, firstText(t, result), "TKT-0000000101")
	assert.Equal(t, uint(42), got.CreatorID)
	assert.Equal(t, "high", got.Priority)
	assert.Equal(t, []string{"vpn", "network"}, got.Tags)
}

func TestHandleCreateTicket_MissingTitle(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleCreateTicket(callerCtx("customer"), toolReq(map[string]any{
		"description": "no title given",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "title and description are required")
}

func TestHandleCreateTicket_NoPrincipal(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleCreateTicket(context.Background(), toolReq(map[string]any{
		"title":       "x",
		"description": "y",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleGetTicket_ByNumber(t *testing.T) {
	srv, m := newTestServer(t)

	var got ticketuc.GetTicketQuery
	m.getTicket.ExecuteFunc = func(ctx context.Context, query ticketuc.GetTicketQuery) (*dto.TicketDTO, error) {
		got = query
		return &dto.TicketDTO{ID: 7, Number: "TKT-0000000007", Title: "Printer on fire"}, nil
	}

	result, err := srv.handleGetTicket(callerCtx("support_agent"), toolReq(map[string]any{
		"number": "TKT-0000000007",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, firstText(t, result), "Printer on fire")
	assert.Equal(t, "TKT-0000000007", got.Number)
	assert.Equal(t, "support_agent", got.Role)
}

func TestHandleGetTicket_NoIdentifier(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleGetTicket(callerCtx("customer"), toolReq(nil))

	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleListTickets(t *testing.T) {
	srv, m := newTestServer(t)

	var got ticketuc.ListTicketsQuery
	m.listTickets.ExecuteFunc = func(ctx context.Context, query ticketuc.ListTicketsQuery) (*ticketuc.ListTicketsResult, error) {
		got = query
		return &ticketuc.ListTicketsResult{
			Tickets: []dto.TicketListItemDTO{{ID: 1, Number: "TKT-0000000001"}},
			Total:   1, Page: 2, PageSize: 10,
		}, nil
	}

	result, err := srv.handleListTickets(callerCtx("support_agent"), toolReq(map[string]any{
		"status":         "open",
		"assigned_to_me": true,
		"page":           float64(2),
		"page_size":      float64(10),
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, firstText(t, result), "TKT-0000000001")
	assert.Equal(t, "open", got.Status)
	assert.True(t, got.AssignedToMe)
	assert.Equal(t, 2, got.Page)
	assert.Equal(t, 10, got.PageSize)
}

func TestHandleSearchTickets_RequiresQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	result, err := srv.handleSearchTickets(callerCtx("customer"), toolReq(nil))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "query is required")
}

func TestHandleAddComment(t *testing.T) {
	srv, m := newTestServer(t)

	var got ticketuc.AddCommentCommand
	m.addComment.ExecuteFunc = func(ctx context.Context, cmd ticketuc.AddCommentCommand) (*ticketuc.AddCommentResult, error) {
		got = cmd
		return &ticketuc.AddCommentResult{CommentID: 55, CreatedAt: time.Now()}, nil
	}

	result, err := srv.handleAddComment(callerCtx("support_agent"), toolReq(map[string]any{
		"ticket_id": float64(7),
		"content":   "Looking into it.",
		"internal":  true,
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, uint(7), got.TicketID)
	assert.True(t, got.IsInternal)
	assert.Equal(t, uint(42), got.UserID)
}

func TestHandleChangeTicketStatus(t *testing.T) {
	srv, m := newTestServer(t)

	m.changeStatus.ExecuteFunc = func(ctx context.Context, cmd ticketuc.ChangeStatusCommand) (*ticketuc.ChangeStatusResult, error) {
		return &ticketuc.ChangeStatusResult{
			TicketID:  cmd.TicketID,
			OldStatus: "open",
			NewStatus: cmd.NewStatus,
			UpdatedAt: time.Now(),
		}, nil
	}

	result, err := srv.handleChangeTicketStatus(callerCtx("support_agent"), toolReq(map[string]any{
		"ticket_id": float64(7),
		"status":    "resolved",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, firstText(t, result), "open to resolved")
}

func TestHandleChangeTicketStatus_UseCaseError(t *testing.T) {
	srv, m := newTestServer(t)

	m.changeStatus.ExecuteFunc = func(ctx context.Context, cmd ticketuc.ChangeStatusCommand) (*ticketuc.ChangeStatusResult, error) {
		return nil, errors.New("cannot transition from closed to open")
	}

	result, err := srv.handleChangeTicketStatus(callerCtx("support_agent"), toolReq(map[string]any{
		"ticket_id": float64(7),
		"status":    "open",
	}))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "cannot transition")
}

func TestHandlePostMessage(t *testing.T) {
	srv, m := newTestServer(t)

	var got threaduc.PostMessageCommand
	m.postMessage.ExecuteFunc = func(ctx context.Context, cmd threaduc.PostMessageCommand) (*threaduc.PostMessageResult, error) {
		got = cmd
		return &threaduc.PostMessageResult{}, nil
	}

	result, err := srv.handlePostMessage(callerCtx("customer"), toolReq(map[string]any{
		"thread_id": float64(3),
		"content":   "How do I reset my password?",
	}))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, uint(3), got.ThreadID)
	assert.Equal(t, "customer", got.Role)
}

func TestGuarded_ForbiddenTool(t *testing.T) {
	srv, m := newTestServer(t)

	m.checker.CanUseToolFunc = func(role, tool string) (bool, error) {
		return false, nil
	}
	m.userRepo.GetByUUIDFunc = func(ctx context.Context, uuid string) (*user.User, error) {
		return activeUser(t, 42, authorization.RoleCustomer), nil
	}

	token, session := issueToken(t, srv.authn.jwtService, authorization.RoleCustomer)
	m.sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	handlerCalled := false
	wrapped := srv.guarded("change_ticket_status", func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		handlerCalled = true
		return resultText("ok"), nil
	})

	ctx := ContextWithToken(context.Background(), token)
	result, err := wrapped(ctx, toolReq(nil))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "not allowed to call change_ticket_status")
	assert.False(t, handlerCalled)
}

func TestGuarded_Unauthenticated(t *testing.T) {
	srv, _ := newTestServer(t)

	wrapped := srv.guarded("get_ticket", func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		t.Fatal("handler must not run without a token")
		return nil, nil
	})

	result, err := wrapped(context.Background(), toolReq(nil))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "missing bearer token")
}

func TestGuarded_PassesPrincipalAndRateLimits(t *testing.T) {
	srv, m := newTestServer(t)

	m.userRepo.GetByUUIDFunc = func(ctx context.Context, uuid string) (*user.User, error) {
		return activeUser(t, 42, authorization.RoleAdmin), nil
	}
	token, session := issueToken(t, srv.authn.jwtService, authorization.RoleAdmin)
	m.sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}

	var seen *Principal
	wrapped := srv.guarded("list_tickets", func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		seen, _ = principalFromContext(ctx)
		return resultText("ok"), nil
	})

	ctx := ContextWithToken(context.Background(), token)
	result, err := wrapped(ctx, toolReq(nil))

	require.NoError(t, err)
	assert.False(t, result.IsError)
	require.NotNil(t, seen)
	assert.Equal(t, "admin", seen.Role)
	require.Len(t, m.limiter.keys, 1)
	assert.Contains(t, m.limiter.keys[0], testUserUUID)
}

func TestGuarded_RateLimited(t *testing.T) {
	srv, m := newTestServer(t)

	m.userRepo.GetByUUIDFunc = func(ctx context.Context, uuid string) (*user.User, error) {
		return activeUser(t, 42, authorization.RoleCustomer), nil
	}
	token, session := issueToken(t, srv.authn.jwtService, authorization.RoleCustomer)
	m.sessionRepo.GetByIDFunc = func(id string) (*user.Session, error) {
		return session, nil
	}
	m.limiter.AllowFunc = func(key string, config ratelimit.RateLimitConfig) (bool, error) {
		return false, nil
	}

	wrapped := srv.guarded("list_tickets", func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		t.Fatal("handler must not run when rate limited")
		return nil, nil
	})

	ctx := ContextWithToken(context.Background(), token)
	result, err := wrapped(ctx, toolReq(nil))

	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, firstText(t, result), "rate limit")
}

func TestServe_UnknownTransport(t *testing.T) {
	srv, _ := newTestServer(t)

	err := srv.Serve(context.Background(), Transport("carrier-pigeon"), "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mcp transport")
}

func TestToolSchemas_ListEveryTicketStatus(t *testing.T) {
	srv, _ := newTestServer(t)

	statuses := []string{"new", "open", "in_progress", "pending", "resolved", "closed", "reopened"}

	for _, st := range []struct {
		name   string
		schema interface{}
	}{
		{"list_tickets", srv.toolListTickets().Tool.InputSchema},
		{"change_ticket_status", srv.toolChangeTicketStatus().Tool.InputSchema},
	} {
		t.Run(st.name, func(t *testing.T) {
			raw, err := json.Marshal(st.schema)
			require.NoError(t, err)
			for _, status := range statuses {
				assert.Contains(t, string(raw), status, "schema omits %q", status)
			}
		})
	}
}
