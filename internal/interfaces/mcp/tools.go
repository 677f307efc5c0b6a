package mcp

import (
	"context"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	ticketdto "helpdesk/internal/application/ticket/dto"
	ticketuc "helpdesk/internal/application/ticket/usecases"
	threaduc "helpdesk/internal/application/thread/usecases"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/shared/errors"
)

// errNoPrincipal indicates the permission wrapper did not run, which is a
// wiring bug rather than a caller mistake.
var errNoPrincipal = errors.NewUnauthorizedError("no authenticated caller in context")

func (s *Server) toolCreateTicket() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolCreateTicket,
		mcplib.WithDescription("File a new support ticket. Returns the ticket ID, its TKT number and initial status."),
		mcplib.WithString("title",
			mcplib.Description("Short summary of the issue, at most 200 characters."),
			mcplib.Required(),
		),
		mcplib.WithString("description",
			mcplib.Description("Full description of the issue."),
			mcplib.Required(),
		),
		mcplib.WithString("category",
			mcplib.Description("Ticket category, e.g. billing, technical, account. Defaults to general."),
		),
		mcplib.WithString("priority",
			mcplib.Description("One of low, medium, high, urgent. Defaults to medium."),
		),
		mcplib.WithString("tags",
			mcplib.Description("Comma separated list of tags to attach."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateTicket}
}

func (s *Server) handleCreateTicket(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	title, _ := stringArg(req, "title")
	description, _ := stringArg(req, "description")
	if title == "" || description == "" {
		return resultErr(fmt.Errorf("create_ticket: title and description are required")), nil
	}
	category, _ := stringArg(req, "category")
	priority, _ := stringArg(req, "priority")

	result, err := s.uc.CreateTicket.Execute(ctx, ticketuc.CreateTicketCommand{
		Title:       title,
		Description: description,
		Category:    category,
		Priority:    priority,
		CreatorID:   p.UserID,
		Tags:        splitTags(req),
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(map[string]any{
		"ticket_id":  result.TicketID,
		"number":     result.Number,
		"status":     result.Status,
		"created_at": result.CreatedAt,
	})
}

func (s *Server) toolGetTicket() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolGetTicket,
		mcplib.WithDescription("Fetch one ticket with its comments. Pass either the numeric ticket_id or the TKT number."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithNumber("ticket_id",
			mcplib.Description("Numeric ticket ID."),
		),
		mcplib.WithString("number",
			mcplib.Description("Ticket number such as TKT-0000001042."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTicket}
}

func (s *Server) handleGetTicket(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	ticketID := uintArg(req, "ticket_id")
	number, _ := stringArg(req, "number")
	if ticketID == 0 && number == "" {
		return resultErr(fmt.Errorf("get_ticket: ticket_id or number is required")), nil
	}

	result, err := s.uc.GetTicket.Execute(ctx, ticketuc.GetTicketQuery{
		TicketID: ticketID,
		Number:   number,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(result)
}

func (s *Server) toolListTickets() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolListTickets,
		mcplib.WithDescription("List tickets visible to the caller, newest first. Customers only see their own tickets."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("status",
			mcplib.Description("Filter by status: new, open, in_progress, pending, resolved, closed, reopened."),
		),
		mcplib.WithString("priority",
			mcplib.Description("Filter by priority: low, medium, high, urgent."),
		),
		mcplib.WithString("category",
			mcplib.Description("Filter by category."),
		),
		mcplib.WithBoolean("assigned_to_me",
			mcplib.Description("Only tickets assigned to the caller (support staff)."),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("page_size",
			mcplib.Description("Results per page, at most 100."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListTickets}
}

// ticketPage mirrors the list result with stable JSON keys.
type ticketPage struct {
	Tickets  []ticketdto.TicketListItemDTO `json:"tickets"`
	Total    int64                         `json:"total"`
	Page     int                           `json:"page"`
	PageSize int                           `json:"page_size"`
}

func (s *Server) handleListTickets(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	status, _ := stringArg(req, "status")
	priority, _ := stringArg(req, "priority")
	category, _ := stringArg(req, "category")

	result, err := s.uc.ListTickets.Execute(ctx, ticketuc.ListTicketsQuery{
		UserID:       p.UserID,
		Role:         p.Role,
		Status:       status,
		Priority:     priority,
		Category:     category,
		AssignedToMe: boolArg(req, "assigned_to_me"),
		Page:         intArg(req, "page"),
		PageSize:     intArg(req, "page_size"),
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(ticketPage{
		Tickets:  result.Tickets,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (s *Server) toolSearchTickets() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolSearchTickets,
		mcplib.WithDescription("Full text search over ticket titles and descriptions, scoped to what the caller may see."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("query",
			mcplib.Description("Search terms."),
			mcplib.Required(),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("page_size",
			mcplib.Description("Results per page, at most 100."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchTickets}
}

func (s *Server) handleSearchTickets(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	query, _ := stringArg(req, "query")
	if query == "" {
		return resultErr(fmt.Errorf("search_tickets: query is required")), nil
	}

	result, err := s.uc.SearchTickets.Execute(ctx, ticketuc.SearchTicketsQuery{
		Query:    query,
		UserID:   p.UserID,
		Role:     p.Role,
		Page:     intArg(req, "page"),
		PageSize: intArg(req, "page_size"),
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(ticketPage{
		Tickets:  result.Tickets,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	})
}

func (s *Server) toolAddComment() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolAddComment,
		mcplib.WithDescription("Add a comment to a ticket. Internal comments are only visible to support staff."),
		mcplib.WithNumber("ticket_id",
			mcplib.Description("Numeric ticket ID."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("Comment body."),
			mcplib.Required(),
		),
		mcplib.WithBoolean("internal",
			mcplib.Description("Mark the comment internal, support staff only."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddComment}
}

func (s *Server) handleAddComment(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	ticketID := uintArg(req, "ticket_id")
	content, _ := stringArg(req, "content")
	if ticketID == 0 || content == "" {
		return resultErr(fmt.Errorf("add_comment: ticket_id and content are required")), nil
	}

	result, err := s.uc.AddComment.Execute(ctx, ticketuc.AddCommentCommand{
		TicketID:   ticketID,
		UserID:     p.UserID,
		Role:       p.Role,
		Content:    content,
		IsInternal: boolArg(req, "internal"),
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(map[string]any{
		"comment_id": result.CommentID,
		"created_at": result.CreatedAt,
	})
}

func (s *Server) toolChangeTicketStatus() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolChangeTicketStatus,
		mcplib.WithDescription("Move a ticket to a new status. Only legal lifecycle transitions are accepted."),
		mcplib.WithNumber("ticket_id",
			mcplib.Description("Numeric ticket ID."),
			mcplib.Required(),
		),
		mcplib.WithString("status",
			mcplib.Description("Target status: new, open, in_progress, pending, resolved, closed, reopened."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleChangeTicketStatus}
}

func (s *Server) handleChangeTicketStatus(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	ticketID := uintArg(req, "ticket_id")
	status, _ := stringArg(req, "status")
	if ticketID == 0 || status == "" {
		return resultErr(fmt.Errorf("change_ticket_status: ticket_id and status are required")), nil
	}

	result, err := s.uc.ChangeTicketStatus.Execute(ctx, ticketuc.ChangeStatusCommand{
		TicketID:  ticketID,
		NewStatus: status,
		ChangedBy: p.UserID,
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultText(fmt.Sprintf("ticket %d moved from %s to %s", result.TicketID, result.OldStatus, result.NewStatus)), nil
}

func (s *Server) toolListThreads() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolListThreads,
		mcplib.WithDescription("List the caller's AI agent chat threads, newest first."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("status",
			mcplib.Description("Filter by status: active or closed."),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("page_size",
			mcplib.Description("Results per page, at most 100."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListThreads}
}

func (s *Server) handleListThreads(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	status, _ := stringArg(req, "status")

	result, err := s.uc.ListThreads.Execute(ctx, threaduc.ListThreadsQuery{
		UserID:   p.UserID,
		Role:     p.Role,
		Status:   status,
		Page:     intArg(req, "page"),
		PageSize: intArg(req, "page_size"),
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(result)
}

func (s *Server) toolGetThread() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolGetThread,
		mcplib.WithDescription("Fetch one chat thread with its full message history."),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithNumber("thread_id",
			mcplib.Description("Numeric thread ID."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetThread}
}

func (s *Server) handleGetThread(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	threadID := uintArg(req, "thread_id")
	if threadID == 0 {
		return resultErr(fmt.Errorf("get_thread: thread_id is required")), nil
	}

	result, err := s.uc.GetThread.Execute(ctx, threaduc.GetThreadQuery{
		ThreadID: threadID,
		UserID:   p.UserID,
		Role:     p.Role,
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(result)
}

func (s *Server) toolPostMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool(permission.ToolPostMessage,
		mcplib.WithDescription("Post a message to a chat thread. The assigned AI agent replies in the same call, so the result carries both the posted message and the agent's answer."),
		mcplib.WithNumber("thread_id",
			mcplib.Description("Numeric thread ID."),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("Message body."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handlePostMessage}
}

func (s *Server) handlePostMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	p, ok := principalFromContext(ctx)
	if !ok {
		return resultErr(errNoPrincipal), nil
	}

	threadID := uintArg(req, "thread_id")
	content, _ := stringArg(req, "content")
	if threadID == 0 || content == "" {
		return resultErr(fmt.Errorf("post_message: thread_id and content are required")), nil
	}

	result, err := s.uc.PostMessage.Execute(ctx, threaduc.PostMessageCommand{
		ThreadID: threadID,
		UserID:   p.UserID,
		Role:     p.Role,
		Content:  content,
	})
	if err != nil {
		return resultErr(err), nil
	}

	return resultJSON(result)
}

func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// intArg extracts a named numeric argument. JSON numbers arrive as float64.
func intArg(req mcplib.CallToolRequest, name string) int {
	args := req.GetArguments()
	if args == nil {
		return 0
	}
	f, ok := args[name].(float64)
	if !ok {
		return 0
	}
	return int(f)
}

func uintArg(req mcplib.CallToolRequest, name string) uint {
	n := intArg(req, name)
	if n < 0 {
		return 0
	}
	return uint(n)
}

func boolArg(req mcplib.CallToolRequest, name string) bool {
	args := req.GetArguments()
	if args == nil {
		return false
	}
	b, _ := args[name].(bool)
	return b
}

func splitTags(req mcplib.CallToolRequest) []string {
	raw, _ := stringArg(req, "tags")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
