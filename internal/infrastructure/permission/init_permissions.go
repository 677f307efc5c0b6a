package permission

import (
	"fmt"

	"helpdesk/internal/shared/logger"
)

// Resources on the REST surface.
const (
	ResourceTicket     = "ticket"
	ResourceComment    = "comment"
	ResourceThread     = "thread"
	ResourceAgent      = "agent"
	ResourceAttachment = "attachment"
	ResourceSyncLink   = "sync_link"
	ResourceUser       = "user"
)

// Actions.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionAssign = "assign"
	ActionCall   = "call"
)

// Tool names exposed by the MCP server. Policy rows pair a role with a
// tool name and the call action.
const (
	ToolCreateTicket       = "create_ticket"
	ToolGetTicket          = "get_ticket"
	ToolListTickets        = "list_tickets"
	ToolAddComment         = "add_comment"
	ToolChangeTicketStatus = "change_ticket_status"
	ToolListThreads        = "list_threads"
	ToolGetThread          = "get_thread"
	ToolPostMessage        = "post_message"
	ToolSearchTickets      = "search_tickets"
)

// AllTools lists every registered MCP tool name.
var AllTools = []string{
	ToolCreateTicket,
	ToolGetTicket,
	ToolListTickets,
	ToolAddComment,
	ToolChangeTicketStatus,
	ToolListThreads,
	ToolGetThread,
	ToolPostMessage,
	ToolSearchTickets,
}

// InitResourcePermissions seeds role permissions for the REST surface.
// Ownership scoping (a customer only sees their own tickets) is enforced
// by the use cases; these policies gate the operation itself.
func InitResourcePermissions(e *Enforcer, log logger.Interface) error {
	policies := [][]string{
		// Admins manage everything, including agents and users.
		{"admin", ResourceTicket, ActionCreate},
		{"admin", ResourceTicket, ActionRead},
		{"admin", ResourceTicket, ActionUpdate},
		{"admin", ResourceTicket, ActionDelete},
		{"admin", ResourceTicket, ActionAssign},
		{"admin", ResourceComment, ActionCreate},
		{"admin", ResourceComment, ActionRead},
		{"admin", ResourceComment, ActionDelete},
		{"admin", ResourceThread, ActionCreate},
		{"admin", ResourceThread, ActionRead},
		{"admin", ResourceThread, ActionUpdate},
		{"admin", ResourceThread, ActionDelete},
		{"admin", ResourceAgent, ActionCreate},
		{"admin", ResourceAgent, ActionRead},
		{"admin", ResourceAgent, ActionUpdate},
		{"admin", ResourceAgent, ActionDelete},
		{"admin", ResourceAttachment, ActionCreate},
		{"admin", ResourceAttachment, ActionRead},
		{"admin", ResourceAttachment, ActionDelete},
		{"admin", ResourceSyncLink, ActionCreate},
		{"admin", ResourceSyncLink, ActionRead},
		{"admin", ResourceSyncLink, ActionUpdate},
		{"admin", ResourceSyncLink, ActionDelete},
		{"admin", ResourceUser, ActionRead},
		{"admin", ResourceUser, ActionUpdate},
		{"admin", ResourceUser, ActionDelete},

		// Support agents work tickets and threads but do not manage
		// agent definitions or users.
		{"support_agent", ResourceTicket, ActionCreate},
		{"support_agent", ResourceTicket, ActionRead},
		{"support_agent", ResourceTicket, ActionUpdate},
		{"support_agent", ResourceTicket, ActionAssign},
		{"support_agent", ResourceComment, ActionCreate},
		{"support_agent", ResourceComment, ActionRead},
		{"support_agent", ResourceThread, ActionCreate},
		{"support_agent", ResourceThread, ActionRead},
		{"support_agent", ResourceThread, ActionUpdate},
		{"support_agent", ResourceAgent, ActionRead},
		{"support_agent", ResourceAttachment, ActionCreate},
		{"support_agent", ResourceAttachment, ActionRead},
		{"support_agent", ResourceSyncLink, ActionCreate},
		{"support_agent", ResourceSyncLink, ActionRead},
		{"support_agent", ResourceSyncLink, ActionUpdate},

		// Customers file and follow their own tickets.
		{"customer", ResourceTicket, ActionCreate},
		{"customer", ResourceTicket, ActionRead},
		{"customer", ResourceComment, ActionCreate},
		{"customer", ResourceComment, ActionRead},
		{"customer", ResourceThread, ActionCreate},
		{"customer", ResourceThread, ActionRead},
		{"customer", ResourceAttachment, ActionCreate},
		{"customer", ResourceAttachment, ActionRead},
	}

	if err := e.addPolicies(policies); err != nil {
		log.Errorw("failed to seed resource permissions", "error", err)
		return fmt.Errorf("failed to seed resource permissions: %w", err)
	}

	log.Info("resource permissions initialized successfully")
	return nil
}

// InitToolPermissions seeds the role to tool table for the MCP server.
func InitToolPermissions(e *Enforcer, log logger.Interface) error {
	policies := [][]string{}

	// Admins and support agents may call every tool.
	for _, tool := range AllTools {
		policies = append(policies,
			[]string{"admin", tool, ActionCall},
			[]string{"support_agent", tool, ActionCall},
		)
	}

	// Customers get the self-service subset. Status changes stay with
	// support staff; listings are scoped to the caller by the use cases.
	for _, tool := range []string{
		ToolCreateTicket,
		ToolGetTicket,
		ToolListTickets,
		ToolAddComment,
		ToolListThreads,
		ToolGetThread,
		ToolPostMessage,
		ToolSearchTickets,
	} {
		policies = append(policies, []string{"customer", tool, ActionCall})
	}

	if err := e.addPolicies(policies); err != nil {
		log.Errorw("failed to seed tool permissions", "error", err)
		return fmt.Errorf("failed to seed tool permissions: %w", err)
	}

	log.Info("tool permissions initialized successfully")
	return nil
}

// InitAllPermissions seeds every permission policy.
func InitAllPermissions(e *Enforcer, log logger.Interface) error {
	if err := InitResourcePermissions(e, log); err != nil {
		return err
	}

	if err := InitToolPermissions(e, log); err != nil {
		return err
	}

	log.Info("all permissions initialized successfully")
	return nil
}
