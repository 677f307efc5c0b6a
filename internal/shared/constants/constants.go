package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderUserAgent     = "User-Agent"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeyUserID    = "user_id"
	ContextKeySessionID = "session_id"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"

	// User status
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusPending  = "pending"

	// Database table names
	TableUsers          = "users"
	TableSessions       = "sessions"
	TableTickets        = "tickets"
	TableTicketComments = "ticket_comments"
	TableThreads        = "threads"
	TableThreadMessages = "thread_messages"
	TableAgents         = "agents"
	TableAttachments    = "attachments"
	TableExternalLinks  = "external_links"
	TableSyncJobs       = "sync_jobs"
	TableSyncAuditLogs  = "sync_audit_logs"

	// External platforms
	PlatformJira       = "jira"
	PlatformServiceNow = "servicenow"
)
