package http

import (
	"github.com/gin-gonic/gin"

	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/shared/config"
	"helpdesk/internal/shared/logger"
)

// Router assembles the REST surface from handlers and middleware.
type Router struct {
	authHandler       *handlers.AuthHandler
	ticketHandler     *handlers.TicketHandler
	threadHandler     *handlers.ThreadHandler
	agentHandler      *handlers.AgentHandler
	attachmentHandler *handlers.AttachmentHandler
	syncHandler       *handlers.SyncHandler

	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          ratelimit.RateLimiter

	serverConfig config.ServerConfig
	logger       logger.Interface
}

func NewRouter(
	authHandler *handlers.AuthHandler,
	ticketHandler *handlers.TicketHandler,
	threadHandler *handlers.ThreadHandler,
	agentHandler *handlers.AgentHandler,
	attachmentHandler *handlers.AttachmentHandler,
	syncHandler *handlers.SyncHandler,
	authMiddleware *middleware.AuthMiddleware,
	permissionMiddleware *middleware.PermissionMiddleware,
	rateLimiter ratelimit.RateLimiter,
	serverConfig config.ServerConfig,
	log logger.Interface,
) *Router {
	return &Router{
		authHandler:          authHandler,
		ticketHandler:        ticketHandler,
		threadHandler:        threadHandler,
		agentHandler:         agentHandler,
		attachmentHandler:    attachmentHandler,
		syncHandler:          syncHandler,
		authMiddleware:       authMiddleware,
		permissionMiddleware: permissionMiddleware,
		rateLimiter:          rateLimiter,
		serverConfig:         serverConfig,
		logger:               log,
	}
}

// Setup builds the gin engine with all routes registered.
func (r *Router) Setup() *gin.Engine {
	if r.serverConfig.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	registerBindingValidators()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.CORS(r.serverConfig.AllowedOrigins),
		middleware.SecurityHeaders(),
		middleware.CustomLogger(r.logger),
		middleware.ErrorHandler(),
	)

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	api.Use(middleware.RateLimit(r.rateLimiter, "api", ratelimit.DefaultAPILimit))

	r.registerAuthRoutes(api)
	r.registerTicketRoutes(api)
	r.registerThreadRoutes(api)
	r.registerAgentRoutes(api)
	r.registerSyncRoutes(api)

	return engine
}

func (r *Router) registerAuthRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		auth.POST("/register", middleware.LoginRateLimit(r.rateLimiter), r.authHandler.Register)
		auth.POST("/login", middleware.LoginRateLimit(r.rateLimiter), r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.RefreshToken)
		auth.GET("/oauth/google", r.authHandler.BeginGoogleOAuth)
		auth.GET("/oauth/google/callback", r.authHandler.GoogleOAuthCallback)

		authed := auth.Group("")
		authed.Use(r.authMiddleware.RequireAuth())
		{
			authed.POST("/logout", r.authHandler.Logout)
			authed.GET("/me", r.authHandler.Me)
			authed.POST("/change-password", r.authHandler.ChangePassword)
		}
	}
}

func (r *Router) registerTicketRoutes(api *gin.RouterGroup) {
	tickets := api.Group("/tickets")
	tickets.Use(r.authMiddleware.RequireAuth())
	{
		tickets.POST("",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionCreate),
			r.ticketHandler.Create)
		tickets.GET("",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			r.ticketHandler.List)
		tickets.GET("/search",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			r.ticketHandler.Search)
		tickets.GET("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionRead),
			r.ticketHandler.Get)
		tickets.PATCH("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionUpdate),
			r.ticketHandler.Update)
		tickets.DELETE("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionDelete),
			r.ticketHandler.Delete)
		tickets.POST("/:id/assign",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionAssign),
			r.ticketHandler.Assign)
		tickets.POST("/:id/status",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionUpdate),
			r.ticketHandler.ChangeStatus)
		tickets.POST("/:id/priority",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionUpdate),
			r.ticketHandler.ChangePriority)
		tickets.POST("/:id/close",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionUpdate),
			r.ticketHandler.Close)
		tickets.POST("/:id/reopen",
			r.permissionMiddleware.RequirePermission(permission.ResourceTicket, permission.ActionUpdate),
			r.ticketHandler.Reopen)

		tickets.POST("/:id/comments",
			r.permissionMiddleware.RequirePermission(permission.ResourceComment, permission.ActionCreate),
			r.ticketHandler.AddComment)

		tickets.POST("/:id/attachments",
			r.permissionMiddleware.RequirePermission(permission.ResourceAttachment, permission.ActionCreate),
			middleware.RateLimit(r.rateLimiter, "upload", ratelimit.UploadLimit),
			r.attachmentHandler.Upload)
		tickets.GET("/:id/attachments",
			r.permissionMiddleware.RequirePermission(permission.ResourceAttachment, permission.ActionRead),
			r.attachmentHandler.List)

		tickets.POST("/:id/links",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionCreate),
			r.syncHandler.CreateLink)
		tickets.GET("/:id/links",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionRead),
			r.syncHandler.ListLinks)
	}

	attachments := api.Group("/attachments")
	attachments.Use(r.authMiddleware.RequireAuth())
	{
		attachments.GET("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceAttachment, permission.ActionRead),
			r.attachmentHandler.Download)
		attachments.DELETE("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceAttachment, permission.ActionDelete),
			r.attachmentHandler.Delete)
	}
}

func (r *Router) registerThreadRoutes(api *gin.RouterGroup) {
	threads := api.Group("/threads")
	threads.Use(r.authMiddleware.RequireAuth())
	{
		threads.POST("",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionCreate),
			r.threadHandler.Create)
		threads.GET("",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionRead),
			r.threadHandler.List)
		threads.GET("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionRead),
			r.threadHandler.Get)
		threads.POST("/:id/messages",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionUpdate),
			r.threadHandler.PostMessage)
		threads.POST("/:id/close",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionUpdate),
			r.threadHandler.Close)
		threads.POST("/:id/reopen",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionUpdate),
			r.threadHandler.Reopen)
		threads.POST("/:id/link-ticket",
			r.permissionMiddleware.RequirePermission(permission.ResourceThread, permission.ActionUpdate),
			r.threadHandler.LinkTicket)
	}
}

func (r *Router) registerAgentRoutes(api *gin.RouterGroup) {
	agents := api.Group("/agents")
	agents.Use(r.authMiddleware.RequireAuth())
	{
		agents.GET("",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionRead),
			r.agentHandler.List)
		agents.GET("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionRead),
			r.agentHandler.Get)
		agents.POST("",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionCreate),
			r.agentHandler.Create)
		agents.PATCH("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionUpdate),
			r.agentHandler.Update)
		agents.POST("/:id/prompt",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionUpdate),
			r.agentHandler.UpdatePrompt)
		agents.POST("/:id/enabled",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionUpdate),
			r.agentHandler.SetEnabled)
		agents.DELETE("/:id",
			r.permissionMiddleware.RequirePermission(permission.ResourceAgent, permission.ActionDelete),
			r.agentHandler.Delete)
	}
}

func (r *Router) registerSyncRoutes(api *gin.RouterGroup) {
	sync := api.Group("/sync")
	sync.Use(r.authMiddleware.RequireAuth())
	{
		sync.GET("/links",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionRead),
			r.syncHandler.ListAllLinks)
		sync.GET("/jobs",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionRead),
			r.syncHandler.ListJobs)
		sync.POST("/links/:id/state",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionUpdate),
			r.syncHandler.SetLinkState)
		sync.POST("/jobs/:id/retry",
			r.permissionMiddleware.RequirePermission(permission.ResourceSyncLink, permission.ActionUpdate),
			r.syncHandler.RetryJob)
	}
}
