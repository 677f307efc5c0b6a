package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	agentuc "helpdesk/internal/application/agent/usecases"
	attachmentuc "helpdesk/internal/application/attachment/usecases"
	extsyncuc "helpdesk/internal/application/extsync/usecases"
	threaduc "helpdesk/internal/application/thread/usecases"
	ticketuc "helpdesk/internal/application/ticket/usecases"
	useruc "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/domain/shared/events"
	"helpdesk/internal/domain/ticket"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/llm"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/infrastructure/storage"
	httpRouter "helpdesk/internal/interfaces/http"
	"helpdesk/internal/interfaces/http/handlers"
	"helpdesk/internal/interfaces/http/middleware"
	"helpdesk/internal/interfaces/mcp"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/goroutine"
	"helpdesk/internal/shared/logger"
)

var (
	env                string
	autoMigrate        bool
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the helpdesk HTTP server with specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = mapEnvToGinMode(env)

	if err := logger.Init(&cfg.Logger, env == "development"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	log.Infow("starting server",
		"environment", env,
		"version", "1.0.0",
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	if err := handleMigrations(env, log); err != nil {
		log.Fatal("migration handling failed", "error", err)
	}

	eventBus := events.NewInMemoryBus(100, log)
	if err := eventBus.Start(); err != nil {
		log.Fatal("failed to start event bus", "error", err)
	}
	defer func() {
		if err := eventBus.Stop(); err != nil {
			log.Error("failed to stop event bus", "error", err)
		}
	}()

	gormDB := database.Get()

	// Repositories
	userRepo := repository.NewUserRepository(gormDB, log)
	sessionRepo := repository.NewSessionRepository(gormDB)
	oauthRepo := repository.NewOAuthAccountRepository(gormDB)
	ticketRepo := repository.NewTicketRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	threadRepo := repository.NewThreadRepository(gormDB)
	messageRepo := repository.NewMessageRepository(gormDB)
	agentRepo := repository.NewAgentRepository(gormDB)
	attachmentRepo := repository.NewAttachmentRepository(gormDB)
	linkRepo := repository.NewExternalLinkRepository(gormDB)
	jobRepo := repository.NewSyncJobRepository(gormDB)

	// Authorization
	enforcer, err := permission.NewEnforcer(gormDB, log)
	if err != nil {
		log.Fatal("failed to initialize permission enforcer", "error", err)
	}
	if err := permission.InitAllPermissions(enforcer, log); err != nil {
		log.Fatal("failed to seed permissions", "error", err)
	}
	overrides, err := permission.LoadPolicyOverrides("./configs/permissions.yaml")
	if err != nil {
		log.Fatal("failed to load policy overrides", "error", err)
	}
	if err := permission.ApplyPolicyOverrides(enforcer, overrides, log); err != nil {
		log.Fatal("failed to apply policy overrides", "error", err)
	}

	// Rate limiting
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	rateLimiter := ratelimit.NewRedisRateLimiter(redisClient)

	// Auth services
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)
	tokenCache := auth.NewTokenCache()
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	oauthClient := auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.Google.ClientID,
		ClientSecret: cfg.OAuth.Google.ClientSecret,
		RedirectURL:  cfg.OAuth.Google.RedirectURL,
	})
	sessionTTL := time.Duration(cfg.Auth.JWT.RefreshExpDays) * 24 * time.Hour

	// Attachment storage
	blobs, err := storage.NewFSStorage(cfg.Storage.Location)
	if err != nil {
		log.Fatal("failed to initialize attachment storage", "error", err)
	}

	// Agent runner
	runner, err := llm.NewChatRunner(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.TimeoutSeconds, cfg.LLM.MaxTokens, log)
	if err != nil {
		log.Fatal("failed to initialize agent runner", "error", err)
	}

	numberGen := ticket.NewDefaultNumberGenerator()
	txMgr := db.NewTransactionManager(gormDB)

	// User use cases
	registerUC := useruc.NewRegisterUseCase(userRepo, hasher, log)
	loginUC := useruc.NewLoginUseCase(userRepo, sessionRepo, hasher, jwtService, sessionTTL, log)
	refreshTokenUC := useruc.NewRefreshTokenUseCase(userRepo, sessionRepo, jwtService, tokenCache, log)
	logoutUC := useruc.NewLogoutUseCase(sessionRepo, tokenCache, log)
	getUserUC := useruc.NewGetUserUseCase(userRepo, log)
	changePasswordUC := useruc.NewChangePasswordUseCase(userRepo, sessionRepo, hasher, log)
	beginOAuthUC := useruc.NewBeginOAuthUseCase(oauthClient, log)
	completeOAuthUC := useruc.NewCompleteOAuthUseCase(userRepo, oauthRepo, sessionRepo, oauthClient, jwtService, sessionTTL, log)

	// Ticket use cases
	createTicketUC := ticketuc.NewCreateTicketUseCase(ticketRepo, numberGen, eventBus, log)
	updateTicketUC := ticketuc.NewUpdateTicketUseCase(ticketRepo, log)
	deleteTicketUC := ticketuc.NewDeleteTicketUseCase(ticketRepo, log)
	getTicketUC := ticketuc.NewGetTicketUseCase(ticketRepo, log)
	listTicketsUC := ticketuc.NewListTicketsUseCase(ticketRepo, log)
	searchTicketsUC := ticketuc.NewSearchTicketsUseCase(ticketRepo, log)
	addCommentUC := ticketuc.NewAddCommentUseCase(ticketRepo, commentRepo, txMgr, eventBus, log)
	assignTicketUC := ticketuc.NewAssignTicketUseCase(ticketRepo, userRepo, eventBus, log)
	changeStatusUC := ticketuc.NewChangeStatusUseCase(ticketRepo, eventBus, log)
	changePriorityUC := ticketuc.NewChangePriorityUseCase(ticketRepo, log)
	closeTicketUC := ticketuc.NewCloseTicketUseCase(ticketRepo, eventBus, log)
	reopenTicketUC := ticketuc.NewReopenTicketUseCase(ticketRepo, eventBus, log)

	// Thread use cases
	createThreadUC := threaduc.NewCreateThreadUseCase(threadRepo, agentRepo, log)
	getThreadUC := threaduc.NewGetThreadUseCase(threadRepo, messageRepo, log)
	listThreadsUC := threaduc.NewListThreadsUseCase(threadRepo, log)
	postMessageUC := threaduc.NewPostMessageUseCase(threadRepo, messageRepo, agentRepo, runner, log)
	closeThreadUC := threaduc.NewCloseThreadUseCase(threadRepo, log)
	reopenThreadUC := threaduc.NewReopenThreadUseCase(threadRepo, log)
	linkTicketUC := threaduc.NewLinkTicketUseCase(threadRepo, messageRepo, ticketRepo, log)

	// Agent use cases
	createAgentUC := agentuc.NewCreateAgentUseCase(agentRepo, permission.AllTools, log)
	updateAgentUC := agentuc.NewUpdateAgentUseCase(agentRepo, permission.AllTools, log)
	updatePromptUC := agentuc.NewUpdatePromptUseCase(agentRepo, log)
	setAgentEnabledUC := agentuc.NewSetAgentEnabledUseCase(agentRepo, log)
	deleteAgentUC := agentuc.NewDeleteAgentUseCase(agentRepo, log)
	getAgentUC := agentuc.NewGetAgentUseCase(agentRepo, log)
	listAgentsUC := agentuc.NewListAgentsUseCase(agentRepo, log)

	// Attachment use cases
	uploadAttachmentUC := attachmentuc.NewUploadAttachmentUseCase(attachmentRepo, ticketRepo, blobs, cfg.Storage.MaxFileSize, log)
	listAttachmentsUC := attachmentuc.NewListAttachmentsUseCase(attachmentRepo, ticketRepo, log)
	downloadAttachmentUC := attachmentuc.NewDownloadAttachmentUseCase(attachmentRepo, ticketRepo, blobs, log)
	deleteAttachmentUC := attachmentuc.NewDeleteAttachmentUseCase(attachmentRepo, blobs, log)

	// External sync use cases
	createLinkUC := extsyncuc.NewCreateLinkUseCase(linkRepo, ticketRepo, log)
	setLinkStateUC := extsyncuc.NewSetLinkStateUseCase(linkRepo, log)
	listLinksUC := extsyncuc.NewListLinksUseCase(linkRepo, ticketRepo, log)
	listAllLinksUC := extsyncuc.NewListAllLinksUseCase(linkRepo, log)
	listJobsUC := extsyncuc.NewListJobsUseCase(jobRepo, log)
	retryJobUC := extsyncuc.NewRetryJobUseCase(jobRepo, log)

	// Event subscribers
	enqueuer := extsyncuc.NewCommentSyncEnqueuer(linkRepo, jobRepo, cfg.Sync.MaxAttempts, log)
	enqueuer.Register(eventBus)

	var emailSender ticketuc.EmailSender = email.NoopNotifier{}
	if cfg.Email.Enabled {
		emailSender = email.NewSMTPEmailService(email.SMTPConfig{
			Host:        cfg.Email.SMTPHost,
			Port:        cfg.Email.SMTPPort,
			Username:    cfg.Email.SMTPUser,
			Password:    cfg.Email.SMTPPassword,
			FromAddress: cfg.Email.FromAddress,
			FromName:    cfg.Email.FromName,
			BaseURL:     cfg.Server.BaseURL,
		})
	}
	notifier := ticketuc.NewTicketNotifier(ticketRepo, userRepo, emailSender, log)
	notifier.Register(eventBus)

	// HTTP interface
	authHandler := handlers.NewAuthHandler(registerUC, loginUC, refreshTokenUC, logoutUC, getUserUC, changePasswordUC, beginOAuthUC, completeOAuthUC, cfg.Auth.Cookie, cfg.Auth.JWT, log)
	ticketHandler := handlers.NewTicketHandler(createTicketUC, updateTicketUC, deleteTicketUC, getTicketUC, listTicketsUC, searchTicketsUC, addCommentUC, assignTicketUC, changeStatusUC, changePriorityUC, closeTicketUC, reopenTicketUC, log)
	threadHandler := handlers.NewThreadHandler(createThreadUC, getThreadUC, listThreadsUC, postMessageUC, closeThreadUC, reopenThreadUC, linkTicketUC, log)
	agentHandler := handlers.NewAgentHandler(createAgentUC, updateAgentUC, updatePromptUC, setAgentEnabledUC, deleteAgentUC, getAgentUC, listAgentsUC, log)
	attachmentHandler := handlers.NewAttachmentHandler(uploadAttachmentUC, listAttachmentsUC, downloadAttachmentUC, deleteAttachmentUC, log)
	syncHandler := handlers.NewSyncHandler(createLinkUC, setLinkStateUC, listLinksUC, listAllLinksUC, listJobsUC, retryJobUC, log)

	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenCache, sessionRepo, userRepo, log)
	permissionMiddleware := middleware.NewPermissionMiddleware(enforcer, log)

	router := httpRouter.NewRouter(authHandler, ticketHandler, threadHandler, agentHandler, attachmentHandler, syncHandler, authMiddleware, permissionMiddleware, rateLimiter, cfg.Server, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Setup(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveCtx, stopServing := context.WithCancel(context.Background())
	defer stopServing()

	// Expired entries are dropped lazily on Get; the sweep keeps sessions
	// that never come back from accumulating.
	goroutine.SafeGo(log, "token-cache-purge", func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-serveCtx.Done():
				return
			case <-ticker.C:
				if dropped := tokenCache.PurgeExpired(); dropped > 0 {
					log.Debugw("token cache purged", "dropped", dropped, "remaining", tokenCache.Len())
				}
			}
		}
	})

	if cfg.MCP.Enabled {
		mcpAuthn := mcp.NewAuthenticator(jwtService, tokenCache, sessionRepo, userRepo, log)
		mcpServer := mcp.New(mcp.UseCases{
			CreateTicket:       createTicketUC,
			GetTicket:          getTicketUC,
			ListTickets:        listTicketsUC,
			SearchTickets:      searchTicketsUC,
			AddComment:         addCommentUC,
			ChangeTicketStatus: changeStatusUC,
			ListThreads:        listThreadsUC,
			GetThread:          getThreadUC,
			PostMessage:        postMessageUC,
		}, mcpAuthn, enforcer, rateLimiter, log)

		transport := mcp.Transport(cfg.MCP.Transport)
		mcpCtx := serveCtx
		if transport == mcp.TransportStdio {
			// Stdio carries no headers; the process owner supplies the token.
			mcpCtx = mcp.ContextWithToken(serveCtx, os.Getenv("HELPDESK_MCP_TOKEN"))
		}

		goroutine.SafeGo(log, "mcp-server", func() {
			log.Infow("mcp server starting", "transport", cfg.MCP.Transport, "address", cfg.MCP.Addr)
			if err := mcpServer.Serve(mcpCtx, transport, cfg.MCP.Addr); err != nil {
				log.Error("mcp server stopped", "error", err)
			}
		})
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", cfg.Server.Mode)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	stopServing()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

func handleMigrations(environment string, log logger.Interface) error {
	if skipMigrationCheck {
		log.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			log.Warn("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("auto-migration completed successfully")
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "development", "dev":
		return "debug"
	case "test", "testing":
		return "test"
	case "debug":
		return "debug"
	case "release":
		return "release"
	default:
		return "debug"
	}
}
