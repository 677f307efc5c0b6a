package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	extsyncuc "helpdesk/internal/application/extsync/usecases"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/external"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, env == "development"); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting comment sync worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	var posters []external.CommentPoster
	if cfg.Sync.JiraBaseURL != "" {
		jira, err := external.NewJiraClient(cfg.Sync.JiraBaseURL, cfg.Sync.JiraUser, cfg.Sync.JiraToken)
		if err != nil {
			log.Fatalw("failed to build jira client", "error", err)
		}
		posters = append(posters, jira)
		log.Infow("jira poster configured", "base_url", cfg.Sync.JiraBaseURL)
	}
	if cfg.Sync.ServiceNowBaseURL != "" {
		snow, err := external.NewServiceNowClient(cfg.Sync.ServiceNowBaseURL, cfg.Sync.ServiceNowUser, cfg.Sync.ServiceNowPassword)
		if err != nil {
			log.Fatalw("failed to build servicenow client", "error", err)
		}
		posters = append(posters, snow)
		log.Infow("servicenow poster configured", "base_url", cfg.Sync.ServiceNowBaseURL)
	}
	if len(posters) == 0 {
		log.Warnw("no external platforms configured, pending jobs will fail")
	}

	gormDB := database.Get()
	worker := extsyncuc.NewSyncWorker(
		repository.NewSyncJobRepository(gormDB),
		repository.NewExternalLinkRepository(gormDB),
		repository.NewSyncAuditLogRepository(gormDB),
		repository.NewCommentRepository(gormDB),
		posters,
		markdown.NewMarkdownService(),
		time.Duration(cfg.Sync.PollIntervalSeconds)*time.Second,
		cfg.Sync.BatchSize,
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Infow("received signal, shutting down", "signal", sig)
		cancel()
	}()

	worker.Run(ctx)
	log.Infow("comment sync worker stopped")
}
