package worker

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	extsyncuc "helpdesk/internal/application/extsync/usecases"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/external"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

var env string

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Start the external comment sync worker",
		Long:  `Start the background worker that mirrors ticket comments to linked JIRA and ServiceNow records.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")

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

	if err := logger.Init(&cfg.Logger, env == "development"); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()

	log.Infow("starting sync worker",
		"environment", env,
		"poll_interval_seconds", cfg.Sync.PollIntervalSeconds,
		"batch_size", cfg.Sync.BatchSize)

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	posters, err := buildPosters(cfg)
	if err != nil {
		log.Fatal("failed to build comment posters", "error", err)
	}
	if len(posters) == 0 {
		log.Warn("no external platforms configured, worker will mark jobs as failed")
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

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Info("shutting down sync worker...")
		cancel()
	}()

	worker.Run(ctx)

	log.Info("sync worker exited gracefully")
	return nil
}

func buildPosters(cfg *config.Config) ([]external.CommentPoster, error) {
	var posters []external.CommentPoster

	if cfg.Sync.JiraBaseURL != "" {
		jira, err := external.NewJiraClient(cfg.Sync.JiraBaseURL, cfg.Sync.JiraUser, cfg.Sync.JiraToken)
		if err != nil {
			return nil, fmt.Errorf("jira client: %w", err)
		}
		posters = append(posters, jira)
	}

	if cfg.Sync.ServiceNowBaseURL != "" {
		snow, err := external.NewServiceNowClient(cfg.Sync.ServiceNowBaseURL, cfg.Sync.ServiceNowUser, cfg.Sync.ServiceNowPassword)
		if err != nil {
			return nil, fmt.Errorf("servicenow client: %w", err)
		}
		posters = append(posters, snow)
	}

	return posters, nil
}
