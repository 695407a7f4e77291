package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yukikurage/project-task-api/internal/cache"
	"github.com/yukikurage/project-task-api/internal/config"
	"github.com/yukikurage/project-task-api/internal/database"
	"github.com/yukikurage/project-task-api/internal/handlers"
	"github.com/yukikurage/project-task-api/internal/logger"
	"github.com/yukikurage/project-task-api/internal/repository"
	"github.com/yukikurage/project-task-api/internal/services"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// app holds what every command needs: configuration, logger and database
type app struct {
	cfg *config.Config
	log *logrus.Logger
	db  *gorm.DB
}

func bootstrap() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	root := &cobra.Command{
		Use:           "taskapi",
		Short:         "Project and task management API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serve.RunE,
	}

	root.AddCommand(
		serve,
		newMigrateCommand(),
		newSeedCommand(),
	)

	return root
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := database.Migrate(a.db, a.log); err != nil {
				return err
			}
			if a.cfg.SeedData {
				if err := database.Seed(ctx, a.db, a.log); err != nil {
					return err
				}
			}

			return a.serve(ctx)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			return database.Migrate(a.db, a.log)
		},
	}
}

func newSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty database",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap()
			if err != nil {
				return err
			}
			defer a.close()

			if err := database.Migrate(a.db, a.log); err != nil {
				return err
			}
			return database.Seed(cmd.Context(), a.db, a.log)
		},
	}
}

// reportCache connects to redis when report caching is enabled. An
// unreachable redis disables the cache instead of failing startup.
func (a *app) reportCache(ctx context.Context) (services.ReportCache, *redis.Client) {
	if a.cfg.ReportCacheTTL <= 0 {
		return nil, nil
	}

	client, err := cache.Connect(ctx, a.cfg.RedisAddr())
	if err != nil {
		a.log.WithError(err).Warn("Report cache disabled")
		return nil, nil
	}

	a.log.WithFields(logrus.Fields{
		"addr": a.cfg.RedisAddr(),
		"ttl":  a.cfg.ReportCacheTTL.String(),
	}).Info("Report cache enabled")
	return cache.NewRedisCache(client), client
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.GinMode)

	reportCache, redisClient := a.reportCache(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}

	uow := repository.NewUnitOfWork(a.db)
	router, err := handlers.NewRouter(a.db, handlers.Services{
		Projects: services.NewProjectService(uow),
		Tasks:    services.NewTaskService(uow),
		Comments: services.NewCommentService(uow),
		Reports:  services.NewReportService(uow, reportCache, a.cfg.ReportCacheTTL, a.log),
	}, a.log, handlers.RouterConfig{
		AllowedOrigins: a.cfg.CORSAllowedOrigins,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + a.cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.WithField("port", a.cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
