package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	inviteUsecases "autocrm/internal/application/invite/usecases"
	"autocrm/internal/application/notification"
	"autocrm/internal/application/ticket/services"
	ticketUsecases "autocrm/internal/application/ticket/usecases"
	"autocrm/internal/domain/shared/events"
	"autocrm/internal/infrastructure/config"
	"autocrm/internal/infrastructure/database"
	"autocrm/internal/infrastructure/email"
	"autocrm/internal/infrastructure/migration"
	"autocrm/internal/infrastructure/permission"
	"autocrm/internal/infrastructure/pubsub"
	"autocrm/internal/infrastructure/ratelimit"
	"autocrm/internal/infrastructure/repository"
	"autocrm/internal/infrastructure/scheduler"
	httpRouter "autocrm/internal/interfaces/http"
	"autocrm/internal/shared/biztime"
	"autocrm/internal/shared/logger"
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
		Long:  `Start the AutoCRM HTTP server with the specified configuration.`,
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

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, numHandlers int) {
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(env, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		cancelPing()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	cancelPing()

	eventDispatcher := events.NewInMemoryEventDispatcher(100)
	if err := eventDispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	defer func() {
		if err := eventDispatcher.Stop(); err != nil {
			log.Errorw("failed to stop event dispatcher", "error", err)
		}
	}()

	feedBus := pubsub.NewRedisTicketFeedBus(redisClient, log)

	feedCtx, cancelFeed := context.WithCancel(context.Background())
	defer cancelFeed()

	feed := services.NewTicketFeed(feedBus, log)
	if err := feed.Start(feedCtx); err != nil {
		return fmt.Errorf("failed to start ticket feed: %w", err)
	}

	modelPath, err := filepath.Abs("./configs/rbac_model.conf")
	if err != nil {
		return fmt.Errorf("failed to resolve rbac model path: %w", err)
	}
	enforcer, err := permission.NewEnforcer(database.Get(), modelPath, log)
	if err != nil {
		return fmt.Errorf("failed to create permission enforcer: %w", err)
	}
	if err := permission.InitTicketPermissions(enforcer, log); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	emailService := email.NewSMTPEmailService(email.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		BaseURL:     cfg.Server.BaseURL,
	})

	var rateLimiter ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		rateLimiter = ratelimit.NewRedisRateLimiter(
			redisClient,
			cfg.RateLimit.Limit,
			time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
		)
	}

	router, err := httpRouter.NewRouter(&httpRouter.Deps{
		DB:              database.Get(),
		FeedBus:         feedBus,
		Feed:            feed,
		EventDispatcher: eventDispatcher,
		Enforcer:        enforcer,
		EmailService:    emailService,
		RateLimiter:     rateLimiter,
		Config:          cfg,
		Logger:          log,
	})
	if err != nil {
		return fmt.Errorf("failed to build router: %w", err)
	}
	router.SetupRoutes()

	schedulerManager, err := registerBackgroundJobs(eventDispatcher, feedBus, emailService, log)
	if err != nil {
		return fmt.Errorf("failed to register background jobs: %w", err)
	}
	defer func() {
		if err := schedulerManager.Stop(); err != nil {
			log.Errorw("failed to stop scheduler", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server listening",
			"address", cfg.Server.GetAddr(),
			"mode", gin.Mode())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Info("server exited gracefully")
	return nil
}

// registerBackgroundJobs wires the scheduler jobs and the assignment email
// handler onto the dispatcher.
func registerBackgroundJobs(
	dispatcher events.EventDispatcher,
	feedBus *pubsub.RedisTicketFeedBus,
	emailService email.Service,
	log logger.Interface,
) (*scheduler.SchedulerManager, error) {
	gormDB := database.Get()
	ticketRepo := repository.NewTicketRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	orgRepo := repository.NewOrganizationRepository(gormDB)
	inviteRepo := repository.NewInviteRepository(gormDB)

	notificationHandler := notification.NewAssignmentNotificationHandler(ticketRepo, userRepo, emailService, log)
	if err := notificationHandler.Register(dispatcher); err != nil {
		return nil, fmt.Errorf("failed to register assignment handler: %w", err)
	}

	schedulerManager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	escalateUC := ticketUsecases.NewEscalateOverdueTicketsUseCase(
		ticketRepo, orgRepo, userRepo, emailService, dispatcher, feedBus, log)
	if err := schedulerManager.RegisterSLAEscalationJob(escalateUC); err != nil {
		return nil, fmt.Errorf("failed to register sla escalation job: %w", err)
	}

	cleanupUC := inviteUsecases.NewCleanupExpiredInvitesUseCase(inviteRepo, log)
	if err := schedulerManager.RegisterInviteCleanupJob(cleanupUC); err != nil {
		return nil, fmt.Errorf("failed to register invite cleanup job: %w", err)
	}

	schedulerManager.Start()
	return schedulerManager, nil
}

func handleMigrations(environment string, log logger.Interface) error {
	if skipMigrationCheck {
		log.Info("skipping migration check")
		return nil
	}

	if autoMigrate {
		if environment == "production" {
			log.Warn("auto-migration is enabled in production, this is not recommended")
		}

		log.Info("running auto-migration")
		migrationManager := migration.NewManager(environment)
		if err := migrationManager.Migrate(database.Get(), migration.AllModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Info("auto-migration completed")
		return nil
	}

	scriptsPath, err := filepath.Abs("./internal/infrastructure/persistence/migrations/scripts")
	if err != nil {
		log.Warnw("failed to resolve migration scripts path", "error", err)
		return nil
	}

	strategy := migration.NewGooseStrategy(scriptsPath)
	if gooseStrategy, ok := strategy.(*migration.GooseStrategy); ok {
		version, err := gooseStrategy.GetVersion(database.Get())
		if err != nil {
			log.Warnw("failed to check migration status", "error", err)
		} else {
			log.Infow("current migration version", "version", version)
		}
	}

	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod", "release":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}
