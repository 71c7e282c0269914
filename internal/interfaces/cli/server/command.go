// Package server implements the `helpdesk server` command: it loads config,
// opens the database, wires every layer together and runs the HTTP server
// until interrupted.
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

	appnotif "helpdesk/internal/application/notification"
	ticketusecases "helpdesk/internal/application/ticket/usecases"
	userusecases "helpdesk/internal/application/user/usecases"
	"helpdesk/internal/infrastructure/auth"
	"helpdesk/internal/infrastructure/config"
	"helpdesk/internal/infrastructure/database"
	"helpdesk/internal/infrastructure/email"
	"helpdesk/internal/infrastructure/migration"
	"helpdesk/internal/infrastructure/permission"
	"helpdesk/internal/infrastructure/ratelimit"
	"helpdesk/internal/infrastructure/repository"
	"helpdesk/internal/interfaces/web"
	"helpdesk/internal/interfaces/web/handlers"
	"helpdesk/internal/interfaces/web/middleware"
	"helpdesk/internal/shared/db"
	"helpdesk/internal/shared/logger"
	"helpdesk/internal/shared/services/markdown"
)

var (
	env         string
	casbinModel string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the helpdesk web server",
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVar(&casbinModel, "casbin-model", "./configs/casbin_model.conf", "Path to the casbin model file")

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

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		OutputPath: cfg.Logger.OutputPath,
		Debug:      env == migration.EnvDevelopment,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting helpdesk", "environment", env, "email_enabled", cfg.Email.Enabled)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	manager := migration.NewManager(env, cfg.Database.Driver)
	if err := manager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	gormDB := database.Get()
	txManager := db.NewTransactionManager(gormDB)

	ticketRepo := repository.NewTicketRepository(gormDB)
	interactionRepo := repository.NewInteractionRepository(gormDB)
	userRepo := repository.NewUserRepository(gormDB)
	emailLogRepo := repository.NewEmailLogRepository(gormDB)

	dispatcher := email.NewDispatcher(&cfg.Email, emailLogRepo, log)
	queue := email.NewQueue(dispatcher, cfg.Email.QueueSize, cfg.Email.Workers, log)
	defer queue.Close()

	notifier := appnotif.NewNotifier(
		ticketRepo, userRepo, email.NewRenderer(), queue,
		appnotif.Config{
			AdminAddress: cfg.Email.AdminAddress,
			BaseURL:      cfg.Server.BaseURL,
		},
		log,
	)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.SessionExpHours)

	var limiter userusecases.LoginLimiter = ratelimit.NewNoopLimiter()
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		limiter = ratelimit.NewRedisLoginLimiter(client, 10, 15*time.Minute)
		log.Infow("redis login limiter enabled", "addr", cfg.Redis.Addr)
	}

	enforcer, err := permission.NewEnforcer(gormDB, casbinModel, log)
	if err != nil {
		return fmt.Errorf("failed to initialize permissions: %w", err)
	}
	if err := enforcer.InitDefaultPolicies(); err != nil {
		return fmt.Errorf("failed to seed permissions: %w", err)
	}

	ticketHandler := handlers.NewTicketHandler(
		ticketusecases.NewCreateTicketUseCase(ticketRepo, interactionRepo, txManager, notifier, log),
		ticketusecases.NewStartTicketUseCase(ticketRepo, log),
		ticketusecases.NewConcludeTicketUseCase(ticketRepo, interactionRepo, txManager, notifier, log),
		ticketusecases.NewReturnTicketUseCase(ticketRepo, interactionRepo, txManager, notifier, log),
		ticketusecases.NewFinalizeTicketUseCase(ticketRepo, notifier, log),
		ticketusecases.NewAddInteractionUseCase(ticketRepo, interactionRepo, notifier, log),
		ticketusecases.NewGetTicketUseCase(ticketRepo, log),
		ticketusecases.NewListTicketsUseCase(ticketRepo, log),
		appnotif.NewListTicketDeliveriesUseCase(emailLogRepo, log),
		markdown.NewMarkdownService(),
		log,
	)

	authHandler := handlers.NewAuthHandler(
		userusecases.NewAuthenticateUserUseCase(userRepo, hasher, limiter, log),
		jwtService,
		cfg.Auth.JWT.CookieName,
		cfg.Auth.JWT.CookieSecure,
		log,
	)

	userHandler := handlers.NewUserHandler(
		userusecases.NewRegisterUserUseCase(userRepo, hasher, log),
		userusecases.NewListUsersUseCase(userRepo, log),
		userusecases.NewChangeUserRoleUseCase(userRepo, log),
		log,
	)

	router := web.NewRouter(
		web.RouterConfig{Mode: cfg.Server.Mode},
		middleware.NewSessionMiddleware(jwtService, cfg.Auth.JWT.CookieName, log),
		middleware.NewPermissionMiddleware(enforcer, log),
		authHandler,
		ticketHandler,
		userHandler,
		log,
	)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server listening", "address", cfg.Server.GetAddr(), "mode", cfg.Server.Mode)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Infow("server stopped")
	return nil
}
