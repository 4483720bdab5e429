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
	"github.com/spf13/cobra"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/application/billing/usecases"
	"gavel/internal/infrastructure/auth"
	"gavel/internal/infrastructure/cache"
	"gavel/internal/infrastructure/config"
	"gavel/internal/infrastructure/database"
	"gavel/internal/infrastructure/migration"
	"gavel/internal/infrastructure/notification"
	"gavel/internal/infrastructure/repository"
	"gavel/internal/infrastructure/scheduler"
	httpRouter "gavel/internal/interfaces/http"
	"gavel/internal/interfaces/http/handlers"
	"gavel/internal/interfaces/http/middleware"
	"gavel/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
	noScheduler bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the Gavel billing HTTP server with the renewal scheduler.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")
	cmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Disable the in-process renewal scheduler")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("GAVEL_ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Server.Mode = env

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log := logger.NewLogger()
	log.Infow("starting server",
		"environment", env,
		"auto_migrate", autoMigrate)

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		migrationManager := migration.NewManager(env)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	defer redisClient.Close()

	db := database.Get()
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	planRepo := repository.NewPlanRepository(db, log)
	methodRepo := repository.NewPaymentMethodRepository(db, log)
	paymentRepo := repository.NewPaymentRepository(db, log)
	userRepo := repository.NewUserRepository(db, log)

	chargeGateway := gateway.NewStripeGateway(gateway.StripeConfig{
		SecretKey: cfg.Stripe.SecretKey,
		BaseURL:   cfg.Stripe.APIBaseURL,
		Timeout:   time.Duration(cfg.Stripe.TimeoutSeconds) * time.Second,
	}, log)

	subscriptionCache := cache.NewRedisSubscriptionCache(redisClient, log)

	notifier := notification.NewEmailExpiryNotifier(notification.SMTPConfig{
		Host:        cfg.Email.SMTPHost,
		Port:        cfg.Email.SMTPPort,
		Username:    cfg.Email.SMTPUser,
		Password:    cfg.Email.SMTPPassword,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
	}, userRepo, log)

	createIntentUC := usecases.NewCreateChargeIntentUseCase(planRepo, chargeGateway, cfg.Billing.Currency, log)
	confirmPurchaseUC := usecases.NewConfirmPurchaseUseCase(subscriptionRepo, planRepo, paymentRepo, userRepo, chargeGateway, subscriptionCache, log)
	getActiveUC := usecases.NewGetActiveSubscriptionUseCase(subscriptionRepo, planRepo, subscriptionCache, log)
	cancelUC := usecases.NewCancelSubscriptionUseCase(subscriptionRepo, subscriptionCache, log)
	listAllUC := usecases.NewListSubscriptionsUseCase(subscriptionRepo, planRepo, log)
	getCreditsUC := usecases.NewGetCreditsUseCase(userRepo, log)
	listPaymentsUC := usecases.NewListPaymentsUseCase(paymentRepo, log)

	createPlanUC := usecases.NewCreatePlanUseCase(planRepo, log)
	updatePlanUC := usecases.NewUpdatePlanUseCase(planRepo, log)
	getPlanUC := usecases.NewGetPlanUseCase(planRepo, log)
	listPlansUC := usecases.NewListPlansUseCase(planRepo, log)
	deactivatePlanUC := usecases.NewDeactivatePlanUseCase(planRepo, log)

	addMethodUC := usecases.NewAddPaymentMethodUseCase(methodRepo, log)
	listMethodsUC := usecases.NewListPaymentMethodsUseCase(methodRepo, log)
	removeMethodUC := usecases.NewRemovePaymentMethodUseCase(methodRepo, log)
	setDefaultMethodUC := usecases.NewSetDefaultPaymentMethodUseCase(methodRepo, log)

	renewUC := usecases.NewRenewSubscriptionsUseCase(subscriptionRepo, planRepo, methodRepo, paymentRepo, userRepo, chargeGateway, subscriptionCache, log)
	renewUC.SetExpiryNotifier(notifier)
	renewUC.SetHorizon(time.Duration(cfg.Billing.RenewalHorizonHours) * time.Hour)
	renewUC.SetCurrency(cfg.Billing.Currency)

	if !noScheduler {
		schedulerManager, err := scheduler.NewSchedulerManager(log)
		if err != nil {
			return fmt.Errorf("failed to create scheduler: %w", err)
		}
		sweepInterval := time.Duration(cfg.Billing.RenewalSweepIntervalMinutes) * time.Minute
		if err := schedulerManager.RegisterRenewalJobs(renewUC, sweepInterval); err != nil {
			return fmt.Errorf("failed to register renewal jobs: %w", err)
		}
		schedulerManager.Start()
		defer func() {
			if err := schedulerManager.Stop(); err != nil {
				log.Errorw("failed to stop scheduler", "error", err)
			}
		}()
	}

	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	planHandler := handlers.NewPlanHandler(createPlanUC, updatePlanUC, getPlanUC, listPlansUC, deactivatePlanUC)
	subscriptionHandler := handlers.NewSubscriptionHandler(getActiveUC, cancelUC, listAllUC)
	paymentHandler := handlers.NewPaymentHandler(createIntentUC, confirmPurchaseUC, getCreditsUC, listPaymentsUC)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(addMethodUC, listMethodsUC, removeMethodUC, setDefaultMethodUC)
	renewalHandler := handlers.NewRenewalHandler(renewUC)

	router := httpRouter.NewRouter(authMiddleware, planHandler, subscriptionHandler, paymentHandler, paymentMethodHandler, renewalHandler, log)
	router.SetupRoutes(cfg)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.Engine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting",
			"address", cfg.Server.GetAddr(),
			"mode", gin.Mode())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorw("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return gin.ReleaseMode
	case "test", "testing":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}
