package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gavel/internal/application/billing/gateway"
	"gavel/internal/application/billing/usecases"
	"gavel/internal/infrastructure/cache"
	"gavel/internal/infrastructure/config"
	"gavel/internal/infrastructure/database"
	"gavel/internal/infrastructure/notification"
	"gavel/internal/infrastructure/repository"
	"gavel/internal/shared/logger"
)

// Standalone renewal worker. Runs the same sweep as the in-process scheduler
// for deployments that keep background billing out of the API servers.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("GAVEL_ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting renewal worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		log.Errorw("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Errorw("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

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

	renewUC := usecases.NewRenewSubscriptionsUseCase(subscriptionRepo, planRepo, methodRepo, paymentRepo, userRepo, chargeGateway, subscriptionCache, log)
	renewUC.SetExpiryNotifier(notifier)
	renewUC.SetHorizon(time.Duration(cfg.Billing.RenewalHorizonHours) * time.Hour)
	renewUC.SetCurrency(cfg.Billing.Currency)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sweepInterval := time.Duration(cfg.Billing.RenewalSweepIntervalMinutes) * time.Minute
	if sweepInterval <= 0 {
		sweepInterval = time.Hour
	}

	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	runSweep := func(ctx context.Context) {
		sweepCtx, sweepCancel := context.WithTimeout(ctx, 10*time.Minute)
		defer sweepCancel()

		renewed, err := renewUC.Execute(sweepCtx)
		if err != nil {
			log.Errorw("renewal sweep failed", "error", err)
			return
		}
		log.Infow("renewal sweep completed", "renewed", renewed)
	}

	log.Infow("running initial renewal sweep")
	runSweep(ctx)

	log.Infow("renewal worker started", "interval", sweepInterval)

	for {
		select {
		case <-ticker.C:
			runSweep(ctx)

		case sig := <-sigChan:
			log.Infow("received signal, shutting down", "signal", sig)
			return
		}
	}
}
