package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	app_service "nft-market-gateway/internal/application/service"
	"nft-market-gateway/internal/domain/repository"
	"nft-market-gateway/internal/infrastructure/api"
	"nft-market-gateway/internal/infrastructure/compliance"
	"nft-market-gateway/internal/infrastructure/config"
	"nft-market-gateway/internal/infrastructure/graphql"
	"nft-market-gateway/internal/infrastructure/logger"
	"nft-market-gateway/internal/infrastructure/messaging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log, err := logger.NewLogger(cfg.App.LogLevel)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	// Create FX application
	app := fx.New(
		// Provide dependencies
		fx.Supply(cfg),
		fx.Supply(log),
		fx.Supply(&cfg.App),
		fx.Supply(&cfg.GraphQL),
		fx.Supply(&cfg.Compliance),
		fx.Supply(&cfg.Listings),
		fx.Supply(&cfg.NATS),

		// Infrastructure providers
		fx.Provide(
			graphql.NewClient,
			graphql.NewMarketplaceRepository,
			compliance.NewCircleClient,
			messaging.NewScreeningPublisher,
			func(p *messaging.ScreeningPublisher) repository.ScreeningAuditPublisher { return p },
		),

		// Application providers
		fx.Provide(
			app_service.NewListingPoller,
			app_service.NewListingApplicationService,
			app_service.NewComplianceApplicationService,
		),

		// API providers
		fx.Provide(
			api.NewComplianceHandler,
			api.NewListingsHandler,
			api.NewPurchaseHandler,
			api.NewRouter,
			api.NewServer,
		),

		// Lifecycle hooks
		fx.Invoke(startAuditPublisher),
		fx.Invoke(startListingPoller),
		fx.Invoke(startHTTPServer),

		// Configure logging
		fx.WithLogger(func() fxevent.Logger {
			return fxevent.NopLogger
		}),
	)

	// Start the application
	ctx := context.Background()
	if err := app.Start(ctx); err != nil {
		log.Error("Failed to start application", zap.Error(err))
		os.Exit(1)
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down application...")

	// Stop the application
	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Stop(stopCtx); err != nil {
		log.Error("Failed to stop application gracefully", zap.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped successfully")
}

// startAuditPublisher connects the screening-audit publisher
func startAuditPublisher(
	lifecycle fx.Lifecycle,
	publisher *messaging.ScreeningPublisher,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := publisher.Connect(ctx); err != nil {
				return fmt.Errorf("failed to connect audit publisher: %w", err)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return publisher.Disconnect()
		},
	})
}

// startListingPoller starts the background listing refresh loop
func startListingPoller(
	lifecycle fx.Lifecycle,
	poller *app_service.ListingPoller,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting listing poller")
			poller.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping listing poller")
			poller.Stop()
			return nil
		},
	})
}

// startHTTPServer starts the gateway API server
func startHTTPServer(
	lifecycle fx.Lifecycle,
	server *api.Server,
	log *logger.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			server.Start()
			log.Info("Gateway API started successfully")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return server.Shutdown(ctx)
		},
	})
}
