package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/smartlaundry/backend/api/routes"
	"github.com/smartlaundry/backend/internal/cart"
	"github.com/smartlaundry/backend/internal/catalog"
	"github.com/smartlaundry/backend/internal/content"
	"github.com/smartlaundry/backend/internal/identity"
	"github.com/smartlaundry/backend/internal/notifications"
	"github.com/smartlaundry/backend/internal/orders"
	"github.com/smartlaundry/backend/internal/payments"
	"github.com/smartlaundry/backend/pkg/config"
	"github.com/smartlaundry/backend/pkg/db"
	"github.com/smartlaundry/backend/pkg/logger"
	"github.com/smartlaundry/backend/pkg/migrate"
	"github.com/smartlaundry/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}

	identityService, err := identity.NewService(identity.NewRepository(dbClient.DB()), redisClient, cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create identity service", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartRepo := cart.NewRepository(dbClient.DB())
	cartService, err := cart.NewService(cartRepo, catalogRepo, cfg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(notifications.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	paymentsRepo := payments.NewRepository(dbClient.DB())
	ordersService, err := orders.NewService(
		orders.NewRepository(dbClient.DB()),
		catalogRepo,
		cartRepo,
		notifications.OrderNotifier{Service: notificationsService},
		payments.OrderPaymentRecorder{Repo: paymentsRepo},
		dbClient,
		cfg,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	paymentsService, err := payments.NewService(paymentsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payments service", err)
		os.Exit(1)
	}

	contentService, err := content.NewService(content.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	handler := routes.NewRouter(routes.Deps{
		Config:        cfg,
		Logger:        logg,
		DB:            dbClient,
		Redis:         redisClient,
		Identity:      identityService,
		Catalog:       catalogService,
		Cart:          cartService,
		Orders:        ordersService,
		Payments:      paymentsService,
		Notifications: notificationsService,
		Content:       contentService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	var shutdownErr error
	shutdownErr = multierr.Append(shutdownErr, server.Shutdown(shutdownCtx))
	shutdownErr = multierr.Append(shutdownErr, redisClient.Close())
	shutdownErr = multierr.Append(shutdownErr, dbClient.Close())
	if shutdownErr != nil {
		logg.Error(ctx, "shutdown finished with errors", shutdownErr)
		os.Exit(1)
	}
	logg.Info(ctx, "shutdown complete")
}
