package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/drovo/drovo-service/internal/app/background"
	"github.com/drovo/drovo-service/internal/app/setup"
	"github.com/drovo/drovo-service/internal/delivery/grpcapi"
	"github.com/drovo/drovo-service/internal/delivery/http/handlers"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API, the gRPC health endpoint and background jobs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(parent context.Context) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize dependencies", zap.Error(err))
		return err
	}
	defer deps.Close()

	uc := setup.InitializeUseCases(deps)

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(handlers.RouterDeps{
		Auth:          deps.Auth,
		Food:          uc.FoodUsecase,
		Shops:         uc.ShopUsecase,
		Cart:          uc.CartUsecase,
		Orders:        uc.OrderUsecase,
		Subscriptions: uc.SubscriptionUsecase,
		Gatherer:      deps.Registry,
		Logger:        log.Named("http"),
	})
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	health := grpcapi.NewHealthServer(log.Named("grpc"))

	tasks := background.NewBackgroundTasks(
		uc.SubscriptionUsecase,
		cfg.Background.ReminderInterval,
		cfg.Background.ReminderWindow,
		log.Named("background"),
	)
	if deps.ChatSession != nil {
		tasks.ChatSession = deps.ChatSession
	}
	tasks.Health = health
	tasks.Ping = deps.Ping
	tasks.StartAll(ctx)

	errCh := make(chan error, 2)
	go func() {
		log.Info("http server listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	go func() {
		if err := health.Serve(net.JoinHostPort(cfg.GRPCServer.Host, cfg.GRPCServer.Port)); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err = <-errCh:
		log.Error("server failed", zap.Error(err))
	}

	health.SetServing(false)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPServer.ShutdownTimeout)
	defer cancel()
	if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Warn("http shutdown", zap.Error(shutdownErr))
	}
	health.Stop()
	// Detached notifications and best-effort cleanups finish before the
	// database goes away.
	deps.Caller.Wait()
	log.Info("drovo-service stopped")
	return err
}
