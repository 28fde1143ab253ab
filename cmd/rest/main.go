package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"rental-marketplace-be/internal/bootstrap"
	"rental-marketplace-be/internal/config"
	"rental-marketplace-be/internal/server"
	"rental-marketplace-be/internal/tracer"
	"rental-marketplace-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		panic("unable to connect to GORM DB: " + err.Error())
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()
	log := container.Logger

	shutdownTracer := tracer.InitTracer(cfg.Tracing, log)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, container)
	g, gctx := errgroup.WithContext(ctx)

	// 4. Background Services
	g.Go(func() error {
		log.Info("Main", "Starting contract dispatch consumer", nil)
		return container.ConsumerService.Consume(gctx)
	})
	g.Go(func() error {
		container.WebSocketHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		container.NotificationService.Start(gctx)
		return nil
	})

	// 5. HTTP Server
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Main", "Shutting down HTTP server", nil)
		return srv.GetApp().ShutdownWithTimeout(10 * time.Second)
	})

	if err := g.Wait(); err != nil {
		log.Error("Main", "Server stopped with error", map[string]interface{}{"error": err.Error()})
	}
}
