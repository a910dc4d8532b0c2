package main

import (
	"context"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/server"
	log "github.com/sirupsen/logrus"
	"os/signal"
	"syscall"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	if cfg.Server.MetricsEnabled {
		metrics.Register()
	}

	dbContext, err := repositories.NewDbContext(cfg.Server.DBPath)
	if err != nil {
		log.Fatalf("can't create db context: %v", err)
	}
	defer dbContext.Close()

	err = dbContext.MigrateServer()
	if err != nil {
		log.Fatalf("can't migrate db context: %v", err)
	}

	srv, err := server.NewServer(cfg.Server,
		repositories.NewUsersRepository(dbContext.DB),
		repositories.NewJobsRepository(dbContext.DB))
	if err != nil {
		log.Fatalf("can't create server: %v", err)
	}

	if err = srv.Run(ctx); err != nil {
		log.Errorf("server stopped with error: %v", err)
		return
	}

	log.Info("API server stopped.")
}
