package main

import (
	"context"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/job-tracker/internal/cli"
	"github.com/maxaizer/job-tracker/internal/clients/api"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/domain/events"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/repositories"
	"github.com/maxaizer/job-tracker/internal/services"
	"github.com/maxaizer/job-tracker/internal/session"
	log "github.com/sirupsen/logrus"
	"os"
	"os/signal"
	"syscall"
)

type keyValueStore interface {
	Save(ctx context.Context, key string, data []byte) error
	Load(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}

// openKeyValueStore returns the SQLite backed store, or an in-memory one when no path is set.
func openKeyValueStore(path string) (keyValueStore, func(), error) {
	if path == "" {
		return repositories.NewMemoryData(), func() {}, nil
	}

	dbContext, err := repositories.NewDbContext(path)
	if err != nil {
		return nil, nil, err
	}

	if err = dbContext.MigrateStorage(); err != nil {
		_ = dbContext.Close()
		return nil, nil, err
	}

	return repositories.NewDataRepository(dbContext.DB), func() { _ = dbContext.Close() }, nil
}

func newStorage(cfg *config.Config, data keyValueStore) services.Storage {
	if cfg.Storage.Mode == config.ModeRemote {
		client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
		client.SetRateLimit(cfg.API.MaxRequestsPerSecond)
		log.Infof("using remote storage at %s", cfg.API.BaseURL)
		return client
	}

	log.Infof("using %s storage", cfg.Storage.Mode)
	return repositories.NewLocalStore(data)
}

func logJobChanges(bus EventBus.Bus) {
	err := bus.Subscribe(events.JobsChangedTopic, func(event events.JobsChanged) {
		log.WithFields(log.Fields{
			"user_id": event.UserID,
			"job_id":  event.JobID,
		}).Infof("job %s", event.Action)
	})
	if err != nil {
		log.Fatalf("can't subscribe to job changes: %v", err)
	}
}

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Get()

	logger.Setup(ctx, cfg.Logger)
	defer logger.Cleanup()

	path := cfg.Storage.Path
	if cfg.Storage.Mode == config.ModeMemory {
		path = ""
	}

	data, closeData, err := openKeyValueStore(path)
	if err != nil {
		log.Fatalf("can't open storage: %v", err)
	}
	defer closeData()

	bus := EventBus.New()
	logJobChanges(bus)

	sessions := session.NewStore(data, bus)

	app, err := cli.NewApp(os.Stdout, newStorage(cfg, data), sessions, bus)
	if err != nil {
		log.Fatalf("can't create app: %v", err)
	}

	finished := make(chan error, 1)
	go func() {
		finished <- app.Run(ctx, cli.NewTerminalReader(os.Stdin, os.Stdout))
	}()

	select {
	case err = <-finished:
		if err != nil {
			log.Errorf("app stopped with error: %v", err)
		}
	case <-ctx.Done():
		log.Info("interrupted")
	}

	log.Info("Job tracker stopped.")
}
