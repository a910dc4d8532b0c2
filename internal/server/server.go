package server

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/maxaizer/job-tracker/internal/config"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/metrics"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

type userRepository interface {
	Find(ctx context.Context, username, password *string) ([]models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user models.User) error
}

type jobRepository interface {
	Find(ctx context.Context, userID *string) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job models.Job) error
	Update(ctx context.Context, id string, patch models.JobPatch) (*models.Job, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// Server exposes users and jobs over a JSON-Server compatible REST API.
type Server struct {
	cfg   config.ServerConfig
	users userRepository
	jobs  jobRepository
	now   func() time.Time
}

func NewServer(cfg config.ServerConfig, users userRepository, jobs jobRepository) (*Server, error) {

	if users == nil {
		return nil, errors.New("user repository is nil")
	}

	if jobs == nil {
		return nil, errors.New("job repository is nil")
	}

	return &Server{cfg: cfg, users: users, jobs: jobs, now: time.Now}, nil
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	if s.cfg.MetricsEnabled {
		r.Use(requestMetrics)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if s.cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", s.listJobs)
		r.Post("/", s.createJob)
		r.Get("/{id}", s.getJob)
		r.Patch("/{id}", s.updateJob)
		r.Delete("/{id}", s.deleteJob)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
		r.Get("/{id}", s.getUser)
	})

	return r
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("API server listening on %s", s.cfg.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Info("shutting down API server")
	return srv.Shutdown(shutdownCtx)
}
