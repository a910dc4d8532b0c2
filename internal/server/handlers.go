package server

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/maxaizer/job-tracker/internal/domain/events"
	"github.com/maxaizer/job-tracker/internal/domain/models"
	"github.com/maxaizer/job-tracker/internal/logger"
	"github.com/maxaizer/job-tracker/internal/metrics"
	"github.com/maxaizer/job-tracker/internal/repositories"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strings"
)

// emptyObject is what the API answers for unknown ids and deletions.
var emptyObject = struct{}{}

func (s *Server) listJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.jobs.Find(r.Context(), queryParam(r, "userId"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (s *Server) getJob(w http.ResponseWriter, r *http.Request) {
	job, err := s.jobs.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, emptyObject)
		return
	}
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) createJob(w http.ResponseWriter, r *http.Request) {
	var job models.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if strings.TrimSpace(job.CompanyName) == "" || strings.TrimSpace(job.Role) == "" {
		writeError(w, http.StatusBadRequest, "companyName and role are required")
		return
	}
	if job.Status == "" {
		job.Status = models.Applied
	}
	if job.DateApplied == "" {
		job.DateApplied = s.now().Format(models.DateLayout)
	}
	if job.ID == "" {
		job.ID = models.NewID(s.now(), s.jobTaken(r.Context()))
	}

	if err := s.jobs.Create(r.Context(), job); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			writeError(w, http.StatusConflict, "job with id "+job.ID+" already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	metrics.JobsMutationsCounter.WithLabelValues(events.ActionAdded).Inc()
	writeJSON(w, http.StatusCreated, job)
}

func (s *Server) updateJob(w http.ResponseWriter, r *http.Request) {
	var patch models.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := patch.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, err)
		return
	}

	job, err := s.jobs.Update(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		internalError(w, r, err)
		return
	}
	if job == nil {
		writeJSON(w, http.StatusNotFound, emptyObject)
		return
	}

	metrics.JobsMutationsCounter.WithLabelValues(events.ActionUpdated).Inc()
	writeJSON(w, http.StatusOK, job)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.jobs.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, emptyObject)
		return
	}

	metrics.JobsMutationsCounter.WithLabelValues(events.ActionRemoved).Inc()
	writeJSON(w, http.StatusOK, emptyObject)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.Find(r.Context(), queryParam(r, "username"), queryParam(r, "password"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		internalError(w, r, err)
		return
	}
	if user == nil {
		writeJSON(w, http.StatusNotFound, emptyObject)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(user.Username) == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if user.ID == "" {
		user.ID = models.NewID(s.now(), s.userTaken(r.Context()))
	}

	if err := s.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			writeError(w, http.StatusConflict, "user with id "+user.ID+" already exists")
			return
		}
		internalError(w, r, err)
		return
	}

	metrics.RegisteredUsersCounter.Inc()
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) jobTaken(ctx context.Context) func(string) bool {
	return func(id string) bool {
		job, err := s.jobs.GetByID(ctx, id)
		return err == nil && job != nil
	}
}

func (s *Server) userTaken(ctx context.Context) func(string) bool {
	return func(id string) bool {
		user, err := s.users.GetByID(ctx, id)
		return err == nil && user != nil
	}
}

// queryParam returns nil when the parameter is absent, so filters only apply when given.
func queryParam(r *http.Request, name string) *string {
	values, ok := r.URL.Query()[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).Errorf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
		WithField("request_id", RequestIDFrom(r.Context())).
		Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}
