package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wonny/smartmoney/internal/scheduler"
	"github.com/wonny/smartmoney/pkg/logger"
)

const defaultHistoryLimit = 20

// JobScheduler is the scheduler surface exposed over HTTP
type JobScheduler interface {
	GetJobStats() map[string]scheduler.JobStats
	GetJobHistory(jobName string, n int) ([]scheduler.JobResult, error)
	RunJob(jobName string) (scheduler.JobResult, error)
}

// SchedulerHandler reports and triggers scheduled jobs
type SchedulerHandler struct {
	scheduler JobScheduler
	logger    *logger.Logger
}

// NewSchedulerHandler creates a new scheduler handler
func NewSchedulerHandler(sched JobScheduler, log *logger.Logger) *SchedulerHandler {
	return &SchedulerHandler{
		scheduler: sched,
		logger:    log,
	}
}

// GetJobs returns run statistics of every job
// GET /api/scheduler/jobs
func (h *SchedulerHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	stats := h.scheduler.GetJobStats()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(stats),
		"jobs":  stats,
	})
}

// GetJobHistory returns the latest results of one job
// GET /api/scheduler/jobs/{name}/history?limit=20
func (h *SchedulerHandler) GetJobHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	results, err := h.scheduler.GetJobHistory(name, limit)
	if err != nil {
		h.jobError(w, name, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"job":     name,
		"results": results,
	})
}

// RunJob runs a job now and waits for it
// POST /api/scheduler/jobs/{name}/run
func (h *SchedulerHandler) RunJob(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	h.logger.WithField("job", name).Info("Manual job run requested")

	result, err := h.scheduler.RunJob(name)
	if err != nil {
		h.jobError(w, name, err)
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	respondJSON(w, status, result)
}

func (h *SchedulerHandler) jobError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, scheduler.ErrJobNotFound) {
		respondError(w, http.StatusNotFound, "Job not found: "+name)
		return
	}
	h.logger.WithError(err).WithField("job", name).Error("Scheduler request failed")
	respondError(w, http.StatusInternalServerError, "Scheduler request failed")
}
