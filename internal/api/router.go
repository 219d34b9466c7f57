package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/smartmoney/internal/api/handlers"
	"github.com/wonny/smartmoney/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
// schedulerHandler may be nil when no scheduler runs.
func NewRouter(scoreHandler *handlers.ScoreHandler, schedulerHandler *handlers.SchedulerHandler, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Scoring endpoints
	api.HandleFunc("/score/{code}", scoreHandler.GetScore).Methods("GET")
	api.HandleFunc("/ranking", scoreHandler.GetRanking).Methods("GET")
	api.HandleFunc("/ranking/latest", scoreHandler.GetLatestRanking).Methods("GET")
	api.HandleFunc("/report/{code}", scoreHandler.GetReport).Methods("GET")
	api.HandleFunc("/report/{code}/radar", scoreHandler.GetRadar).Methods("GET")

	// Scheduler endpoints
	if schedulerHandler != nil {
		api.HandleFunc("/scheduler/jobs", schedulerHandler.GetJobs).Methods("GET")
		api.HandleFunc("/scheduler/jobs/{name}/history", schedulerHandler.GetJobHistory).Methods("GET")
		api.HandleFunc("/scheduler/jobs/{name}/run", schedulerHandler.RunJob).Methods("POST")
	}

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "smartmoney-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
