package commands

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/smartmoney/internal/api"
	"github.com/wonny/smartmoney/internal/api/handlers"
	"github.com/wonny/smartmoney/internal/scheduler"
	"github.com/wonny/smartmoney/internal/scheduler/jobs"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the ranking scheduler",
	Long: `Starts the REST API and a cron job that re-ranks the universe
(RANKING_SCHEDULE, six-field cron with seconds).

Endpoints:
  GET  /health
  GET  /api/score/{code}
  GET  /api/ranking?codes=a,b,c
  GET  /api/ranking/latest
  GET  /api/report/{code}[?format=md]
  GET  /api/report/{code}/radar
  GET  /api/scheduler/jobs
  GET  /api/scheduler/jobs/{name}/history
  POST /api/scheduler/jobs/{name}/run

Example:
  go run ./cmd/smartmoney serve
  go run ./cmd/smartmoney serve --port 8080 --warmup=false`,
	RunE: runServe,
}

var (
	servePort   string
	serveWarmup bool
)

const shutdownTimeout = 30 * time.Second

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&servePort, "port", "", "API server port (default: PORT)")
	serveCmd.Flags().BoolVar(&serveWarmup, "warmup", true, "rank once at startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if servePort != "" {
		a.cfg.Port = servePort
	}

	codes, err := a.codes(nil)
	if err != nil {
		return err
	}

	sched, rankingJob, router, err := buildServe(a, codes)
	if err != nil {
		return err
	}
	sched.Start(ctx)
	defer sched.Stop()

	if serveWarmup {
		go func() {
			if _, err := sched.RunJob(rankingJob.Name()); err != nil {
				a.log.WithError(err).Warn("Warmup ranking failed")
			}
		}()
	}

	server := api.New(a.cfg, a.log, router)

	out := cmd.OutOrStdout()
	PrintRunHeader(out, a.runMetadata("Smart Money API", codes))
	PrintKeyValue(out, "Schedule", a.cfg.Scoring.Schedule, 9)
	PrintKeyValue(out, "Jobs", strings.Join(sched.GetAllJobs(), ", "), 9)
	PrintSuccess(out, fmt.Sprintf("Server running on http://localhost:%s (Ctrl+C to stop)", a.cfg.Port))

	if err := server.Run(ctx, shutdownTimeout); err != nil {
		return err
	}

	a.log.Info("Server stopped")
	return nil
}

// buildServe wires the ranking job, scheduler and HTTP router
func buildServe(a *app, codes []string) (*scheduler.Scheduler, *jobs.RankingJob, http.Handler, error) {
	sched := scheduler.New(a.log)
	sched.SetJobTimeout(a.cfg.Scoring.JobTimeout)

	rankingJob := jobs.NewRankingJob(a.ranker, codes, a.cfg.Scoring.Schedule, a.snapshot.StrategyID, a.log)
	if err := sched.AddJob(rankingJob); err != nil {
		return nil, nil, nil, fmt.Errorf("schedule ranking: %w", err)
	}

	scoreHandler := handlers.NewScoreHandler(a.scorer, a.ranker, rankingJob, a.weights, codes, a.log)
	schedulerHandler := handlers.NewSchedulerHandler(sched, a.log)

	return sched, rankingJob, api.NewRouter(scoreHandler, schedulerHandler, a.log), nil
}
