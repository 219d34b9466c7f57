package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/pkg/logger"
)

// Ranker orders a list of identifiers by composite score
type Ranker interface {
	Rank(ctx context.Context, codes []string) ([]contracts.RankedStock, error)
}

// RankingJob re-ranks the configured universe on a cron schedule and keeps
// the most recent completed snapshot in memory
// ⭐ SSOT: 주기적 랭킹 갱신은 이 Job에서만
type RankingJob struct {
	ranker     Ranker
	codes      []string
	schedule   string
	strategyID string
	logger     *logger.Logger
	now        func() time.Time

	mu     sync.RWMutex
	latest *contracts.RankingSnapshot
}

// NewRankingJob creates a new ranking job
func NewRankingJob(ranker Ranker, codes []string, schedule, strategyID string, log *logger.Logger) *RankingJob {
	return &RankingJob{
		ranker:     ranker,
		codes:      append([]string(nil), codes...),
		schedule:   schedule,
		strategyID: strategyID,
		logger:     log,
		now:        time.Now,
	}
}

// Name returns the job name
func (j *RankingJob) Name() string {
	return "smartmoney_ranking"
}

// Schedule returns the cron schedule
func (j *RankingJob) Schedule() string {
	return j.schedule
}

// Run ranks the universe. A run cut short by ctx keeps the previous snapshot.
func (j *RankingJob) Run(ctx context.Context) error {
	j.logger.WithField("job", j.Name()).Infof("Starting scheduled ranking of %d stocks", len(j.codes))

	ranked, err := j.ranker.Rank(ctx, j.codes)
	if err != nil {
		return fmt.Errorf("rank universe: %w", err)
	}

	snapshot := &contracts.RankingSnapshot{
		GeneratedAt: j.now(),
		StrategyID:  j.strategyID,
		Stocks:      ranked,
	}

	j.mu.Lock()
	j.latest = snapshot
	j.mu.Unlock()

	fields := map[string]interface{}{"ranked": len(ranked)}
	if top, ok := snapshot.Top(); ok {
		fields["top_code"] = top.Code
		fields["top_score"] = top.TotalScore
	}
	j.logger.WithFields(fields).Info("Ranking refreshed")

	return nil
}

// Latest returns the most recent completed ranking
func (j *RankingJob) Latest() (*contracts.RankingSnapshot, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.latest == nil {
		return nil, false
	}
	return j.latest, true
}
