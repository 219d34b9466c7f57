package selection

import (
	"context"
	"fmt"
	"sort"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/pkg/logger"
)

// StockScorer produces a ScoreRecord for one identifier
type StockScorer interface {
	Score(ctx context.Context, code string) (*contracts.ScoreRecord, error)
}

// Ranker scores identifiers one at a time and orders them by total score
// ⭐ SSOT: 랭킹 로직은 여기서만
type Ranker struct {
	scorer StockScorer
	logger *logger.Logger
}

// NewRanker creates a new ranker
func NewRanker(scorer StockScorer, logger *logger.Logger) *Ranker {
	return &Ranker{
		scorer: scorer,
		logger: logger,
	}
}

// Rank scores codes sequentially, skipping any that fail, and returns them
// sorted by total score descending with 1-based ranks. Ties keep input order.
// A non-nil error means ctx ended; the partial ranking is still returned.
func (r *Ranker) Rank(ctx context.Context, codes []string) ([]contracts.RankedStock, error) {
	ranked := make([]contracts.RankedStock, 0, len(codes))

	for _, code := range codes {
		if ctx.Err() != nil {
			break
		}

		record, err := r.scoreOne(ctx, code)
		if err != nil {
			r.logger.WithFields(map[string]interface{}{
				"code":  code,
				"error": err.Error(),
			}).Warn("Failed to score stock, skipping")
			continue
		}

		ranked = append(ranked, contracts.RankedStock{ScoreRecord: *record})
	}

	// Sort by total score (descending), stable for ties
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})

	// Assign ranks
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	fields := map[string]interface{}{
		"requested": len(codes),
		"ranked":    len(ranked),
		"skipped":   len(codes) - len(ranked),
	}
	if len(ranked) > 0 {
		fields["top_code"] = ranked[0].Code
		fields["top_score"] = ranked[0].TotalScore
	}
	r.logger.WithFields(fields).Info("Ranking completed")

	if err := ctx.Err(); err != nil {
		return ranked, fmt.Errorf("ranking interrupted: %w", err)
	}
	return ranked, nil
}

// scoreOne isolates a single identifier so a panic cannot abort the batch
func (r *Ranker) scoreOne(ctx context.Context, code string) (record *contracts.ScoreRecord, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			record, err = nil, fmt.Errorf("panic while scoring: %v", rec)
		}
	}()

	record, err = r.scorer.Score(ctx, code)
	if err == nil && record == nil {
		err = fmt.Errorf("scorer returned no record")
	}
	return record, err
}
