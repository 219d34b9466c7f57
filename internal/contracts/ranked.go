package contracts

import "time"

// RankedStock is a ScoreRecord with its 1-based position in a ranking
// ⭐ SSOT: 랭킹 결과 전달
type RankedStock struct {
	Rank int `json:"rank"`
	ScoreRecord
}

// IsTopRanked checks if the stock is in top N ranks
func (r *RankedStock) IsTopRanked(n int) bool {
	return r.Rank <= n && r.Rank > 0
}

// RankingSnapshot is one completed ranking run
type RankingSnapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	StrategyID  string        `json:"strategy_id,omitempty"`
	Stocks      []RankedStock `json:"stocks"`
}

// Top returns the first-ranked stock, if any
func (s *RankingSnapshot) Top() (*RankedStock, bool) {
	if s == nil || len(s.Stocks) == 0 {
		return nil, false
	}
	return &s.Stocks[0], true
}
