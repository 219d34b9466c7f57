package scoring

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/pkg/logger"
)

// DefaultLookbackDays is the calendar window of daily bars fetched per stock
const DefaultLookbackDays = 60

// Scorer fetches market data and produces a ScoreRecord per stock
// ⭐ SSOT: 차원별 점수 수집 + 기본값(50) 대체는 여기서만
type Scorer struct {
	provider  contracts.MarketDataProvider
	composite *Composite
	logger    *logger.Logger

	lookbackDays int
	now          func() time.Time
	location     *time.Location
}

// Option customizes a Scorer
type Option func(*Scorer)

// WithClock sets the clock used for ScoredAt and the bar window
func WithClock(now func() time.Time) Option {
	return func(s *Scorer) {
		s.now = now
	}
}

// WithLocation sets the location ScoredAt is reported in
func WithLocation(loc *time.Location) Option {
	return func(s *Scorer) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithLookbackDays sets the calendar window of daily bars
func WithLookbackDays(days int) Option {
	return func(s *Scorer) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// NewScorer creates a new scorer
func NewScorer(provider contracts.MarketDataProvider, composite *Composite, log *logger.Logger, opts ...Option) *Scorer {
	s := &Scorer{
		provider:     provider,
		composite:    composite,
		logger:       log,
		lookbackDays: DefaultLookbackDays,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Composite returns the composite scorer in use
func (s *Scorer) Composite() *Composite {
	return s.composite
}

// Score computes all seven dimensions and the weighted total for code.
// Dimension failures fall back to the neutral score; only a cancelled
// context is returned as an error.
func (s *Scorer) Score(ctx context.Context, code string) (*contracts.ScoreRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("score %s: %w", code, err)
	}

	now := s.now()
	record := &contracts.ScoreRecord{
		Code:     code,
		ScoredAt: now,
	}
	if s.location != nil {
		record.ScoredAt = now.In(s.location)
	}

	// Bars are shared by technical, price-volume and performance, fetched
	// lazily under dimension's recover. A panicked fetch leaves barsErr set.
	var (
		bars       []contracts.Bar
		barsErr    error
		barsLoaded bool
	)
	loadBars := func() ([]contracts.Bar, error) {
		if !barsLoaded {
			barsLoaded = true
			barsErr = contracts.Unavailable("daily bars fetch for %s did not complete", code)
			from := now.AddDate(0, 0, -s.lookbackDays)
			bars, barsErr = s.provider.DailyBars(ctx, code, from, now)
		}
		return bars, barsErr
	}
	withBars := func(fn func([]contracts.Bar) (float64, error)) func() (float64, error) {
		return func() (float64, error) {
			b, err := loadBars()
			if err != nil {
				return 0, err
			}
			return fn(b)
		}
	}

	calcs := []struct {
		dim  contracts.Dimension
		calc func() (float64, error)
	}{
		{contracts.DimFunding, func() (float64, error) {
			history, err := s.provider.MarginHistory(ctx, code)
			if err != nil {
				return 0, err
			}
			return FundingScore(history)
		}},
		{contracts.DimNorthMoney, func() (float64, error) {
			history, err := s.provider.HoldingHistory(ctx, code)
			if err != nil {
				return 0, err
			}
			return NorthMoneyScore(history)
		}},
		{contracts.DimMainMoney, func() (float64, error) {
			flow, err := s.provider.CapitalFlow(ctx, code)
			if err != nil {
				return 0, err
			}
			if flow != nil {
				record.Turnover = flow.Turnover
			}
			return MainMoneyScore(flow)
		}},
		{contracts.DimTechnical, withBars(func(b []contracts.Bar) (float64, error) {
			score, details, err := TechnicalScore(b)
			if err == nil {
				s.logger.WithFields(map[string]interface{}{
					"code":          code,
					"band_position": details.BandPosition,
					"ma5":           details.MA5,
					"ma10":          details.MA10,
					"ma20":          details.MA20,
				}).Debug("Technical details")
			}
			return score, err
		})},
		{contracts.DimPriceVolume, withBars(PriceVolumeScore)},
		{contracts.DimMarketPerformance, withBars(MarketPerformanceScore)},
		{contracts.DimLiquidity, func() (float64, error) {
			v, err := s.provider.Valuation(ctx, code)
			if err != nil {
				return 0, err
			}
			return LiquidityScore(v)
		}},
	}

	scores := contracts.DimensionScores{}
	for _, c := range calcs {
		score, ok := s.dimension(code, c.dim, c.calc)
		if !ok {
			record.Unavailable = append(record.Unavailable, c.dim)
		}
		scores = scores.With(c.dim, score)
	}

	// A cancelled run yields neutral garbage, never a record
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("score %s: %w", code, err)
	}

	record.Scores = scores
	record.TotalScore = s.composite.Total(scores)

	s.logger.WithFields(map[string]interface{}{
		"code":        code,
		"total":       record.TotalScore,
		"unavailable": len(record.Unavailable),
	}).Debug("Scored stock")

	return record, nil
}

// dimension runs one calculator. Any error, panic or out-of-range result
// becomes the neutral score and ok=false.
func (s *Scorer) dimension(code string, dim contracts.Dimension, calc func() (float64, error)) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithFields(map[string]interface{}{
				"code":      code,
				"dimension": string(dim),
				"panic":     fmt.Sprint(r),
			}).Warn("Dimension calculation panicked, using neutral score")
			score, ok = contracts.NeutralScore, false
		}
	}()

	score, err := calc()
	if err == nil && (math.IsNaN(score) || score < 0 || score > 100) {
		err = fmt.Errorf("score %v out of range", score)
	}
	if err != nil {
		fields := map[string]interface{}{
			"code":        code,
			"dimension":   string(dim),
			"error":       err.Error(),
			"unavailable": errors.Is(err, contracts.ErrDataUnavailable),
		}
		s.logger.WithFields(fields).Debug("Dimension unavailable, using neutral score")
		return contracts.NeutralScore, false
	}

	return score, true
}
