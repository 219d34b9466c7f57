package contracts

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrDataUnavailable marks a data slice the provider could not supply.
// Scorers recover it to the neutral score; it is never surfaced to callers.
var ErrDataUnavailable = errors.New("data unavailable")

// Unavailable wraps ErrDataUnavailable with context
func Unavailable(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDataUnavailable, fmt.Sprintf(format, args...))
}

// MarketDataProvider supplies typed market data per stock identifier
// ⭐ SSOT: 시장 데이터 조회 인터페이스는 여기서만
type MarketDataProvider interface {
	// MarginHistory returns financing balances, ascending by date
	MarginHistory(ctx context.Context, code string) ([]MarginPoint, error)
	// HoldingHistory returns cross-border held shares, ascending by date
	HoldingHistory(ctx context.Context, code string) ([]HoldingPoint, error)
	// CapitalFlow returns the latest main-capital flow snapshot
	CapitalFlow(ctx context.Context, code string) (*CapitalFlow, error)
	// DailyBars returns daily OHLCV bars within [from, to], ascending by date
	DailyBars(ctx context.Context, code string, from, to time.Time) ([]Bar, error)
	// Valuation returns the latest market capitalization snapshot
	Valuation(ctx context.Context, code string) (*Valuation, error)
}

// Bar is one trading-day observation
type Bar struct {
	Date   time.Time `json:"date" yaml:"date"`
	Open   float64   `json:"open" yaml:"open"`
	High   float64   `json:"high" yaml:"high"`
	Low    float64   `json:"low" yaml:"low"`
	Close  float64   `json:"close" yaml:"close"`
	Volume int64     `json:"volume" yaml:"volume"`
}

// MarginPoint is the outstanding financing balance on a date
type MarginPoint struct {
	Date    time.Time `json:"date" yaml:"date"`
	Balance float64   `json:"balance" yaml:"balance"`
}

// HoldingPoint is the number of shares held by cross-border investors on a date
type HoldingPoint struct {
	Date   time.Time `json:"date" yaml:"date"`
	Shares float64   `json:"shares" yaml:"shares"`
}

// CapitalFlow is the latest main-capital snapshot
type CapitalFlow struct {
	Date      time.Time `json:"date" yaml:"date"`
	NetInflow float64   `json:"net_inflow" yaml:"net_inflow"` // currency units
	Turnover  float64   `json:"turnover" yaml:"turnover"`     // fraction of shares outstanding
}

// Valuation is a market capitalization snapshot
type Valuation struct {
	Date              time.Time `json:"date" yaml:"date"`
	MarketCap         float64   `json:"market_cap" yaml:"market_cap"`
	SharesOutstanding int64     `json:"shares_outstanding" yaml:"shares_outstanding"`
}

// Closes extracts close prices
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}
