package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/smartmoney/internal/contracts"
)

func margins(balances ...float64) []contracts.MarginPoint {
	out := make([]contracts.MarginPoint, len(balances))
	for i, b := range balances {
		out[i] = contracts.MarginPoint{Date: day(i), Balance: b}
	}
	return out
}

func holdings(shares ...float64) []contracts.HoldingPoint {
	out := make([]contracts.HoldingPoint, len(shares))
	for i, s := range shares {
		out[i] = contracts.HoldingPoint{Date: day(i), Shares: s}
	}
	return out
}

func TestFundingScore(t *testing.T) {
	tests := []struct {
		name    string
		history []contracts.MarginPoint
		want    float64
	}{
		{"up 12 percent", margins(100, 112), 90},
		{"up 7 percent", margins(100, 107), 75},
		{"up 3 percent", margins(100, 103), 60},
		{"flat", margins(100, 100), 40},
		{"down 3 percent", margins(100, 97), 40},
		{"down 8 percent", margins(100, 92), 20},
		{"exactly 10 percent", margins(100, 110), 75},
		{"single point compares with itself", margins(100), 40},
		{"zero previous balance", margins(0, 100), 40},
		{"uses last two points", margins(50, 100, 112), 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FundingScore(tt.history)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFundingScore_Empty(t *testing.T) {
	_, err := FundingScore(nil)
	assert.ErrorIs(t, err, contracts.ErrDataUnavailable)
}

func TestNorthMoneyScore(t *testing.T) {
	tests := []struct {
		name    string
		history []contracts.HoldingPoint
		want    float64
	}{
		{"up 25 percent", holdings(100, 125), 95},
		{"up 15 percent", holdings(100, 115), 80},
		{"up 7 percent", holdings(100, 107), 70},
		{"up 2 percent", holdings(100, 102), 60},
		{"flat", holdings(100, 100), 45},
		{"down 7 percent", holdings(100, 93), 30},
		{"down 20 percent", holdings(100, 80), 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NorthMoneyScore(tt.history)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := NorthMoneyScore([]contracts.HoldingPoint{})
	assert.ErrorIs(t, err, contracts.ErrDataUnavailable)
}

func TestMainMoneyScore(t *testing.T) {
	tests := []struct {
		name   string
		inflow float64
		want   float64
	}{
		{"12 million in", 12e6, 90},
		{"6 million in", 6e6, 75},
		{"small inflow", 1, 60},
		{"zero", 0, 40},
		{"3 million out", -3e6, 40},
		{"6 million out", -6e6, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MainMoneyScore(&contracts.CapitalFlow{NetInflow: tt.inflow})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := MainMoneyScore(nil)
	assert.ErrorIs(t, err, contracts.ErrDataUnavailable)
}
