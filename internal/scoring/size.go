package scoring

import (
	"github.com/wonny/smartmoney/internal/contracts"
)

// Market cap tiers. Small and mid caps score higher for their elasticity.
var liquidityTiers = []ceiling{
	{below: 5_000_000_000, score: 70},
	{below: 20_000_000_000, score: 80},
	{below: 100_000_000_000, score: 65},
}

// LiquidityScore scores the market capitalization tier
func LiquidityScore(v *contracts.Valuation) (float64, error) {
	if v == nil {
		return 0, contracts.Unavailable("no valuation snapshot")
	}
	if err := finite(v.MarketCap, "market cap"); err != nil {
		return 0, err
	}
	if v.MarketCap <= 0 {
		return 0, contracts.Unavailable("market cap is not positive")
	}

	return bucketBelow(v.MarketCap, liquidityTiers, 50), nil
}
