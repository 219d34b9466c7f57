package scoring

import (
	"github.com/wonny/smartmoney/internal/contracts"
)

// PerformanceLookback is the number of bars the return is measured over
const PerformanceLookback = 20

var performanceBands = []band{
	{above: 0.20, score: 90},
	{above: 0.10, score: 75},
	{above: 0, score: 65},
	{above: -0.10, score: 45},
}

// PriceVolumeScore rewards price and volume moving together on the last day.
// Rising on rising volume or falling on falling volume scores 80, divergence
// 40, and a flat price or volume (e.g. a halted session) 60.
func PriceVolumeScore(bars []contracts.Bar) (float64, error) {
	n := len(bars)
	if n < 2 {
		return 0, contracts.Unavailable("need 2 bars for price-volume score, got %d", n)
	}

	prev, last := bars[n-2], bars[n-1]
	if prev.Close <= 0 || prev.Volume <= 0 {
		return 0, contracts.Unavailable("previous close or volume is zero")
	}

	priceChange := (last.Close - prev.Close) / prev.Close
	volumeChange := float64(last.Volume-prev.Volume) / float64(prev.Volume)

	switch {
	case (priceChange > 0 && volumeChange > 0) || (priceChange < 0 && volumeChange < 0):
		return 80, nil
	case (priceChange > 0 && volumeChange < 0) || (priceChange < 0 && volumeChange > 0):
		return 40, nil
	default:
		return 60, nil
	}
}

// PerformanceReturn is the return from the PerformanceLookback-th bar from the
// end (or the first bar of a shorter series) to the latest close.
func PerformanceReturn(bars []contracts.Bar) (float64, error) {
	n := len(bars)
	if n == 0 {
		return 0, contracts.Unavailable("no bars for performance")
	}

	base := bars[0].Close
	if n >= PerformanceLookback {
		base = bars[n-PerformanceLookback].Close
	}
	if base <= 0 {
		return 0, contracts.Unavailable("base close is not positive")
	}

	return (bars[n-1].Close - base) / base, nil
}

// MarketPerformanceScore buckets the recent return
func MarketPerformanceScore(bars []contracts.Bar) (float64, error) {
	ret, err := PerformanceReturn(bars)
	if err != nil {
		return 0, err
	}
	if err := finite(ret, "20-day return"); err != nil {
		return 0, err
	}

	return bucketAbove(ret, performanceBands, 30), nil
}
