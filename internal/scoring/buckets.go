package scoring

import (
	"math"

	"github.com/wonny/smartmoney/internal/contracts"
)

// band maps "value > above" to score
type band struct {
	above float64
	score float64
}

// bucketAbove returns the score of the first band whose threshold v exceeds,
// otherwise the floor score. Bands must be ordered by descending threshold.
func bucketAbove(v float64, bands []band, floor float64) float64 {
	for _, b := range bands {
		if v > b.above {
			return b.score
		}
	}
	return floor
}

// ceiling maps "value < below" to score
type ceiling struct {
	below float64
	score float64
}

// bucketBelow is bucketAbove for ascending "<" thresholds
func bucketBelow(v float64, ceilings []ceiling, top float64) float64 {
	for _, c := range ceilings {
		if v < c.below {
			return c.score
		}
	}
	return top
}

// finite rejects NaN and ±Inf ratios
func finite(v float64, what string) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return contracts.Unavailable("%s is not finite", what)
	}
	return nil
}

// relativeChange is (latest-prev)/prev, 0 when prev is not positive
func relativeChange(latest, prev float64) float64 {
	if prev > 0 {
		return (latest - prev) / prev
	}
	return 0
}
