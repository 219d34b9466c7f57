package scoring

import (
	"github.com/wonny/smartmoney/internal/contracts"
)

// Composite applies a fixed WeightTable to dimension scores
// ⭐ SSOT: 종합 점수 가중합은 여기서만
type Composite struct {
	weights contracts.WeightTable
}

// NewComposite creates a composite scorer bound to weights
func NewComposite(weights contracts.WeightTable) *Composite {
	return &Composite{weights: weights}
}

// Total returns Σ weight[d] * score[d]
func (c *Composite) Total(scores contracts.DimensionScores) float64 {
	total := 0.0
	for _, d := range contracts.Dimensions {
		total += c.weights.Weight(d) * scores.Get(d)
	}
	return total
}

// Weights returns the bound weight table
func (c *Composite) Weights() contracts.WeightTable {
	return c.weights
}
