package contracts

import (
	"fmt"
	"math"
	"time"
)

// NeutralScore is the score of a dimension whose data is unavailable
const NeutralScore = 50.0

// Dimension names one evaluation axis
type Dimension string

const (
	DimFunding           Dimension = "funding"
	DimNorthMoney        Dimension = "north_money"
	DimMainMoney         Dimension = "main_money"
	DimTechnical         Dimension = "technical"
	DimPriceVolume       Dimension = "price_volume"
	DimMarketPerformance Dimension = "market_performance"
	DimLiquidity         Dimension = "liquidity"
)

// Dimensions lists every dimension in report and radar order
var Dimensions = []Dimension{
	DimFunding,
	DimNorthMoney,
	DimMainMoney,
	DimTechnical,
	DimPriceVolume,
	DimMarketPerformance,
	DimLiquidity,
}

var dimensionLabels = map[Dimension]string{
	DimFunding:           "Funding",
	DimNorthMoney:        "North money",
	DimMainMoney:         "Main money",
	DimTechnical:         "Technical",
	DimPriceVolume:       "Price-volume",
	DimMarketPerformance: "Performance",
	DimLiquidity:         "Liquidity",
}

// Label returns the display name
func (d Dimension) Label() string {
	if label, ok := dimensionLabels[d]; ok {
		return label
	}
	return string(d)
}

// DimensionScores holds one score in [0,100] per dimension
type DimensionScores struct {
	Funding           float64 `json:"funding"`
	NorthMoney        float64 `json:"north_money"`
	MainMoney         float64 `json:"main_money"`
	Technical         float64 `json:"technical"`
	PriceVolume       float64 `json:"price_volume"`
	MarketPerformance float64 `json:"market_performance"`
	Liquidity         float64 `json:"liquidity"`
}

// Get returns the score of dimension d
func (s DimensionScores) Get(d Dimension) float64 {
	switch d {
	case DimFunding:
		return s.Funding
	case DimNorthMoney:
		return s.NorthMoney
	case DimMainMoney:
		return s.MainMoney
	case DimTechnical:
		return s.Technical
	case DimPriceVolume:
		return s.PriceVolume
	case DimMarketPerformance:
		return s.MarketPerformance
	case DimLiquidity:
		return s.Liquidity
	}
	return 0
}

// With returns a copy with dimension d set to v
func (s DimensionScores) With(d Dimension, v float64) DimensionScores {
	switch d {
	case DimFunding:
		s.Funding = v
	case DimNorthMoney:
		s.NorthMoney = v
	case DimMainMoney:
		s.MainMoney = v
	case DimTechnical:
		s.Technical = v
	case DimPriceVolume:
		s.PriceVolume = v
	case DimMarketPerformance:
		s.MarketPerformance = v
	case DimLiquidity:
		s.Liquidity = v
	}
	return s
}

// Values returns the scores in Dimensions order
func (s DimensionScores) Values() []float64 {
	out := make([]float64, len(Dimensions))
	for i, d := range Dimensions {
		out[i] = s.Get(d)
	}
	return out
}

// WeightTable maps every dimension to a weight; weights sum to 1.0.
// The zero value is unusable; build one with NewWeightTable or DefaultWeights.
type WeightTable struct {
	weights map[Dimension]float64
}

// weightTolerance absorbs float error from percentages like 15/100
const weightTolerance = 1e-6

// NewWeightTable validates and copies weights
func NewWeightTable(weights map[Dimension]float64) (WeightTable, error) {
	copied := make(map[Dimension]float64, len(Dimensions))
	sum := 0.0
	for _, d := range Dimensions {
		w, ok := weights[d]
		if !ok {
			return WeightTable{}, fmt.Errorf("weight for %s is missing", d)
		}
		if w < 0 || math.IsNaN(w) || math.IsInf(w, 0) {
			return WeightTable{}, fmt.Errorf("weight for %s must be a non-negative number, got %v", d, w)
		}
		copied[d] = w
		sum += w
	}
	if len(weights) != len(Dimensions) {
		return WeightTable{}, fmt.Errorf("expected %d weights, got %d", len(Dimensions), len(weights))
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return WeightTable{}, fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return WeightTable{weights: copied}, nil
}

// DefaultWeights returns the standard weighting
func DefaultWeights() WeightTable {
	table, _ := NewWeightTable(map[Dimension]float64{
		DimFunding:           0.15,
		DimNorthMoney:        0.20,
		DimMainMoney:         0.15,
		DimTechnical:         0.20,
		DimPriceVolume:       0.10,
		DimMarketPerformance: 0.10,
		DimLiquidity:         0.10,
	})
	return table
}

// Weight returns the weight of dimension d
func (w WeightTable) Weight(d Dimension) float64 {
	return w.weights[d]
}

// ScoreRecord is the immutable result of scoring one identifier
type ScoreRecord struct {
	Code        string          `json:"code"`
	Scores      DimensionScores `json:"scores"`
	TotalScore  float64         `json:"total_score"`
	Unavailable []Dimension     `json:"unavailable,omitempty"` // dimensions that fell back to NeutralScore
	Turnover    float64         `json:"turnover,omitempty"`    // informational, not scored
	ScoredAt    time.Time       `json:"scored_at"`
}

// IsUnavailable reports whether dimension d used the neutral fallback
func (r *ScoreRecord) IsUnavailable(d Dimension) bool {
	for _, u := range r.Unavailable {
		if u == d {
			return true
		}
	}
	return false
}
