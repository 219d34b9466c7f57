package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWeights_SumToOne(t *testing.T) {
	w := DefaultWeights()

	sum := 0.0
	for _, d := range Dimensions {
		sum += w.Weight(d)
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.Equal(t, 0.20, w.Weight(DimNorthMoney))
	assert.Equal(t, 0.15, w.Weight(DimFunding))
}

func TestNewWeightTable(t *testing.T) {
	valid := map[Dimension]float64{
		DimFunding: 0.1, DimNorthMoney: 0.1, DimMainMoney: 0.1, DimTechnical: 0.1,
		DimPriceVolume: 0.2, DimMarketPerformance: 0.2, DimLiquidity: 0.2,
	}

	tests := []struct {
		name    string
		mutate  func(m map[Dimension]float64)
		wantErr bool
	}{
		{name: "valid", mutate: func(m map[Dimension]float64) {}, wantErr: false},
		{name: "missing dimension", mutate: func(m map[Dimension]float64) { delete(m, DimLiquidity) }, wantErr: true},
		{name: "negative weight", mutate: func(m map[Dimension]float64) { m[DimFunding] = -0.1; m[DimLiquidity] = 0.4 }, wantErr: true},
		{name: "sum not one", mutate: func(m map[Dimension]float64) { m[DimFunding] = 0.3 }, wantErr: true},
		{name: "unknown dimension", mutate: func(m map[Dimension]float64) { m["sentiment"] = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := make(map[Dimension]float64, len(valid))
			for k, v := range valid {
				m[k] = v
			}
			tt.mutate(m)

			_, err := NewWeightTable(m)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewWeightTable_CopiesInput(t *testing.T) {
	m := map[Dimension]float64{
		DimFunding: 0.15, DimNorthMoney: 0.20, DimMainMoney: 0.15, DimTechnical: 0.20,
		DimPriceVolume: 0.10, DimMarketPerformance: 0.10, DimLiquidity: 0.10,
	}
	table, err := NewWeightTable(m)
	require.NoError(t, err)

	m[DimFunding] = 0.9
	assert.Equal(t, 0.15, table.Weight(DimFunding))
}

func TestDimensionScores_GetWithValues(t *testing.T) {
	var s DimensionScores
	for i, d := range Dimensions {
		s = s.With(d, float64(10*(i+1)))
	}

	assert.Equal(t, 10.0, s.Funding)
	assert.Equal(t, 70.0, s.Liquidity)
	assert.Equal(t, 40.0, s.Get(DimTechnical))
	assert.Equal(t, []float64{10, 20, 30, 40, 50, 60, 70}, s.Values())
	assert.Equal(t, 0.0, s.Get("unknown"))
}

func TestDimensionLabel(t *testing.T) {
	assert.Equal(t, "North money", DimNorthMoney.Label())
	assert.Equal(t, "custom", Dimension("custom").Label())
}

func TestScoreRecord_IsUnavailable(t *testing.T) {
	r := &ScoreRecord{Unavailable: []Dimension{DimFunding, DimLiquidity}}

	assert.True(t, r.IsUnavailable(DimFunding))
	assert.False(t, r.IsUnavailable(DimTechnical))
}

func TestUnavailable_WrapsSentinel(t *testing.T) {
	err := Unavailable("no margin data for %s", "600519")

	assert.True(t, errors.Is(err, ErrDataUnavailable))
	assert.Contains(t, err.Error(), "600519")
}

func TestRankedStock_IsTopRanked(t *testing.T) {
	r := RankedStock{Rank: 3}
	assert.True(t, r.IsTopRanked(3))
	assert.False(t, r.IsTopRanked(2))
	assert.False(t, (&RankedStock{}).IsTopRanked(5))
}
