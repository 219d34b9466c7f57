package report

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/smartmoney/internal/contracts"
)

func sampleRecord() *contracts.ScoreRecord {
	return &contracts.ScoreRecord{
		Code: "600519",
		Scores: contracts.DimensionScores{
			Funding:           90,
			NorthMoney:        95,
			MainMoney:         90,
			Technical:         72,
			PriceVolume:       80,
			MarketPerformance: 50,
			Liquidity:         50,
		},
		TotalScore:  79.95,
		Unavailable: []contracts.Dimension{contracts.DimMarketPerformance},
		Turnover:    0.0125,
		ScoredAt:    time.Date(2026, 3, 2, 15, 4, 5, 0, time.UTC),
	}
}

func TestRatingFor(t *testing.T) {
	tests := []struct {
		total float64
		stars string
		label string
	}{
		{100, "★★★★★", "Strong watch"},
		{80, "★★★★★", "Strong watch"},
		{79.99, "★★★★☆", "Positive watch"},
		{70, "★★★★☆", "Positive watch"},
		{65, "★★★☆☆", "Moderate watch"},
		{55, "★★☆☆☆", "Cautious watch"},
		{50, "★★☆☆☆", "Cautious watch"},
		{49.99, "★☆☆☆☆", "Wait and see"},
		{0, "★☆☆☆☆", "Wait and see"},
	}

	for _, tt := range tests {
		r := RatingFor(tt.total)
		assert.Equal(t, tt.stars, r.Stars, "total %v", tt.total)
		assert.Equal(t, tt.label, r.Label, "total %v", tt.total)
		assert.NotEmpty(t, r.Suggestion)
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleRecord(), contracts.DefaultWeights()))
	out := buf.String()

	assert.Contains(t, out, "Stock code    : 600519")
	assert.Contains(t, out, "Analyzed at   : 2026-03-02 15:04:05")
	assert.Contains(t, out, "Total score   : 79.95")
	assert.Contains(t, out, "Turnover      : 1.25%")
	assert.Contains(t, out, "North money  :   95.0 (weight 20.0%)")
	assert.Contains(t, out, "Performance  :   50.0 (weight 10.0%)  (no data)")
	assert.Contains(t, out, "Rating        : ★★★★☆ Positive watch")

	// dimensions appear in fixed order
	assert.Less(t, strings.Index(out, "Funding"), strings.Index(out, "Liquidity"))
}

func TestWriteRankingTable(t *testing.T) {
	ranked := []contracts.RankedStock{
		{Rank: 1, ScoreRecord: contracts.ScoreRecord{Code: "600519", TotalScore: 78.456,
			Scores: contracts.DimensionScores{NorthMoney: 95, MainMoney: 90, Technical: 72.004}}},
		{Rank: 2, ScoreRecord: contracts.ScoreRecord{Code: "000858", TotalScore: 61.5}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRankingTable(&buf, ranked))
	out := buf.String()

	assert.Contains(t, out, "   1  600519        78.46    95.00    90.00    72.00")
	assert.Contains(t, out, "   2  000858        61.50     0.00     0.00     0.00")
}

func TestWriteRankingTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRankingTable(&buf, nil))
	assert.Contains(t, buf.String(), "No stocks could be scored.")
}

func TestRadarSeries(t *testing.T) {
	scores := sampleRecord().Scores.With(contracts.DimLiquidity, 130)
	series := RadarSeries(scores)

	require.Len(t, series, len(contracts.Dimensions)+1)
	assert.Equal(t, series[0], series[len(series)-1])
	assert.Equal(t, "Funding", series[0].Label)
	assert.Equal(t, 100.0, series[6].Value, "values are clamped")

	for _, p := range series {
		assert.GreaterOrEqual(t, p.Value, 0.0)
		assert.LessOrEqual(t, p.Value, 100.0)
	}
}

func TestRadarVertices(t *testing.T) {
	series := RadarSeries(contracts.DimensionScores{Funding: 100})
	points := radarVertices(series, 0, 0, 10)

	// first axis points straight up; the polygon closes on itself
	assert.InDelta(t, 0, points[0].X, 1e-9)
	assert.InDelta(t, -10, points[0].Y, 1e-9)
	assert.Equal(t, points[0], points[len(points)-1])

	// zero scores collapse to the center
	assert.InDelta(t, 0, math.Hypot(points[1].X, points[1].Y), 1e-9)
}

func TestRenderRadar(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderRadar(&buf, sampleRecord()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSaveRadar(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := SaveRadar(dir, sampleRecord())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "600519_radar.pdf"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestMarkdownAndHTML(t *testing.T) {
	md := Markdown(sampleRecord(), contracts.DefaultWeights())
	assert.Contains(t, md, "# Smart Money Report: 600519")
	assert.Contains(t, md, "| North money | 95.0 | 20.0% |")
	assert.Contains(t, md, "Performance _(no data)_")

	html, err := HTML(sampleRecord(), contracts.DefaultWeights())
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Smart Money Report: 600519</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>North money</td>")
	assert.Contains(t, html, "<blockquote>")
}
