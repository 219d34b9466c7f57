package report

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"

	"github.com/wonny/smartmoney/internal/contracts"
)

// RadarPoint is one vertex of the radar polygon
type RadarPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// RadarSeries returns the seven dimensions in order plus a closing repeat of
// the first, values clamped to [0,100]
func RadarSeries(scores contracts.DimensionScores) []RadarPoint {
	series := make([]RadarPoint, 0, len(contracts.Dimensions)+1)
	for _, d := range contracts.Dimensions {
		series = append(series, RadarPoint{Label: d.Label(), Value: clamp(scores.Get(d), 0, 100)})
	}
	return append(series, series[0])
}

// Radar page geometry (mm, A4 portrait)
const (
	radarCenterX = 105.0
	radarCenterY = 135.0
	radarRadius  = 65.0
)

// radarAngle starts at 12 o'clock and runs clockwise (PDF y grows downward)
func radarAngle(i, n int) float64 {
	return -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
}

// radarVertices maps a closed series to page coordinates
func radarVertices(series []RadarPoint, cx, cy, radius float64) []fpdf.PointType {
	n := len(series) - 1
	points := make([]fpdf.PointType, 0, len(series))
	for i, p := range series {
		theta := radarAngle(i%n, n)
		r := radius * p.Value / 100
		points = append(points, fpdf.PointType{X: cx + r*math.Cos(theta), Y: cy + r*math.Sin(theta)})
	}
	return points
}

// RenderRadar writes a one-page PDF radar chart of record
func RenderRadar(w io.Writer, record *contracts.ScoreRecord) error {
	series := RadarSeries(record.Scores)
	n := len(series) - 1

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("%s smart money radar", record.Code), false)
	pdf.SetCreationDate(record.ScoredAt)
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("%s Smart Money Radar", record.Code), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total score %.2f  |  %s", record.TotalScore, record.ScoredAt.Format(TimeLayout)), "", 1, "C", false, 0, "")

	// grid rings every 20 points
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.2)
	pdf.SetFont("Helvetica", "", 7)
	for level := 20.0; level <= 100; level += 20 {
		ring := make([]RadarPoint, n+1)
		for i := range ring {
			ring[i] = RadarPoint{Value: level}
		}
		pdf.Polygon(radarVertices(ring, radarCenterX, radarCenterY, radarRadius)[:n], "D")
		pdf.Text(radarCenterX+1, radarCenterY-radarRadius*level/100+3, fmt.Sprintf("%.0f", level))
	}

	// spokes and labels
	pdf.SetFont("Helvetica", "", 10)
	for i := 0; i < n; i++ {
		theta := radarAngle(i, n)
		x := radarCenterX + radarRadius*math.Cos(theta)
		y := radarCenterY + radarRadius*math.Sin(theta)
		pdf.Line(radarCenterX, radarCenterY, x, y)

		label := fmt.Sprintf("%s %.1f", series[i].Label, series[i].Value)
		lx := radarCenterX + (radarRadius+8)*math.Cos(theta) - pdf.GetStringWidth(label)/2
		ly := radarCenterY + (radarRadius+8)*math.Sin(theta) + 1.5
		pdf.Text(lx, ly, label)
	}

	// score polygon
	pdf.SetDrawColor(31, 119, 180)
	pdf.SetFillColor(31, 119, 180)
	pdf.SetLineWidth(0.8)
	pdf.SetAlpha(0.25, "Normal")
	pdf.Polygon(radarVertices(series, radarCenterX, radarCenterY, radarRadius)[:n], "F")
	pdf.SetAlpha(1, "Normal")
	pdf.Polygon(radarVertices(series, radarCenterX, radarCenterY, radarRadius)[:n], "D")

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render radar: %w", err)
	}
	return pdf.Output(w)
}

// SaveRadar renders the radar chart to <dir>/<code>_radar.pdf
func SaveRadar(dir string, record *contracts.ScoreRecord) (string, error) {
	var buf bytes.Buffer
	if err := RenderRadar(&buf, record); err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_radar.pdf", filepath.Base(record.Code)))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("write radar: %w", err)
	}
	return path, nil
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
