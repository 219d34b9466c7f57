package scoring

import (
	"github.com/wonny/smartmoney/internal/contracts"
)

const (
	bollingerPeriod = 20
	bollingerK      = 2.0
	breakoutWindow  = 5

	// Minimum bars for the longest window (MA20 / Bollinger)
	MinTechnicalBars = 20
)

// TechnicalDetails exposes the intermediate values behind a technical score
type TechnicalDetails struct {
	Bands         BollingerBands `json:"bands"`
	BandPosition  float64        `json:"band_position"`
	MA5           float64        `json:"ma5"`
	MA10          float64        `json:"ma10"`
	MA20          float64        `json:"ma20"`
	PriorHigh     float64        `json:"prior_high"`
	PriorLow      float64        `json:"prior_low"`
	BandScore     float64        `json:"band_score"`
	MAScore       float64        `json:"ma_score"`
	BreakoutScore float64        `json:"breakout_score"`
}

// TechnicalScore blends Bollinger position, moving-average alignment and a
// five-day breakout check: 0.3*band + 0.4*ma + 0.3*breakout.
func TechnicalScore(bars []contracts.Bar) (float64, TechnicalDetails, error) {
	details := TechnicalDetails{}

	if len(bars) < MinTechnicalBars {
		return 0, details, contracts.Unavailable("need %d bars for technical score, got %d", MinTechnicalBars, len(bars))
	}

	closes := contracts.Closes(bars)
	latest := closes[len(closes)-1]

	bands, ok := bollinger(closes, bollingerPeriod, bollingerK)
	if !ok {
		return 0, details, contracts.Unavailable("bollinger bands could not be computed")
	}
	details.Bands = bands
	details.BandPosition = bandPosition(latest, bands)
	if err := finite(details.BandPosition, "band position"); err != nil {
		return 0, details, err
	}

	ma5, _ := sma(closes, 5)
	ma10, _ := sma(closes, 10)
	details.MA5, details.MA10, details.MA20 = ma5, ma10, bands.Middle

	prior := bars[len(bars)-1-breakoutWindow : len(bars)-1]
	details.PriorHigh, details.PriorLow = rangeHighLow(prior)

	details.BandScore = bandScore(details.BandPosition)
	details.MAScore = maAlignmentScore(details.MA5, details.MA10, details.MA20)
	details.BreakoutScore = breakoutScore(latest, details.PriorHigh, details.PriorLow)

	return blendTechnical(details.BandScore, details.MAScore, details.BreakoutScore), details, nil
}

// bandScore: near the upper band reads overbought, mid-band is healthiest
func bandScore(position float64) float64 {
	switch {
	case position > 0.7:
		return 30
	case position > 0.3:
		return 70
	default:
		return 40
	}
}

func maAlignmentScore(ma5, ma10, ma20 float64) float64 {
	switch {
	case ma5 > ma10 && ma10 > ma20:
		return 90
	case ma5 > ma10:
		return 70
	case ma5 > ma20:
		return 60
	default:
		return 40
	}
}

func breakoutScore(close, priorHigh, priorLow float64) float64 {
	switch {
	case close > priorHigh:
		return 80
	case close < priorLow:
		return 30
	default:
		return 60
	}
}

func blendTechnical(band, ma, breakout float64) float64 {
	return band*0.3 + ma*0.4 + breakout*0.3
}
