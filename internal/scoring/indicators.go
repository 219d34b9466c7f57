package scoring

import (
	"math"

	"github.com/markcheno/go-talib"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/smartmoney/internal/contracts"
)

// sma returns the simple moving average of the last period values
func sma(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}

	out := talib.Sma(values, period)
	last := out[len(out)-1]
	if math.IsNaN(last) {
		return 0, false
	}
	return last, true
}

// BollingerBands is a volatility envelope around the SMA
type BollingerBands struct {
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// bollinger computes bands from the last period closes using the sample
// standard deviation (n-1 denominator).
func bollinger(closes []float64, period int, k float64) (BollingerBands, bool) {
	middle, ok := sma(closes, period)
	if !ok {
		return BollingerBands{}, false
	}

	window := closes[len(closes)-period:]
	sd := stat.StdDev(window, nil)
	if math.IsNaN(sd) {
		return BollingerBands{}, false
	}

	return BollingerBands{
		Upper:  middle + k*sd,
		Middle: middle,
		Lower:  middle - k*sd,
	}, true
}

// bandPosition is (price-lower)/(upper-lower), 0.5 for a collapsed band
func bandPosition(price float64, bands BollingerBands) float64 {
	width := bands.Upper - bands.Lower
	if width > 0 {
		return (price - bands.Lower) / width
	}
	return 0.5
}

// rangeHighLow scans bars for the highest high and lowest low
func rangeHighLow(bars []contracts.Bar) (high, low float64) {
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low
}
