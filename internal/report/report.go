package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/smartmoney/internal/contracts"
)

const (
	doubleRule = "════════════════════════════════════════════════════════════"
	singleRule = "────────────────────────────────────────"
)

// TimeLayout is the analysis timestamp format
const TimeLayout = "2006-01-02 15:04:05"

// WriteText writes the detailed report of one stock
// ⭐ SSOT: 단일 종목 리포트 포맷은 여기서만
func WriteText(w io.Writer, record *contracts.ScoreRecord, weights contracts.WeightTable) error {
	rating := RatingFor(record.TotalScore)

	var b strings.Builder
	fmt.Fprintln(&b, doubleRule)
	fmt.Fprintln(&b, "Smart Money Composite Score Report")
	fmt.Fprintln(&b, doubleRule)
	fmt.Fprintf(&b, "Stock code    : %s\n", record.Code)
	fmt.Fprintf(&b, "Analyzed at   : %s\n", record.ScoredAt.Format(TimeLayout))
	fmt.Fprintf(&b, "Total score   : %.2f\n", record.TotalScore)
	if record.Turnover > 0 {
		fmt.Fprintf(&b, "Turnover      : %.2f%%\n", record.Turnover*100)
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Dimension scores:")
	fmt.Fprintln(&b, singleRule)

	for _, d := range contracts.Dimensions {
		marker := ""
		if record.IsUnavailable(d) {
			marker = "  (no data)"
		}
		fmt.Fprintf(&b, "%-13s: %6.1f (weight %4.1f%%)%s\n",
			d.Label(), record.Scores.Get(d), weights.Weight(d)*100, marker)
	}

	fmt.Fprintln(&b, singleRule)
	fmt.Fprintf(&b, "Rating        : %s\n", rating)
	fmt.Fprintf(&b, "Suggestion    : %s\n", rating.Suggestion)

	_, err := io.WriteString(w, b.String())
	return err
}
