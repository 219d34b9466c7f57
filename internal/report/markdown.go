package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/wonny/smartmoney/internal/contracts"
)

var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Table),
)

// Markdown renders the single-stock report as markdown
func Markdown(record *contracts.ScoreRecord, weights contracts.WeightTable) string {
	rating := RatingFor(record.TotalScore)

	var b strings.Builder
	fmt.Fprintf(&b, "# Smart Money Report: %s\n\n", record.Code)
	fmt.Fprintf(&b, "- **Analyzed at:** %s\n", record.ScoredAt.Format(TimeLayout))
	fmt.Fprintf(&b, "- **Total score:** %.2f\n", record.TotalScore)
	fmt.Fprintf(&b, "- **Rating:** %s\n", rating)
	if record.Turnover > 0 {
		fmt.Fprintf(&b, "- **Turnover:** %.2f%%\n", record.Turnover*100)
	}
	b.WriteString("\n| Dimension | Score | Weight |\n|---|---:|---:|\n")
	for _, d := range contracts.Dimensions {
		label := d.Label()
		if record.IsUnavailable(d) {
			label += " _(no data)_"
		}
		fmt.Fprintf(&b, "| %s | %.1f | %.1f%% |\n", label, record.Scores.Get(d), weights.Weight(d)*100)
	}
	fmt.Fprintf(&b, "\n> %s\n", rating.Suggestion)

	return b.String()
}

// HTML renders the markdown report to an HTML fragment
func HTML(record *contracts.ScoreRecord, weights contracts.WeightTable) (string, error) {
	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(record, weights)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}
