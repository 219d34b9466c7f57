package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/wonny/smartmoney/internal/contracts"
)

// WriteRankingTable writes the ranking summary, scores rounded to 2 dp
func WriteRankingTable(w io.Writer, ranked []contracts.RankedStock) error {
	var b strings.Builder

	fmt.Fprintln(&b, doubleRule)
	fmt.Fprintln(&b, "Smart Money Ranking")
	fmt.Fprintln(&b, doubleRule)

	if len(ranked) == 0 {
		fmt.Fprintln(&b, "No stocks could be scored.")
		_, err := io.WriteString(w, b.String())
		return err
	}

	fmt.Fprintf(&b, "%4s  %-10s %8s %8s %8s %8s\n", "Rank", "Code", "Total", "North", "Main", "Tech")
	fmt.Fprintln(&b, strings.Repeat("─", 52))
	for _, r := range ranked {
		fmt.Fprintf(&b, "%4d  %-10s %8.2f %8.2f %8.2f %8.2f\n",
			r.Rank, r.Code, r.TotalScore,
			r.Scores.NorthMoney, r.Scores.MainMoney, r.Scores.Technical)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
