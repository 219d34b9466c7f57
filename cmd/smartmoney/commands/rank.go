package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/internal/report"
)

// rankCmd represents the rank command
var rankCmd = &cobra.Command{
	Use:   "rank [codes...]",
	Short: "Rank stocks by composite smart money score",
	Long: `Scores every stock, prints the ranking table and writes the detailed
report and radar chart of the top candidates.

Stocks come from the arguments, RANKING_CODES, or the strategy universe.

Example:
  go run ./cmd/smartmoney rank
  go run ./cmd/smartmoney rank 005930 000660 --top 3`,
	RunE: runRank,
}

var (
	rankTop     int
	rankOutDir  string
	rankNoChart bool
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVar(&rankTop, "top", -1, "candidates to report in detail (default: strategy top_n)")
	rankCmd.Flags().StringVar(&rankOutDir, "out", "", "radar chart directory (default: REPORT_DIR)")
	rankCmd.Flags().BoolVar(&rankNoChart, "no-chart", false, "skip radar chart output")
}

func runRank(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	codes, err := a.codes(args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	PrintRunHeader(out, a.runMetadata("Smart Money Ranking", codes))

	ranked, err := a.ranker.Rank(ctx, codes)
	if err != nil {
		a.log.WithError(err).Warn("Ranking interrupted, showing partial results")
	}

	fmt.Fprintln(out)
	if err := report.WriteRankingTable(out, ranked); err != nil {
		return err
	}
	if len(ranked) == 0 {
		return fmt.Errorf("no stock could be scored")
	}

	records := make([]*contracts.ScoreRecord, len(ranked))
	for i := range ranked {
		records[i] = &ranked[i].ScoreRecord
	}
	a.warnIfNoData(out, records)

	top := rankTop
	if top < 0 {
		top = a.strategy.Ranking.TopN
	}

	dir := rankOutDir
	if dir == "" {
		dir = a.cfg.Scoring.ReportDir
	}

	for i := range ranked {
		if !ranked[i].IsTopRanked(top) {
			break
		}
		record := &ranked[i].ScoreRecord

		fmt.Fprintln(out)
		if err := report.WriteText(out, record, a.weights); err != nil {
			return err
		}

		if rankNoChart {
			continue
		}
		path, err := report.SaveRadar(dir, record)
		if err != nil {
			PrintError(out, fmt.Sprintf("Radar chart for %s: %v", record.Code, err))
			continue
		}
		PrintSuccess(out, fmt.Sprintf("Radar chart saved: %s", path))
	}

	return nil
}
