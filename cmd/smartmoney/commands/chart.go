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

// chartCmd represents the chart command
var chartCmd = &cobra.Command{
	Use:   "chart <code>...",
	Short: "Write radar charts only",
	Long: `Scores each stock and writes <code>_radar.pdf without printing reports.

Example:
  go run ./cmd/smartmoney chart 005930 000660 --out reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChart,
}

var chartOutDir string

func init() {
	rootCmd.AddCommand(chartCmd)

	chartCmd.Flags().StringVar(&chartOutDir, "out", "", "radar chart directory (default: REPORT_DIR)")
}

func runChart(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	dir := chartOutDir
	if dir == "" {
		dir = a.cfg.Scoring.ReportDir
	}

	out := cmd.OutOrStdout()
	var (
		failed  int
		records []*contracts.ScoreRecord
	)
	for i, code := range args {
		record, err := a.scorer.Score(ctx, code)
		if err != nil {
			return fmt.Errorf("score %s: %w", code, err)
		}
		records = append(records, record)

		path, err := report.SaveRadar(dir, record)
		if err != nil {
			failed++
			PrintError(out, fmt.Sprintf("%s: %v", code, err))
			continue
		}
		PrintProgress(out, "Chart", fmt.Sprintf("%s %.2f → %s", code, record.TotalScore, path), i+1, len(args))
	}

	a.warnIfNoData(out, records)

	if failed > 0 {
		return fmt.Errorf("%d of %d charts failed", failed, len(args))
	}
	return nil
}
