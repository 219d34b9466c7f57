package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/internal/report"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <code>",
	Short: "Detailed smart money report for one stock",
	Long: `Scores a single stock and prints its report.

Formats:
  text      console report (default)
  markdown  markdown table
  html      markdown rendered to HTML

Example:
  go run ./cmd/smartmoney analyze 005930
  go run ./cmd/smartmoney analyze 005930 --format html > 005930.html`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeFormat  string
	analyzeOutDir  string
	analyzeNoChart bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "text", "report format (text|markdown|html)")
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out", "", "radar chart directory (default: REPORT_DIR)")
	analyzeCmd.Flags().BoolVar(&analyzeNoChart, "no-chart", false, "skip radar chart output")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	record, err := a.scorer.Score(ctx, args[0])
	if err != nil {
		return fmt.Errorf("score %s: %w", args[0], err)
	}

	a.warnIfNoData(cmd.ErrOrStderr(), []*contracts.ScoreRecord{record})

	out := cmd.OutOrStdout()
	if err := writeReport(out, analyzeFormat, a, record); err != nil {
		return err
	}

	if analyzeNoChart {
		return nil
	}
	dir := analyzeOutDir
	if dir == "" {
		dir = a.cfg.Scoring.ReportDir
	}
	path, err := report.SaveRadar(dir, record)
	if err != nil {
		return err
	}
	// keep stdout clean for markdown/html redirection
	PrintSuccess(cmd.ErrOrStderr(), fmt.Sprintf("Radar chart saved: %s", path))
	return nil
}

func writeReport(w io.Writer, format string, a *app, record *contracts.ScoreRecord) error {
	switch format {
	case "", "text":
		return report.WriteText(w, record, a.weights)
	case "markdown", "md":
		_, err := io.WriteString(w, report.Markdown(record, a.weights))
		return err
	case "html":
		html, err := report.HTML(record, a.weights)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html)
		return err
	}
	return fmt.Errorf("unknown format %q (text|markdown|html)", format)
}
