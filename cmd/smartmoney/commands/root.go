package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	sourceFlag   string
	strategyFlag string
	verbose      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smartmoney",
	Short: "Smart money composite stock scorer",
	Long: `smartmoney scores stocks on seven dimensions (margin financing,
cross-border holdings, main-capital flow, technicals, price-volume,
recent performance, liquidity tier), ranks them by weighted total and
reports the top candidate with a radar chart.

Usage:
  go run ./cmd/smartmoney [command]

Examples:
  go run ./cmd/smartmoney rank
  go run ./cmd/smartmoney rank 005930 000660 035420
  go run ./cmd/smartmoney analyze 005930
  go run ./cmd/smartmoney chart 005930 --out reports
  go run ./cmd/smartmoney serve --port 8089
  go run ./cmd/smartmoney rank --source fixture`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "market data source override (naver|postgres|fixture)")
	rootCmd.PersistentFlags().StringVar(&strategyFlag, "strategy", "", "strategy YAML file (default: STRATEGY_FILE or built-in)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}
