package commands

import (
	"fmt"
	"io"
	"strings"
)

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const lineWidth = 59

// RunMetadata describes one CLI run for the header block
type RunMetadata struct {
	Title      string
	Source     string
	StrategyID string
	ConfigHash string
	Codes      []string
}

// PrintRunHeader prints a formatted run header
func PrintRunHeader(w io.Writer, meta RunMetadata) {
	fmt.Fprintln(w)
	PrintDoubleSeparator(w)
	fmt.Fprintf(w, "  %s\n", meta.Title)
	PrintSeparator(w)
	PrintKeyValue(w, "Source", meta.Source, 9)
	PrintKeyValue(w, "Strategy", meta.StrategyID, 9)
	if meta.ConfigHash != "" {
		PrintKeyValue(w, "Config", shortHash(meta.ConfigHash), 9)
	}
	if len(meta.Codes) > 0 {
		PrintKeyValue(w, "Stocks", strings.Join(meta.Codes, ", "), 9)
	}
	PrintSeparator(w)
}

// PrintProgress prints a progress step with counter
// Example: [Rank] Scored 600519 [2/5]
func PrintProgress(w io.Writer, tag, message string, current, total int) {
	fmt.Fprintf(w, "[%s] %s [%d/%d]\n", tag, message, current, total)
}

// PrintSeparator prints a visual separator
func PrintSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("─", lineWidth))
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("═", lineWidth))
}

// PrintWarning prints a warning message
func PrintWarning(w io.Writer, message string) {
	fmt.Fprintf(w, "⚠️  %s\n", message)
}

// PrintSuccess prints a success message
func PrintSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(w io.Writer, message string) {
	fmt.Fprintf(w, "❌ %s\n", message)
}

// PrintKeyValue prints key-value pairs
func PrintKeyValue(w io.Writer, key, value string, keyWidth int) {
	fmt.Fprintf(w, "  %-*s : %s\n", keyWidth, key, value)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
