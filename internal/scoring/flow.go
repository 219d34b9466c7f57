package scoring

import (
	"github.com/wonny/smartmoney/internal/contracts"
)

// Margin balance growth buckets
var fundingBands = []band{
	{above: 0.10, score: 90},
	{above: 0.05, score: 75},
	{above: 0, score: 60},
	{above: -0.05, score: 40},
}

// Cross-border holding growth buckets
var northMoneyBands = []band{
	{above: 0.20, score: 95},
	{above: 0.10, score: 80},
	{above: 0.05, score: 70},
	{above: 0, score: 60},
	{above: -0.05, score: 45},
	{above: -0.10, score: 30},
}

// Main-capital net inflow buckets (currency units)
var mainMoneyBands = []band{
	{above: 10_000_000, score: 90},
	{above: 5_000_000, score: 75},
	{above: 0, score: 60},
	{above: -5_000_000, score: 40},
}

// FundingScore scores the change of the latest margin balance against the
// previous one. A single point compares with itself.
func FundingScore(history []contracts.MarginPoint) (float64, error) {
	n := len(history)
	if n == 0 {
		return 0, contracts.Unavailable("no margin balance history")
	}

	latest := history[n-1].Balance
	prev := latest
	if n > 1 {
		prev = history[n-2].Balance
	}

	change := relativeChange(latest, prev)
	if err := finite(change, "margin balance change"); err != nil {
		return 0, err
	}

	return bucketAbove(change, fundingBands, 20), nil
}

// NorthMoneyScore scores the change in cross-border held shares
func NorthMoneyScore(history []contracts.HoldingPoint) (float64, error) {
	n := len(history)
	if n == 0 {
		return 0, contracts.Unavailable("no cross-border holding history")
	}

	latest := history[n-1].Shares
	prev := latest
	if n > 1 {
		prev = history[n-2].Shares
	}

	change := relativeChange(latest, prev)
	if err := finite(change, "holding change"); err != nil {
		return 0, err
	}

	return bucketAbove(change, northMoneyBands, 20), nil
}

// MainMoneyScore scores the absolute main-capital net inflow
func MainMoneyScore(flow *contracts.CapitalFlow) (float64, error) {
	if flow == nil {
		return 0, contracts.Unavailable("no capital flow snapshot")
	}
	if err := finite(flow.NetInflow, "net inflow"); err != nil {
		return 0, err
	}

	return bucketAbove(flow.NetInflow, mainMoneyBands, 25), nil
}
