package strategyconfig

import (
	"fmt"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
)

// Config는 스마트머니 종합 평가 전략의 전체 설정
type Config struct {
	Meta     Meta     `yaml:"meta" json:"meta"`
	Universe Universe `yaml:"universe" json:"universe"`
	Signals  Signals  `yaml:"signals" json:"signals"`
	Ranking  Ranking  `yaml:"ranking" json:"ranking"`
}

// Meta 메타 정보
type Meta struct {
	StrategyID string `yaml:"strategy_id" json:"strategy_id"`
	Version    string `yaml:"version" json:"version"`
	Timezone   string `yaml:"timezone" json:"timezone"` // report timestamps; empty = UTC
}

// Location resolves Timezone
func (m Meta) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q", m.Timezone)
	}
	return loc, nil
}

// Universe 평가 대상 종목
type Universe struct {
	Codes []string `yaml:"codes" json:"codes"`
}

// Signals 차원별 입력 설정
type Signals struct {
	Technical Technical `yaml:"technical" json:"technical"`
}

type Technical struct {
	LookbackDays int `yaml:"lookback_days" json:"lookback_days"` // calendar days of bars
}

// Ranking 종합 점수 가중치
type Ranking struct {
	WeightsPct RankingWeights `yaml:"weights_pct" json:"weights_pct"`
	TopN       int            `yaml:"top_n" json:"top_n"` // candidates to report in detail
}

// RankingWeights 차원별 가중치 (정수 %, 합 = 100)
type RankingWeights struct {
	Funding           int `yaml:"funding" json:"funding"`
	NorthMoney        int `yaml:"north_money" json:"north_money"`
	MainMoney         int `yaml:"main_money" json:"main_money"`
	Technical         int `yaml:"technical" json:"technical"`
	PriceVolume       int `yaml:"price_volume" json:"price_volume"`
	MarketPerformance int `yaml:"market_performance" json:"market_performance"`
	Liquidity         int `yaml:"liquidity" json:"liquidity"`
}

// Sum returns the total percentage
func (w RankingWeights) Sum() int {
	return w.Funding + w.NorthMoney + w.MainMoney + w.Technical +
		w.PriceVolume + w.MarketPerformance + w.Liquidity
}

func (w RankingWeights) byDimension() map[contracts.Dimension]int {
	return map[contracts.Dimension]int{
		contracts.DimFunding:           w.Funding,
		contracts.DimNorthMoney:        w.NorthMoney,
		contracts.DimMainMoney:         w.MainMoney,
		contracts.DimTechnical:         w.Technical,
		contracts.DimPriceVolume:       w.PriceVolume,
		contracts.DimMarketPerformance: w.MarketPerformance,
		contracts.DimLiquidity:         w.Liquidity,
	}
}

// WeightTable converts percentages into a validated contracts.WeightTable
func (w RankingWeights) WeightTable() (contracts.WeightTable, error) {
	weights := make(map[contracts.Dimension]float64, len(contracts.Dimensions))
	for d, pct := range w.byDimension() {
		weights[d] = float64(pct) / 100
	}
	return contracts.NewWeightTable(weights)
}

// Default returns the standard strategy
func Default() *Config {
	return &Config{
		Meta: Meta{
			StrategyID: "smartmoney_v2",
			Version:    "2.0.0",
			Timezone:   "Asia/Shanghai",
		},
		Universe: Universe{
			Codes: []string{"000858", "600519", "000333", "601318", "600036"},
		},
		Signals: Signals{
			Technical: Technical{LookbackDays: 60},
		},
		Ranking: Ranking{
			WeightsPct: RankingWeights{
				Funding:           15,
				NorthMoney:        20,
				MainMoney:         15,
				Technical:         20,
				PriceVolume:       10,
				MarketPerformance: 10,
				Liquidity:         10,
			},
			TopN: 1,
		},
	}
}

// RunSnapshot 실행 스냅샷 (재현성용)
type RunSnapshot struct {
	ConfigHash string    `json:"config_hash"`
	ConfigYAML string    `json:"config_yaml,omitempty"`
	StrategyID string    `json:"strategy_id"`
	CreatedAt  time.Time `json:"created_at"`
}
