package strategyconfig

import (
	"fmt"
	"strings"
	_ "time/tzdata" // meta.timezone must resolve without system zoneinfo
)

// ValidationError 검증 실패 (프로그램 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Warning 권장 위반 (경고만)
type Warning struct {
	Code    string
	Message string
}

// minLookbackDays covers 20 trading days plus weekends and holidays
const minLookbackDays = 30

// Validate checks all required constraints
// 실패 시 error 반환 (프로그램 중단)
func Validate(cfg *Config) error {
	// === Meta ===
	if cfg.Meta.StrategyID == "" {
		return ValidationError{"meta.strategy_id", "required"}
	}
	if _, err := cfg.Meta.Location(); err != nil {
		return ValidationError{"meta.timezone", err.Error()}
	}

	// === Universe ===
	for i, code := range cfg.Universe.Codes {
		if strings.TrimSpace(code) == "" {
			return ValidationError{fmt.Sprintf("universe.codes[%d]", i), "must not be blank"}
		}
	}

	// === Signals ===
	if cfg.Signals.Technical.LookbackDays < minLookbackDays {
		return ValidationError{"signals.technical.lookback_days", fmt.Sprintf("must be >= %d", minLookbackDays)}
	}

	// === Ranking ===
	for d, pct := range cfg.Ranking.WeightsPct.byDimension() {
		if pct < 0 {
			return ValidationError{fmt.Sprintf("ranking.weights_pct.%s", d), "must be >= 0"}
		}
	}
	if cfg.Ranking.WeightsPct.Sum() != 100 {
		return ValidationError{"ranking.weights_pct", fmt.Sprintf("must sum to 100, got %d", cfg.Ranking.WeightsPct.Sum())}
	}
	if cfg.Ranking.TopN < 0 {
		return ValidationError{"ranking.top_n", "must be >= 0"}
	}

	return nil
}

// Warn checks recommended constraints (non-fatal)
func Warn(cfg *Config) []Warning {
	var warnings []Warning

	if len(cfg.Universe.Codes) == 0 {
		warnings = append(warnings, Warning{
			Code:    "EMPTY_UNIVERSE",
			Message: "universe.codes 비어 있음: CLI 인자 또는 RANKING_CODES 필요",
		})
	}

	// 단일 차원 쏠림 경고
	for d, pct := range cfg.Ranking.WeightsPct.byDimension() {
		if pct > 40 {
			warnings = append(warnings, Warning{
				Code:    "CONCENTRATED_WEIGHT",
				Message: fmt.Sprintf("%s 가중치 %d%% > 40%%: 단일 차원 의존도 높음", d, pct),
			})
		}
	}

	return warnings
}
