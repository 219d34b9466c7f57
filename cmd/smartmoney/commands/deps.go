package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
	"github.com/wonny/smartmoney/internal/external/naver"
	"github.com/wonny/smartmoney/internal/marketdata"
	"github.com/wonny/smartmoney/internal/scoring"
	"github.com/wonny/smartmoney/internal/selection"
	"github.com/wonny/smartmoney/internal/strategyconfig"
	"github.com/wonny/smartmoney/pkg/config"
	"github.com/wonny/smartmoney/pkg/database"
	"github.com/wonny/smartmoney/pkg/httputil"
	"github.com/wonny/smartmoney/pkg/logger"
	"github.com/wonny/smartmoney/pkg/redis"
)

const cachePrefix = "smartmoney"

// naverDefaultCodes is the universe for the naver source when neither
// RANKING_CODES nor a strategy file names one (KOSPI large caps)
var naverDefaultCodes = []string{"005930", "000660", "035420", "005380", "051910"}

// app holds the wired dependencies shared by every command
type app struct {
	cfg          *config.Config
	log          *logger.Logger
	strategy     *strategyconfig.Config
	strategyFile string
	snapshot     *strategyconfig.RunSnapshot
	weights      contracts.WeightTable

	provider contracts.MarketDataProvider
	scorer   *scoring.Scorer
	ranker   *selection.Ranker

	defaultCodes []string
	fixtureCodes []string
	closers      []func()
}

// newApp loads configuration and wires provider → scorer → ranker
func newApp(ctx context.Context) (*app, error) {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if sourceFlag != "" {
		if err := cfg.OverrideSource(sourceFlag); err != nil {
			return nil, fmt.Errorf("--source: %w", err)
		}
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	// 2. Initialize logger
	a := &app{cfg: cfg, log: logger.New(cfg)}

	// 3. Strategy (weights, universe, lookback)
	if err := a.loadStrategy(); err != nil {
		return nil, err
	}

	// 4. Market data provider
	loc, err := a.strategy.Meta.Location()
	if err != nil {
		return nil, fmt.Errorf("strategy timezone: %w", err)
	}
	opts := []scoring.Option{
		scoring.WithLookbackDays(a.strategy.Signals.Technical.LookbackDays),
		scoring.WithLocation(loc),
	}
	provider, providerOpts, err := a.buildProvider(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	opts = append(opts, providerOpts...)

	if cfg.Redis.Enabled {
		rc, err := redis.New(cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { _ = rc.Close() })
		provider = marketdata.NewCachedProvider(provider, redis.NewCache(rc, cachePrefix), cfg.Redis.TTL, a.log)
		a.log.WithField("ttl", cfg.Redis.TTL.String()).Info("Provider cache enabled")
	}
	a.provider = provider

	// 5. Scorer + ranker
	a.scorer = scoring.NewScorer(provider, scoring.NewComposite(a.weights), a.log, opts...)
	a.ranker = selection.NewRanker(a.scorer, a.log)

	a.defaultCodes = resolveUniverse(cfg.Source, cfg.Scoring.Codes, a.strategy.Universe.Codes, a.strategyFile != "", a.fixtureCodes)

	return a, nil
}

func (a *app) loadStrategy() error {
	path := strategyFlag
	if path == "" {
		path = a.cfg.Scoring.StrategyFile
	}

	var (
		strategy *strategyconfig.Config
		raw      []byte
		err      error
	)
	if path != "" {
		strategy, raw, err = strategyconfig.Load(path)
		if err != nil {
			return fmt.Errorf("load strategy %s: %w", path, err)
		}
	} else {
		strategy = strategyconfig.Default()
	}

	weights, err := strategy.Ranking.WeightsPct.WeightTable()
	if err != nil {
		return fmt.Errorf("strategy weights: %w", err)
	}

	snapshot, err := strategyconfig.NewRunSnapshot(strategy, raw)
	if err != nil {
		return fmt.Errorf("strategy snapshot: %w", err)
	}

	for _, w := range strategyconfig.Warn(strategy) {
		a.log.WithField("code", w.Code).Warn(w.Message)
	}

	a.log.WithFields(map[string]interface{}{
		"strategy_id": snapshot.StrategyID,
		"config_hash": snapshot.ConfigHash,
		"file":        path,
	}).Info("Strategy loaded")

	a.strategy = strategy
	a.strategyFile = path
	a.snapshot = snapshot
	a.weights = weights
	return nil
}

// buildProvider creates the configured market data source
// ⭐ SSOT: 데이터 소스 선택은 여기서만
func (a *app) buildProvider(ctx context.Context) (contracts.MarketDataProvider, []scoring.Option, error) {
	switch a.cfg.Source {
	case config.SourceNaver:
		httpClient := httputil.New(a.cfg, a.log)
		client := naver.NewClient(httpClient, a.cfg.Naver, a.log)
		return naver.NewProvider(client), nil, nil

	case config.SourcePostgres:
		db, err := database.New(ctx, a.cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)
		a.log.Info("Connected to database")
		return marketdata.NewPostgresProvider(db.Pool), nil, nil

	case config.SourceFixture:
		fixture, err := marketdata.LoadFixture(a.cfg.Fixture)
		if err != nil {
			return nil, nil, err
		}
		var opts []scoring.Option
		// fixture bars are dated; score as of the snapshot day
		if asOf := fixture.AsOf(); !asOf.IsZero() {
			opts = append(opts, scoring.WithClock(func() time.Time { return asOf }))
		}
		a.fixtureCodes = fixture.Codes()
		a.log.WithFields(map[string]interface{}{
			"file":   a.cfg.Fixture,
			"stocks": len(a.fixtureCodes),
		}).Info("Fixture loaded")
		return fixture, opts, nil
	}

	return nil, nil, fmt.Errorf("unknown market data source: %s", a.cfg.Source)
}

// resolveUniverse picks the default codes: RANKING_CODES, then the naver
// default when the built-in strategy is used with naver, then the strategy
// universe, then every fixture stock
func resolveUniverse(source string, envCodes, strategyCodes []string, strategyFromFile bool, fixtureCodes []string) []string {
	switch {
	case len(envCodes) > 0:
		return envCodes
	case source == config.SourceNaver && !strategyFromFile:
		return naverDefaultCodes
	case len(strategyCodes) > 0:
		return strategyCodes
	}
	return fixtureCodes
}

// noData reports whether every dimension of every record fell back to neutral
func noData(records []*contracts.ScoreRecord) bool {
	if len(records) == 0 {
		return false
	}
	for _, r := range records {
		if len(r.Unavailable) < len(contracts.Dimensions) {
			return false
		}
	}
	return true
}

// warnIfNoData flags a run where the source returned nothing usable
func (a *app) warnIfNoData(w io.Writer, records []*contracts.ScoreRecord) {
	if !noData(records) {
		return
	}
	a.log.Warnf("source %s returned no data for any of %d stocks; all scores are neutral", a.cfg.Source, len(records))
	PrintWarning(w, fmt.Sprintf("No market data from source %q: every dimension is neutral (50). Check the codes and MARKET_DATA_SOURCE.", a.cfg.Source))
}

// codes returns args, or the configured universe when none are given
func (a *app) codes(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if len(a.defaultCodes) == 0 {
		return nil, fmt.Errorf("no stock codes: pass codes, set RANKING_CODES or universe.codes")
	}
	return a.defaultCodes, nil
}

// Close releases connections in reverse order
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func (a *app) runMetadata(title string, codes []string) RunMetadata {
	return RunMetadata{
		Title:      title,
		Source:     a.cfg.Source,
		StrategyID: a.snapshot.StrategyID,
		ConfigHash: a.snapshot.ConfigHash,
		Codes:      codes,
	}
}
