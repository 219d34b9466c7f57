package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/smartmoney/internal/contracts"
)

// historyLimit bounds margin and holding history reads
const historyLimit = 20

// PostgresProvider implements contracts.MarketDataProvider over the data schema
// ⭐ SSOT: DB 기반 시장 데이터 조회는 여기서만
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a new postgres provider
func NewPostgresProvider(pool *pgxpool.Pool) *PostgresProvider {
	return &PostgresProvider{pool: pool}
}

// MarginHistory reads the latest financing balances, ascending by date
func (p *PostgresProvider) MarginHistory(ctx context.Context, code string) ([]contracts.MarginPoint, error) {
	query := `
		SELECT trade_date, balance::float8
		FROM data.margin_balances
		WHERE stock_code = $1
		ORDER BY trade_date DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, code, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("query margin balances: %w", err)
	}

	points, err := pgx.CollectRows(rows, pgx.RowToStructByPos[contracts.MarginPoint])
	if err != nil {
		return nil, fmt.Errorf("scan margin balances: %w", err)
	}
	if len(points) == 0 {
		return nil, contracts.Unavailable("no margin balances for %s", code)
	}

	reverse(points)
	return points, nil
}

// HoldingHistory reads foreign held shares, ascending by date
func (p *PostgresProvider) HoldingHistory(ctx context.Context, code string) ([]contracts.HoldingPoint, error) {
	query := `
		SELECT trade_date, held_shares::float8
		FROM data.foreign_holdings
		WHERE stock_code = $1
		ORDER BY trade_date DESC
		LIMIT $2
	`

	rows, err := p.pool.Query(ctx, query, code, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("query foreign holdings: %w", err)
	}

	points, err := pgx.CollectRows(rows, pgx.RowToStructByPos[contracts.HoldingPoint])
	if err != nil {
		return nil, fmt.Errorf("scan foreign holdings: %w", err)
	}
	if len(points) == 0 {
		return nil, contracts.Unavailable("no foreign holdings for %s", code)
	}

	reverse(points)
	return points, nil
}

// CapitalFlow reads the latest foreign + institutional net value and the
// day's turnover (volume / shares outstanding)
func (p *PostgresProvider) CapitalFlow(ctx context.Context, code string) (*contracts.CapitalFlow, error) {
	query := `
		SELECT f.trade_date,
		       (f.foreign_net_value + f.inst_net_value)::float8,
		       COALESCE(p.volume::float8 / NULLIF(m.shares_outstanding, 0), 0)::float8
		FROM data.investor_flow f
		LEFT JOIN data.daily_prices p ON p.stock_code = f.stock_code AND p.trade_date = f.trade_date
		LEFT JOIN data.market_cap m ON m.stock_code = f.stock_code AND m.trade_date = f.trade_date
		WHERE f.stock_code = $1
		ORDER BY f.trade_date DESC
		LIMIT 1
	`

	var flow contracts.CapitalFlow
	err := p.pool.QueryRow(ctx, query, code).Scan(&flow.Date, &flow.NetInflow, &flow.Turnover)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.Unavailable("no investor flow for %s", code)
	}
	if err != nil {
		return nil, fmt.Errorf("query investor flow: %w", err)
	}
	return &flow, nil
}

// DailyBars reads OHLCV bars within [from, to]
func (p *PostgresProvider) DailyBars(ctx context.Context, code string, from, to time.Time) ([]contracts.Bar, error) {
	query := `
		SELECT trade_date, open_price::float8, high_price::float8, low_price::float8, close_price::float8, volume
		FROM data.daily_prices
		WHERE stock_code = $1 AND trade_date BETWEEN $2 AND $3
		ORDER BY trade_date ASC
	`

	rows, err := p.pool.Query(ctx, query, code, from, to)
	if err != nil {
		return nil, fmt.Errorf("query daily prices: %w", err)
	}

	bars, err := pgx.CollectRows(rows, pgx.RowToStructByPos[contracts.Bar])
	if err != nil {
		return nil, fmt.Errorf("scan daily prices: %w", err)
	}
	if len(bars) == 0 {
		return nil, contracts.Unavailable("no daily prices for %s between %s and %s",
			code, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	return bars, nil
}

// Valuation reads the latest market cap snapshot
func (p *PostgresProvider) Valuation(ctx context.Context, code string) (*contracts.Valuation, error) {
	query := `
		SELECT trade_date, market_cap::float8, shares_outstanding
		FROM data.market_cap
		WHERE stock_code = $1
		ORDER BY trade_date DESC
		LIMIT 1
	`

	var v contracts.Valuation
	err := p.pool.QueryRow(ctx, query, code).Scan(&v.Date, &v.MarketCap, &v.SharesOutstanding)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, contracts.Unavailable("no market cap for %s", code)
	}
	if err != nil {
		return nil, fmt.Errorf("query market cap: %w", err)
	}
	return &v, nil
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
