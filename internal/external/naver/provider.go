package naver

import (
	"context"
	"sync"
	"time"

	"github.com/wonny/smartmoney/internal/contracts"
)

// Provider adapts Naver Finance to contracts.MarketDataProvider.
//   - margin balances: not published, always unavailable
//   - holdings: 외국인 보유주수 from frgn.naver
//   - capital flow: (외국인 + 기관 순매매) × 종가, turnover = 거래량 / 상장주식수
//   - valuation: market stock list
//
// Investor pages and market cap lookups are memoized per code for memoTTL,
// so scoring one stock fetches each once.
type Provider struct {
	client  *Client
	memoTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	flows     map[string]memoEntry[[]InvestorDay]
	marketCap map[string]memoEntry[*MarketCapData]
}

// DefaultMemoTTL bounds how long a per-code fetch is reused
const DefaultMemoTTL = time.Minute

type memoEntry[T any] struct {
	value T
	err   error
	at    time.Time
}

// NewProvider creates a new Naver market data provider
func NewProvider(client *Client) *Provider {
	return &Provider{
		client:    client,
		memoTTL:   DefaultMemoTTL,
		now:       time.Now,
		flows:     make(map[string]memoEntry[[]InvestorDay]),
		marketCap: make(map[string]memoEntry[*MarketCapData]),
	}
}

// memoized returns the cached result for code, or calls fetch and stores it.
// Results of a cancelled fetch are not stored. The lock is not held while fetching.
func memoized[T any](ctx context.Context, p *Provider, cache map[string]memoEntry[T], code string, fetch func() (T, error)) (T, error) {
	p.mu.Lock()
	entry, ok := cache[code]
	p.mu.Unlock()
	if ok && p.now().Sub(entry.at) < p.memoTTL {
		return entry.value, entry.err
	}

	value, err := fetch()
	if ctx.Err() != nil {
		return value, err
	}

	p.mu.Lock()
	cache[code] = memoEntry[T]{value: value, err: err, at: p.now()}
	p.mu.Unlock()
	return value, err
}

func (p *Provider) investorFlow(ctx context.Context, code string) ([]InvestorDay, error) {
	return memoized(ctx, p, p.flows, code, func() ([]InvestorDay, error) {
		return p.client.FetchInvestorFlow(ctx, code)
	})
}

func (p *Provider) marketCapOf(ctx context.Context, code string) (*MarketCapData, error) {
	return memoized(ctx, p, p.marketCap, code, func() (*MarketCapData, error) {
		return p.client.FetchMarketCap(ctx, code)
	})
}

func (p *Provider) MarginHistory(ctx context.Context, code string) ([]contracts.MarginPoint, error) {
	return nil, contracts.Unavailable("naver does not publish margin balances")
}

func (p *Provider) HoldingHistory(ctx context.Context, code string) ([]contracts.HoldingPoint, error) {
	days, err := p.investorFlow(ctx, code)
	if err != nil {
		return nil, err
	}

	points := make([]contracts.HoldingPoint, 0, len(days))
	for _, d := range days {
		if d.ForeignHeld <= 0 {
			continue
		}
		points = append(points, contracts.HoldingPoint{Date: d.TradeDate, Shares: float64(d.ForeignHeld)})
	}
	if len(points) == 0 {
		return nil, contracts.Unavailable("no foreign holdings for %s", code)
	}
	return points, nil
}

func (p *Provider) CapitalFlow(ctx context.Context, code string) (*contracts.CapitalFlow, error) {
	days, err := p.investorFlow(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, contracts.Unavailable("no investor flow for %s", code)
	}

	latest := days[len(days)-1]
	flow := &contracts.CapitalFlow{
		Date:      latest.TradeDate,
		NetInflow: float64(latest.ForeignNet+latest.InstitutionNet) * latest.Close,
	}

	// turnover is informational; a market cap miss leaves it zero
	if mc, err := p.marketCapOf(ctx, code); err == nil && mc.SharesOutstanding > 0 {
		flow.Turnover = float64(latest.Volume) / float64(mc.SharesOutstanding)
	}
	return flow, nil
}

func (p *Provider) DailyBars(ctx context.Context, code string, from, to time.Time) ([]contracts.Bar, error) {
	bars, err := p.client.FetchPrices(ctx, code, from, to)
	if err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, contracts.Unavailable("no prices for %s", code)
	}
	return bars, nil
}

func (p *Provider) Valuation(ctx context.Context, code string) (*contracts.Valuation, error) {
	mc, err := p.marketCapOf(ctx, code)
	if err != nil {
		return nil, contracts.Unavailable("market cap for %s: %v", code, err)
	}

	return &contracts.Valuation{
		Date:              mc.TradeDate,
		MarketCap:         float64(mc.MarketCap),
		SharesOutstanding: mc.SharesOutstanding,
	}, nil
}
