package marketdata

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/wonny/smartmoney/internal/contracts"
)

// Fixture is an offline market data snapshot
type Fixture struct {
	AsOf   time.Time               `yaml:"as_of"`
	Stocks map[string]FixtureStock `yaml:"stocks"`
}

// FixtureStock holds every data slice of one stock; omitted slices are unavailable
type FixtureStock struct {
	Margin    []contracts.MarginPoint  `yaml:"margin"`
	Holdings  []contracts.HoldingPoint `yaml:"holdings"`
	Flow      *contracts.CapitalFlow   `yaml:"flow"`
	Bars      []contracts.Bar          `yaml:"bars"`
	Valuation *contracts.Valuation     `yaml:"valuation"`
}

// FixtureProvider serves a Fixture as a contracts.MarketDataProvider
type FixtureProvider struct {
	fixture Fixture
}

// LoadFixture reads a YAML fixture file
func LoadFixture(path string) (*FixtureProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes YAML fixture bytes
func ParseFixture(data []byte) (*FixtureProvider, error) {
	var f Fixture
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &FixtureProvider{fixture: f}, nil
}

// AsOf returns the snapshot date, zero when unset
func (p *FixtureProvider) AsOf() time.Time {
	return p.fixture.AsOf
}

// Codes lists the stocks present in the fixture, sorted
func (p *FixtureProvider) Codes() []string {
	codes := make([]string, 0, len(p.fixture.Stocks))
	for code := range p.fixture.Stocks {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func (p *FixtureProvider) stock(code string) (FixtureStock, error) {
	s, ok := p.fixture.Stocks[code]
	if !ok {
		return FixtureStock{}, contracts.Unavailable("stock %s not in fixture", code)
	}
	return s, nil
}

func (p *FixtureProvider) MarginHistory(ctx context.Context, code string) ([]contracts.MarginPoint, error) {
	s, err := p.stock(code)
	if err != nil {
		return nil, err
	}
	if len(s.Margin) == 0 {
		return nil, contracts.Unavailable("no margin data for %s", code)
	}
	return s.Margin, nil
}

func (p *FixtureProvider) HoldingHistory(ctx context.Context, code string) ([]contracts.HoldingPoint, error) {
	s, err := p.stock(code)
	if err != nil {
		return nil, err
	}
	if len(s.Holdings) == 0 {
		return nil, contracts.Unavailable("no holding data for %s", code)
	}
	return s.Holdings, nil
}

func (p *FixtureProvider) CapitalFlow(ctx context.Context, code string) (*contracts.CapitalFlow, error) {
	s, err := p.stock(code)
	if err != nil {
		return nil, err
	}
	if s.Flow == nil {
		return nil, contracts.Unavailable("no flow data for %s", code)
	}
	flow := *s.Flow
	return &flow, nil
}

// DailyBars filters fixture bars to [from, to]
func (p *FixtureProvider) DailyBars(ctx context.Context, code string, from, to time.Time) ([]contracts.Bar, error) {
	s, err := p.stock(code)
	if err != nil {
		return nil, err
	}

	var bars []contracts.Bar
	for _, b := range s.Bars {
		if b.Date.Before(from) || b.Date.After(to) {
			continue
		}
		bars = append(bars, b)
	}
	if len(bars) == 0 {
		return nil, contracts.Unavailable("no bars for %s in window", code)
	}
	return bars, nil
}

func (p *FixtureProvider) Valuation(ctx context.Context, code string) (*contracts.Valuation, error) {
	s, err := p.stock(code)
	if err != nil {
		return nil, err
	}
	if s.Valuation == nil {
		return nil, contracts.Unavailable("no valuation for %s", code)
	}
	v := *s.Valuation
	return &v, nil
}
