package testutils

import (
	"context"
	"sync"

	"github.com/avolkov-dev/swingbot/types"
)

// MockProvider serves canned market data keyed by symbol and interval.
type MockProvider struct {
	mu sync.Mutex

	Prices map[string]float64
	// BarsData maps symbol -> interval -> bars.
	BarsData map[string]map[string][]types.Bar
	// Errs makes every fetch for the symbol fail.
	Errs map[string]error

	PriceCalls int
	BarsCalls  int
}

func NewMockProvider() *MockProvider {
	return &MockProvider{
		Prices:   make(map[string]float64),
		BarsData: make(map[string]map[string][]types.Bar),
		Errs:     make(map[string]error),
	}
}

// SetBars installs bars for a symbol/interval pair.
func (m *MockProvider) SetBars(symbol, interval string, bars []types.Bar) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BarsData[symbol] == nil {
		m.BarsData[symbol] = make(map[string][]types.Bar)
	}
	m.BarsData[symbol][interval] = bars
}

func (m *MockProvider) Price(_ context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PriceCalls++
	if err := m.Errs[symbol]; err != nil {
		return 0, err
	}
	return m.Prices[symbol], nil
}

func (m *MockProvider) Bars(_ context.Context, symbol, interval string, _ int) ([]types.Bar, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BarsCalls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	return m.BarsData[symbol][interval], nil
}
