package testutils

import (
	"context"
	"sync"

	"github.com/avolkov-dev/swingbot/types"
)

// SentSignal is one captured signal notification.
type SentSignal struct {
	Symbol   string
	Side     types.Side
	Levels   types.TradeLevels
	Strategy string
}

// SentClose is one captured close notification.
type SentClose struct {
	Symbol  string
	Side    types.Side
	Reason  types.CloseReason
	Price   float64
	ReplyTo int
}

// MockNotifier records notifications and hands out sequential message
// references.
type MockNotifier struct {
	mu sync.Mutex

	Signals []SentSignal
	Closes  []SentClose

	SignalErr error
	CloseErr  error

	nextRef int
}

func NewMockNotifier() *MockNotifier { return &MockNotifier{} }

func (m *MockNotifier) Signal(_ context.Context, symbol string, side types.Side, levels types.TradeLevels, strategy string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SignalErr != nil {
		return 0, m.SignalErr
	}
	m.Signals = append(m.Signals, SentSignal{Symbol: symbol, Side: side, Levels: levels, Strategy: strategy})
	m.nextRef++
	return m.nextRef, nil
}

func (m *MockNotifier) Close(_ context.Context, symbol string, side types.Side, reason types.CloseReason, price float64, replyTo int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.CloseErr != nil {
		return m.CloseErr
	}
	m.Closes = append(m.Closes, SentClose{Symbol: symbol, Side: side, Reason: reason, Price: price, ReplyTo: replyTo})
	return nil
}
