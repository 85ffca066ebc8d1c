package types

import "time"

// Side is the direction of a signal or position.
type Side string

const (
	Long  Side = "LONG"
	Short Side = "SHORT"
)

// Valid reports whether s is one of the two known directions.
func (s Side) Valid() bool { return s == Long || s == Short }

// CloseReason classifies why a position was closed.
type CloseReason string

const (
	CloseTP CloseReason = "TP"
	CloseSL CloseReason = "SL"
	CloseBE CloseReason = "BE"
)

// Bar is a single OHLCV observation. Bars for one symbol/timeframe form
// an ordered sequence, strictly increasing by Time.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes extracts the close column from a bar sequence.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

// Opens extracts the open column from a bar sequence.
func Opens(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Open
	}
	return out
}

// Highs extracts the high column from a bar sequence.
func Highs(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.High
	}
	return out
}

// Lows extracts the low column from a bar sequence.
func Lows(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Low
	}
	return out
}

// Volumes extracts the volume column from a bar sequence.
func Volumes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Volume
	}
	return out
}

// RiskHints carries the pre-computed readings the risk calculator can
// reuse. A zero field means the producing strategy did not supply it
// and the caller must derive it from the bars instead.
type RiskHints struct {
	ATR        float64
	Support    float64
	Resistance float64
}

// Context is the per-strategy payload attached to a Signal. Each
// strategy ships its own concrete context type carrying exactly the
// readings that justified the decision.
type Context interface {
	StrategyName() string
	Hints() RiskHints
}

// Signal is a directional trade proposal. Immutable once produced.
type Signal struct {
	Side    Side
	Entry   float64
	Context Context
}

// TradeLevels are the risk-bounded price levels for one trade.
// For LONG: Stop < Entry < Take. For SHORT: Take < Entry < Stop.
type TradeLevels struct {
	Entry float64
	Stop  float64
	Take  float64
	RR    float64
}

// WithStop returns a copy of the levels with the stop replaced. Stop
// promotion is modelled as a new value rather than an in-place write so
// the transition stays auditable.
func (l TradeLevels) WithStop(stop float64) TradeLevels {
	l.Stop = stop
	return l
}

// RiskDistance is the absolute distance between entry and stop.
func (l TradeLevels) RiskDistance() float64 {
	d := l.Entry - l.Stop
	if d < 0 {
		return -d
	}
	return d
}

// OpenPosition is the tracked state of one accepted signal. At most one
// exists per symbol at any time; the position book owns the mapping.
type OpenPosition struct {
	Symbol         string
	Side           Side
	Levels         TradeLevels
	MessageRef     int
	OpenedAt       time.Time
	BreakevenMoved bool
}
