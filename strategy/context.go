package strategy

import "github.com/avolkov-dev/swingbot/types"

// Per-strategy signal contexts. Each carries exactly the readings that
// justified the decision. Only the composite strategy pre-computes the
// readings the risk calculator wants; everyone else leaves the hints
// zero and the engine derives them from the fast bars.

// TripleEMAContext records the ribbon and momentum readings.
type TripleEMAContext struct {
	EMAFast   float64
	EMAMedium float64
	EMASlow   float64
	RSI       float64
}

func (TripleEMAContext) StrategyName() string   { return string(TripleEMA) }
func (TripleEMAContext) Hints() types.RiskHints { return types.RiskHints{} }

// VWAPFadeContext records the divergence that was faded.
type VWAPFadeContext struct {
	VWAP          float64
	DivergencePct float64
	Shadow        float64
}

func (VWAPFadeContext) StrategyName() string   { return string(VWAPFade) }
func (VWAPFadeContext) Hints() types.RiskHints { return types.RiskHints{} }

// BBSqueezeContext records the band geometry at the breakout.
type BBSqueezeContext struct {
	UpperBand  float64
	MiddleBand float64
	LowerBand  float64
	BandWidth  float64
	RSI        float64
}

func (BBSqueezeContext) StrategyName() string   { return string(BBSqueeze) }
func (BBSqueezeContext) Hints() types.RiskHints { return types.RiskHints{} }

// FastMACDContext records the histogram flip.
type FastMACDContext struct {
	MACD      float64
	Signal    float64
	Histogram float64
	RSI       float64
}

func (FastMACDContext) StrategyName() string   { return string(FastMACD) }
func (FastMACDContext) Hints() types.RiskHints { return types.RiskHints{} }

// RangeScalpContext records the trading range boundaries.
type RangeScalpContext struct {
	RangeHigh float64
	RangeLow  float64
	RangeMid  float64
}

func (RangeScalpContext) StrategyName() string   { return string(RangeScalp) }
func (RangeScalpContext) Hints() types.RiskHints { return types.RiskHints{} }

// BreakoutRetestContext records the level being retested.
type BreakoutRetestContext struct {
	BreakoutLevel float64
	SwingHigh     float64
	SwingLow      float64
}

func (BreakoutRetestContext) StrategyName() string   { return string(BreakoutRetest) }
func (BreakoutRetestContext) Hints() types.RiskHints { return types.RiskHints{} }

// KeltnerStochContext records the channel touch and oscillator turn.
type KeltnerStochContext struct {
	KeltnerUpper float64
	KeltnerLower float64
	StochK       float64
}

func (KeltnerStochContext) StrategyName() string   { return string(KeltnerStoch) }
func (KeltnerStochContext) Hints() types.RiskHints { return types.RiskHints{} }

// ConfluenceContext records the VWAP/EMA cluster.
type ConfluenceContext struct {
	VWAP float64
	EMA  float64
}

func (ConfluenceContext) StrategyName() string   { return string(VWAPEMAConfluence) }
func (ConfluenceContext) Hints() types.RiskHints { return types.RiskHints{} }

// HeikinAshiContext records the smoothed-trend vote.
type HeikinAshiContext struct {
	TrendStrength float64
	TrendCandles  int
	TotalCandles  int
}

func (HeikinAshiContext) StrategyName() string   { return string(HeikinAshiTrend) }
func (HeikinAshiContext) Hints() types.RiskHints { return types.RiskHints{} }

// VolumeSpikeContext records the spike that triggered.
type VolumeSpikeContext struct {
	VolumeRatio    float64
	PriceChangePct float64
	AvgVolume      float64
	CurrentVolume  float64
}

func (VolumeSpikeContext) StrategyName() string   { return string(VolumeSpike) }
func (VolumeSpikeContext) Hints() types.RiskHints { return types.RiskHints{} }

// OriginalContext is the composite strategy's payload. It is the one
// context that ships ready-made risk inputs.
type OriginalContext struct {
	RSI        float64
	MACDHist   float64
	ATR        float64
	Support    float64
	Resistance float64
}

func (OriginalContext) StrategyName() string { return string(Original) }
func (c OriginalContext) Hints() types.RiskHints {
	return types.RiskHints{ATR: c.ATR, Support: c.Support, Resistance: c.Resistance}
}
