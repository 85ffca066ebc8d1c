package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// original is the composite breakout/reversal strategy the bot started
// with. It combines micro-level breakouts and two-candle reversals with
// RSI, MACD histogram, ATR volatility and a slow-timeframe trend
// filter, and is the only evaluator that ships risk hints with its
// signal.
type original struct {
	cfg config.StrategyConfig
}

func (s *original) Name() Name { return Original }

func (s *original) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 50 || len(slow) < 30 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)

	rsiVals := indicator.RSI(closes, s.cfg.RSIWindow)
	_, _, hist := indicator.MACD(closes, s.cfg.MACDFast, s.cfg.MACDSlow, s.cfg.MACDSignal)
	atrVals := indicator.ATR(highs, lows, closes, s.cfg.ATRWindow)
	slowEMA := indicator.EMA(types.Closes(slow), s.cfg.SlowTrendEMA)

	lastClose := last(closes)
	lastRSI := last(rsiVals)
	lastHist := last(hist)
	lastATR := last(atrVals)
	lastSlowEMA := last(slowEMA)

	// Levels come from the closes before the current bar so that a
	// fresh high can actually clear the resistance it is breaking.
	sup, res, ok := indicator.MicroLevels(closes[:len(closes)-1], s.cfg.MicroLevelWindow)
	if !ok || !indicator.Valid(lastRSI) {
		return nil
	}

	atrPct := lastATR / lastClose
	if atrPct*100 < s.cfg.MinVolatilityPct {
		return nil
	}
	if s.cfg.MinMACDHistAbs > 0 && math.Abs(lastHist) < s.cfg.MinMACDHistAbs {
		return nil
	}

	opens := types.Opens(fast)
	lastOpen := last(opens)
	prevOpen := prev(opens)
	prevClose := prev(closes)

	longCond := lastClose > res && lastHist > 0 && lastRSI > 45 && lastRSI < 75 && lastClose > lastSlowEMA
	shortCond := lastClose < sup && lastHist < 0 && lastRSI > 25 && lastRSI < 55 && lastClose < lastSlowEMA

	// Two-candle reversals near the levels with histogram agreement.
	bullReversal := lastClose > lastOpen &&
		prevClose < prevOpen &&
		lastHist > 0 &&
		lastRSI > 40 &&
		lastClose > sup &&
		lastClose > lastSlowEMA
	bearReversal := lastClose < lastOpen &&
		prevClose > prevOpen &&
		lastHist < 0 &&
		lastRSI < 60 &&
		lastClose < res &&
		lastClose < lastSlowEMA

	ctx := OriginalContext{
		RSI:        lastRSI,
		MACDHist:   lastHist,
		ATR:        lastATR,
		Support:    sup,
		Resistance: res,
	}

	if longCond || bullReversal {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}
	if shortCond || bearReversal {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
