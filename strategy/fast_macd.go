package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// fastMACD trades the moment the short-window MACD histogram flips sign,
// with the MACD line on the right side of its signal and RSI in a
// momentum band.
type fastMACD struct {
	cfg config.StrategyConfig
}

func (s *fastMACD) Name() Name { return FastMACD }

func (s *fastMACD) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 30 {
		return nil
	}
	closes := types.Closes(fast)

	macdLine, signalLine, hist := indicator.MACD(closes, s.cfg.FastMACDFast, s.cfg.FastMACDSlow, s.cfg.FastMACDSignal)
	rsiVals := indicator.RSI(closes, s.cfg.RSIWindow)

	lastClose := last(closes)
	lastMACD := last(macdLine)
	lastSignal := last(signalLine)
	lastHist := last(hist)
	prevHist := prev(hist)
	lastRSI := last(rsiVals)
	if !indicator.Valid(lastRSI) {
		return nil
	}

	ctx := FastMACDContext{
		MACD:      lastMACD,
		Signal:    lastSignal,
		Histogram: lastHist,
		RSI:       lastRSI,
	}

	if lastMACD > lastSignal && lastHist > 0 && prevHist <= 0 && lastRSI > 45 && lastRSI < 75 {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}
	if lastMACD < lastSignal && lastHist < 0 && prevHist >= 0 && lastRSI < 55 && lastRSI > 25 {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
