package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// bbSqueeze waits for the Bollinger bands to compress below a width
// threshold and trades the first close outside them, RSI confirming the
// direction without being at an extreme yet.
type bbSqueeze struct {
	cfg config.StrategyConfig
}

func (s *bbSqueeze) Name() Name { return BBSqueeze }

func (s *bbSqueeze) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < s.cfg.BBWindow+10 {
		return nil
	}
	closes := types.Closes(fast)

	upper, middle, lower := indicator.BollingerBands(closes, s.cfg.BBWindow, s.cfg.BBStdDev)
	rsiVals := indicator.RSI(closes, s.cfg.RSIWindow)

	lastClose := last(closes)
	lastUpper := last(upper)
	lastLower := last(lower)
	lastMiddle := last(middle)
	lastRSI := last(rsiVals)
	if !indicator.Valid(lastUpper) || !indicator.Valid(lastRSI) {
		return nil
	}

	bandWidth := (lastUpper - lastLower) / lastMiddle * 100
	if bandWidth >= s.cfg.BBSqueezeThreshold {
		return nil
	}

	prevClose := prev(closes)
	prevUpper := prev(upper)
	prevLower := prev(lower)
	if !indicator.Valid(prevUpper) || !indicator.Valid(prevLower) {
		return nil
	}

	ctx := BBSqueezeContext{
		UpperBand:  lastUpper,
		MiddleBand: lastMiddle,
		LowerBand:  lastLower,
		BandWidth:  bandWidth,
		RSI:        lastRSI,
	}

	if lastClose > lastUpper && prevClose <= prevUpper && lastRSI > 50 && lastRSI < 80 {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}
	if lastClose < lastLower && prevClose >= prevLower && lastRSI < 50 && lastRSI > 20 {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
