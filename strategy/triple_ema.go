package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// tripleEMA trades pullbacks to the fast EMA inside an aligned three-EMA
// ribbon, with an RSI band keeping entries away from exhaustion.
type tripleEMA struct {
	cfg config.StrategyConfig
}

func (s *tripleEMA) Name() Name { return TripleEMA }

func (s *tripleEMA) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 60 {
		return nil
	}
	closes := types.Closes(fast)

	emaFast := indicator.EMA(closes, s.cfg.EMAFast)
	emaMedium := indicator.EMA(closes, s.cfg.EMAMedium)
	emaSlow := indicator.EMA(closes, s.cfg.EMASlow)
	rsiVals := indicator.RSI(closes, s.cfg.EMARSIWindow)

	lastClose := last(closes)
	lastRSI := last(rsiVals)
	if !indicator.Valid(lastRSI) {
		return nil
	}

	bullishRibbon := last(emaFast) > last(emaMedium) && last(emaMedium) > last(emaSlow)
	bearishRibbon := last(emaFast) < last(emaMedium) && last(emaMedium) < last(emaSlow)

	prevClose := prev(closes)
	prevEMAFast := prev(emaFast)

	ctx := TripleEMAContext{
		EMAFast:   last(emaFast),
		EMAMedium: last(emaMedium),
		EMASlow:   last(emaSlow),
		RSI:       lastRSI,
	}

	// Pullback through the fast EMA and a reclaim of it, with RSI off
	// the extremes.
	if bullishRibbon && prevClose <= prevEMAFast && lastClose > last(emaFast) && lastRSI > 30 && lastRSI < 70 {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}
	if bearishRibbon && prevClose >= prevEMAFast && lastClose < last(emaFast) && lastRSI > 30 && lastRSI < 70 {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
