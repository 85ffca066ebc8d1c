package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// keltnerStoch fades touches of the Keltner channel edges once the
// stochastic oscillator turns back from its extreme.
type keltnerStoch struct {
	cfg config.StrategyConfig
}

func (s *keltnerStoch) Name() Name { return KeltnerStoch }

func (s *keltnerStoch) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < s.cfg.KeltnerWindow+20 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)

	upper, _, lower := indicator.KeltnerChannels(highs, lows, closes, s.cfg.KeltnerWindow, s.cfg.KeltnerATRMult)
	kVals, _ := indicator.Stochastic(highs, lows, closes, s.cfg.StochKPeriod, s.cfg.StochDPeriod)

	lastClose := last(closes)
	lastUpper := last(upper)
	lastLower := last(lower)
	lastK := last(kVals)
	prevK := prev(kVals)
	if !indicator.Valid(lastK) || !indicator.Valid(prevK) {
		return nil
	}

	ctx := KeltnerStochContext{
		KeltnerUpper: lastUpper,
		KeltnerLower: lastLower,
		StochK:       lastK,
	}

	atLower := lastClose <= lastLower*1.002
	if atLower && lastK < 30 && lastK > prevK {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}

	atUpper := lastClose >= lastUpper*0.998
	if atUpper && lastK > 70 && lastK < prevK {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
