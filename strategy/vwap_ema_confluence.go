package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// vwapEMAConfluence trades momentum resuming out of a pullback to a
// spot where the VWAP and the fast EMA sit on top of each other.
type vwapEMAConfluence struct {
	cfg config.StrategyConfig
}

func (s *vwapEMAConfluence) Name() Name { return VWAPEMAConfluence }

func (s *vwapEMAConfluence) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 30 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)
	volumes := types.Volumes(fast)

	vwapVals := indicator.VWAP(highs, lows, closes, volumes, s.cfg.VWAPWindow)
	emaVals := indicator.EMA(closes, s.cfg.EMAFast)

	lastClose := last(closes)
	lastVWAP := last(vwapVals)
	lastEMA := last(emaVals)
	if !indicator.Valid(lastVWAP) {
		return nil
	}

	// Both lines within 0.2% of each other, price within 0.3% of them.
	confluence := math.Abs(lastVWAP-lastEMA)/lastClose < 0.002
	nearConfluence := math.Abs(lastClose-lastVWAP)/lastClose < 0.003
	if !confluence || !nearConfluence {
		return nil
	}

	prevClose := prev(closes)
	ctx := ConfluenceContext{VWAP: lastVWAP, EMA: lastEMA}

	if lastClose > prevClose && lastClose > lastVWAP {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}
	if lastClose < prevClose && lastClose < lastVWAP {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
