package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// vwapFade fades stretched moves away from the rolling VWAP when the
// latest candle shows a rejection shadow back toward it.
type vwapFade struct {
	cfg config.StrategyConfig
}

func (s *vwapFade) Name() Name { return VWAPFade }

func (s *vwapFade) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < s.cfg.VWAPWindow+10 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)
	volumes := types.Volumes(fast)

	vwapVals := indicator.VWAP(highs, lows, closes, volumes, s.cfg.VWAPWindow)

	lastClose := last(closes)
	lastVWAP := last(vwapVals)
	if !indicator.Valid(lastVWAP) || !indicator.Valid(prev(vwapVals)) {
		return nil
	}

	divergencePct := math.Abs(lastClose-lastVWAP) / lastVWAP * 100
	if divergencePct <= s.cfg.VWAPDivergencePct {
		return nil
	}

	bar := fast[len(fast)-1]
	upperShadow := bar.High - math.Max(bar.Close, bar.Open)
	lowerShadow := math.Min(bar.Close, bar.Open) - bar.Low
	bodySize := math.Abs(bar.Close - bar.Open)

	prevClose := prev(closes)

	if lastClose < lastVWAP && lowerShadow > bodySize*1.5 && lastClose > prevClose {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: VWAPFadeContext{
			VWAP:          lastVWAP,
			DivergencePct: divergencePct,
			Shadow:        lowerShadow,
		}}
	}
	if lastClose > lastVWAP && upperShadow > bodySize*1.5 && lastClose < prevClose {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: VWAPFadeContext{
			VWAP:          lastVWAP,
			DivergencePct: divergencePct,
			Shadow:        upperShadow,
		}}
	}
	return nil
}
