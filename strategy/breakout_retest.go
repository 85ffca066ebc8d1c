package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

// breakoutRetest enters when price breaks a recent swing level, comes
// back to retest it on fading momentum, and then resumes in the
// breakout direction.
type breakoutRetest struct {
	cfg config.StrategyConfig
}

// Swing levels come from this many candles, excluding the three most
// recent which belong to the breakout and retest themselves. The
// retest may overshoot the level by up to 0.2%.
const (
	retestLookback  = 15
	retestTolerance = 0.002
)

func (s *breakoutRetest) Name() Name { return BreakoutRetest }

func (s *breakoutRetest) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 20 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)

	recentHighs := highs[len(highs)-retestLookback : len(highs)-3]
	recentLows := lows[len(lows)-retestLookback : len(lows)-3]

	swingHigh := recentHighs[0]
	swingLow := recentLows[0]
	for i := 1; i < len(recentHighs); i++ {
		if recentHighs[i] > swingHigh {
			swingHigh = recentHighs[i]
		}
		if recentLows[i] < swingLow {
			swingLow = recentLows[i]
		}
	}

	lastClose := last(closes)
	prevClose := prev(closes)
	prev2Close := closes[len(closes)-3]

	// The pullback candle should be smaller than the breakout candle.
	weakRetest := math.Abs(prevClose-prev2Close) < math.Abs(closes[len(closes)-3]-closes[len(closes)-4])

	brokeAbove := prev2Close > swingHigh
	retestingHigh := prevClose < swingHigh && lastClose > swingHigh*(1-retestTolerance)
	if brokeAbove && retestingHigh && weakRetest && lastClose > prevClose {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: BreakoutRetestContext{
			BreakoutLevel: swingHigh,
			SwingHigh:     swingHigh,
			SwingLow:      swingLow,
		}}
	}

	brokeBelow := prev2Close < swingLow
	retestingLow := prevClose > swingLow && lastClose < swingLow*(1+retestTolerance)
	if brokeBelow && retestingLow && weakRetest && lastClose < prevClose {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: BreakoutRetestContext{
			BreakoutLevel: swingLow,
			SwingHigh:     swingHigh,
			SwingLow:      swingLow,
		}}
	}
	return nil
}
