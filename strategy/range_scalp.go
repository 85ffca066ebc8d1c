package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

// rangeScalp scalps rejection candles at the edges of a tight trading
// range. A range wider than 2.5% of price means the market is trending
// and the strategy stands aside.
type rangeScalp struct {
	cfg config.StrategyConfig
}

func (s *rangeScalp) Name() Name { return RangeScalp }

func (s *rangeScalp) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < s.cfg.RangeLookback+10 {
		return nil
	}
	closes := types.Closes(fast)
	highs := types.Highs(fast)
	lows := types.Lows(fast)

	recentHighs := highs[len(highs)-s.cfg.RangeLookback:]
	recentLows := lows[len(lows)-s.cfg.RangeLookback:]

	rangeHigh := recentHighs[0]
	rangeLow := recentLows[0]
	for i := 1; i < s.cfg.RangeLookback; i++ {
		if recentHighs[i] > rangeHigh {
			rangeHigh = recentHighs[i]
		}
		if recentLows[i] < rangeLow {
			rangeLow = recentLows[i]
		}
	}
	rangeSize := rangeHigh - rangeLow

	lastClose := last(closes)
	if rangeSize/lastClose > 0.025 {
		return nil
	}

	bar := fast[len(fast)-1]
	upperWick := bar.High - math.Max(bar.Close, bar.Open)
	lowerWick := math.Min(bar.Close, bar.Open) - bar.Low
	bodySize := math.Abs(bar.Close - bar.Open)

	prevClose := prev(closes)
	ctx := RangeScalpContext{
		RangeHigh: rangeHigh,
		RangeLow:  rangeLow,
		RangeMid:  (rangeHigh + rangeLow) / 2,
	}

	nearSupport := lastClose < rangeLow+rangeSize*0.2
	if nearSupport && lowerWick > bodySize*1.5 && lastClose > prevClose {
		return &types.Signal{Side: types.Long, Entry: lastClose, Context: ctx}
	}

	nearResistance := lastClose > rangeHigh-rangeSize*0.2
	if nearResistance && upperWick > bodySize*1.5 && lastClose < prevClose {
		return &types.Signal{Side: types.Short, Entry: lastClose, Context: ctx}
	}
	return nil
}
