package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// heikinAshiTrend follows a trend once the smoothed synthetic candles
// point the same way for at least 80% of the lookback.
type heikinAshiTrend struct {
	cfg config.StrategyConfig
}

func (s *heikinAshiTrend) Name() Name { return HeikinAshiTrend }

func (s *heikinAshiTrend) Evaluate(fast, slow []types.Bar) *types.Signal {
	periods := s.cfg.HeikinAshiTrendPeriods
	if len(fast) < periods+1 {
		return nil
	}

	ha := indicator.HeikinAshi(fast)
	recent := ha[len(ha)-periods:]

	var bullish, bearish int
	for _, c := range recent {
		switch {
		case c.Close > c.Open:
			bullish++
		case c.Close < c.Open:
			bearish++
		}
	}

	entry := fast[len(fast)-1].Close
	bullishRatio := float64(bullish) / float64(periods)
	bearishRatio := float64(bearish) / float64(periods)

	if bullishRatio >= 0.8 {
		return &types.Signal{Side: types.Long, Entry: entry, Context: HeikinAshiContext{
			TrendStrength: bullishRatio,
			TrendCandles:  bullish,
			TotalCandles:  periods,
		}}
	}
	if bearishRatio >= 0.8 {
		return &types.Signal{Side: types.Short, Entry: entry, Context: HeikinAshiContext{
			TrendStrength: bearishRatio,
			TrendCandles:  bearish,
			TotalCandles:  periods,
		}}
	}
	return nil
}
