// Package risk turns a raw signal into bounded stop and target levels.
package risk

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

// Calculator derives trade levels from the entry price, volatility and
// the nearest structural level. All percentage bounds come from the
// injected configuration.
type Calculator struct {
	cfg config.RiskConfig
}

func NewCalculator(cfg config.RiskConfig) *Calculator {
	return &Calculator{cfg: cfg}
}

// Levels computes stop and take levels for a prospective position.
// The stop distance is the wider of 1.5x ATR and 80% of the distance to
// the structural level, floored at 0.5% and clamped to the configured
// band. The take is the stop distance times the reward multiple on the
// profitable side. ok is false when the inputs cannot produce levels.
func (c *Calculator) Levels(side types.Side, entry, atr, support, resistance float64) (types.TradeLevels, bool) {
	if atr <= 0 || entry <= 0 || !side.Valid() {
		return types.TradeLevels{}, false
	}

	atrPct := atr / entry

	var levelDist float64
	switch side {
	case types.Long:
		levelDist = math.Max(0, entry-support) / entry
	case types.Short:
		levelDist = math.Max(0, resistance-entry) / entry
	}

	atrSLPct := atrPct * 1.5
	levelSLPct := levelDist * 0.8

	rawSLPct := atrSLPct
	if levelSLPct > 0 && levelSLPct > rawSLPct {
		rawSLPct = levelSLPct
	}
	// Floor before clamping so a tiny ATR still yields a tradable stop.
	rawSLPct = math.Max(rawSLPct, 0.005)
	slPct := c.clampSLPct(rawSLPct)

	var stop, take float64
	if side == types.Long {
		stop = entry * (1 - slPct)
		take = entry * (1 + slPct*c.cfg.RewardMultiple)
	} else {
		stop = entry * (1 + slPct)
		take = entry * (1 - slPct*c.cfg.RewardMultiple)
	}

	risk := math.Abs(entry - stop)
	reward := math.Abs(take - entry)
	rr := 0.0
	if risk > 0 {
		rr = reward / risk
	}
	return types.TradeLevels{Entry: entry, Stop: stop, Take: take, RR: rr}, true
}

func (c *Calculator) clampSLPct(raw float64) float64 {
	lo := c.cfg.MinSLPct / 100
	hi := c.cfg.MaxSLPct / 100
	return math.Max(lo, math.Min(hi, raw))
}
