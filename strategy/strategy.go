// Package strategy holds the catalog of signal evaluators and the
// priority selector that picks the first one willing to fire.
package strategy

import (
	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/metrics"
	"github.com/avolkov-dev/swingbot/types"
)

// Name identifies a strategy in the closed catalog. Configuration
// refers to strategies by these names.
type Name string

const (
	TripleEMA         Name = "triple_ema"
	VWAPFade          Name = "vwap_fade"
	BBSqueeze         Name = "bb_squeeze"
	FastMACD          Name = "fast_macd"
	RangeScalp        Name = "range_scalp"
	BreakoutRetest    Name = "breakout_retest"
	KeltnerStoch      Name = "keltner_stoch"
	VWAPEMAConfluence Name = "vwap_ema_confluence"
	HeikinAshiTrend   Name = "heikin_ashi"
	VolumeSpike       Name = "volume_spike"
	Original          Name = "original"
)

// Evaluator maps bar sequences to an optional directional signal.
// Implementations are pure: same bars and config, same answer.
type Evaluator interface {
	Name() Name
	Evaluate(fast, slow []types.Bar) *types.Signal
}

// NewRegistry wires every known evaluator to its name. The table is
// built once at startup; dispatch never goes through strings produced
// at runtime.
func NewRegistry(cfg config.StrategyConfig) map[Name]Evaluator {
	evaluators := []Evaluator{
		&tripleEMA{cfg: cfg},
		&vwapFade{cfg: cfg},
		&bbSqueeze{cfg: cfg},
		&fastMACD{cfg: cfg},
		&rangeScalp{cfg: cfg},
		&breakoutRetest{cfg: cfg},
		&keltnerStoch{cfg: cfg},
		&vwapEMAConfluence{cfg: cfg},
		&heikinAshiTrend{cfg: cfg},
		&volumeSpike{cfg: cfg},
		&original{cfg: cfg},
	}
	out := make(map[Name]Evaluator, len(evaluators))
	for _, ev := range evaluators {
		out[ev.Name()] = ev
	}
	return out
}

// Selector walks the configured priority list and returns the first
// non-nil signal. Order is a priority, not a vote.
type Selector struct {
	order []Evaluator
	log   logger.Logger
}

// NewSelector resolves the active strategy names against the registry.
// Unrecognized names are skipped with a warning; they are configuration
// noise, not an error.
func NewSelector(active []string, registry map[Name]Evaluator, log logger.Logger) *Selector {
	s := &Selector{log: log}
	for _, raw := range active {
		ev, ok := registry[Name(raw)]
		if !ok {
			log.Warn("unknown_strategy_skipped", logger.String("name", raw))
			continue
		}
		s.order = append(s.order, ev)
	}
	return s
}

// Evaluate runs the evaluators in priority order over the supplied
// bars. Returns nil when every evaluator abstains or the history is
// still warming up.
func (s *Selector) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < 50 || len(slow) < 30 {
		return nil
	}
	for _, ev := range s.order {
		if sig := ev.Evaluate(fast, slow); sig != nil {
			metrics.SignalsGenerated.WithLabelValues(string(ev.Name())).Inc()
			return sig
		}
	}
	return nil
}

func last(s []float64) float64 { return s[len(s)-1] }
func prev(s []float64) float64 { return s[len(s)-2] }
