package strategy

import (
	"testing"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

func confluenceBase() []types.Bar {
	bars := make([]types.Bar, 30)
	for i := range bars {
		bars[i] = types.Bar{Open: 100, High: 100.2, Low: 99.8, Close: 100, Volume: 100}
	}
	bars[28] = types.Bar{Open: 100, High: 100.1, Low: 99.7, Close: 99.9, Volume: 100}
	return bars
}

/*
Confluence scenario: a tight tape keeps the rolling VWAP and the fast
EMA within a few hundredths of each other. A shallow dip and a close
back above both lines is the resumption long.
*/
func TestVWAPEMAConfluence_LongOnResumption(t *testing.T) {
	ev := &vwapEMAConfluence{cfg: config.Default().Strategy}

	bars := confluenceBase()
	bars[29] = types.Bar{Open: 99.95, High: 100.25, Low: 99.95, Close: 100.15, Volume: 100}

	sig := ev.Evaluate(bars, nil)
	if sig == nil || sig.Side != types.Long {
		t.Fatalf("expected resumption long, got %+v", sig)
	}
	ctx := sig.Context.(ConfluenceContext)
	if sig.Entry <= ctx.VWAP {
		t.Fatalf("entry %f must clear the VWAP %f", sig.Entry, ctx.VWAP)
	}
	if d := ctx.VWAP - ctx.EMA; d > 0.2 || d < -0.2 {
		t.Fatalf("lines not in confluence: vwap %f ema %f", ctx.VWAP, ctx.EMA)
	}
}

func TestVWAPEMAConfluence_AbstainsWhenStretched(t *testing.T) {
	ev := &vwapEMAConfluence{cfg: config.Default().Strategy}

	// The final bar runs a full percent away from the cluster; that is
	// a chase, not a pullback entry.
	bars := confluenceBase()
	bars[29] = types.Bar{Open: 100.6, High: 101.1, Low: 100.5, Close: 101, Volume: 100}

	if sig := ev.Evaluate(bars, nil); sig != nil {
		t.Fatalf("price away from the cluster must not fire, got %+v", sig)
	}
}
