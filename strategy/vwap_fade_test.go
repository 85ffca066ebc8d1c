package strategy

import (
	"testing"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

/*
Fade scenario: after a quiet stretch the price slips about 0.7% under
the rolling VWAP, then prints a candle with a long lower shadow, a
small body and a close above the previous one. Stretched, rejected,
turning: the fade long.
*/
func TestVWAPFade_LongOnRejectionShadow(t *testing.T) {
	cfg := config.Default().Strategy
	ev := &vwapFade{cfg: cfg}

	bars := make([]types.Bar, 30)
	for i := range bars {
		bars[i] = types.Bar{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100}
	}
	bars[28] = types.Bar{Open: 99.6, High: 99.7, Low: 98.9, Close: 99, Volume: 100}
	bars[29] = types.Bar{Open: 99.1, High: 99.25, Low: 98.2, Close: 99.2, Volume: 100}

	sig := ev.Evaluate(bars, nil)
	if sig == nil || sig.Side != types.Long {
		t.Fatalf("expected fade long, got %+v", sig)
	}
	ctx := sig.Context.(VWAPFadeContext)
	if ctx.DivergencePct <= cfg.VWAPDivergencePct {
		t.Fatalf("divergence %f not past the threshold", ctx.DivergencePct)
	}
	if sig.Entry >= ctx.VWAP {
		t.Fatalf("fade long must enter below VWAP, entry %f vwap %f", sig.Entry, ctx.VWAP)
	}
	if ctx.Shadow <= 0 {
		t.Fatalf("context shadow %f not positive", ctx.Shadow)
	}
}

func TestVWAPFade_AbstainsAtVWAP(t *testing.T) {
	ev := &vwapFade{cfg: config.Default().Strategy}

	// Flat tape: close sits exactly on the VWAP, zero divergence.
	bars := make([]types.Bar, 30)
	for i := range bars {
		bars[i] = types.Bar{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100}
	}

	if sig := ev.Evaluate(bars, nil); sig != nil {
		t.Fatalf("nothing to fade on a flat tape, got %+v", sig)
	}
}
