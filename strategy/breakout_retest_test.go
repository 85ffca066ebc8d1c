package strategy

import (
	"testing"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

func retestBase() []types.Bar {
	bars := make([]types.Bar, 20)
	for i := range bars {
		bars[i] = types.Bar{Open: 100, High: 100.5, Low: 99.5, Close: 100, Volume: 100}
	}
	return bars
}

/*
Retest scenario: a box with a 100.5 swing high, a breakout close at
101, a pullback back under the level on a smaller candle, then a
reclaim closing within 0.2% of the level on an up-tick.
*/
func TestBreakoutRetest_LongOnReclaim(t *testing.T) {
	ev := &breakoutRetest{cfg: config.Default().Strategy}

	bars := retestBase()
	bars[17] = types.Bar{Open: 100, High: 101.2, Low: 99.9, Close: 101, Volume: 100}
	bars[18] = types.Bar{Open: 101, High: 101.1, Low: 100.2, Close: 100.3, Volume: 100}
	bars[19] = types.Bar{Open: 100.3, High: 100.6, Low: 100.2, Close: 100.45, Volume: 100}

	sig := ev.Evaluate(bars, nil)
	if sig == nil || sig.Side != types.Long {
		t.Fatalf("expected retest long, got %+v", sig)
	}
	ctx := sig.Context.(BreakoutRetestContext)
	if ctx.BreakoutLevel != 100.5 {
		t.Fatalf("breakout level %f, want the 100.5 swing high", ctx.BreakoutLevel)
	}
	if ctx.SwingLow != 99.5 {
		t.Fatalf("swing low %f, want 99.5", ctx.SwingLow)
	}
}

func TestBreakoutRetest_AbstainsOutsideTolerance(t *testing.T) {
	ev := &breakoutRetest{cfg: config.Default().Strategy}

	// Same breakout and pullback, but the reclaim stalls more than
	// 0.2% under the level.
	bars := retestBase()
	bars[17] = types.Bar{Open: 100, High: 101.2, Low: 99.9, Close: 101, Volume: 100}
	bars[18] = types.Bar{Open: 101, High: 101.1, Low: 100.2, Close: 100.25, Volume: 100}
	bars[19] = types.Bar{Open: 100.25, High: 100.3, Low: 100.1, Close: 100.28, Volume: 100}

	if sig := ev.Evaluate(bars, nil); sig != nil {
		t.Fatalf("stalled reclaim must not fire, got %+v", sig)
	}
}
