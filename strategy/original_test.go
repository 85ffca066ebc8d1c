package strategy

import (
	"testing"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/types"
)

// trendBars builds candles from a close sequence, each bar opening at
// the previous close with a 1.2 range either side.
func trendBars(closes []float64) []types.Bar {
	bars := make([]types.Bar, len(closes))
	for i, c := range closes {
		open := c
		if i > 0 {
			open = closes[i-1]
		}
		bars[i] = types.Bar{Open: open, High: c + 1.2, Low: c - 1.2, Close: c, Volume: 100}
	}
	return bars
}

// zigzagCloses climbs in a plus-one minus-half stairstep, ending on an
// up step that closes above every level of the trailing window.
func zigzagCloses(n int) []float64 {
	closes := make([]float64, n)
	closes[0] = 100
	for i := 1; i < n; i++ {
		if i%2 == 1 {
			closes[i] = closes[i-1] + 1
		} else {
			closes[i] = closes[i-1] - 0.5
		}
	}
	return closes
}

/*
Micro breakout scenario: the stairstep climb keeps RSI around 70 and
the MACD histogram slightly positive, the wide candle ranges keep ATR
near 2% of price, and the final up step closes above every close in
the trailing level window. With the slow timeframe far below, that is
the composite long, and it must ship usable risk hints.
*/
func TestOriginal_LongOnMicroBreakout(t *testing.T) {
	ev := &original{cfg: config.Default().Strategy}

	fast := trendBars(zigzagCloses(60))
	slow := flatBars(40, 90)

	sig := ev.Evaluate(fast, slow)
	if sig == nil || sig.Side != types.Long {
		t.Fatalf("expected composite breakout long, got %+v", sig)
	}
	ctx := sig.Context.(OriginalContext)
	hints := ctx.Hints()
	if hints.ATR <= 0 || hints.Support <= 0 || hints.Resistance <= 0 {
		t.Fatalf("composite signal must carry risk hints, got %+v", hints)
	}
	if sig.Entry <= hints.Resistance {
		t.Fatalf("breakout entry %f should clear the resistance %f", sig.Entry, hints.Resistance)
	}
	if hints.Support >= sig.Entry {
		t.Fatalf("support %f above entry %f", hints.Support, sig.Entry)
	}
}

/*
Two-candle reversal scenario: an accelerating climb, one bearish bar,
then a bullish bar recovering only part of the dip. The close stays
under the recent resistance, so the breakout branch is out; the
reversal pattern with a positive histogram and RSI above 40 still
produces the long.
*/
func TestOriginal_LongOnTwoCandleReversal(t *testing.T) {
	ev := &original{cfg: config.Default().Strategy}

	closes := make([]float64, 60)
	for i := 0; i < 40; i++ {
		closes[i] = 100 + 0.2*float64(i)
	}
	for i := 40; i < 58; i++ {
		closes[i] = closes[i-1] + 1
	}
	closes[58] = closes[57] - 1.5
	closes[59] = closes[58] + 0.7

	sig := ev.Evaluate(trendBars(closes), flatBars(40, 90))
	if sig == nil || sig.Side != types.Long {
		t.Fatalf("expected reversal long, got %+v", sig)
	}
	ctx := sig.Context.(OriginalContext)
	if sig.Entry > ctx.Resistance {
		t.Fatalf("entry %f above resistance %f means this was not the reversal branch", sig.Entry, ctx.Resistance)
	}
	if ctx.MACDHist <= 0 {
		t.Fatalf("reversal needs a positive histogram, got %f", ctx.MACDHist)
	}
}

func TestOriginal_RejectsLowVolatility(t *testing.T) {
	ev := &original{cfg: config.Default().Strategy}

	// Zero-range candles: ATR is zero, nothing trades.
	if sig := ev.Evaluate(flatBars(60, 100), flatBars(40, 90)); sig != nil {
		t.Fatalf("dead tape must be rejected, got %+v", sig)
	}
}

func TestOriginal_RejectsSmallHistogram(t *testing.T) {
	cfg := config.Default().Strategy
	cfg.MinMACDHistAbs = 5
	ev := &original{cfg: cfg}

	// The breakout fixture's histogram is well under 5.
	if sig := ev.Evaluate(trendBars(zigzagCloses(60)), flatBars(40, 90)); sig != nil {
		t.Fatalf("histogram below the floor must be rejected, got %+v", sig)
	}
}

func TestOriginal_RejectsAgainstSlowTrend(t *testing.T) {
	ev := &original{cfg: config.Default().Strategy}

	// Same breakout, but the slow timeframe sits far above price.
	if sig := ev.Evaluate(trendBars(zigzagCloses(60)), flatBars(40, 200)); sig != nil {
		t.Fatalf("long against the slow trend must be rejected, got %+v", sig)
	}
}
