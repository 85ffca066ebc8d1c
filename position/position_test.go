package position

import (
	"testing"
	"time"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/types"
)

func testLevels() types.TradeLevels {
	// 2% stop, 6% take on a 100 entry.
	return types.TradeLevels{Entry: 100, Stop: 98, Take: 106, RR: 3}
}

func newTestBook() *Book {
	return NewBook(config.Default().Risk, logger.NewNop())
}

func TestBook_OpenBlocksSecondPosition(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	if !b.CanOpen("BTCUSDT", now) {
		t.Fatal("fresh book must allow opening")
	}
	b.Open("BTCUSDT", types.Long, testLevels(), 1, now)
	if b.CanOpen("BTCUSDT", now.Add(24*time.Hour)) {
		t.Fatal("symbol with open position must be blocked")
	}
	if b.Len() != 1 {
		t.Fatalf("book holds %d positions, want 1", b.Len())
	}
}

func TestBook_SignalCooldownSpacesEntries(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	b.Open("BTCUSDT", types.Long, testLevels(), 1, now)
	if b.CanOpen("ETHUSDT", now.Add(time.Minute)) {
		t.Fatal("second entry inside the signal cooldown must be blocked")
	}
	if !b.CanOpen("ETHUSDT", now.Add(31*time.Minute)) {
		t.Fatal("entry after the signal cooldown must be allowed")
	}
}

/*
Stop-loss lifecycle: open long at 100 with stop 98, price drops to the
stop. The close must classify as SL and start the stop cooldown for
every symbol, which then expires after an hour.
*/
func TestBook_StopLossStartsCooldown(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	b.Open("BTCUSDT", types.Long, testLevels(), 7, now)
	cl := b.Tick("BTCUSDT", 97.5, now.Add(time.Minute))
	if cl == nil || cl.Reason != types.CloseSL {
		t.Fatalf("expected SL close, got %+v", cl)
	}
	if cl.MessageRef != 7 {
		t.Fatalf("close must carry the open message ref, got %d", cl.MessageRef)
	}
	if !cl.OpenedAt.Equal(now) {
		t.Fatalf("close must carry the open time, got %v", cl.OpenedAt)
	}
	if b.Has("BTCUSDT") {
		t.Fatal("closed position still in book")
	}

	after := now.Add(31 * time.Minute)
	if b.CanOpen("ETHUSDT", after) {
		t.Fatal("stop cooldown must block other symbols too")
	}
	expired := now.Add(time.Minute + time.Hour + time.Second)
	if !b.CanOpen("ETHUSDT", expired) {
		t.Fatal("stop cooldown must expire")
	}
}

func TestBook_TakeProfitClearsStopCooldown(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	b.Open("BTCUSDT", types.Long, testLevels(), 1, now)
	if cl := b.Tick("BTCUSDT", 97, now); cl == nil || cl.Reason != types.CloseSL {
		t.Fatalf("expected SL, got %+v", cl)
	}

	// A winner elsewhere clears the global stop cooldown.
	later := now.Add(31 * time.Minute)
	b.open["ETHUSDT"] = &types.OpenPosition{Symbol: "ETHUSDT", Side: types.Long, Levels: testLevels(), OpenedAt: now}
	if cl := b.Tick("ETHUSDT", 106.5, later); cl == nil || cl.Reason != types.CloseTP {
		t.Fatalf("expected TP, got %+v", cl)
	}
	if !b.CanOpen("SOLUSDT", later.Add(31*time.Minute)) {
		t.Fatal("TP close must clear the stop cooldown")
	}
}

/*
Breakeven promotion: with a 0.5 trigger and a 2-point risk distance the
stop moves to entry once price reaches 101. Afterwards a fade back to
entry closes as BE, not SL, and does not start the stop cooldown.
*/
func TestBook_BreakevenPromotionAndScratch(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	b.Open("BTCUSDT", types.Long, testLevels(), 1, now)

	if cl := b.Tick("BTCUSDT", 100.9, now); cl != nil {
		t.Fatalf("below trigger, nothing should happen, got %+v", cl)
	}
	if b.open["BTCUSDT"].BreakevenMoved {
		t.Fatal("premature breakeven move")
	}

	if cl := b.Tick("BTCUSDT", 101, now); cl != nil {
		t.Fatalf("promotion itself must not close, got %+v", cl)
	}
	pos := b.open["BTCUSDT"]
	if !pos.BreakevenMoved || pos.Levels.Stop != 100 {
		t.Fatalf("stop not promoted to entry: %+v", pos)
	}

	// Promotion is idempotent across ticks.
	b.Tick("BTCUSDT", 101.5, now)
	if b.open["BTCUSDT"].Levels.Stop != 100 {
		t.Fatal("stop moved again after promotion")
	}

	cl := b.Tick("BTCUSDT", 100, now.Add(time.Minute))
	if cl == nil || cl.Reason != types.CloseBE {
		t.Fatalf("fade to entry must scratch as BE, got %+v", cl)
	}
	if !b.CanOpen("ETHUSDT", now.Add(32*time.Minute)) {
		t.Fatal("BE close must not start the stop cooldown")
	}
}

func TestBook_ShortLifecycleMirrors(t *testing.T) {
	b := newTestBook()
	now := time.Now()

	levels := types.TradeLevels{Entry: 100, Stop: 102, Take: 94, RR: 3}
	b.Open("BTCUSDT", types.Short, levels, 1, now)

	// Favorable move of half the risk distance promotes the stop.
	if cl := b.Tick("BTCUSDT", 99, now); cl != nil {
		t.Fatalf("promotion must not close, got %+v", cl)
	}
	if pos := b.open["BTCUSDT"]; !pos.BreakevenMoved || pos.Levels.Stop != 100 {
		t.Fatalf("short stop not promoted: %+v", pos)
	}

	// Squeeze above entry after promotion is a losing scratch boundary:
	// exactly entry is BE, anything above is SL.
	cl := b.Tick("BTCUSDT", 100.5, now)
	if cl == nil || cl.Reason != types.CloseSL {
		t.Fatalf("price above entry after promotion must close SL, got %+v", cl)
	}
}

func TestBook_TickUnknownSymbol(t *testing.T) {
	b := newTestBook()
	if cl := b.Tick("BTCUSDT", 100, time.Now()); cl != nil {
		t.Fatalf("tick on empty book must be nil, got %+v", cl)
	}
}
