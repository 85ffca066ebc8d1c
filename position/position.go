// Package position tracks open paper positions through their lifecycle
// and enforces the cooldowns that gate new entries.
package position

import (
	"time"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/metrics"
	"github.com/avolkov-dev/swingbot/types"
)

// Close describes a position leaving the book.
type Close struct {
	Symbol     string
	Side       types.Side
	Reason     types.CloseReason
	Price      float64
	MessageRef int
	OpenedAt   time.Time
}

// Book holds at most one open position per symbol. A stopped-out trade
// starts a global cooldown; any trade closing at breakeven or better
// clears it. A second, shorter cooldown spaces consecutive entries.
// Book is not safe for concurrent use; the engine drives it from a
// single goroutine.
type Book struct {
	cfg  config.RiskConfig
	log  logger.Logger
	open map[string]*types.OpenPosition

	lastStop   time.Time
	lastSignal time.Time
}

func NewBook(cfg config.RiskConfig, log logger.Logger) *Book {
	return &Book{
		cfg:  cfg,
		log:  log,
		open: make(map[string]*types.OpenPosition),
	}
}

// Has reports whether the symbol currently holds a position.
func (b *Book) Has(symbol string) bool {
	_, ok := b.open[symbol]
	return ok
}

// Len returns the number of open positions.
func (b *Book) Len() int { return len(b.open) }

// CanOpen reports whether a new position may be opened on the symbol
// right now.
func (b *Book) CanOpen(symbol string, now time.Time) bool {
	if b.Has(symbol) {
		return false
	}
	if !b.lastStop.IsZero() && now.Sub(b.lastStop) < time.Duration(b.cfg.CooldownAfterStopSec)*time.Second {
		return false
	}
	if !b.lastSignal.IsZero() && now.Sub(b.lastSignal) < time.Duration(b.cfg.CooldownBetweenSignalsSec)*time.Second {
		return false
	}
	return true
}

// Open records a new position and starts the between-signals cooldown.
func (b *Book) Open(symbol string, side types.Side, levels types.TradeLevels, messageRef int, now time.Time) *types.OpenPosition {
	pos := &types.OpenPosition{
		Symbol:     symbol,
		Side:       side,
		Levels:     levels,
		MessageRef: messageRef,
		OpenedAt:   now,
	}
	b.open[symbol] = pos
	b.lastSignal = now
	metrics.PositionsOpen.Inc()
	return pos
}

// Tick advances the symbol's position against the current price. It
// first promotes the stop to breakeven once price has moved the
// configured fraction of the risk distance in the trade's favor, then
// checks the stop and target. Returns a non-nil Close when the position
// leaves the book.
func (b *Book) Tick(symbol string, price float64, now time.Time) *Close {
	pos, ok := b.open[symbol]
	if !ok {
		return nil
	}
	lv := pos.Levels

	if !pos.BreakevenMoved {
		trigger := lv.RiskDistance() * b.cfg.BreakevenTriggerR
		promoted := false
		switch pos.Side {
		case types.Long:
			promoted = price >= lv.Entry+trigger
		case types.Short:
			promoted = price <= lv.Entry-trigger
		}
		if promoted {
			pos.Levels = lv.WithStop(lv.Entry)
			pos.BreakevenMoved = true
			lv = pos.Levels
			b.log.Info("breakeven_moved",
				logger.String("symbol", symbol),
				logger.String("side", string(pos.Side)),
				logger.Float64("entry", lv.Entry))
		}
	}

	switch pos.Side {
	case types.Long:
		if price <= lv.Stop {
			reason := types.CloseBE
			if price < lv.Entry {
				reason = types.CloseSL
			}
			return b.close(pos, reason, price, now)
		}
		if price >= lv.Take {
			return b.close(pos, types.CloseTP, price, now)
		}
	case types.Short:
		if price >= lv.Stop {
			reason := types.CloseBE
			if price > lv.Entry {
				reason = types.CloseSL
			}
			return b.close(pos, reason, price, now)
		}
		if price <= lv.Take {
			return b.close(pos, types.CloseTP, price, now)
		}
	}
	return nil
}

func (b *Book) close(pos *types.OpenPosition, reason types.CloseReason, price float64, now time.Time) *Close {
	delete(b.open, pos.Symbol)
	metrics.PositionsOpen.Dec()
	metrics.PositionsClosed.WithLabelValues(string(reason)).Inc()

	if reason == types.CloseSL {
		b.lastStop = now
	} else {
		// A winner or a scratch means the market is behaving again.
		b.lastStop = time.Time{}
	}
	return &Close{
		Symbol:     pos.Symbol,
		Side:       pos.Side,
		Reason:     reason,
		Price:      price,
		MessageRef: pos.MessageRef,
		OpenedAt:   pos.OpenedAt,
	}
}
