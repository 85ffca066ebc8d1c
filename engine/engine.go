// Package engine drives the evaluation cycle: fetch market data for
// every symbol, manage open positions against fresh prices, then ask
// the strategy selector for new entries.
package engine

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/marketdata"
	"github.com/avolkov-dev/swingbot/metrics"
	"github.com/avolkov-dev/swingbot/notify"
	"github.com/avolkov-dev/swingbot/position"
	"github.com/avolkov-dev/swingbot/risk"
	"github.com/avolkov-dev/swingbot/strategy"
	"github.com/avolkov-dev/swingbot/types"
)

// snapshot is one symbol's market data for a single cycle.
type snapshot struct {
	symbol string
	price  float64
	fast   []types.Bar
	slow   []types.Bar
}

// Engine wires the provider, selector, risk calculator, position book
// and notifier into the periodic cycle.
type Engine struct {
	cfg      *config.Config
	provider marketdata.Provider
	selector *strategy.Selector
	calc     *risk.Calculator
	book     *position.Book
	notifier notify.Notifier
	log      logger.Logger

	now func() time.Time
}

func New(cfg *config.Config, provider marketdata.Provider, selector *strategy.Selector, calc *risk.Calculator, book *position.Book, notifier notify.Notifier, log logger.Logger) *Engine {
	return &Engine{
		cfg:      cfg,
		provider: provider,
		selector: selector,
		calc:     calc,
		book:     book,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

// Run executes cycles until the context is cancelled. The first cycle
// starts immediately.
func (e *Engine) Run(ctx context.Context) error {
	interval := time.Duration(e.cfg.Engine.IntervalSec) * time.Second
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Info("engine_started",
		logger.Int("symbols", len(e.cfg.Trading.Symbols)),
		logger.Dur("interval", interval))

	for {
		e.runCycle(ctx)
		select {
		case <-ctx.Done():
			e.log.Info("engine_stopped")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (e *Engine) runCycle(ctx context.Context) {
	cycle := uuid.NewString()
	metrics.CyclesTotal.Inc()

	snapshots := e.fetchAll(ctx, cycle)
	if len(snapshots) == 0 {
		e.log.Warn("cycle_no_data", logger.String("cycle", cycle))
		return
	}

	e.managePositions(ctx, cycle, snapshots)
	e.generateSignals(ctx, cycle, snapshots)

	e.log.Info("cycle_complete",
		logger.String("cycle", cycle),
		logger.Int("open_positions", e.book.Len()))
}

// fetchAll pulls price and both bar feeds for every symbol
// concurrently. Symbols whose fetch fails are dropped from the cycle.
func (e *Engine) fetchAll(ctx context.Context, cycle string) []snapshot {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []snapshot
	)
	timeout := time.Duration(e.cfg.Engine.FetchTimeoutSec) * time.Second

	for _, symbol := range e.cfg.Trading.Symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()

			fctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			snap, err := e.fetchSymbol(fctx, symbol)
			if err != nil {
				metrics.FetchFailures.WithLabelValues(symbol).Inc()
				e.log.Warn("fetch_failed",
					logger.String("cycle", cycle),
					logger.String("symbol", symbol),
					logger.Err(err))
				return
			}
			mu.Lock()
			out = append(out, snap)
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()
	return out
}

func (e *Engine) fetchSymbol(ctx context.Context, symbol string) (snapshot, error) {
	price, err := e.provider.Price(ctx, symbol)
	if err != nil {
		return snapshot{}, err
	}
	fast, err := e.provider.Bars(ctx, symbol, e.cfg.Trading.TFFast, e.cfg.Trading.CandlesLimit)
	if err != nil {
		return snapshot{}, err
	}
	slow, err := e.provider.Bars(ctx, symbol, e.cfg.Trading.TFSlow, e.cfg.Trading.CandlesLimit)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{symbol: symbol, price: price, fast: fast, slow: slow}, nil
}

func (e *Engine) managePositions(ctx context.Context, cycle string, snapshots []snapshot) {
	for _, snap := range snapshots {
		cl := e.book.Tick(snap.symbol, snap.price, e.now())
		if cl == nil {
			continue
		}
		e.log.Info("position_closed",
			logger.String("cycle", cycle),
			logger.String("symbol", cl.Symbol),
			logger.String("side", string(cl.Side)),
			logger.String("reason", string(cl.Reason)),
			logger.Float64("price", cl.Price),
			logger.Time("opened_at", cl.OpenedAt))
		if err := e.notifier.Close(ctx, cl.Symbol, cl.Side, cl.Reason, cl.Price, cl.MessageRef); err != nil {
			e.log.Error("close_notify_failed",
				logger.String("symbol", cl.Symbol),
				logger.Err(err))
		}
	}
}

func (e *Engine) generateSignals(ctx context.Context, cycle string, snapshots []snapshot) {
	for _, snap := range snapshots {
		if !e.book.CanOpen(snap.symbol, e.now()) {
			continue
		}
		sig := e.selector.Evaluate(snap.fast, snap.slow)
		if sig == nil {
			continue
		}
		e.processSignal(ctx, cycle, snap, sig)
	}
}

// processSignal fills in missing risk inputs from the fast bars, runs
// the quality filters and opens the position when everything passes.
func (e *Engine) processSignal(ctx context.Context, cycle string, snap snapshot, sig *types.Signal) {
	strategyName := sig.Context.StrategyName()
	hints := sig.Context.Hints()

	atrEst := hints.ATR
	if atrEst <= 0 {
		closes := types.Closes(snap.fast)
		atrVals := indicator.ATR(types.Highs(snap.fast), types.Lows(snap.fast), closes, e.cfg.Strategy.ATRWindow)
		if v := atrVals[len(atrVals)-1]; indicator.Valid(v) {
			atrEst = v
		}
	}

	support, resistance := hints.Support, hints.Resistance
	if support <= 0 || resistance <= 0 {
		if sup, res, ok := indicator.MicroLevels(types.Closes(snap.fast), e.cfg.Strategy.MicroLevelWindow); ok {
			support, resistance = sup, res
		}
	}

	levels, ok := e.calc.Levels(sig.Side, sig.Entry, atrEst, support, resistance)
	if !ok {
		metrics.SignalsRejected.WithLabelValues("no_levels").Inc()
		return
	}
	if levels.RR < e.cfg.Risk.TargetRR {
		metrics.SignalsRejected.WithLabelValues("low_rr").Inc()
		e.log.Info("signal_rejected",
			logger.String("cycle", cycle),
			logger.String("symbol", snap.symbol),
			logger.String("reason", "low_rr"),
			logger.Float64("rr", levels.RR))
		return
	}
	if atrPct := atrEst / sig.Entry * 100; atrPct < e.cfg.Risk.MinVolatilityPct {
		metrics.SignalsRejected.WithLabelValues("low_volatility").Inc()
		e.log.Info("signal_rejected",
			logger.String("cycle", cycle),
			logger.String("symbol", snap.symbol),
			logger.String("reason", "low_volatility"),
			logger.Float64("atr_pct", atrPct))
		return
	}

	msgRef, err := e.notifier.Signal(ctx, snap.symbol, sig.Side, levels, strategyName)
	if err != nil {
		// The trade is still tracked; the close message just won't
		// thread onto the entry.
		e.log.Error("signal_notify_failed",
			logger.String("symbol", snap.symbol),
			logger.Err(err))
		msgRef = 0
	}

	e.book.Open(snap.symbol, sig.Side, levels, msgRef, e.now())
	e.log.Info("position_opened",
		logger.String("cycle", cycle),
		logger.String("symbol", snap.symbol),
		logger.String("side", string(sig.Side)),
		logger.String("strategy", strategyName),
		logger.Float64("entry", levels.Entry),
		logger.Float64("stop", levels.Stop),
		logger.Float64("take", levels.Take),
		logger.Float64("rr", levels.RR))
}
