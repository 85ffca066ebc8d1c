package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CyclesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "swingbot_cycles_total",
			Help: "Total number of completed evaluation cycles.",
		},
	)

	FetchFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_fetch_failures_total",
			Help: "Market data fetches that failed or timed out (by symbol).",
		},
		[]string{"symbol"},
	)

	SignalsGenerated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_signals_total",
			Help: "Signals produced by the strategy selector (by strategy).",
		},
		[]string{"strategy"},
	)

	SignalsRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_signals_rejected_total",
			Help: "Signals discarded before opening (by reason).",
		},
		[]string{"reason"},
	)

	PositionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "swingbot_positions_open",
			Help: "Current number of open positions.",
		},
	)

	PositionsClosed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "swingbot_positions_closed_total",
			Help: "Closed positions (by reason: TP, SL, BE).",
		},
		[]string{"reason"},
	)

	NotifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "swingbot_notify_failures_total",
			Help: "Notification sends that failed after all retries.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		CyclesTotal,
		FetchFailures,
		SignalsGenerated,
		SignalsRejected,
		PositionsOpen,
		PositionsClosed,
		NotifyFailures,
	)
}
