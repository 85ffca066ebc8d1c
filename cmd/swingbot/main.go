package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/engine"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/marketdata"
	"github.com/avolkov-dev/swingbot/notify"
	"github.com/avolkov-dev/swingbot/position"
	"github.com/avolkov-dev/swingbot/risk"
	"github.com/avolkov-dev/swingbot/strategy"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "config.yaml", "path to the configuration file")
	flag.Parse()

	log, err := logger.NewZapLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("config_load_failed", logger.String("path", *configPath), logger.Err(err))
		os.Exit(1)
	}

	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.Metrics.ListenAddr, mux); err != nil {
			log.Error("metrics_listener_failed", logger.Err(err))
		}
	}()

	var notifier notify.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegram(cfg.Telegram, log)
		if err != nil {
			log.Error("telegram_init_failed", logger.Err(err))
			os.Exit(1)
		}
		notifier = tg
	} else {
		log.Warn("telegram_not_configured")
		notifier = notify.NewNoop(log)
	}

	registry := strategy.NewRegistry(cfg.Strategy)
	selector := strategy.NewSelector(cfg.Strategy.Active, registry, log)

	eng := engine.New(
		cfg,
		marketdata.NewBinance(),
		selector,
		risk.NewCalculator(cfg.Risk),
		position.NewBook(cfg.Risk, log),
		notifier,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := eng.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("engine_failed", logger.Err(err))
		os.Exit(1)
	}
}
