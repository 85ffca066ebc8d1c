package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Config is the full application configuration. It is constructed once
// at startup and passed by reference into each component's constructor;
// no component reads ambient global state.
type Config struct {
	Trading  TradingConfig  `yaml:"trading"`
	Engine   EngineConfig   `yaml:"engine"`
	Strategy StrategyConfig `yaml:"strategy"`
	Risk     RiskConfig     `yaml:"risk"`
	Telegram TelegramConfig `yaml:"telegram"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// TradingConfig names the traded universe and the bar feeds.
type TradingConfig struct {
	Symbols      []string `yaml:"symbols"`
	TFFast       string   `yaml:"tf_fast"`
	TFSlow       string   `yaml:"tf_slow"`
	CandlesLimit int      `yaml:"candles_limit"`
}

// EngineConfig drives the evaluation cycle.
type EngineConfig struct {
	IntervalSec     int `yaml:"interval_sec"`
	FetchTimeoutSec int `yaml:"fetch_timeout_sec"`
}

// StrategyConfig holds all tunable parameters for the strategy catalog.
type StrategyConfig struct {
	// Ordered priority list of active strategies.
	Active []string `yaml:"active"`

	// Shared oscillator windows.
	RSIWindow int `yaml:"rsi_window"`
	ATRWindow int `yaml:"atr_window"`

	// Triple EMA ribbon.
	EMAFast      int `yaml:"ema_fast"`
	EMAMedium    int `yaml:"ema_medium"`
	EMASlow      int `yaml:"ema_slow"`
	EMARSIWindow int `yaml:"ema_rsi_window"`

	// VWAP strategies.
	VWAPWindow        int     `yaml:"vwap_window"`
	VWAPDivergencePct float64 `yaml:"vwap_divergence_pct"`

	// Bollinger squeeze.
	BBWindow           int     `yaml:"bb_window"`
	BBStdDev           float64 `yaml:"bb_std_dev"`
	BBSqueezeThreshold float64 `yaml:"bb_squeeze_threshold"`

	// MACD, standard and fast variants.
	MACDFast       int `yaml:"macd_fast"`
	MACDSlow       int `yaml:"macd_slow"`
	MACDSignal     int `yaml:"macd_signal"`
	FastMACDFast   int `yaml:"fast_macd_fast"`
	FastMACDSlow   int `yaml:"fast_macd_slow"`
	FastMACDSignal int `yaml:"fast_macd_signal"`

	// Keltner + stochastic.
	KeltnerWindow  int     `yaml:"keltner_window"`
	KeltnerATRMult float64 `yaml:"keltner_atr_mult"`
	StochKPeriod   int     `yaml:"stoch_k_period"`
	StochDPeriod   int     `yaml:"stoch_d_period"`

	// Range scalp.
	RangeLookback int `yaml:"range_lookback"`

	// Volume spike.
	VolumeSpikeThreshold float64 `yaml:"volume_spike_threshold"`
	VolumeLookback       int     `yaml:"volume_lookback"`
	MinPriceChangePct    float64 `yaml:"min_price_change_pct"`

	// Heikin Ashi trend.
	HeikinAshiTrendPeriods int `yaml:"heikin_ashi_trend_periods"`

	// Composite strategy gates.
	SlowTrendEMA     int     `yaml:"slow_trend_ema"`
	MinVolatilityPct float64 `yaml:"min_volatility_pct"`
	MinMACDHistAbs   float64 `yaml:"min_macd_hist_abs"`
	MicroLevelWindow int     `yaml:"micro_level_window"`
}

// RiskConfig bounds stop/target computation and signal acceptance.
// Percentages are expressed in percent (0.5 means 0.5%).
type RiskConfig struct {
	RewardMultiple            float64 `yaml:"reward_multiple"`
	TargetRR                  float64 `yaml:"target_rr"`
	MinSLPct                  float64 `yaml:"min_sl_pct"`
	MaxSLPct                  float64 `yaml:"max_sl_pct"`
	MinVolatilityPct          float64 `yaml:"min_volatility_pct"`
	BreakevenTriggerR         float64 `yaml:"breakeven_trigger_r"`
	CooldownAfterStopSec      int     `yaml:"cooldown_after_stop_sec"`
	CooldownBetweenSignalsSec int     `yaml:"cooldown_between_signals_sec"`
}

// TelegramConfig identifies the notification channel. The bot token is
// taken from the TELEGRAM_BOT_TOKEN environment variable, never from
// the config file.
type TelegramConfig struct {
	Token  string `yaml:"-"`
	ChatID int64  `yaml:"chat_id"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

// Default returns the configuration the bot ships with.
func Default() *Config {
	return &Config{
		Trading: TradingConfig{
			Symbols:      []string{"BTCUSDT", "ETHUSDT", "SOLUSDT"},
			TFFast:       "15m",
			TFSlow:       "1h",
			CandlesLimit: 300,
		},
		Engine: EngineConfig{
			IntervalSec:     300,
			FetchTimeoutSec: 20,
		},
		Strategy: StrategyConfig{
			Active:                 []string{"triple_ema", "breakout_retest"},
			RSIWindow:              9,
			ATRWindow:              14,
			EMAFast:                8,
			EMAMedium:              21,
			EMASlow:                55,
			EMARSIWindow:           9,
			VWAPWindow:             20,
			VWAPDivergencePct:      0.15,
			BBWindow:               20,
			BBStdDev:               2.0,
			BBSqueezeThreshold:     0.1,
			MACDFast:               12,
			MACDSlow:               26,
			MACDSignal:             9,
			FastMACDFast:           6,
			FastMACDSlow:           13,
			FastMACDSignal:         5,
			KeltnerWindow:          20,
			KeltnerATRMult:         2.0,
			StochKPeriod:           14,
			StochDPeriod:           3,
			RangeLookback:          30,
			VolumeSpikeThreshold:   3.0,
			VolumeLookback:         20,
			MinPriceChangePct:      0.1,
			HeikinAshiTrendPeriods: 8,
			SlowTrendEMA:           50,
			MinVolatilityPct:       1.0,
			MinMACDHistAbs:         0.01,
			MicroLevelWindow:       12,
		},
		Risk: RiskConfig{
			RewardMultiple:            3.0,
			TargetRR:                  3.0,
			MinSLPct:                  0.5,
			MaxSLPct:                  2.0,
			MinVolatilityPct:          1.0,
			BreakevenTriggerR:         0.5,
			CooldownAfterStopSec:      3600,
			CooldownBetweenSignalsSec: 1800,
		},
		Metrics: MetricsConfig{
			ListenAddr: ":9105",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and pulls
// secrets from the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error so the caller can surface a
// clear configuration problem before any evaluation starts.
func (c *Config) Validate() error {
	if len(c.Trading.Symbols) == 0 {
		return errors.New("trading.symbols cannot be empty")
	}
	if c.Trading.TFFast == "" || c.Trading.TFSlow == "" {
		return errors.New("trading timeframes cannot be empty")
	}
	if c.Trading.CandlesLimit < 60 {
		return fmt.Errorf("trading.candles_limit (%d) too small for indicator warm-up", c.Trading.CandlesLimit)
	}
	if c.Engine.IntervalSec <= 0 {
		return errors.New("engine.interval_sec must be positive")
	}
	if c.Engine.FetchTimeoutSec <= 0 {
		return errors.New("engine.fetch_timeout_sec must be positive")
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	return c.Risk.Validate()
}

// Validate checks the strategy windows and thresholds.
func (c *StrategyConfig) Validate() error {
	for _, w := range []struct {
		name string
		val  int
	}{
		{"rsi_window", c.RSIWindow},
		{"atr_window", c.ATRWindow},
		{"ema_fast", c.EMAFast},
		{"ema_medium", c.EMAMedium},
		{"ema_slow", c.EMASlow},
		{"vwap_window", c.VWAPWindow},
		{"bb_window", c.BBWindow},
		{"macd_fast", c.MACDFast},
		{"macd_slow", c.MACDSlow},
		{"macd_signal", c.MACDSignal},
		{"keltner_window", c.KeltnerWindow},
		{"stoch_k_period", c.StochKPeriod},
		{"stoch_d_period", c.StochDPeriod},
		{"range_lookback", c.RangeLookback},
		{"volume_lookback", c.VolumeLookback},
		{"heikin_ashi_trend_periods", c.HeikinAshiTrendPeriods},
		{"slow_trend_ema", c.SlowTrendEMA},
		{"micro_level_window", c.MicroLevelWindow},
	} {
		if w.val <= 0 {
			return fmt.Errorf("strategy.%s must be positive", w.name)
		}
	}
	if !(c.EMAFast < c.EMAMedium && c.EMAMedium < c.EMASlow) {
		return errors.New("strategy EMA windows must satisfy fast < medium < slow")
	}
	if c.MACDFast >= c.MACDSlow || c.FastMACDFast >= c.FastMACDSlow {
		return errors.New("strategy MACD fast window must be below the slow window")
	}
	if c.BBStdDev <= 0 || c.KeltnerATRMult <= 0 {
		return errors.New("strategy band multipliers must be positive")
	}
	if c.VolumeSpikeThreshold <= 1 {
		return errors.New("strategy.volume_spike_threshold must exceed 1")
	}
	return nil
}

// Validate checks the risk bounds.
func (c *RiskConfig) Validate() error {
	if c.RewardMultiple <= 0 {
		return errors.New("risk.reward_multiple must be positive")
	}
	if c.TargetRR < 0 {
		return errors.New("risk.target_rr cannot be negative")
	}
	if c.MinSLPct <= 0 || c.MaxSLPct <= 0 || c.MinSLPct > c.MaxSLPct {
		return fmt.Errorf("risk SL bounds invalid: min %.3f max %.3f", c.MinSLPct, c.MaxSLPct)
	}
	if c.BreakevenTriggerR < 0 || c.BreakevenTriggerR > 1 {
		return fmt.Errorf("risk.breakeven_trigger_r (%f) must be between 0 and 1", c.BreakevenTriggerR)
	}
	if c.CooldownAfterStopSec < 0 || c.CooldownBetweenSignalsSec < 0 {
		return errors.New("risk cooldowns cannot be negative")
	}
	return nil
}
