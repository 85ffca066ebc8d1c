// Package notify delivers signal and close messages to the operator.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jpillora/backoff"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/logger"
	"github.com/avolkov-dev/swingbot/metrics"
	"github.com/avolkov-dev/swingbot/types"
)

// Notifier publishes trade events. Signal returns a message reference
// that Close can reply to, tying the exit to its entry in the channel.
type Notifier interface {
	Signal(ctx context.Context, symbol string, side types.Side, levels types.TradeLevels, strategy string) (int, error)
	Close(ctx context.Context, symbol string, side types.Side, reason types.CloseReason, price float64, replyTo int) error
}

const sendAttempts = 3

// Telegram sends messages through the Bot API with a short exponential
// retry on transient failures.
type Telegram struct {
	bot    *tgbotapi.BotAPI
	chatID int64
	log    logger.Logger
}

func NewTelegram(cfg config.TelegramConfig, log logger.Logger) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("telegram auth: %w", err)
	}
	return &Telegram{bot: bot, chatID: cfg.ChatID, log: log}, nil
}

func (t *Telegram) Signal(ctx context.Context, symbol string, side types.Side, levels types.TradeLevels, strategy string) (int, error) {
	text := formatSignal(symbol, side, levels, strategy)
	return t.send(ctx, text, 0)
}

func (t *Telegram) Close(ctx context.Context, symbol string, side types.Side, reason types.CloseReason, price float64, replyTo int) error {
	text := formatClose(symbol, side, reason, price)
	_, err := t.send(ctx, text, replyTo)
	return err
}

func (t *Telegram) send(ctx context.Context, text string, replyTo int) (int, error) {
	msg := tgbotapi.NewMessage(t.chatID, text)
	if replyTo != 0 {
		msg.ReplyToMessageID = replyTo
		msg.AllowSendingWithoutReply = true
	}

	b := &backoff.Backoff{Min: time.Second, Max: 8 * time.Second, Factor: 2}
	var lastErr error
	for attempt := 1; attempt <= sendAttempts; attempt++ {
		sent, err := t.bot.Send(msg)
		if err == nil {
			return sent.MessageID, nil
		}
		lastErr = err
		t.log.Warn("telegram_send_failed",
			logger.Int("attempt", attempt),
			logger.Err(err))
		if attempt == sendAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	metrics.NotifyFailures.Inc()
	return 0, fmt.Errorf("telegram send: %w", lastErr)
}

// Noop is used when no Telegram channel is configured. It logs what it
// would have sent and reports success.
type Noop struct {
	log logger.Logger
}

func NewNoop(log logger.Logger) *Noop { return &Noop{log: log} }

func (n *Noop) Signal(_ context.Context, symbol string, side types.Side, levels types.TradeLevels, strategy string) (int, error) {
	n.log.Info("signal_not_sent",
		logger.String("symbol", symbol),
		logger.String("side", string(side)),
		logger.String("strategy", strategy),
		logger.Float64("entry", levels.Entry))
	return 0, nil
}

func (n *Noop) Close(_ context.Context, symbol string, side types.Side, reason types.CloseReason, price float64, _ int) error {
	n.log.Info("close_not_sent",
		logger.String("symbol", symbol),
		logger.String("side", string(side)),
		logger.String("reason", string(reason)),
		logger.Float64("price", price))
	return nil
}

// fmtPrice keeps four decimals for prices above a dollar and six for
// sub-dollar tickers.
func fmtPrice(v float64) string {
	if v >= 1 {
		return fmt.Sprintf("%.4f", v)
	}
	return fmt.Sprintf("%.6f", v)
}

func formatSignal(symbol string, side types.Side, levels types.TradeLevels, strategy string) string {
	emoji := "🚀"
	if side == types.Short {
		emoji = "🔻"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s SIGNAL - %s\n", emoji, side, symbol)
	sb.WriteString("========================\n\n")
	fmt.Fprintf(&sb, "📍 Entry: %s\n", fmtPrice(levels.Entry))
	fmt.Fprintf(&sb, "🛑 Stop Loss: %s\n", fmtPrice(levels.Stop))
	fmt.Fprintf(&sb, "🎯 Take Profit: %s\n", fmtPrice(levels.Take))
	fmt.Fprintf(&sb, "📊 Risk/Reward: 1:%.2f\n", levels.RR)
	fmt.Fprintf(&sb, "🔧 Strategy: %s\n\n", strategy)
	sb.WriteString("💡 Tap prices to copy")
	return sb.String()
}

func formatClose(symbol string, side types.Side, reason types.CloseReason, price float64) string {
	emoji := "⚖️"
	switch reason {
	case types.CloseTP:
		emoji = "✅"
	case types.CloseSL:
		emoji = "🛑"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s %s HIT - %s\n", emoji, side, reason, symbol)
	sb.WriteString("========================\n\n")
	fmt.Fprintf(&sb, "💰 Exit Price: %s", fmtPrice(price))
	return sb.String()
}
