// Package marketdata abstracts the exchange market-data feed behind a
// small provider interface so the engine can be tested without the
// network.
package marketdata

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/adshao/go-binance/v2"

	"github.com/avolkov-dev/swingbot/types"
)

// Provider serves the two reads the engine needs each cycle.
type Provider interface {
	Bars(ctx context.Context, symbol, interval string, limit int) ([]types.Bar, error)
	Price(ctx context.Context, symbol string) (float64, error)
}

// Binance serves market data from the Binance spot REST API. Public
// endpoints only, no API keys required.
type Binance struct {
	client *binance.Client
}

func NewBinance() *Binance {
	return &Binance{client: binance.NewClient("", "")}
}

// Bars fetches the most recent klines for the symbol and interval.
func (b *Binance) Bars(ctx context.Context, symbol, interval string, limit int) ([]types.Bar, error) {
	klines, err := b.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		Limit(limit).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch klines %s %s: %w", symbol, interval, err)
	}

	bars := make([]types.Bar, 0, len(klines))
	for _, k := range klines {
		bar, err := parseKline(k)
		if err != nil {
			return nil, fmt.Errorf("parse kline %s %s: %w", symbol, interval, err)
		}
		bars = append(bars, bar)
	}
	return bars, nil
}

// Price returns the current ticker price for the symbol.
func (b *Binance) Price(ctx context.Context, symbol string) (float64, error) {
	prices, err := b.client.NewListPricesService().
		Symbol(symbol).
		Do(ctx)
	if err != nil {
		return 0, fmt.Errorf("fetch price %s: %w", symbol, err)
	}
	if len(prices) == 0 {
		return 0, fmt.Errorf("fetch price %s: empty response", symbol)
	}
	px, err := strconv.ParseFloat(prices[0].Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %s %q: %w", symbol, prices[0].Price, err)
	}
	return px, nil
}

func parseKline(k *binance.Kline) (types.Bar, error) {
	open, err := strconv.ParseFloat(k.Open, 64)
	if err != nil {
		return types.Bar{}, err
	}
	high, err := strconv.ParseFloat(k.High, 64)
	if err != nil {
		return types.Bar{}, err
	}
	low, err := strconv.ParseFloat(k.Low, 64)
	if err != nil {
		return types.Bar{}, err
	}
	closePx, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return types.Bar{}, err
	}
	volume, err := strconv.ParseFloat(k.Volume, 64)
	if err != nil {
		return types.Bar{}, err
	}
	return types.Bar{
		Time:   time.Unix(k.OpenTime/1000, 0).UTC(),
		Open:   open,
		High:   high,
		Low:    low,
		Close:  closePx,
		Volume: volume,
	}, nil
}
