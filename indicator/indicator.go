// Package indicator implements pure numeric transforms over bar
// sequences. Every series-producing function returns a slice aligned
// with its input; positions whose computation window is not yet filled
// hold NaN. Callers must check Valid before consuming a reading.
package indicator

import (
	"math"

	"github.com/avolkov-dev/swingbot/types"
)

// Valid reports whether a series value is defined.
func Valid(v float64) bool { return !math.IsNaN(v) }

func undefinedSeries(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

// SMA is the simple moving average. Undefined for the first window-1
// positions.
func SMA(values []float64, window int) []float64 {
	out := undefinedSeries(len(values))
	if window <= 0 {
		return out
	}
	acc := 0.0
	for i, v := range values {
		acc += v
		if i >= window {
			acc -= values[i-window]
		}
		if i >= window-1 {
			out[i] = acc / float64(window)
		}
	}
	return out
}

// EMA is the exponential moving average with smoothing factor
// k = 2/(window+1), seeded by the first value. Defined from index 0.
func EMA(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	k := 2.0 / (float64(window) + 1.0)
	ema := values[0]
	out[0] = ema
	for i := 1; i < len(values); i++ {
		ema = (values[i]-ema)*k + ema
		out[i] = ema
	}
	return out
}

// RSI is the Wilder-style relative strength index using EMA-smoothed
// gains and losses. The whole series is undefined until the input holds
// at least window+1 closes. When the smoothed loss is exactly zero the
// value is 100.
func RSI(closes []float64, window int) []float64 {
	if len(closes) < window+1 {
		return undefinedSeries(len(closes))
	}
	gains := make([]float64, len(closes))
	losses := make([]float64, len(closes))
	for i := 1; i < len(closes); i++ {
		chg := closes[i] - closes[i-1]
		if chg > 0 {
			gains[i] = chg
		} else {
			losses[i] = -chg
		}
	}
	avgGain := EMA(gains, window)
	avgLoss := EMA(losses, window)
	out := make([]float64, len(closes))
	for i := range closes {
		if avgLoss[i] == 0 {
			out[i] = 100
			continue
		}
		rs := avgGain[i] / avgLoss[i]
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// MACD returns the MACD line, its signal line and the histogram.
// Undefined MACD entries are treated as 0 before signal smoothing.
func MACD(closes []float64, fast, slow, signal int) (macd, signalLine, hist []float64) {
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)
	macd = make([]float64, len(closes))
	for i := range closes {
		macd[i] = emaFast[i] - emaSlow[i]
	}
	smoothed := make([]float64, len(macd))
	for i, v := range macd {
		if Valid(v) {
			smoothed[i] = v
		}
	}
	signalLine = EMA(smoothed, signal)
	hist = make([]float64, len(closes))
	for i := range closes {
		hist[i] = macd[i] - signalLine[i]
	}
	return macd, signalLine, hist
}

// TrueRange computes the per-bar true range. The first bar uses
// high-low since there is no previous close.
func TrueRange(highs, lows, closes []float64) []float64 {
	if len(closes) == 0 {
		return nil
	}
	out := make([]float64, len(closes))
	out[0] = highs[0] - lows[0]
	for i := 1; i < len(closes); i++ {
		tr := highs[i] - lows[i]
		if hc := math.Abs(highs[i] - closes[i-1]); hc > tr {
			tr = hc
		}
		if lc := math.Abs(lows[i] - closes[i-1]); lc > tr {
			tr = lc
		}
		out[i] = tr
	}
	return out
}

// ATR is the EMA of the true range.
func ATR(highs, lows, closes []float64, window int) []float64 {
	return EMA(TrueRange(highs, lows, closes), window)
}

// BollingerBands returns upper, middle (SMA) and lower bands using the
// population standard deviation over the trailing window.
func BollingerBands(closes []float64, window int, stdDevMult float64) (upper, middle, lower []float64) {
	middle = SMA(closes, window)
	upper = undefinedSeries(len(closes))
	lower = undefinedSeries(len(closes))
	if len(closes) < window {
		return upper, middle, lower
	}
	for i := window - 1; i < len(closes); i++ {
		mean := middle[i]
		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := closes[j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(window))
		upper[i] = mean + stdDevMult*std
		lower[i] = mean - stdDevMult*std
	}
	return upper, middle, lower
}

// VWAP is the rolling volume-weighted average of the typical price
// (h+l+c)/3 over the trailing window. Undefined while the window is
// unfilled or when the trailing volume sum is zero.
func VWAP(highs, lows, closes, volumes []float64, window int) []float64 {
	out := undefinedSeries(len(closes))
	if len(closes) < window {
		return out
	}
	for i := window - 1; i < len(closes); i++ {
		var pv, vol float64
		for j := i - window + 1; j <= i; j++ {
			tp := (highs[j] + lows[j] + closes[j]) / 3
			pv += tp * volumes[j]
			vol += volumes[j]
		}
		if vol == 0 {
			continue
		}
		out[i] = pv / vol
	}
	return out
}

// Stochastic returns %K over kPeriod and %D as the SMA of %K over
// dPeriod. A degenerate range (highest == lowest) yields the neutral
// midpoint 50 rather than a division fault. Undefined %K entries are
// treated as 0 before %D smoothing.
func Stochastic(highs, lows, closes []float64, kPeriod, dPeriod int) (k, d []float64) {
	k = undefinedSeries(len(closes))
	if len(closes) < kPeriod {
		return k, undefinedSeries(len(closes))
	}
	for i := kPeriod - 1; i < len(closes); i++ {
		highest := highs[i]
		lowest := lows[i]
		for j := i - kPeriod + 1; j < i; j++ {
			if highs[j] > highest {
				highest = highs[j]
			}
			if lows[j] < lowest {
				lowest = lows[j]
			}
		}
		if highest == lowest {
			k[i] = 50
		} else {
			k[i] = (closes[i] - lowest) / (highest - lowest) * 100
		}
	}
	smoothed := make([]float64, len(k))
	for i, v := range k {
		if Valid(v) {
			smoothed[i] = v
		}
	}
	d = SMA(smoothed, dPeriod)
	return k, d
}

// KeltnerChannels returns upper, center (EMA of closes) and lower
// channel lines offset by atrMult times the ATR.
func KeltnerChannels(highs, lows, closes []float64, window int, atrMult float64) (upper, center, lower []float64) {
	center = EMA(closes, window)
	atr := ATR(highs, lows, closes, window)
	upper = make([]float64, len(closes))
	lower = make([]float64, len(closes))
	for i := range closes {
		upper[i] = center[i] + atrMult*atr[i]
		lower[i] = center[i] - atrMult*atr[i]
	}
	return upper, center, lower
}

// HeikinAshi produces the synthetic smoothed candle sequence. The first
// synthetic candle equals the source candle.
func HeikinAshi(bars []types.Bar) []types.Bar {
	if len(bars) == 0 {
		return nil
	}
	out := make([]types.Bar, len(bars))
	out[0] = bars[0]
	for i := 1; i < len(bars); i++ {
		src := bars[i]
		haClose := (src.Open + src.High + src.Low + src.Close) / 4
		haOpen := (out[i-1].Open + out[i-1].Close) / 2
		haHigh := math.Max(src.High, math.Max(haOpen, haClose))
		haLow := math.Min(src.Low, math.Min(haOpen, haClose))
		out[i] = types.Bar{
			Time:   src.Time,
			Open:   haOpen,
			High:   haHigh,
			Low:    haLow,
			Close:  haClose,
			Volume: src.Volume,
		}
	}
	return out
}

// MicroLevels returns the trailing min/max close as support and
// resistance. ok is false when fewer than window closes are available.
func MicroLevels(closes []float64, window int) (support, resistance float64, ok bool) {
	if len(closes) < window {
		return 0, 0, false
	}
	recent := closes[len(closes)-window:]
	support, resistance = recent[0], recent[0]
	for _, c := range recent[1:] {
		if c < support {
			support = c
		}
		if c > resistance {
			resistance = c
		}
	}
	return support, resistance, true
}
