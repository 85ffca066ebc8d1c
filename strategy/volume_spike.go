package strategy

import (
	"math"

	"github.com/avolkov-dev/swingbot/config"
	"github.com/avolkov-dev/swingbot/indicator"
	"github.com/avolkov-dev/swingbot/types"
)

// volumeSpike triggers on volume far above its trailing average paired
// with a real price move, taking the direction of that move.
type volumeSpike struct {
	cfg config.StrategyConfig
}

func (s *volumeSpike) Name() Name { return VolumeSpike }

func (s *volumeSpike) Evaluate(fast, slow []types.Bar) *types.Signal {
	if len(fast) < s.cfg.VolumeLookback+1 {
		return nil
	}
	closes := types.Closes(fast)
	volumes := types.Volumes(fast)

	volumeMA := indicator.SMA(volumes, s.cfg.VolumeLookback)
	avgVolume := last(volumeMA)
	if !indicator.Valid(avgVolume) || avgVolume == 0 {
		return nil
	}

	currentVolume := last(volumes)
	volumeRatio := currentVolume / avgVolume
	if volumeRatio < s.cfg.VolumeSpikeThreshold {
		return nil
	}

	lastClose := last(closes)
	prevClose := prev(closes)
	priceChange := (lastClose - prevClose) / prevClose
	if math.Abs(priceChange)*100 <= s.cfg.MinPriceChangePct {
		return nil
	}

	side := types.Long
	if priceChange < 0 {
		side = types.Short
	}
	return &types.Signal{Side: side, Entry: lastClose, Context: VolumeSpikeContext{
		VolumeRatio:    volumeRatio,
		PriceChangePct: priceChange * 100,
		AvgVolume:      avgVolume,
		CurrentVolume:  currentVolume,
	}}
}
