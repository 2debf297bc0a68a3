package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/lexistack/config"
)

const (
	defaultLetterDistribution = "english"
	defaultStartTime          = 60
	defaultTickInterval       = 100 * time.Millisecond
	defaultRowInterval        = 10 * time.Second
)

type GameOptions struct {
	LetterDistribution string
	// StartTime is in seconds.
	StartTime    float64
	TickInterval time.Duration
	RowInterval  time.Duration
}

// SetDefaults fills in every unset option from cfg, or from built-in
// defaults if cfg is nil.
func (opts *GameOptions) SetDefaults(cfg *config.Config) {
	ldName := defaultLetterDistribution
	startTime := float64(defaultStartTime)
	tick, row := defaultTickInterval, defaultRowInterval
	if cfg != nil && cfg.Viper != nil {
		ldName = cfg.GetString(config.ConfigLetterDistribution)
		startTime = cfg.GetFloat64(config.ConfigStartTime)
		tick = cfg.GetDuration(config.ConfigTickInterval)
		row = cfg.GetDuration(config.ConfigRowInterval)
	}
	if opts.LetterDistribution == "" {
		opts.LetterDistribution = ldName
		log.Info().Msgf("using default letter distribution %v", opts.LetterDistribution)
	}
	if opts.StartTime == 0 {
		opts.StartTime = startTime
	}
	if opts.TickInterval == 0 {
		opts.TickInterval = tick
	}
	if opts.RowInterval == 0 {
		opts.RowInterval = row
	}
}

func (opts *GameOptions) Validate() error {
	if opts.StartTime <= 0 {
		return fmt.Errorf("start time must be positive, got %v", opts.StartTime)
	}
	if opts.TickInterval <= 0 || opts.RowInterval <= 0 {
		return errors.New("tick and row intervals must be positive")
	}
	return nil
}
