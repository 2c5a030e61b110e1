package ptsession

import (
	"io"
	"log"
)

// defaultMaxGapSecs is the gap threshold MusicDurationSecs uses when
// the caller doesn't ask for MusicDurationSecs with an explicit value
// and instead relies on DurationSecs (see accessors.go).
const defaultMaxGapSecs = 2.0

type loadConfig struct {
	logger     *log.Logger
	maxGapSecs float64
}

func newLoadConfig() *loadConfig {
	return &loadConfig{
		logger:     log.New(io.Discard, "", 0),
		maxGapSecs: defaultMaxGapSecs,
	}
}

// Option configures a Load call. The zero value of every option is
// the safe, silent default: no logging, a 2-second default gap for
// duration calculation.
type Option func(*loadConfig)

// WithLogger routes documented-quirk warnings (e.g. a raw MIDI tick
// value observed below ZERO_TICKS) to logger instead of discarding
// them. A nil logger restores the silent default.
func WithLogger(logger *log.Logger) Option {
	return func(c *loadConfig) {
		if logger == nil {
			logger = log.New(io.Discard, "", 0)
		}
		c.logger = logger
	}
}

// WithDefaultMaxGapSecs overrides the gap threshold DurationSecs uses
// when calling MusicDurationSecs without an explicit argument.
func WithDefaultMaxGapSecs(secs float64) Option {
	return func(c *loadConfig) { c.maxGapSecs = secs }
}
