package depot

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options tunes the engine's timestep handling
type Options struct {
	// MaxTimestep bounds the delta of a single tick, limiting catch-up after a stall
	MaxTimestep time.Duration `yaml:"max_timestep"`
	// FixedTimestep is the simulated step of every FixedUpdate run
	FixedTimestep time.Duration `yaml:"fixed_timestep"`
}

func DefaultOptions() Options {
	return Options{
		MaxTimestep:   5 * time.Second / 60,
		FixedTimestep: time.Second / 60,
	}
}

func (o Options) Validate() error {
	if o.FixedTimestep <= 0 {
		return OptionsError{Field: "fixed_timestep", Value: o.FixedTimestep}
	}
	if o.MaxTimestep <= 0 {
		return OptionsError{Field: "max_timestep", Value: o.MaxTimestep}
	}
	return nil
}

// LoadOptions decodes YAML options such as
//
//	max_timestep: 83ms
//	fixed_timestep: 16ms
//
// Fields left out keep their DefaultOptions value.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("failed to decode engine options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

type EngineOption func(*Engine)

func WithOptions(opts Options) EngineOption {
	return func(e *Engine) {
		e.options = opts
	}
}

// WithClock replaces the default TickerClock
func WithClock(clock FrameClock) EngineOption {
	return func(e *Engine) {
		e.clock = clock
	}
}

func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}
