package adapter

import (
	"math/rand/v2"
	"sync/atomic"

	logger "github.com/shuliangfu/logger"
)

// sampler implements Bernoulli sampling: each eligible entry is kept
// independently with the configured probability. A non-empty level list
// restricts the coin flip to the listed levels; entries at any other level
// bypass sampling and always pass. The counter increments for every entry
// that reaches the sampler, kept or dropped.
type sampler struct {
	cfg       *logger.SamplingConfig
	levels    map[logger.Level]struct{}
	counter   atomic.Uint64
	randFloat func() float64
}

func newSampler(cfg *logger.SamplingConfig) *sampler {
	if cfg == nil {
		return nil
	}

	smp := &sampler{
		cfg:       cfg,
		randFloat: rand.Float64,
	}

	if len(cfg.Levels) > 0 {
		smp.levels = make(map[logger.Level]struct{}, len(cfg.Levels))
		for _, level := range cfg.Levels {
			smp.levels[level] = struct{}{}
		}
	}

	return smp
}

// Allow reports whether an entry at the given level should be kept. A nil
// sampler keeps everything.
func (s *sampler) Allow(level logger.Level) bool {
	if s == nil {
		return true
	}

	s.counter.Add(1)

	if s.levels != nil {
		if _, listed := s.levels[level]; !listed {
			return true
		}
	}

	return s.randFloat() < s.cfg.Rate
}

// seen returns how many entries have reached the sampler.
func (s *sampler) seen() uint64 {
	return s.counter.Load()
}
