package engine

import (
	"aigames/config"
	"aigames/searcher"
)

// NewStrategy builds the strategy described by cfg, playing for the Cpu.
func NewStrategy[M comparable](cfg config.Strategy) (searcher.Strategy[M], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case config.Matchbox:
		opts := []searcher.Option{
			searcher.WithDefaultWeight(cfg.Matchbox.DefaultWeight),
			searcher.WithFloor(cfg.Matchbox.Floor),
		}
		if cfg.Matchbox.Seed != 0 {
			opts = append(opts, searcher.WithSeed(cfg.Matchbox.Seed))
		}
		return searcher.NewMatchbox[M](opts...), nil
	default:
		opts := []searcher.Option{
			searcher.WithMaxScore(cfg.Search.MaxScore),
			searcher.WithThreatCutoff(cfg.Search.ThreatCutoff),
		}
		if cfg.Search.Metrics {
			opts = append(opts, searcher.WithMetrics())
		}
		return searcher.NewNegamax[M](cfg.Search.Depth, opts...), nil
	}
}
