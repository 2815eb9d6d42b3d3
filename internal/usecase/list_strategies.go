package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/gpurun/internal/domain"
)

// ListStrategiesInput contains the parameters for listing strategies.
type ListStrategiesInput struct{}

// StrategyInfo describes one effective strategy.
type StrategyInfo struct {
	Name      string
	Def       domain.StrategyDef
	IsDefault bool
}

// ListStrategiesOutput contains the effective strategy set.
type ListStrategiesOutput struct {
	Strategies []StrategyInfo // Sorted by name
}

// ListStrategies is the use case for listing the effective strategy
// set: built-ins plus anything config defined or overrode.
type ListStrategies struct {
	configLoader domain.ConfigLoader
}

// NewListStrategies creates a new ListStrategies use case.
func NewListStrategies(configLoader domain.ConfigLoader) *ListStrategies {
	return &ListStrategies{configLoader: configLoader}
}

// Execute returns the effective strategies sorted by name.
func (uc *ListStrategies) Execute(_ context.Context, _ ListStrategiesInput) (*ListStrategiesOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	defaultName := cfg.Launch.Strategy
	if defaultName == "" {
		defaultName = string(domain.DefaultStrategy)
	}

	names := cfg.StrategyNames()
	out := &ListStrategiesOutput{
		Strategies: make([]StrategyInfo, 0, len(names)),
	}
	for _, name := range names {
		out.Strategies = append(out.Strategies, StrategyInfo{
			Name:      name,
			Def:       cfg.Strategies[name],
			IsDefault: name == defaultName,
		})
	}

	return out, nil
}
