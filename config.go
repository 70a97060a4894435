package recipeclip

import "context"

// ParserConfig is one versioned strategy ordering for a site category.
// Multiple configs may exist per category at once (e.g. a new version under
// rollout); exactly one is selected per extraction call.
type ParserConfig struct {
	Category          SiteCategory   `json:"category"`
	Version           string         `json:"version"`
	Strategies        []StrategyName `json:"strategies"`
	RolloutPercentage int            `json:"rolloutPercentage"`
	Enabled           bool           `json:"enabled"`
}

// Validate returns an error if the config contains invalid fields.
func (c *ParserConfig) Validate() error {
	if c.Category == "" {
		return Errorf(EINVALID, "parser config category required")
	}
	if c.Version == "" {
		return Errorf(EINVALID, "parser config version required")
	}
	if len(c.Strategies) == 0 {
		return Errorf(EINVALID, "parser config needs at least one strategy")
	}
	if c.RolloutPercentage < 0 || c.RolloutPercentage > 100 {
		return Errorf(EINVALID, "rollout percentage must be 0-100")
	}
	return nil
}

// ConfigService selects the active parser configuration for a category:
// the enabled config with the highest rollout percentage, falling back to
// the category's v1 config when nothing is enabled. Configs are static
// defaults today but implementations may override them from the persistent
// store.
type ConfigService interface {
	ConfigFor(ctx context.Context, category SiteCategory) (*ParserConfig, error)
}
