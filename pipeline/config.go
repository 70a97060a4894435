package pipeline

import (
	"context"

	"github.com/scsmith60/recipeclip"
)

var _ recipeclip.ConfigService = (*StaticConfigService)(nil)

// defaultConfigs holds the compile-time v1 strategy orderings per site
// category. Every list starts with the structured-markup pair: a well-formed
// Recipe block wins no matter how the host is classified, and both stages
// are cheap no-ops on pages without the markup. Platform pages then try the
// embedded state blob and fall back through DOM captions to the oEmbed
// endpoint. Every list ends with the title-image-only fallback so an
// extraction always produces a result.
var defaultConfigs = map[recipeclip.SiteCategory][]*recipeclip.ParserConfig{
	recipeclip.SiteTikTok: {
		{
			Category: recipeclip.SiteTikTok,
			Version:  "v1",
			Strategies: []recipeclip.StrategyName{
				recipeclip.StrategyJSONLD,
				recipeclip.StrategyMicrodata,
				recipeclip.StrategyPlatformState,
				recipeclip.StrategyPlatformDOM,
				recipeclip.StrategyEmbed,
				recipeclip.StrategyMetaDesc,
				recipeclip.StrategyFallback,
			},
			RolloutPercentage: 100,
			Enabled:           true,
		},
	},
	recipeclip.SiteInstagram: {
		{
			Category: recipeclip.SiteInstagram,
			Version:  "v1",
			Strategies: []recipeclip.StrategyName{
				recipeclip.StrategyJSONLD,
				recipeclip.StrategyMicrodata,
				recipeclip.StrategyPlatformState,
				recipeclip.StrategyPlatformDOM,
				recipeclip.StrategyMetaDesc,
				recipeclip.StrategyFallback,
			},
			RolloutPercentage: 100,
			Enabled:           true,
		},
	},
	recipeclip.SiteFacebook: {
		{
			Category: recipeclip.SiteFacebook,
			Version:  "v1",
			Strategies: []recipeclip.StrategyName{
				recipeclip.StrategyJSONLD,
				recipeclip.StrategyMicrodata,
				recipeclip.StrategyPlatformState,
				recipeclip.StrategyPlatformDOM,
				recipeclip.StrategyEmbed,
				recipeclip.StrategyMetaDesc,
				recipeclip.StrategyFallback,
			},
			RolloutPercentage: 100,
			Enabled:           true,
		},
	},
	recipeclip.SiteRecipe: {
		{
			Category: recipeclip.SiteRecipe,
			Version:  "v1",
			Strategies: []recipeclip.StrategyName{
				recipeclip.StrategyJSONLD,
				recipeclip.StrategyMicrodata,
				recipeclip.StrategyHeadings,
				recipeclip.StrategyMetaDesc,
				recipeclip.StrategyFallback,
			},
			RolloutPercentage: 100,
			Enabled:           true,
		},
	},
	recipeclip.SiteGeneric: {
		{
			Category: recipeclip.SiteGeneric,
			Version:  "v1",
			Strategies: []recipeclip.StrategyName{
				recipeclip.StrategyJSONLD,
				recipeclip.StrategyMicrodata,
				recipeclip.StrategyHeadings,
				recipeclip.StrategyCaption,
				recipeclip.StrategyMetaDesc,
				recipeclip.StrategyFallback,
			},
			RolloutPercentage: 100,
			Enabled:           true,
		},
	},
}

// StaticConfigService serves the compile-time default parser configs. It is
// the fallback behind sqlite.ConfigService and the whole story when no
// database is attached.
type StaticConfigService struct {
	configs map[recipeclip.SiteCategory][]*recipeclip.ParserConfig
}

// NewStaticConfigService returns a config service backed by the built-in
// defaults.
func NewStaticConfigService() *StaticConfigService {
	return &StaticConfigService{configs: defaultConfigs}
}

// ConfigFor selects the enabled config with the highest rollout percentage
// for the category, falling back to the category's v1 config when nothing is
// enabled. Unknown categories get the generic config.
func (s *StaticConfigService) ConfigFor(ctx context.Context, category recipeclip.SiteCategory) (*recipeclip.ParserConfig, error) {
	configs := s.configs[category]
	if len(configs) == 0 {
		configs = s.configs[recipeclip.SiteGeneric]
	}

	var best *recipeclip.ParserConfig
	for _, c := range configs {
		if !c.Enabled {
			continue
		}
		if best == nil || c.RolloutPercentage > best.RolloutPercentage {
			best = c
		}
	}
	if best != nil {
		return best, nil
	}
	for _, c := range configs {
		if c.Version == "v1" {
			return c, nil
		}
	}
	return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no parser config for category %q", category)
}
