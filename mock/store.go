package mock

import (
	"context"

	"github.com/scsmith60/recipeclip"
)

var _ recipeclip.SiteStore = (*SiteStore)(nil)

// SiteStore is a mock implementation of recipeclip.SiteStore.
type SiteStore struct {
	DiscoveredSitesFn      func(ctx context.Context) ([]*recipeclip.DiscoveredSite, error)
	UpsertDiscoveredSiteFn func(ctx context.Context, hostname string, method recipeclip.DetectionMethod) error
}

func (s *SiteStore) DiscoveredSites(ctx context.Context) ([]*recipeclip.DiscoveredSite, error) {
	return s.DiscoveredSitesFn(ctx)
}

func (s *SiteStore) UpsertDiscoveredSite(ctx context.Context, hostname string, method recipeclip.DetectionMethod) error {
	return s.UpsertDiscoveredSiteFn(ctx, hostname, method)
}

var _ recipeclip.AttemptLogger = (*AttemptLogger)(nil)

// AttemptLogger is a mock implementation of recipeclip.AttemptLogger.
type AttemptLogger struct {
	AppendAttemptFn func(ctx context.Context, attempt *recipeclip.ImportAttempt) error
}

func (l *AttemptLogger) AppendAttempt(ctx context.Context, attempt *recipeclip.ImportAttempt) error {
	return l.AppendAttemptFn(ctx, attempt)
}

var _ recipeclip.PatternService = (*PatternService)(nil)

// PatternService is a mock implementation of recipeclip.PatternService.
type PatternService struct {
	UpsertPatternFn func(ctx context.Context, category recipeclip.SiteCategory, pattern string, method recipeclip.StrategyName, version string, success bool) error
	BestStrategyFn  func(ctx context.Context, category recipeclip.SiteCategory, pattern string) (*recipeclip.PatternStats, error)
}

func (s *PatternService) UpsertPattern(ctx context.Context, category recipeclip.SiteCategory, pattern string, method recipeclip.StrategyName, version string, success bool) error {
	return s.UpsertPatternFn(ctx, category, pattern, method, version, success)
}

func (s *PatternService) BestStrategy(ctx context.Context, category recipeclip.SiteCategory, pattern string) (*recipeclip.PatternStats, error) {
	return s.BestStrategyFn(ctx, category, pattern)
}

var _ recipeclip.ConfigService = (*ConfigService)(nil)

// ConfigService is a mock implementation of recipeclip.ConfigService.
type ConfigService struct {
	ConfigForFn func(ctx context.Context, category recipeclip.SiteCategory) (*recipeclip.ParserConfig, error)
}

func (s *ConfigService) ConfigFor(ctx context.Context, category recipeclip.SiteCategory) (*recipeclip.ParserConfig, error) {
	return s.ConfigForFn(ctx, category)
}
