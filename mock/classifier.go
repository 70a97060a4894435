package mock

import (
	"context"

	"github.com/scsmith60/recipeclip"
)

var _ recipeclip.SiteClassifier = (*SiteClassifier)(nil)

// SiteClassifier is a mock implementation of recipeclip.SiteClassifier.
type SiteClassifier struct {
	ClassifyFn         func(rawurl string) recipeclip.SiteCategory
	DiscoverIfNeededFn func(ctx context.Context, rawurl string, method recipeclip.DetectionMethod) error
}

func (c *SiteClassifier) Classify(rawurl string) recipeclip.SiteCategory {
	return c.ClassifyFn(rawurl)
}

func (c *SiteClassifier) DiscoverIfNeeded(ctx context.Context, rawurl string, method recipeclip.DetectionMethod) error {
	if c.DiscoverIfNeededFn == nil {
		return nil
	}
	return c.DiscoverIfNeededFn(ctx, rawurl, method)
}

var _ recipeclip.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of recipeclip.Extractor.
type Extractor struct {
	NameFn    func() recipeclip.StrategyName
	ExtractFn func(html string, pageURL string) (*recipeclip.PartialRecipe, error)
}

func (e *Extractor) Name() recipeclip.StrategyName {
	return e.NameFn()
}

func (e *Extractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	return e.ExtractFn(html, pageURL)
}
