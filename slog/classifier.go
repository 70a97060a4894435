package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/scsmith60/recipeclip"
)

// Ensure LoggingClassifier implements recipeclip.SiteClassifier.
var _ recipeclip.SiteClassifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a SiteClassifier with classification logging.
type LoggingClassifier struct {
	next   recipeclip.SiteClassifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next recipeclip.SiteClassifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify logs the URL and resulting category, and delegates.
func (c *LoggingClassifier) Classify(rawurl string) recipeclip.SiteCategory {
	category := c.next.Classify(rawurl)
	c.logger.Debug("classify",
		"url", rawurl,
		"category", string(category),
	)
	return category
}

// DiscoverIfNeeded logs discoveries, and delegates.
func (c *LoggingClassifier) DiscoverIfNeeded(ctx context.Context, rawurl string, method recipeclip.DetectionMethod) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("site discovery",
			"url", rawurl,
			"method", string(method),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.DiscoverIfNeeded(ctx, rawurl, method)
}
