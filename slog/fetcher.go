// Package slog provides logging decorators for recipeclip collaborators.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/scsmith60/recipeclip"
)

// Ensure LoggingFetcher implements recipeclip.Fetcher.
var _ recipeclip.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with fetch logging.
type LoggingFetcher struct {
	next   recipeclip.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next recipeclip.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL, identity, size, and duration, and delegates.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string, identity recipeclip.Identity) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"url", url,
			"identity", identityName(identity),
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url, identity)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

func identityName(identity recipeclip.Identity) string {
	if identity == recipeclip.IdentityMobile {
		return "mobile"
	}
	return "desktop"
}
