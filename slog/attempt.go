package slog

import (
	"context"
	"log/slog"

	"github.com/scsmith60/recipeclip"
)

// Ensure LoggingAttemptLogger implements recipeclip.AttemptLogger.
var _ recipeclip.AttemptLogger = (*LoggingAttemptLogger)(nil)

// LoggingAttemptLogger wraps an AttemptLogger with outcome logging. The
// attempt log is written off the hot path, so this is often the only place
// a failed extraction becomes visible.
type LoggingAttemptLogger struct {
	next   recipeclip.AttemptLogger
	logger *slog.Logger
}

// NewLoggingAttemptLogger creates a new LoggingAttemptLogger.
func NewLoggingAttemptLogger(next recipeclip.AttemptLogger, logger *slog.Logger) *LoggingAttemptLogger {
	return &LoggingAttemptLogger{next: next, logger: logger}
}

// AppendAttempt logs the attempt outcome, and delegates.
func (l *LoggingAttemptLogger) AppendAttempt(ctx context.Context, attempt *recipeclip.ImportAttempt) error {
	err := l.next.AppendAttempt(ctx, attempt)
	l.logger.Info("import attempt",
		"url", attempt.URL,
		"category", string(attempt.SiteCategory),
		"strategy", string(attempt.StrategyUsed),
		"success", attempt.Success,
		"confidence", string(attempt.Confidence),
		"ingredients", attempt.Ingredients,
		"steps", attempt.Steps,
		"err", err,
	)
	return err
}
