package recipeclip

import (
	"context"
	"time"
)

// ImportAttempt is an append-only log row written once per extraction call.
// Logging is best-effort: a failed write must never fail the extraction.
// Attempts feed the pattern-success aggregation and analytics; the
// orchestrator never reads them back.
type ImportAttempt struct {
	ID            string       `json:"id"`
	URL           string       `json:"url"`
	SiteCategory  SiteCategory `json:"siteCategory"`
	ParserVersion string       `json:"parserVersion"`
	StrategyUsed  StrategyName `json:"strategyUsed"`
	Success       bool         `json:"success"`
	Confidence    Confidence   `json:"confidence,omitempty"`
	Ingredients   int          `json:"ingredientsCount"`
	Steps         int          `json:"stepsCount"`
	RawHTMLSample string       `json:"rawHtmlSample,omitempty"`
	ErrorMessage  string       `json:"errorMessage,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// Validate returns an error if the attempt contains invalid fields.
func (a *ImportAttempt) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "attempt URL required")
	}
	if a.SiteCategory == "" {
		return Errorf(EINVALID, "attempt site category required")
	}
	return nil
}

// AttemptLogger appends import attempts to storage.
type AttemptLogger interface {
	AppendAttempt(ctx context.Context, attempt *ImportAttempt) error
}

// SampleThrottle decides whether an attempt's raw HTML sample is worth
// keeping. ShouldSample marks the key as seen; only the first sighting of a
// key returns true. See bloom/ for the concrete implementation.
type SampleThrottle interface {
	ShouldSample(key string) bool
}

// ExtractionPattern aggregates success counts per (category, page pattern,
// strategy, parser version). The pattern key is a short fingerprint of
// structural markers present in a page, not the raw HTML. Counters only
// increase; rows are never pruned.
type ExtractionPattern struct {
	Category     SiteCategory `json:"category"`
	HTMLPattern  string       `json:"htmlPattern"`
	Method       StrategyName `json:"method"`
	Version      string       `json:"version"`
	SuccessCount int          `json:"successCount"`
	TotalCount   int          `json:"totalCount"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// SuccessRate returns the running success rate in [0, 1].
func (p *ExtractionPattern) SuccessRate() float64 {
	if p.TotalCount == 0 {
		return 0
	}
	return float64(p.SuccessCount) / float64(p.TotalCount)
}

// PatternStats is the result of a best-known-strategy lookup.
type PatternStats struct {
	Method StrategyName `json:"method"`
	Rate   float64      `json:"rate"`
}

// BestStrategyThreshold is the minimum success rate a logged method must
// reach before BestStrategy suggests it.
const BestStrategyThreshold = 0.5

// PatternService maintains the per-pattern success aggregation.
type PatternService interface {
	// UpsertPattern increments the counter pair for the key and recomputes
	// the rate.
	UpsertPattern(ctx context.Context, category SiteCategory, pattern string, method StrategyName, version string, success bool) error

	// BestStrategy returns the best-performing logged method for the exact
	// pattern when its success rate is at or above BestStrategyThreshold.
	// Returns ENOTFOUND otherwise. The orchestrator treats this as an
	// optimization hook for reordering strategies, never a requirement.
	BestStrategy(ctx context.Context, category SiteCategory, pattern string) (*PatternStats, error)
}
