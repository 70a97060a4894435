package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/scsmith60/recipeclip"
)

// staleAfter is how long a pattern row keeps influencing BestStrategy. Sites
// redesign; counters older than this describe pages that may no longer
// exist. Rows are still kept forever for analytics.
const staleAfter = 180 * 24 * time.Hour

// Compile-time interface verification.
var _ recipeclip.PatternService = (*PatternService)(nil)

// PatternService implements recipeclip.PatternService using SQLite.
type PatternService struct {
	db *DB
}

// NewPatternService creates a new PatternService.
func NewPatternService(db *DB) *PatternService {
	return &PatternService{db: db}
}

// UpsertPattern increments the counter pair for the key. Counters only grow;
// a changed page shape produces a new pattern key rather than resetting an
// old one.
func (s *PatternService) UpsertPattern(ctx context.Context, category recipeclip.SiteCategory, pattern string, method recipeclip.StrategyName, version string, success bool) error {
	if category == "" || pattern == "" || method == "" {
		return recipeclip.Errorf(recipeclip.EINVALID, "pattern key requires category, pattern, and method")
	}

	successInc := 0
	if success {
		successInc = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO extraction_patterns (category, html_pattern, method, version, success_count, total_count, updated_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)
		ON CONFLICT (category, html_pattern, method, version) DO UPDATE SET
			success_count = success_count + excluded.success_count,
			total_count = total_count + 1,
			updated_at = excluded.updated_at
	`, string(category), pattern, string(method), version, successInc,
		time.Now().UTC().Format(time.RFC3339))

	return err
}

// BestStrategy returns the best-performing method for the exact pattern key,
// provided its success rate clears recipeclip.BestStrategyThreshold and the
// row was updated within the staleness window. ENOTFOUND otherwise.
func (s *PatternService) BestStrategy(ctx context.Context, category recipeclip.SiteCategory, pattern string) (*recipeclip.PatternStats, error) {
	cutoff := time.Now().UTC().Add(-staleAfter).Format(time.RFC3339)

	var stats recipeclip.PatternStats
	err := s.db.QueryRowContext(ctx, `
		SELECT method, CAST(SUM(success_count) AS REAL) / SUM(total_count) AS rate
		FROM extraction_patterns
		WHERE category = ? AND html_pattern = ? AND updated_at >= ?
		GROUP BY method
		HAVING SUM(total_count) > 0
		ORDER BY rate DESC, SUM(total_count) DESC
		LIMIT 1
	`, string(category), pattern, cutoff).Scan(&stats.Method, &stats.Rate)

	if err == sql.ErrNoRows {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no strategy statistics for pattern")
	}
	if err != nil {
		return nil, err
	}

	if stats.Rate < recipeclip.BestStrategyThreshold {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "best strategy below threshold")
	}

	return &stats, nil
}

// Patterns returns every stored pattern row for a category, newest first.
// Serves the CLI's inspection surface.
func (s *PatternService) Patterns(ctx context.Context, category recipeclip.SiteCategory) ([]*recipeclip.ExtractionPattern, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, html_pattern, method, version, success_count, total_count, updated_at
		FROM extraction_patterns
		WHERE category = ?
		ORDER BY updated_at DESC
	`, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var patterns []*recipeclip.ExtractionPattern
	for rows.Next() {
		var p recipeclip.ExtractionPattern
		var updatedAt string

		if err := rows.Scan(&p.Category, &p.HTMLPattern, &p.Method, &p.Version,
			&p.SuccessCount, &p.TotalCount, &updatedAt); err != nil {
			return nil, err
		}

		p.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
		if err != nil {
			return nil, err
		}

		patterns = append(patterns, &p)
	}

	return patterns, rows.Err()
}
