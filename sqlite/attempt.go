package sqlite

import (
	"context"
	"encoding/hex"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/scsmith60/recipeclip"
)

// maxSampleBytes caps how much raw HTML is stored with an attempt. Enough
// to recognize a page shape; not enough to turn the log into a page cache.
const maxSampleBytes = 2048

// Compile-time interface verification.
var _ recipeclip.AttemptLogger = (*AttemptLogger)(nil)

// AttemptLogger implements recipeclip.AttemptLogger using SQLite. Rows are
// append-only; nothing in the pipeline reads them back.
type AttemptLogger struct {
	db *DB
}

// NewAttemptLogger creates a new AttemptLogger.
func NewAttemptLogger(db *DB) *AttemptLogger {
	return &AttemptLogger{db: db}
}

// hashSample computes the xxHash of the full sample and returns a hex
// string. The hash covers the untruncated input so identical pages collide
// even when their stored samples are cut at different points.
func hashSample(sample string) string {
	h := xxhash.Sum64String(sample)
	b := make([]byte, 8)
	b[0] = byte(h >> 56)
	b[1] = byte(h >> 48)
	b[2] = byte(h >> 40)
	b[3] = byte(h >> 32)
	b[4] = byte(h >> 24)
	b[5] = byte(h >> 16)
	b[6] = byte(h >> 8)
	b[7] = byte(h)
	return hex.EncodeToString(b)
}

// AppendAttempt writes one attempt row, assigning its ID and timestamp.
func (l *AttemptLogger) AppendAttempt(ctx context.Context, attempt *recipeclip.ImportAttempt) error {
	if err := attempt.Validate(); err != nil {
		return err
	}

	attempt.ID = uuid.New().String()
	attempt.CreatedAt = time.Now().UTC()

	sampleHash := ""
	sample := attempt.RawHTMLSample
	if sample != "" {
		sampleHash = hashSample(sample)
		sample = recipeclip.Truncate(sample, maxSampleBytes)
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO import_attempts (
			id, url, site_category, parser_version, strategy_used, success,
			confidence, ingredients_count, steps_count, raw_html_sample,
			sample_hash, error_message, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, attempt.ID, attempt.URL, string(attempt.SiteCategory), attempt.ParserVersion,
		string(attempt.StrategyUsed), attempt.Success, string(attempt.Confidence),
		attempt.Ingredients, attempt.Steps, sample, sampleHash,
		attempt.ErrorMessage, attempt.CreatedAt.Format(time.RFC3339))

	return err
}

// AttemptFilter narrows RecentAttempts results.
type AttemptFilter struct {
	Category *recipeclip.SiteCategory
	URL      *string
	Limit    int
	Offset   int
}

// RecentAttempts returns attempt rows newest first. This serves the CLI's
// inspection surface; the extraction path never calls it.
func (l *AttemptLogger) RecentAttempts(ctx context.Context, filter AttemptFilter) ([]*recipeclip.ImportAttempt, error) {
	query := `
		SELECT id, url, site_category, parser_version, strategy_used, success,
			confidence, ingredients_count, steps_count, raw_html_sample,
			error_message, created_at
		FROM import_attempts
		WHERE 1=1`
	var args []any

	if filter.Category != nil {
		query += " AND site_category = ?"
		args = append(args, string(*filter.Category))
	}
	if filter.URL != nil {
		query += " AND url = ?"
		args = append(args, *filter.URL)
	}

	query += " ORDER BY created_at DESC"
	args = appendPagination(&query, args, filter.Limit, filter.Offset)

	rows, err := l.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []*recipeclip.ImportAttempt
	for rows.Next() {
		var a recipeclip.ImportAttempt
		var createdAt string

		if err := rows.Scan(&a.ID, &a.URL, &a.SiteCategory, &a.ParserVersion,
			&a.StrategyUsed, &a.Success, &a.Confidence, &a.Ingredients, &a.Steps,
			&a.RawHTMLSample, &a.ErrorMessage, &createdAt); err != nil {
			return nil, err
		}

		a.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		attempts = append(attempts, &a)
	}

	return attempts, rows.Err()
}
