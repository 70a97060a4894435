package sqlite

import (
	"fmt"
	"time"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string, naming the
// offending column on failure.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// appendPagination appends LIMIT and OFFSET clauses when the values are
// positive, returning the extended args slice.
func appendPagination(query *string, args []any, limit, offset int) []any {
	if limit > 0 {
		*query += " LIMIT ?"
		args = append(args, limit)
	}
	if offset > 0 {
		*query += " OFFSET ?"
		args = append(args, offset)
	}
	return args
}
