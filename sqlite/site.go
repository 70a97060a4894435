package sqlite

import (
	"context"
	"time"

	"github.com/scsmith60/recipeclip"
)

// Compile-time interface verification.
var _ recipeclip.SiteStore = (*SiteStore)(nil)

// SiteStore implements recipeclip.SiteStore using SQLite.
type SiteStore struct {
	db *DB
}

// NewSiteStore creates a new SiteStore.
func NewSiteStore(db *DB) *SiteStore {
	return &SiteStore{db: db}
}

// DiscoveredSites returns every known discovered hostname.
func (s *SiteStore) DiscoveredSites(ctx context.Context) ([]*recipeclip.DiscoveredSite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT hostname, method, discovered_at
		FROM discovered_sites
		ORDER BY hostname ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sites []*recipeclip.DiscoveredSite
	for rows.Next() {
		var site recipeclip.DiscoveredSite
		var discoveredAt string

		if err := rows.Scan(&site.Hostname, &site.Method, &discoveredAt); err != nil {
			return nil, err
		}

		site.DiscoveredAt, err = parseRFC3339(discoveredAt, "discovered_at")
		if err != nil {
			return nil, err
		}

		sites = append(sites, &site)
	}

	return sites, rows.Err()
}

// UpsertDiscoveredSite records a hostname. A host already present keeps its
// original method and discovery time; discovery is a one-way door.
func (s *SiteStore) UpsertDiscoveredSite(ctx context.Context, hostname string, method recipeclip.DetectionMethod) error {
	site := &recipeclip.DiscoveredSite{
		Hostname:     hostname,
		Method:       method,
		DiscoveredAt: time.Now().UTC(),
	}
	if err := site.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO discovered_sites (hostname, method, discovered_at)
		VALUES (?, ?, ?)
		ON CONFLICT (hostname) DO NOTHING
	`, site.Hostname, string(site.Method), site.DiscoveredAt.Format(time.RFC3339))

	return err
}
