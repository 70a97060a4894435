package recipeclip

import (
	"context"
	"time"
)

// SiteCategory is the coarse classification of a URL's host. It selects
// which parser configuration (strategy ordering) applies to an extraction.
type SiteCategory string

// Site categories. Platform categories take precedence over recipe-site
// detection: a TikTok host is never classified as a recipe site.
const (
	SiteTikTok    SiteCategory = "tiktok"
	SiteInstagram SiteCategory = "instagram"
	SiteFacebook  SiteCategory = "facebook"
	SiteRecipe    SiteCategory = "recipe-site"
	SiteGeneric   SiteCategory = "generic"
)

// Platform reports whether the category is a social/short-video platform
// with embedded client state.
func (c SiteCategory) Platform() bool {
	return c == SiteTikTok || c == SiteInstagram || c == SiteFacebook
}

// DetectionMethod records which extraction technique first proved a host
// serves recipes.
type DetectionMethod string

// Detection methods for discovered sites.
const (
	DetectJSONLD    DetectionMethod = "structured-markup"
	DetectMicrodata DetectionMethod = "microdata"
	DetectHeuristic DetectionMethod = "heuristic-html"
)

// DiscoveredSite is a host that previously yielded a recipe via structured
// or microdata extraction. Once discovered, a host stays classified as a
// recipe site; records are never deleted automatically.
type DiscoveredSite struct {
	Hostname     string          `json:"hostname"`
	Method       DetectionMethod `json:"method"`
	DiscoveredAt time.Time       `json:"discoveredAt"`
}

// Validate returns an error if the discovered site contains invalid fields.
func (s *DiscoveredSite) Validate() error {
	if s.Hostname == "" {
		return Errorf(EINVALID, "discovered site hostname required")
	}
	if s.Method == "" {
		return Errorf(EINVALID, "discovered site detection method required")
	}
	return nil
}

// SiteClassifier maps a URL's host to a site category. Classify never fails;
// malformed URLs classify as SiteGeneric.
type SiteClassifier interface {
	// Classify returns the category for the URL's host. It consults the
	// platform suffix table, the static recipe-site allow-list, and the
	// cached discovered-site set, in that order.
	Classify(rawurl string) SiteCategory

	// DiscoverIfNeeded persists the URL's host as a discovered recipe site
	// when the current classification is generic, the page yielded recipe
	// data via the given method, and the host is not a social platform.
	// The local cache is updated immediately so subsequent Classify calls in
	// the same process see the new site without waiting for the cache TTL.
	DiscoverIfNeeded(ctx context.Context, rawurl string, method DetectionMethod) error
}

// SiteStore persists discovered sites. Concrete storage is an external
// collaborator; see sqlite/.
type SiteStore interface {
	// DiscoveredSites returns every known discovered hostname.
	DiscoveredSites(ctx context.Context) ([]*DiscoveredSite, error)

	// UpsertDiscoveredSite records a hostname, keeping the first method and
	// discovery time if the host already exists.
	UpsertDiscoveredSite(ctx context.Context, hostname string, method DetectionMethod) error
}
