// Package classify maps URLs to site categories. It combines a static
// platform suffix table, a static allow-list of known recipe domains, and a
// dynamically learned set of previously discovered recipe hosts read through
// a TTL cache.
package classify

import (
	"context"
	"net/url"
	"strings"

	"github.com/scsmith60/recipeclip"
)

// Ensure Classifier implements recipeclip.SiteClassifier at compile time.
var _ recipeclip.SiteClassifier = (*Classifier)(nil)

// platformSuffixes maps hostname suffixes to platform categories. Platform
// matches take precedence over recipe-site detection: a TikTok host is never
// classified as a recipe site.
var platformSuffixes = map[string]recipeclip.SiteCategory{
	"tiktok.com":    recipeclip.SiteTikTok,
	"vm.tiktok.com": recipeclip.SiteTikTok,
	"instagram.com": recipeclip.SiteInstagram,
	"instagr.am":    recipeclip.SiteInstagram,
	"facebook.com":  recipeclip.SiteFacebook,
	"fb.watch":      recipeclip.SiteFacebook,
	"fb.com":        recipeclip.SiteFacebook,
}

// socialSuffixes are hosts that must never be persisted as discovered recipe
// sites even when a post page carries recipe markup.
var socialSuffixes = []string{
	"tiktok.com", "instagram.com", "instagr.am", "facebook.com", "fb.com",
	"fb.watch", "youtube.com", "youtu.be", "twitter.com", "x.com",
	"pinterest.com", "reddit.com",
}

// knownRecipeDomains is the static allow-list of recipe sites, matched by
// substring against the host.
var knownRecipeDomains = []string{
	"allrecipes.com", "foodnetwork.com", "seriouseats.com", "bonappetit.com",
	"epicurious.com", "simplyrecipes.com", "budgetbytes.com", "delish.com",
	"tasty.co", "food52.com", "thekitchn.com", "taste.com.au",
	"bbcgoodfood.com", "kingarthurbaking.com", "sallysbakingaddiction.com",
	"cookieandkate.com", "minimalistbaker.com", "halfbakedharvest.com",
	"skinnytaste.com", "damndelicious.net", "pinchofyum.com",
	"recipetineats.com", "gimmesomeoven.com", "natashaskitchen.com",
}

// Classifier implements site classification with a cached discovered-site
// set. Construct with NewClassifier; the zero value skips discovered-site
// lookups.
type Classifier struct {
	sites *SiteCache
	store recipeclip.SiteStore
}

// NewClassifier creates a Classifier backed by the given store. The cache is
// owned by the classifier instance, so separate instances (e.g. per test)
// never share state.
func NewClassifier(store recipeclip.SiteStore, opts ...CacheOption) *Classifier {
	return &Classifier{
		sites: NewSiteCache(store, opts...),
		store: store,
	}
}

// Classify returns the category for the URL's host. It never fails;
// malformed URLs classify as generic.
func (c *Classifier) Classify(rawurl string) recipeclip.SiteCategory {
	host := hostOf(rawurl)
	if host == "" {
		return recipeclip.SiteGeneric
	}

	for suffix, category := range platformSuffixes {
		if hasDomainSuffix(host, suffix) {
			return category
		}
	}

	for _, domain := range knownRecipeDomains {
		if strings.Contains(host, domain) {
			return recipeclip.SiteRecipe
		}
	}

	if c.sites != nil && c.sites.Contains(host) {
		return recipeclip.SiteRecipe
	}

	return recipeclip.SiteGeneric
}

// DiscoverIfNeeded persists the URL's host as a discovered recipe site. The
// local cache is updated immediately so a following Classify call sees the
// host without waiting for the cache TTL.
func (c *Classifier) DiscoverIfNeeded(ctx context.Context, rawurl string, method recipeclip.DetectionMethod) error {
	if c.store == nil {
		return nil
	}
	if c.Classify(rawurl) != recipeclip.SiteGeneric {
		return nil
	}
	host := hostOf(rawurl)
	if host == "" {
		return recipeclip.Errorf(recipeclip.EINVALID, "cannot discover site for invalid URL %q", rawurl)
	}
	if isSocialHost(host) {
		return nil
	}

	if err := c.store.UpsertDiscoveredSite(ctx, host, method); err != nil {
		return err
	}
	c.sites.Add(host)
	return nil
}

// hostOf extracts the lowercased hostname, tolerating scheme-less input.
func hostOf(rawurl string) string {
	u, err := url.Parse(rawurl)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if host == "" && !strings.Contains(rawurl, "://") {
		if u, err = url.Parse("https://" + rawurl); err == nil {
			host = u.Hostname()
		}
	}
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}

// hasDomainSuffix reports whether host is domain or a subdomain of it.
func hasDomainSuffix(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func isSocialHost(host string) bool {
	for _, suffix := range socialSuffixes {
		if hasDomainSuffix(host, suffix) {
			return true
		}
	}
	return false
}
