package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/scsmith60/recipeclip"
	"golang.org/x/time/rate"
)

// DefaultEmbedTimeout bounds a single embed-info request. The endpoint is a
// last resort, so it fails fast rather than holding up the pipeline.
const DefaultEmbedTimeout = 5 * time.Second

// embedEndpoints maps a platform to its public oEmbed endpoint. The target
// URL goes in the url query parameter.
var embedEndpoints = map[recipeclip.SiteCategory]string{
	recipeclip.SiteTikTok:   "https://www.tiktok.com/oembed",
	recipeclip.SiteFacebook: "https://www.facebook.com/plugins/video/oembed.json/",
}

// Ensure EmbedClient implements recipeclip.EmbedClient at compile time.
var _ recipeclip.EmbedClient = (*EmbedClient)(nil)

// EmbedClient calls platform oEmbed endpoints. Requests are rate limited
// per endpoint host so a burst of imports cannot hammer a platform API.
type EmbedClient struct {
	client    *http.Client
	classify  func(rawurl string) recipeclip.SiteCategory
	timeout   time.Duration
	endpoints map[recipeclip.SiteCategory]string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// EmbedOption configures an EmbedClient.
type EmbedOption func(*EmbedClient)

// WithEmbedTimeout sets the per-request timeout.
func WithEmbedTimeout(d time.Duration) EmbedOption {
	return func(c *EmbedClient) {
		c.timeout = d
	}
}

// WithEmbedHTTPClient substitutes the underlying http.Client. Primarily for
// tests.
func WithEmbedHTTPClient(hc *http.Client) EmbedOption {
	return func(c *EmbedClient) {
		c.client = hc
	}
}

// WithEmbedEndpoint overrides the endpoint called for a platform. Primarily
// for tests.
func WithEmbedEndpoint(category recipeclip.SiteCategory, endpoint string) EmbedOption {
	return func(c *EmbedClient) {
		c.endpoints[category] = endpoint
	}
}

// NewEmbedClient creates an EmbedClient. classify maps a post URL to its
// platform, selecting the endpoint to call.
func NewEmbedClient(classify func(rawurl string) recipeclip.SiteCategory, opts ...EmbedOption) *EmbedClient {
	c := &EmbedClient{
		classify:  classify,
		timeout:   DefaultEmbedTimeout,
		endpoints: make(map[recipeclip.SiteCategory]string, len(embedEndpoints)),
		limiters:  make(map[string]*rate.Limiter),
	}
	for cat, endpoint := range embedEndpoints {
		c.endpoints[cat] = endpoint
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.client == nil {
		c.client = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Embed returns the platform's embed info for the given post URL. Platforms
// without a public endpoint yield ENOTFOUND.
func (c *EmbedClient) Embed(ctx context.Context, rawurl string) (*recipeclip.EmbedInfo, error) {
	endpoint, ok := c.endpoints[c.classify(rawurl)]
	if !ok {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no embed endpoint for %s", rawurl)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter(endpoint).Wait(ctx); err != nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "embed rate wait: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?url="+url.QueryEscape(rawurl), nil)
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "embed request for %s: %v", rawurl, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "embed fetch %s: %v", rawurl, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "embed info not available for %s (HTTP %d)", rawurl, resp.StatusCode)
	}

	var info recipeclip.EmbedInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&info); err != nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "decode embed info for %s: %v", rawurl, err)
	}
	return &info, nil
}

// limiter returns the per-endpoint rate limiter, creating it on first use.
// One request per second with a small burst is well under published limits.
func (c *EmbedClient) limiter(endpoint string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.limiters[endpoint]
	if !ok {
		l = rate.NewLimiter(rate.Every(time.Second), 3)
		c.limiters[endpoint] = l
	}
	return l
}
