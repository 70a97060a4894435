package recipeclip

import "context"

// Identity selects the client identity presented on a page fetch. Platform
// pages that strip embedded state for desktop browsers sometimes serve it to
// the mobile variant, so the orchestrator may refetch once under
// IdentityMobile.
type Identity int

// Client identities.
const (
	IdentityDesktop Identity = iota
	IdentityMobile
)

// Fetcher retrieves raw document text from URLs. Implementations follow
// redirects and treat non-success HTTP statuses as an empty document rather
// than an error.
type Fetcher interface {
	// Fetch returns the document at url under the given client identity.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string, identity Identity) (string, error)

	// Close releases fetcher resources. Must be called when the Fetcher is
	// no longer needed.
	Close() error
}

// EmbedInfo is the useful subset of a platform's public embed-info response.
type EmbedInfo struct {
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// EmbedClient calls a platform's public oEmbed-style endpoint as a
// last-resort source of a caption/title. Calls are bounded by a timeout;
// absence or error is non-fatal to the pipeline.
type EmbedClient interface {
	Embed(ctx context.Context, url string) (*EmbedInfo, error)
}

// TextExtractor extracts the main text content from a page, boilerplate
// removed. Used on generic pages with no structure at all, as input to
// free-text caption inference.
type TextExtractor interface {
	ExtractText(html string) (title string, text string, err error)
}
