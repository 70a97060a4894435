package mock

import (
	"context"

	"github.com/scsmith60/recipeclip"
)

var _ recipeclip.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of recipeclip.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string, identity recipeclip.Identity) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string, identity recipeclip.Identity) (string, error) {
	return f.FetchFn(ctx, url, identity)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ recipeclip.EmbedClient = (*EmbedClient)(nil)

// EmbedClient is a mock implementation of recipeclip.EmbedClient.
type EmbedClient struct {
	EmbedFn func(ctx context.Context, url string) (*recipeclip.EmbedInfo, error)
}

func (c *EmbedClient) Embed(ctx context.Context, url string) (*recipeclip.EmbedInfo, error) {
	return c.EmbedFn(ctx, url)
}

var _ recipeclip.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of recipeclip.TextExtractor.
type TextExtractor struct {
	ExtractTextFn func(html string) (string, string, error)
}

func (e *TextExtractor) ExtractText(html string) (string, string, error) {
	return e.ExtractTextFn(html)
}
