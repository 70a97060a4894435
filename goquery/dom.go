package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// Ensure PlatformDOMExtractor implements recipeclip.Extractor.
var _ recipeclip.Extractor = (*PlatformDOMExtractor)(nil)

// captionSelectors are the marked-up caption containers platforms render
// server-side. Tried in order; the first non-empty text wins.
var captionSelectors = []string{
	`[data-e2e="browse-video-desc"]`,
	`[data-e2e="video-desc"]`,
	`[data-e2e="new-desc-span"]`,
	`[data-testid="post-caption"]`,
	`div[role="article"] h1`,
	`meta[property="og:description"]`,
}

// PlatformDOMExtractor reads the post caption directly from known DOM
// containers when the state blob is absent or stripped.
type PlatformDOMExtractor struct{}

// NewPlatformDOMExtractor creates a new PlatformDOMExtractor.
func NewPlatformDOMExtractor() *PlatformDOMExtractor {
	return &PlatformDOMExtractor{}
}

// Name returns the strategy identifier.
func (e *PlatformDOMExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyPlatformDOM
}

// Extract parses the first caption container's text as a free-text recipe.
func (e *PlatformDOMExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	caption := DOMCaption(html)
	if caption == "" {
		return nil, nil
	}
	r := recipeclip.ParseCaption(caption)
	if r == nil {
		return nil, nil
	}
	return &recipeclip.PartialRecipe{
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}, nil
}

// DOMCaption returns the caption text from the first matching container.
// Line structure inside the container is preserved so section headers
// survive into caption inference.
func DOMCaption(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}
	for _, selector := range captionSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() == 0 {
			continue
		}
		if content := sel.AttrOr("content", ""); content != "" {
			return content
		}
		if text := captionText(sel); text != "" {
			return text
		}
	}
	return ""
}

// captionText renders a caption container to text, turning <br> into
// newlines so the caption keeps its line breaks.
func captionText(sel *goquery.Selection) string {
	clone := sel.Clone()
	clone.Find("br").Each(func(_ int, br *goquery.Selection) {
		br.ReplaceWithHtml("\n")
	})
	out, err := clone.Html()
	if err != nil {
		return recipeclip.CleanText(sel.Text())
	}
	// Cleaning per line keeps the newlines we just inserted.
	return strings.Join(recipeclip.Lines(out), "\n")
}
