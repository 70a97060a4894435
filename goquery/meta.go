// Package goquery provides DOM-based recipe extractors, the title resolver,
// and page fingerprinting on top of PuerkitoBio/goquery.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// parseDoc parses raw HTML into a goquery document. goquery's parser is
// lenient, so this only fails on reader errors; extractors treat a parse
// failure as "nothing found".
func parseDoc(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}

// metaContent returns the first non-empty content attribute among meta tags
// matching any of the given name/property keys.
func metaContent(doc *goquery.Document, keys ...string) string {
	for _, key := range keys {
		sel := fmt.Sprintf(`meta[name=%q], meta[property=%q]`, key, key)
		var content string
		doc.Find(sel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if v := recipeclip.CleanText(s.AttrOr("content", "")); v != "" {
				content = v
				return false
			}
			return true
		})
		if content != "" {
			return content
		}
	}
	return ""
}

// MetaImage returns the page's share image URL, if any.
func MetaImage(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}
	return metaContent(doc, "og:image", "og:image:url", "twitter:image")
}

// SiteName returns the site name the page declares in meta tags, if any.
func SiteName(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}
	return metaContent(doc, "og:site_name", "application-name")
}

// MetaDescription returns the page's description from meta tags, if any.
func MetaDescription(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}
	return metaContent(doc, "og:description", "description", "twitter:description")
}

// Ensure MetaDescriptionExtractor implements recipeclip.Extractor.
var _ recipeclip.Extractor = (*MetaDescriptionExtractor)(nil)

// MetaDescriptionExtractor infers a recipe from the page's meta description.
// Descriptions are loose text, so the result relies on free-text caption
// inference and only clears the orchestrator's soft confidence bar.
type MetaDescriptionExtractor struct{}

// NewMetaDescriptionExtractor creates a new MetaDescriptionExtractor.
func NewMetaDescriptionExtractor() *MetaDescriptionExtractor {
	return &MetaDescriptionExtractor{}
}

// Name returns the strategy identifier.
func (e *MetaDescriptionExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyMetaDesc
}

// Extract parses the meta description as a free-text caption.
func (e *MetaDescriptionExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	desc := MetaDescription(html)
	if desc == "" {
		return nil, nil
	}
	// Meta descriptions cram lines into one string; break on common
	// separators before inference.
	desc = strings.NewReplacer(" | ", "\n", " • ", "\n", "; ", "\n").Replace(desc)
	r := recipeclip.ParseCaption(desc)
	if r == nil {
		return nil, nil
	}
	return &recipeclip.PartialRecipe{
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
	}, nil
}
