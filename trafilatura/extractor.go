// Package trafilatura adapts go-trafilatura's boilerplate removal to the
// recipeclip.TextExtractor interface.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/scsmith60/recipeclip"
)

// Ensure Extractor implements recipeclip.TextExtractor at compile time.
var _ recipeclip.TextExtractor = (*Extractor)(nil)

// Extractor pulls the main text out of a page, dropping navigation, ads,
// and comment sections. The pipeline runs caption inference over the result
// on pages with no structured markup at all.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractText returns the page's title and its main content as plain text
// with line structure preserved.
func (e *Extractor) ExtractText(rawHTML string) (string, string, error) {
	if rawHTML == "" {
		return "", "", recipeclip.Errorf(recipeclip.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", "", recipeclip.Errorf(recipeclip.EINTERNAL, "extract main text: %v", err)
	}

	return result.Metadata.Title, result.ContentText, nil
}
