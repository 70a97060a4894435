package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// Ensure MicrodataExtractor implements recipeclip.Extractor at compile time.
var _ recipeclip.Extractor = (*MicrodataExtractor)(nil)

// MicrodataExtractor targets the same schema.org Recipe fields as the
// JSON-LD extractor, located via inline itemscope/itemprop attributes
// instead of embedded data blocks.
type MicrodataExtractor struct{}

// NewMicrodataExtractor creates a new MicrodataExtractor.
func NewMicrodataExtractor() *MicrodataExtractor {
	return &MicrodataExtractor{}
}

// Name returns the strategy identifier.
func (e *MicrodataExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyMicrodata
}

// Extract returns the first microdata Recipe scope's fields, or nil when the
// page declares none.
func (e *MicrodataExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, nil
	}

	scope := doc.Find(`[itemtype*="schema.org/Recipe"], [itemtype*="Schema.org/Recipe"]`).First()
	if scope.Length() == 0 {
		return nil, nil
	}

	p := &recipeclip.PartialRecipe{
		Title: itempropText(scope, "name"),
		Image: itempropURL(scope, "image"),
	}

	scope.Find(`[itemprop="recipeIngredient"], [itemprop="ingredients"]`).Each(func(_ int, s *goquery.Selection) {
		if line := propValue(s); line != "" {
			p.Ingredients = append(p.Ingredients, line)
		}
	})

	instructions := scope.Find(`[itemprop="recipeInstructions"]`)
	instructions.Each(func(_ int, s *goquery.Selection) {
		// A single container holding a list expands to its items; standalone
		// step elements contribute their own text.
		items := s.Find("li")
		if items.Length() == 0 {
			items = s.Find(`[itemprop="text"]`)
		}
		if items.Length() > 0 {
			items.Each(func(_ int, li *goquery.Selection) {
				if step := recipeclip.CleanText(li.Text()); step != "" {
					p.Steps = append(p.Steps, step)
				}
			})
			return
		}
		if step := propValue(s); step != "" {
			p.Steps = append(p.Steps, step)
		}
	})

	if mins := parseISODuration(itempropAttr(scope, "totalTime")); mins > 0 {
		p.TotalMinutes = mins
	} else {
		p.TotalMinutes = parseISODuration(itempropAttr(scope, "prepTime")) +
			parseISODuration(itempropAttr(scope, "cookTime"))
	}

	if p.Empty() {
		return nil, nil
	}
	return p, nil
}

// propValue reads a microdata property value: content attribute first, then
// the element's text.
func propValue(s *goquery.Selection) string {
	if v := recipeclip.CleanText(s.AttrOr("content", "")); v != "" {
		return v
	}
	return recipeclip.CleanText(s.Text())
}

func itempropText(scope *goquery.Selection, prop string) string {
	return propValue(scope.Find(`[itemprop="` + prop + `"]`).First())
}

// itempropAttr reads a time property, preferring the datetime/content
// attributes microdata uses for machine-readable durations.
func itempropAttr(scope *goquery.Selection, prop string) string {
	sel := scope.Find(`[itemprop="` + prop + `"]`).First()
	if v := sel.AttrOr("datetime", ""); v != "" {
		return v
	}
	if v := sel.AttrOr("content", ""); v != "" {
		return v
	}
	return strings.TrimSpace(sel.Text())
}

func itempropURL(scope *goquery.Selection, prop string) string {
	sel := scope.Find(`[itemprop="` + prop + `"]`).First()
	for _, attr := range []string{"src", "href", "content"} {
		if v := strings.TrimSpace(sel.AttrOr(attr, "")); v != "" {
			return v
		}
	}
	return ""
}
