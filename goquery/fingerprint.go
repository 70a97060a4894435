package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Structural markers a fingerprint is built from, in fixed order so the same
// page shape always yields the same pattern string.
const (
	markerJSONLD      = "jsonld-recipe"
	markerMicrodata   = "microdata"
	markerStateBlob   = "state-blob"
	markerHeadings    = "ingredients-heading"
	markerIngredients = "mentions-ingredients"
	markerOpenGraph   = "og-meta"
)

// Fingerprint derives a short pattern string from the structural markers
// present in a page. It is the learning key for strategy success
// aggregation: two pages with the same markers count as the same shape, no
// matter how their full HTML differs.
func Fingerprint(html string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return "unparsable"
	}

	var markers []string
	add := func(present bool, marker string) {
		if present {
			markers = append(markers, marker)
		}
	}

	jsonldRecipe := false
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(s.Text(), `Recipe`) {
			jsonldRecipe = true
			return false
		}
		return true
	})

	headingFound := false
	doc.Find("h1, h2, h3, h4, h5, h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if ingredientsHeadingRe.MatchString(strings.TrimSpace(s.Text())) {
			headingFound = true
			return false
		}
		return true
	})

	add(jsonldRecipe, markerJSONLD)
	add(doc.Find(`[itemtype*="schema.org/Recipe"]`).Length() > 0, markerMicrodata)
	add(HasStateBlob(html), markerStateBlob)
	add(headingFound, markerHeadings)
	add(strings.Contains(strings.ToLower(html), "ingredient"), markerIngredients)
	add(doc.Find(`meta[property="og:title"]`).Length() > 0, markerOpenGraph)

	if len(markers) == 0 {
		return "bare"
	}
	return strings.Join(markers, "+")
}
