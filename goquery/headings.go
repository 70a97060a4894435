package goquery

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// Ensure HeadingBlockExtractor implements recipeclip.Extractor.
var _ recipeclip.Extractor = (*HeadingBlockExtractor)(nil)

var (
	ingredientsHeadingRe = regexp.MustCompile(`(?i)^ingredients?\b`)
	directionsHeadingRe  = regexp.MustCompile(`(?i)^(directions?|steps?|method|instructions?|preparation)\b`)
	numberedParaRe       = regexp.MustCompile(`^\s*\d+[.):]\s+`)
)

// maxIngredientLineLen rejects paragraphs too long to be ingredient lines.
const maxIngredientLineLen = 120

// HeadingBlockExtractor is the generic HTML heuristic: it locates an
// "Ingredients" heading and a following "Directions"-like heading anywhere
// in the page and captures list items or numbered paragraphs between and
// after them. Nested wrapper markup between a heading and its content is
// tolerated because collection runs over the whole document in order.
//
// Accepted: <h2>Ingredients</h2><ul><li>2 cups flour</li></ul>
// Accepted: <h3>Ingredients:</h3><div><p>1 egg</p></div>
// Rejected: a page whose only "ingredients" mention is running prose.
type HeadingBlockExtractor struct{}

// NewHeadingBlockExtractor creates a new HeadingBlockExtractor.
func NewHeadingBlockExtractor() *HeadingBlockExtractor {
	return &HeadingBlockExtractor{}
}

// Name returns the strategy identifier.
func (e *HeadingBlockExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyHeadings
}

// Extract captures ingredient and step lines between recognized headings.
func (e *HeadingBlockExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, nil
	}

	const (
		modeNone = iota
		modeIngredients
		modeSteps
		modeDone
	)
	mode := modeNone

	p := &recipeclip.PartialRecipe{}
	var plainSteps []string

	doc.Find("h1, h2, h3, h4, h5, h6, li, p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := recipeclip.CleanText(sel.Text())
		if text == "" {
			return true
		}

		if isHeading(sel) {
			switch {
			case ingredientsHeadingRe.MatchString(text):
				mode = modeIngredients
			case directionsHeadingRe.MatchString(text):
				mode = modeSteps
			case mode == modeSteps:
				// An unrelated heading after the steps section ends capture.
				mode = modeDone
			case mode == modeIngredients:
				mode = modeNone
			}
			return mode != modeDone
		}

		// Paragraphs inside list items would double-count their parent.
		if goquery.NodeName(sel) == "p" && sel.ParentsFiltered("li").Length() > 0 {
			return true
		}

		switch mode {
		case modeIngredients:
			if goquery.NodeName(sel) == "li" || len(text) <= maxIngredientLineLen {
				p.Ingredients = append(p.Ingredients, text)
			}
		case modeSteps:
			switch {
			case goquery.NodeName(sel) == "li":
				p.Steps = append(p.Steps, text)
			case numberedParaRe.MatchString(text):
				p.Steps = append(p.Steps, numberedParaRe.ReplaceAllString(text, ""))
			default:
				plainSteps = append(plainSteps, text)
			}
		}
		return true
	})

	// Pages that write steps as plain paragraphs under the heading still
	// count, but only when no list or numbered form was present.
	if len(p.Steps) == 0 {
		p.Steps = plainSteps
	}

	if len(p.Ingredients) == 0 && len(p.Steps) == 0 {
		return nil, nil
	}
	return p, nil
}

func isHeading(sel *goquery.Selection) bool {
	switch goquery.NodeName(sel) {
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return true
	}
	return false
}
