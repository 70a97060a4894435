package goquery

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// Ensure JSONLDExtractor implements recipeclip.Extractor at compile time.
var _ recipeclip.Extractor = (*JSONLDExtractor)(nil)

// JSONLDExtractor scans embedded JSON-LD blocks for schema.org Recipe nodes.
// It accepts any node whose declared type includes "Recipe" (case-insensitive,
// possibly multi-valued), handles the common shapes of recipeInstructions
// (string, object-with-text, nested HowToSection lists), and tolerates
// malformed JSON by attempting brace-balanced substring recovery before
// giving up on a block.
type JSONLDExtractor struct{}

// NewJSONLDExtractor creates a new JSONLDExtractor.
func NewJSONLDExtractor() *JSONLDExtractor {
	return &JSONLDExtractor{}
}

// Name returns the strategy identifier.
func (e *JSONLDExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyJSONLD
}

// Extract returns the first Recipe node found across the page's JSON-LD
// blocks, or nil when none qualifies.
func (e *JSONLDExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, nil
	}

	var result *recipeclip.PartialRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		node := decodeJSONLD(s.Text())
		if node == nil {
			return true
		}
		recipe := findRecipeNode(node, 0)
		if recipe == nil {
			return true
		}
		result = recipeFromNode(recipe)
		return result == nil
	})
	if result.Empty() {
		return nil, nil
	}
	return result, nil
}

// decodeJSONLD unmarshals a script block, recovering from trailing garbage
// or truncation by retrying on the brace-balanced prefix.
func decodeJSONLD(raw string) any {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		return v
	}
	if fixed := balancedPrefix(raw); fixed != "" {
		if err := json.Unmarshal([]byte(fixed), &v); err == nil {
			return v
		}
	}
	return nil
}

// balancedPrefix returns the substring from the first brace or bracket to
// the point where nesting returns to zero, skipping braces inside strings.
func balancedPrefix(s string) string {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{' || c == '[':
			depth++
		case c == '}' || c == ']':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// findRecipeNode walks a decoded JSON-LD value looking for the first node
// whose @type includes Recipe. It descends into arrays and @graph wrappers.
func findRecipeNode(v any, depth int) map[string]any {
	if depth > 6 {
		return nil
	}
	switch node := v.(type) {
	case map[string]any:
		if typeIncludes(node["@type"], "recipe") {
			return node
		}
		if graph, ok := node["@graph"]; ok {
			if r := findRecipeNode(graph, depth+1); r != nil {
				return r
			}
		}
		if main, ok := node["mainEntity"]; ok {
			if r := findRecipeNode(main, depth+1); r != nil {
				return r
			}
		}
	case []any:
		for _, item := range node {
			if r := findRecipeNode(item, depth+1); r != nil {
				return r
			}
		}
	}
	return nil
}

// typeIncludes reports whether a JSON-LD @type value (string or list)
// contains want, case-insensitively.
func typeIncludes(typ any, want string) bool {
	switch t := typ.(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]any) *recipeclip.PartialRecipe {
	p := &recipeclip.PartialRecipe{
		Title: recipeclip.CleanText(stringField(node, "name")),
		Image: imageURL(node["image"]),
	}

	for _, key := range []string{"recipeIngredient", "ingredients"} {
		if lines := stringList(node[key]); len(lines) > 0 {
			p.Ingredients = lines
			break
		}
	}

	p.Steps = instructionList(node["recipeInstructions"], 0)

	if mins := parseISODuration(stringField(node, "totalTime")); mins > 0 {
		p.TotalMinutes = mins
	} else {
		p.TotalMinutes = parseISODuration(stringField(node, "prepTime")) +
			parseISODuration(stringField(node, "cookTime"))
	}

	if p.Empty() {
		return nil
	}
	return p
}

func stringField(node map[string]any, key string) string {
	if s, ok := node[key].(string); ok {
		return s
	}
	return ""
}

// stringList flattens a string-or-list field into cleaned lines.
func stringList(v any) []string {
	switch val := v.(type) {
	case string:
		return recipeclip.Lines(val)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				if s = recipeclip.CleanText(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// instructionList handles the shapes recipeInstructions appears in: a plain
// string, a list of strings, a list of HowToStep objects with text/name, and
// HowToSection nodes nesting further lists under itemListElement.
func instructionList(v any, depth int) []string {
	if depth > 4 {
		return nil
	}
	switch val := v.(type) {
	case string:
		return recipeclip.Lines(val)
	case map[string]any:
		if items, ok := val["itemListElement"]; ok {
			return instructionList(items, depth+1)
		}
		for _, key := range []string{"text", "name"} {
			if s := recipeclip.CleanText(stringField(val, key)); s != "" {
				return []string{s}
			}
		}
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, instructionList(item, depth+1)...)
		}
		return out
	}
	return nil
}

// imageURL handles image fields declared as a string, a list, or an
// ImageObject.
func imageURL(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case []any:
		for _, item := range val {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	case map[string]any:
		for _, key := range []string{"url", "contentUrl"} {
			if s, ok := val[key].(string); ok && s != "" {
				return strings.TrimSpace(s)
			}
		}
	}
	return ""
}

var isoDurationRe = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// parseISODuration converts an ISO-8601 duration like PT1H30M to whole
// minutes. Unparsable input yields zero.
func parseISODuration(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	m := isoDurationRe.FindStringSubmatch(strings.ToUpper(s))
	if m == nil {
		return 0
	}
	minutes := 0
	minutes += atoi(m[1]) * 24 * 60
	minutes += atoi(m[2]) * 60
	minutes += atoi(m[3])
	return minutes
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
