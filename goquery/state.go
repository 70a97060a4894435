package goquery

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// Ensure PlatformStateExtractor implements recipeclip.Extractor.
var _ recipeclip.Extractor = (*PlatformStateExtractor)(nil)

// stateScriptIDs are script element ids platforms embed hydration state
// under.
var stateScriptIDs = []string{
	"SIGI_STATE",
	"__UNIVERSAL_DATA_FOR_REHYDRATION__",
	"__NEXT_DATA__",
}

// stateAssignRe matches inline state assignments such as
// "window._sharedData = {...};".
var stateAssignRe = regexp.MustCompile(`window\._sharedData\s*=\s*`)

// captionKeys are object fields that plausibly carry a post caption, in
// decreasing preference.
var captionKeys = map[string]struct{}{
	"desc":        {},
	"description": {},
	"caption":     {},
	"text":        {},
	"shareDesc":   {},
}

// PlatformStateExtractor locates the embedded client-state object on
// short-video platform pages and mines it for a caption that reads like a
// recipe. The state graph is walked with bounded depth and a visited set, so
// hostile or self-referential blobs cannot hang the pipeline.
type PlatformStateExtractor struct{}

// NewPlatformStateExtractor creates a new PlatformStateExtractor.
func NewPlatformStateExtractor() *PlatformStateExtractor {
	return &PlatformStateExtractor{}
}

// Name returns the strategy identifier.
func (e *PlatformStateExtractor) Name() recipeclip.StrategyName {
	return recipeclip.StrategyPlatformState
}

// Extract parses the state blob's best caption as a free-text recipe.
func (e *PlatformStateExtractor) Extract(html string, pageURL string) (*recipeclip.PartialRecipe, error) {
	caption := StateCaption(html)
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

// HasStateBlob reports whether the document carries any known embedded
// state marker. The orchestrator uses this to decide whether a platform
// page deserves a mobile-identity refetch.
func HasStateBlob(html string) bool {
	for _, id := range stateScriptIDs {
		if strings.Contains(html, id) {
			return true
		}
	}
	return stateAssignRe.MatchString(html)
}

// StateCaption returns the longest plausible caption text found in the
// page's embedded state, or "".
func StateCaption(html string) string {
	state := decodeState(html)
	if state == nil {
		return ""
	}
	return longestCaption(state)
}

// StateTitle returns a title-like field from the embedded state, or "".
func StateTitle(html string) string {
	state := decodeState(html)
	if state == nil {
		return ""
	}
	var best string
	walkState(state, func(key, value string) {
		if key != "title" && key != "shareTitle" {
			return
		}
		if plausibleCaption(value) && len(value) > len(best) {
			best = value
		}
	})
	return recipeclip.CleanText(best)
}

// decodeState finds and unmarshals the first state blob on the page.
func decodeState(html string) any {
	doc, err := parseDoc(html)
	if err != nil {
		return nil
	}
	for _, id := range stateScriptIDs {
		raw := strings.TrimSpace(doc.Find("script#" + id).Text())
		if raw == "" {
			continue
		}
		if v := decodeJSONLD(raw); v != nil {
			return v
		}
	}

	// Inline variable assignment: cut the JSON out of the script body.
	var state any
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		body := s.Text()
		loc := stateAssignRe.FindStringIndex(body)
		if loc == nil {
			return true
		}
		if v := decodeJSONLD(body[loc[1]:]); v != nil {
			state = v
			return false
		}
		return true
	})
	return state
}

// longestCaption walks the state graph collecting candidate caption fields
// and returns the longest plausible one.
func longestCaption(state any) string {
	var best string
	walkState(state, func(key, value string) {
		if _, ok := captionKeys[key]; !ok {
			return
		}
		if plausibleCaption(value) && len(value) > len(best) {
			best = value
		}
	})
	return best
}

// plausibleCaption filters out URLs, ids, and stub strings that share field
// names with captions.
func plausibleCaption(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 12 {
		return false
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return false
	}
	return strings.ContainsRune(s, ' ')
}

const maxStateDepth = 12

// walkState is a bounded-depth, cycle-safe walk over a decoded JSON graph.
// visit is called for every string value with its field name ("" inside
// arrays).
func walkState(v any, visit func(key, value string)) {
	visited := make(map[uintptr]struct{})
	walkStateNode(v, "", 0, visited, visit)
}

func walkStateNode(v any, key string, depth int, visited map[uintptr]struct{}, visit func(key, value string)) {
	if depth > maxStateDepth {
		return
	}
	switch node := v.(type) {
	case string:
		visit(key, node)
	case map[string]any:
		if !markVisited(node, visited) {
			return
		}
		for k, item := range node {
			walkStateNode(item, k, depth+1, visited, visit)
		}
	case []any:
		for _, item := range node {
			// Array elements inherit the enclosing field name, so
			// {"captions": ["..."]} still matches.
			walkStateNode(item, key, depth+1, visited, visit)
		}
	}
}

// markVisited guards against revisiting a map. encoding/json output cannot
// contain cycles, but state blobs occasionally arrive via other decoders.
func markVisited(m map[string]any, visited map[uintptr]struct{}) bool {
	ptr := reflect.ValueOf(m).Pointer()
	if _, ok := visited[ptr]; ok {
		return false
	}
	visited[ptr] = struct{}{}
	return true
}
