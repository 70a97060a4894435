package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/scsmith60/recipeclip"
)

// placeholderTitles is the deny-list of known placeholder titles. Candidates
// matching one exactly (case-insensitive) are rejected.
var placeholderTitles = []string{
	"tiktok",
	"tiktok - make your day",
	"instagram",
	"facebook",
	"watch",
	"video",
	"recipe",
	"untitled",
}

// sectionLabels are headings that name a section rather than the recipe.
var sectionLabels = []string{
	"ingredients", "directions", "steps", "method", "instructions",
	"preparation", "notes", "nutrition",
}

var (
	pipeSuffixRe = regexp.MustCompile(`\s+\|\s+[^|]{2,40}$`)
	dashSuffixRe = regexp.MustCompile(`\s+[\-–]\s+([^\-–]{2,40})$`)
	byHandleRe   = regexp.MustCompile(`(?i)\s+by\s+@[\w.]+\s*$`)
)

// postTitleSelectors are platform-specific elements marked as the post's
// title, tried before any metadata source.
var postTitleSelectors = []string{
	`[data-e2e="browse-video-title"]`,
	`[data-e2e="video-title"]`,
	`h1[data-testid="post-title"]`,
}

// TitleResolver tries an ordered list of title sources on a document and
// returns the first acceptable one, cleaned.
type TitleResolver struct{}

// NewTitleResolver creates a new TitleResolver.
func NewTitleResolver() *TitleResolver {
	return &TitleResolver{}
}

// Resolve returns the best title for the page, or "" when every source is
// empty or denied.
func (r *TitleResolver) Resolve(html string, pageURL string) string {
	doc, err := parseDoc(html)
	if err != nil {
		return ""
	}

	siteName := metaContent(doc, "og:site_name", "application-name")

	candidates := []func() string{
		func() string { return firstText(doc, postTitleSelectors) },
		func() string { return jsonldTitle(doc) },
		func() string { return metaContent(doc, "og:title", "twitter:title", "title") },
		func() string { return StateTitle(html) },
		func() string { return firstHeading(doc) },
		func() string { return recipeclip.CleanText(doc.Find("title").First().Text()) },
	}

	for _, candidate := range candidates {
		if title := acceptTitle(candidate(), siteName); title != "" {
			return title
		}
	}
	return ""
}

// acceptTitle rejects placeholders and cleans the survivors.
func acceptTitle(raw, siteName string) string {
	raw = recipeclip.CleanText(raw)
	if raw == "" {
		return ""
	}
	lower := strings.ToLower(raw)
	for _, deny := range placeholderTitles {
		if lower == deny {
			return ""
		}
	}
	return CleanTitle(raw, siteName)
}

// CleanTitle strips a trailing " by @handle" and a trailing " | Site"
// suffix, then collapses whitespace. Hyphen-delimited clauses are part of
// many legitimate titles ("Pulled Pork - Easy Weeknight Version"), so a
// trailing " - Site" is only stripped when it matches the page's declared
// site name.
func CleanTitle(title, siteName string) string {
	title = recipeclip.CleanText(title)
	title = byHandleRe.ReplaceAllString(title, "")
	if loc := pipeSuffixRe.FindStringIndex(title); loc != nil && loc[0] >= 3 {
		title = title[:loc[0]]
	}
	if siteName != "" {
		if m := dashSuffixRe.FindStringSubmatchIndex(title); m != nil && m[0] >= 3 {
			suffix := strings.TrimSpace(title[m[2]:m[3]])
			if strings.EqualFold(suffix, strings.TrimSpace(siteName)) {
				title = title[:m[0]]
			}
		}
	}
	return strings.TrimSpace(title)
}

// jsonldTitle scores names across the page's JSON-LD nodes: explicit Recipe
// nodes outrank generic Article/WebPage/Video nodes, and longer titles win
// among equally scored candidates.
func jsonldTitle(doc *goquery.Document) string {
	type scored struct {
		title string
		score int
	}
	var best scored

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		node := decodeJSONLD(s.Text())
		collectTitles(node, 0, func(title string, score int) {
			if score > best.score || (score == best.score && len(title) > len(best.title)) {
				best = scored{title: title, score: score}
			}
		})
	})
	return best.title
}

func collectTitles(v any, depth int, visit func(title string, score int)) {
	if depth > 6 {
		return
	}
	switch node := v.(type) {
	case map[string]any:
		score := 0
		switch {
		case typeIncludes(node["@type"], "recipe"):
			score = 3
		case typeIncludes(node["@type"], "article") ||
			typeIncludes(node["@type"], "newsarticle") ||
			typeIncludes(node["@type"], "webpage") ||
			typeIncludes(node["@type"], "videoobject"):
			score = 1
		}
		if score > 0 {
			for _, key := range []string{"name", "headline"} {
				if title := recipeclip.CleanText(stringField(node, key)); title != "" {
					visit(title, score)
					break
				}
			}
		}
		for _, key := range []string{"@graph", "mainEntity"} {
			if child, ok := node[key]; ok {
				collectTitles(child, depth+1, visit)
			}
		}
	case []any:
		for _, item := range node {
			collectTitles(item, depth+1, visit)
		}
	}
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := recipeclip.CleanText(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHeading returns the first h1/h2 that is not a bare section label.
func firstHeading(doc *goquery.Document) string {
	var title string
	doc.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := recipeclip.CleanText(s.Text())
		if text == "" || isSectionLabel(text) {
			return true
		}
		title = text
		return false
	})
	return title
}

func isSectionLabel(text string) bool {
	lower := strings.ToLower(strings.TrimRight(text, ":"))
	for _, label := range sectionLabels {
		if lower == label {
			return true
		}
	}
	return false
}
