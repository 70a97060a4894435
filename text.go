package recipeclip

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var spaceRe = regexp.MustCompile(`\s+`)

// CleanText strips markup, decodes HTML entities, and collapses whitespace.
// Input that contains no markup passes through with whitespace normalized.
func CleanText(s string) string {
	if strings.ContainsAny(s, "<&") {
		s = stripMarkup(s)
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// stripMarkup extracts the text content of an HTML fragment. Entities are
// decoded by the tokenizer; if the fragment is unparsable the raw string is
// returned with entities unescaped.
func stripMarkup(s string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if b.Len() == 0 {
				return html.UnescapeString(s)
			}
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			// Block-level boundaries keep adjacent words apart.
			b.WriteByte(' ')
		}
	}
}

// Lines splits text on newlines, cleans each line, and drops empties.
func Lines(s string) []string {
	raw := strings.Split(s, "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = CleanText(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Truncate shortens s to at most n bytes, cutting at a rune boundary.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !isUTF8Start(s[n]) {
		n--
	}
	return s[:n]
}

func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}
