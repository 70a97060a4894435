package goquery_test

import (
	"strings"
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ recipeclip.Extractor = (*goquery.PlatformStateExtractor)(nil)

const sigiStatePage = `<html><head>
<script id="SIGI_STATE" type="application/json">
{"ItemModule": {"712345": {
  "id": "712345",
  "desc": "Viral baked feta pasta!\nIngredients:\n1 block feta\n2 cups cherry tomatoes\n1/2 cup olive oil\nSteps:\n1. Bake the feta and tomatoes.\n2. Toss with cooked pasta.",
  "video": {"cover": "https://cdn.example.com/cover.jpg"}
}}}
</script>
</head><body></body></html>`

func TestPlatformStateExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewPlatformStateExtractor()

	t.Run("caption from script id blob", func(t *testing.T) {
		t.Parallel()

		p, err := e.Extract(sigiStatePage, "https://www.tiktok.com/@cook/video/712345")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, []string{
			"1 block feta",
			"2 cups cherry tomatoes",
			"1/2 cup olive oil",
		}, p.Ingredients)
		assert.Len(t, p.Steps, 2)
	})

	t.Run("caption from inline assignment", func(t *testing.T) {
		t.Parallel()

		html := `<script>window._sharedData = {"entry_data": {"PostPage": [{"media": {
"caption": "Ingredients:\n2 ripe avocados\n1 lime\nDirections:\nMash and season."
}}]}};</script>`

		p, err := e.Extract(html, "https://www.instagram.com/p/abc/")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, []string{"2 ripe avocados", "1 lime"}, p.Ingredients)
	})

	t.Run("no state blob", func(t *testing.T) {
		t.Parallel()

		p, err := e.Extract(`<body><p>just a page</p></body>`, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("state without recipe caption", func(t *testing.T) {
		t.Parallel()

		html := `<script id="__NEXT_DATA__" type="application/json">{"props": {"desc": "check out my new video friends"}}</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestStateCaption(t *testing.T) {
	t.Parallel()

	t.Run("longest plausible caption wins", func(t *testing.T) {
		t.Parallel()

		html := `<script id="__NEXT_DATA__" type="application/json">
{"a": {"desc": "short clip here"},
 "b": {"description": "A much longer caption describing the whole recipe in loving detail"},
 "c": {"desc": "https://example.com/not-a-caption-just-a-url"}}
</script>`

		got := goquery.StateCaption(html)
		assert.True(t, strings.HasPrefix(got, "A much longer caption"))
	})

	t.Run("caption inside array field", func(t *testing.T) {
		t.Parallel()

		html := `<script id="SIGI_STATE" type="application/json">{"items": [{"desc": "Ingredients for tonight's dinner party"}]}</script>`

		assert.Equal(t, "Ingredients for tonight's dinner party", goquery.StateCaption(html))
	})
}

func TestStateTitle(t *testing.T) {
	t.Parallel()

	html := `<script id="SIGI_STATE" type="application/json">
{"SharingMetaState": {"value": {"shareTitle": "Creamy Garlic Pasta in 15 Minutes"}},
 "SEOState": {"title": "ok"}}
</script>`

	assert.Equal(t, "Creamy Garlic Pasta in 15 Minutes", goquery.StateTitle(html))
}

func TestHasStateBlob(t *testing.T) {
	t.Parallel()

	assert.True(t, goquery.HasStateBlob(sigiStatePage))
	assert.True(t, goquery.HasStateBlob(`<script>window._sharedData = {"x": 1};</script>`))
	assert.False(t, goquery.HasStateBlob(`<body><p>static page</p></body>`))
}
