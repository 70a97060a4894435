package goquery_test

import (
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure JSONLDExtractor implements recipeclip.Extractor at compile time.
var _ recipeclip.Extractor = (*goquery.JSONLDExtractor)(nil)

func TestJSONLDExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewJSONLDExtractor()

	t.Run("well-formed recipe block", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><script type="application/ld+json">
{
  "@context": "https://schema.org",
  "@type": "Recipe",
  "name": "Classic Pancakes",
  "image": "https://example.com/pancakes.jpg",
  "prepTime": "PT10M",
  "cookTime": "PT20M",
  "recipeIngredient": ["2 cups flour", "1 egg", "1 cup milk"],
  "recipeInstructions": [
    {"@type": "HowToStep", "text": "Whisk the dry ingredients."},
    {"@type": "HowToStep", "text": "Fold in the wet ingredients."},
    {"@type": "HowToStep", "text": "Cook on a hot griddle."}
  ]
}
</script></head><body></body></html>`

		p, err := e.Extract(html, "https://example.com/pancakes")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "Classic Pancakes", p.Title)
		assert.Equal(t, "https://example.com/pancakes.jpg", p.Image)
		assert.Equal(t, []string{"2 cups flour", "1 egg", "1 cup milk"}, p.Ingredients)
		assert.Len(t, p.Steps, 3)
		assert.Equal(t, 30, p.TotalMinutes)
	})

	t.Run("multi-valued type inside graph", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@graph": [
  {"@type": "WebPage", "name": "Some Page"},
  {"@type": ["Recipe", "NewsArticle"], "name": "Chili",
   "recipeIngredient": ["1 lb beef", "1 can beans"],
   "recipeInstructions": "Brown the beef. Add the beans."}
]}
</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "Chili", p.Title)
		assert.Equal(t, []string{"1 lb beef", "1 can beans"}, p.Ingredients)
	})

	t.Run("case-insensitive type match", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type": "recipe", "name": "Toast", "recipeIngredient": ["2 slices bread"]}
</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Toast", p.Title)
	})

	t.Run("nested HowToSection instructions", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type": "Recipe", "name": "Lasagna",
 "recipeIngredient": ["1 lb pasta", "2 cups sauce"],
 "recipeInstructions": [
   {"@type": "HowToSection", "name": "Sauce", "itemListElement": [
     {"@type": "HowToStep", "text": "Simmer the sauce."}
   ]},
   {"@type": "HowToSection", "name": "Assembly", "itemListElement": [
     {"@type": "HowToStep", "text": "Layer pasta and sauce."},
     {"@type": "HowToStep", "text": "Bake until bubbling."}
   ]}
 ]}
</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, []string{
			"Simmer the sauce.",
			"Layer pasta and sauce.",
			"Bake until bubbling.",
		}, p.Steps)
	})

	t.Run("image object and total time", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type": "Recipe", "name": "Stew", "totalTime": "PT1H30M",
 "image": {"@type": "ImageObject", "url": "https://example.com/stew.jpg"},
 "recipeIngredient": ["2 lbs beef"]}
</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, "https://example.com/stew.jpg", p.Image)
		assert.Equal(t, 90, p.TotalMinutes)
	})

	t.Run("recovers malformed block with trailing garbage", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type": "Recipe", "name": "Salsa", "recipeIngredient": ["3 tomatoes", "1 onion"]}</script>
<script type="application/ld+json">{"@type": "Recipe", "name": "Broken", "recipeIngredient": ["1 cup corn"]} trailing junk</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Salsa", p.Title)
	})

	t.Run("malformed-only block still recovered", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "Recipe", "name": "Guac", "recipeIngredient": ["2 avocados", "1 lime"]};window.x=1</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, "Guac", p.Title)
	})

	t.Run("no recipe node returns nil", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "Article", "name": "Not food"}</script>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("unparsable block returns nil", func(t *testing.T) {
		t.Parallel()

		p, err := e.Extract(`<script type="application/ld+json">{{{{</script>`, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
