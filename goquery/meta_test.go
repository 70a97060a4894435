package goquery_test

import (
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ recipeclip.Extractor = (*goquery.MetaDescriptionExtractor)(nil)

func TestSiteName(t *testing.T) {
	t.Parallel()

	t.Run("og site name", func(t *testing.T) {
		t.Parallel()
		html := `<head><meta property="og:site_name" content="Food Network"></head>`
		assert.Equal(t, "Food Network", goquery.SiteName(html))
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, goquery.SiteName(`<head><title>x</title></head>`))
	})
}

func TestMetaImage(t *testing.T) {
	t.Parallel()

	t.Run("og image", func(t *testing.T) {
		t.Parallel()
		html := `<head><meta property="og:image" content="https://example.com/dish.jpg"></head>`
		assert.Equal(t, "https://example.com/dish.jpg", goquery.MetaImage(html))
	})

	t.Run("twitter fallback", func(t *testing.T) {
		t.Parallel()
		html := `<head><meta name="twitter:image" content="https://example.com/tw.jpg"></head>`
		assert.Equal(t, "https://example.com/tw.jpg", goquery.MetaImage(html))
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", goquery.MetaImage(`<head></head>`))
	})
}

func TestMetaDescription(t *testing.T) {
	t.Parallel()

	html := `<head>
<meta name="description" content="plain description">
<meta property="og:description" content="og description">
</head>`

	assert.Equal(t, "og description", goquery.MetaDescription(html))
}

func TestMetaDescriptionExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := goquery.NewMetaDescriptionExtractor()

	t.Run("separator-packed description", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta property="og:description" content="Ingredients: | 2 cups flour | 1 egg | 1 cup milk | Steps: | Whisk together. | Cook on a griddle."></head>`

		p, err := e.Extract(html, "https://example.com")
		require.NoError(t, err)
		require.NotNil(t, p)

		assert.Equal(t, []string{"2 cups flour", "1 egg", "1 cup milk"}, p.Ingredients)
		assert.Equal(t, []string{"Whisk together.", "Cook on a griddle."}, p.Steps)
	})

	t.Run("non-recipe description", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta name="description" content="The latest celebrity news and gossip."></head>`

		p, err := e.Extract(html, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("no description", func(t *testing.T) {
		t.Parallel()

		p, err := e.Extract(`<head></head>`, "")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}
