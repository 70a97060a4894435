package goquery_test

import (
	"testing"

	"github.com/scsmith60/recipeclip/goquery"
	"github.com/stretchr/testify/assert"
)

func TestTitleResolver_Resolve(t *testing.T) {
	t.Parallel()

	r := goquery.NewTitleResolver()

	t.Run("platform post title wins", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta property="og:title" content="TikTok - Make Your Day"><title>TikTok</title></head>
<body><div data-e2e="browse-video-title">Crispy Smashed Potatoes</div></body>`

		assert.Equal(t, "Crispy Smashed Potatoes", r.Resolve(html, "https://www.tiktok.com/@cook/video/1"))
	})

	t.Run("recipe jsonld name outranks article headline", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">{"@type": "NewsArticle", "headline": "A Much Longer Editorial Headline About Dinner"}</script>
<script type="application/ld+json">{"@type": "Recipe", "name": "Weeknight Chili"}</script>`

		assert.Equal(t, "Weeknight Chili", r.Resolve(html, ""))
	})

	t.Run("placeholder og title falls through to document title", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta property="og:title" content="Instagram"><title>One Pan Salmon Dinner</title></head>`

		assert.Equal(t, "One Pan Salmon Dinner", r.Resolve(html, ""))
	})

	t.Run("section label heading skipped", func(t *testing.T) {
		t.Parallel()

		html := `<body><h2>Ingredients</h2><h2>Grandma's Apple Pie</h2></body>`

		assert.Equal(t, "Grandma's Apple Pie", r.Resolve(html, ""))
	})

	t.Run("site suffix stripped from meta title", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta property="og:title" content="Best Fudgy Brownies | Tasty Site"></head>`

		assert.Equal(t, "Best Fudgy Brownies", r.Resolve(html, ""))
	})

	t.Run("dash suffix stripped when og:site_name matches", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta property="og:site_name" content="Food Network"><title>Garlic Butter Shrimp - Food Network</title></head>`

		assert.Equal(t, "Garlic Butter Shrimp", r.Resolve(html, ""))
	})

	t.Run("every source empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "", r.Resolve(`<body><p>nothing here</p></body>`, ""))
	})
}

func TestCleanTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		site  string
		want  string
	}{
		{"pipe suffix", "Garlic Butter Shrimp | AllRecipes", "", "Garlic Butter Shrimp"},
		{"dash suffix matching site name", "Garlic Butter Shrimp - Food Network", "Food Network", "Garlic Butter Shrimp"},
		{"dash clause kept without site name", "Slow Cooker Pulled Pork - Easy Weeknight Version", "", "Slow Cooker Pulled Pork - Easy Weeknight Version"},
		{"dash clause kept when site name differs", "Slow Cooker Pulled Pork - Easy Weeknight Version", "Food Network", "Slow Cooker Pulled Pork - Easy Weeknight Version"},
		{"by handle", "Garlic Butter Shrimp by @shrimpdaddy", "", "Garlic Butter Shrimp"},
		{"short prefix kept", "A - Z of Baking", "Z of Baking", "A - Z of Baking"},
		{"plain", "Garlic Butter Shrimp", "", "Garlic Butter Shrimp"},
		{"whitespace collapsed", "  Garlic   Butter\tShrimp ", "", "Garlic Butter Shrimp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, goquery.CleanTitle(tt.input, tt.site))
		})
	}
}
