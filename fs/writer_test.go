package fs_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_WriteRecipe(t *testing.T) {
	t.Parallel()

	t.Run("writes indented json", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out", "recipe.json")
		w := fs.NewWriter()

		recipe := &recipeclip.RecipeMeta{
			URL:          "https://example.com/pasta",
			Title:        "Weeknight Pasta",
			Ingredients:  []string{"1 lb pasta", "2 cups sauce"},
			Steps:        []string{"Boil the pasta.", "Toss with sauce."},
			TotalMinutes: 25,
		}
		require.NoError(t, w.WriteRecipe(path, recipe))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got recipeclip.RecipeMeta
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, *recipe, got)
		assert.Contains(t, string(data), "\n  \"title\"")
	})

	t.Run("overwrite replaces whole file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "recipe.json")
		w := fs.NewWriter()

		require.NoError(t, w.WriteRecipe(path, &recipeclip.RecipeMeta{
			URL:   "https://example.com/a",
			Title: "A Very Long Original Title That Takes Space",
		}))
		require.NoError(t, w.WriteRecipe(path, &recipeclip.RecipeMeta{
			URL:   "https://example.com/b",
			Title: "B",
		}))

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		var got recipeclip.RecipeMeta
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, "B", got.Title)
	})

	t.Run("nil recipe rejected", func(t *testing.T) {
		t.Parallel()

		w := fs.NewWriter()
		err := w.WriteRecipe(filepath.Join(t.TempDir(), "x.json"), nil)
		require.Error(t, err)
		assert.Equal(t, recipeclip.EINVALID, recipeclip.ErrorCode(err))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		w := fs.NewWriter()
		require.NoError(t, w.WriteRecipe(filepath.Join(dir, "recipe.json"), &recipeclip.RecipeMeta{
			URL: "https://example.com/x",
		}))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "recipe.json", entries[0].Name())
	})
}
