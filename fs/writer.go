// Package fs writes extraction results to the filesystem.
package fs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/scsmith60/recipeclip"
)

// Writer persists extracted recipes as JSON files. Writes go through a
// temporary file and rename, so a crash mid-write never leaves a truncated
// result behind.
type Writer struct{}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// WriteRecipe writes the recipe as indented JSON to path, creating parent
// directories as needed.
func (w *Writer) WriteRecipe(path string, recipe *recipeclip.RecipeMeta) error {
	if recipe == nil {
		return recipeclip.Errorf(recipeclip.EINVALID, "no recipe to write")
	}

	data, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".recipe-*.json")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
