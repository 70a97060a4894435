package main

import (
	"encoding/json"
	"fmt"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	meta, err := deps.Orchestrator.Extract(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeclip.ErrorMessage(err))
		return err
	}

	if meta.NeedsClientRender && !c.Render {
		fmt.Fprintln(deps.Stderr, "Hint: this page needs client rendering; retry with --render")
	}

	if c.Out != "" {
		if err := fs.NewWriter().WriteRecipe(c.Out, meta); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", recipeclip.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "Saved %s\n", c.Out)
		return nil
	}

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(deps.Stdout, string(out))
	return nil
}
