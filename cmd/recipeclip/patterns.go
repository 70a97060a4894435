package main

import (
	"fmt"

	"github.com/scsmith60/recipeclip"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	category := recipeclip.SiteCategory(c.Category)

	patterns, err := deps.Patterns.Patterns(deps.Ctx, category)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeclip.ErrorMessage(err))
		return err
	}

	if len(patterns) == 0 {
		fmt.Fprintf(deps.Stdout, "No patterns recorded for %q yet.\n", c.Category)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "%-40s  %-16s  %-8s  %s\n", "PATTERN", "STRATEGY", "VERSION", "RATE")
	for _, p := range patterns {
		fmt.Fprintf(deps.Stdout, "%-40s  %-16s  %-8s  %.0f%% (%d/%d)\n",
			p.HTMLPattern, p.Method, p.Version, p.SuccessRate()*100, p.SuccessCount, p.TotalCount)
	}

	return nil
}
