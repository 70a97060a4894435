package main

import (
	"fmt"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/sqlite"
)

// Run executes the attempts command.
func (c *AttemptsCmd) Run(deps *Dependencies) error {
	filter := sqlite.AttemptFilter{Limit: c.Limit}
	if c.Category != "" {
		category := recipeclip.SiteCategory(c.Category)
		filter.Category = &category
	}

	attempts, err := deps.Attempts.RecentAttempts(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeclip.ErrorMessage(err))
		return err
	}

	if len(attempts) == 0 {
		fmt.Fprintln(deps.Stdout, "No attempts logged yet.")
		return nil
	}

	for _, a := range attempts {
		outcome := "fail"
		if a.Success {
			outcome = "ok"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-4s  %-16s  %2d ing  %2d steps  %s\n",
			a.CreatedAt.Format("2006-01-02 15:04"), outcome, a.StrategyUsed, a.Ingredients, a.Steps, a.URL)
	}

	return nil
}
