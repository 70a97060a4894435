package main

import (
	"fmt"

	"github.com/scsmith60/recipeclip"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.DiscoveredSites(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", recipeclip.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites discovered yet. Sites are learned from successful extractions.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Hostname, s.Method, s.DiscoveredAt.Format("2006-01-02"))
	}

	return nil
}
