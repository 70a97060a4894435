package main

import (
	"context"
	"io"

	"github.com/scsmith60/recipeclip/pipeline"
	"github.com/scsmith60/recipeclip/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx          context.Context
	Stdout       io.Writer
	Stderr       io.Writer
	DB           *sqlite.DB
	Sites        *sqlite.SiteStore
	Attempts     *sqlite.AttemptLogger
	Patterns     *sqlite.PatternService
	Orchestrator *pipeline.Orchestrator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	DB      string `help:"Database path (defaults to $RECIPECLIP_DB or ~/.recipeclip/recipeclip.db)"`

	Extract  ExtractCmd  `cmd:"" help:"Extract a recipe from a URL"`
	Sites    SitesCmd    `cmd:"" help:"List discovered recipe sites"`
	Patterns PatternsCmd `cmd:"" help:"Show strategy success rates for a site category"`
	Attempts AttemptsCmd `cmd:"" help:"Show recent import attempts"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL    string `arg:"" help:"Page or post URL"`
	Render bool   `short:"r" help:"Fetch with a headless browser instead of plain HTTP"`
	Out    string `short:"o" help:"Write the result to a JSON file instead of stdout"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Category string `arg:"" help:"Site category (tiktok, instagram, facebook, recipe-site, generic)"`
}

// AttemptsCmd is the "attempts" subcommand.
type AttemptsCmd struct {
	Category string `help:"Filter by site category"`
	Limit    int    `default:"20" help:"Maximum rows to show"`
}
