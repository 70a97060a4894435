package main_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scsmith60/recipeclip"
	main "github.com/scsmith60/recipeclip/cmd/recipeclip"
	"github.com/scsmith60/recipeclip/mock"
	"github.com/scsmith60/recipeclip/pipeline"
	"github.com/scsmith60/recipeclip/sqlite"
)

const recipePage = `<html><head>
<script type="application/ld+json">
{"@type":"Recipe","name":"Lemon Bars",
"recipeIngredient":["2 cups flour","1 cup butter","3 lemons"],
"recipeInstructions":["Press the crust.","Bake until set."]}
</script>
</head><body></body></html>`

func newDeps(t *testing.T) *main.Dependencies {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })

	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   &bytes.Buffer{},
		Stderr:   &bytes.Buffer{},
		DB:       db,
		Sites:    sqlite.NewSiteStore(db),
		Attempts: sqlite.NewAttemptLogger(db),
		Patterns: sqlite.NewPatternService(db),
	}
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	for _, cmd := range []string{"extract", "sites", "patterns", "attempts"} {
		assert.Contains(t, stdout.String(), cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Usage:")
	assert.Contains(t, stdout.String(), "extract")
}

func TestExtractCmd_Run(t *testing.T) {
	t.Parallel()

	newOrchestrator := func() *pipeline.Orchestrator {
		return &pipeline.Orchestrator{
			Fetcher: &mock.Fetcher{
				FetchFn: func(ctx context.Context, url string, identity recipeclip.Identity) (string, error) {
					return recipePage, nil
				},
			},
			Classifier: &mock.SiteClassifier{
				ClassifyFn: func(rawurl string) recipeclip.SiteCategory { return recipeclip.SiteGeneric },
			},
		}
	}

	t.Run("prints JSON to stdout", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		deps.Orchestrator = newOrchestrator()

		cmd := &main.ExtractCmd{URL: "https://tasty.example.com/lemon-bars"}
		require.NoError(t, cmd.Run(deps))

		output := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, output, `"title": "Lemon Bars"`)
		assert.Contains(t, output, "2 cups flour")
		assert.Contains(t, output, "Press the crust.")
	})

	t.Run("writes file with --out", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		deps.Orchestrator = newOrchestrator()

		path := filepath.Join(t.TempDir(), "lemon-bars.json")
		cmd := &main.ExtractCmd{URL: "https://tasty.example.com/lemon-bars", Out: path}
		require.NoError(t, cmd.Run(deps))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "Lemon Bars")
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "Saved")
	})

	t.Run("invalid URL fails", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		deps.Orchestrator = newOrchestrator()

		cmd := &main.ExtractCmd{URL: "not-a-url"}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, recipeclip.EINVALID, recipeclip.ErrorCode(err))
		assert.Contains(t, deps.Stderr.(*bytes.Buffer).String(), "error:")
	})
}

func TestSitesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists discovered sites", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		require.NoError(t, deps.Sites.UpsertDiscoveredSite(deps.Ctx, "grandmas-kitchen.example.com", recipeclip.DetectJSONLD))

		cmd := &main.SitesCmd{}
		require.NoError(t, cmd.Run(deps))

		output := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, output, "grandmas-kitchen.example.com")
		assert.Contains(t, output, "structured-markup")
	})

	t.Run("shows message when empty", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		cmd := &main.SitesCmd{}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No sites")
	})
}

func TestPatternsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("shows success rates", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		for i := 0; i < 3; i++ {
			require.NoError(t, deps.Patterns.UpsertPattern(deps.Ctx,
				recipeclip.SiteRecipe, "jsonld-recipe", recipeclip.StrategyJSONLD, "v1", i < 2))
		}

		cmd := &main.PatternsCmd{Category: "recipe-site"}
		require.NoError(t, cmd.Run(deps))

		output := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, output, "jsonld-recipe")
		assert.Contains(t, output, "67% (2/3)")
	})

	t.Run("shows message when empty", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		cmd := &main.PatternsCmd{Category: "tiktok"}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No patterns")
	})
}

func TestAttemptsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists recent attempts", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		require.NoError(t, deps.Attempts.AppendAttempt(deps.Ctx, &recipeclip.ImportAttempt{
			URL:          "https://tasty.example.com/chili",
			SiteCategory: recipeclip.SiteRecipe,
			StrategyUsed: recipeclip.StrategyHeadings,
			Success:      true,
			Ingredients:  5,
			Steps:        3,
		}))

		cmd := &main.AttemptsCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))

		output := deps.Stdout.(*bytes.Buffer).String()
		assert.Contains(t, output, "https://tasty.example.com/chili")
		assert.Contains(t, output, "ok")
		assert.Contains(t, output, "heading-block")
	})

	t.Run("shows message when empty", func(t *testing.T) {
		t.Parallel()

		deps := newDeps(t)
		cmd := &main.AttemptsCmd{Limit: 20}
		require.NoError(t, cmd.Run(deps))
		assert.Contains(t, deps.Stdout.(*bytes.Buffer).String(), "No attempts")
	})
}
