package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/bloom"
	"github.com/scsmith60/recipeclip/classify"
	rchttp "github.com/scsmith60/recipeclip/http"
	"github.com/scsmith60/recipeclip/pipeline"
	"github.com/scsmith60/recipeclip/rod"
	rcslog "github.com/scsmith60/recipeclip/slog"
	"github.com/scsmith60/recipeclip/sqlite"
	"github.com/scsmith60/recipeclip/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("recipeclip"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'recipeclip --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RECIPECLIP_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.DB = m.DB
	deps.Sites = sqlite.NewSiteStore(m.DB)
	deps.Attempts = sqlite.NewAttemptLogger(m.DB)
	deps.Patterns = sqlite.NewPatternService(m.DB)

	if cmd == "extract" {
		var fetcher recipeclip.Fetcher
		if cli.Extract.Render {
			fetcher = rod.NewFetcher()
		} else {
			fetcher = rchttp.NewFetcher()
		}
		fetcher = rcslog.NewLoggingFetcher(fetcher, logger)
		defer fetcher.Close()

		classifier := rcslog.NewLoggingClassifier(classify.NewClassifier(deps.Sites), logger)

		deps.Orchestrator = &pipeline.Orchestrator{
			Fetcher:    fetcher,
			Classifier: classifier,
			Configs:    sqlite.NewConfigService(m.DB, pipeline.NewStaticConfigService()),
			Embed:      rchttp.NewEmbedClient(classifier.Classify),
			Text:       trafilatura.NewExtractor(),
			Attempts:   rcslog.NewLoggingAttemptLogger(deps.Attempts, logger),
			Patterns:   deps.Patterns,
			Samples:    bloom.NewSampleThrottle(10000, 0.01),
		}

		err := kongCtx.Run(deps)
		// Learning writes run in the background; flush them before the
		// database closes.
		deps.Orchestrator.Wait()
		return err
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("RECIPECLIP_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "recipeclip.db"
	}
	dir := filepath.Join(home, ".recipeclip")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "recipeclip.db")
}
