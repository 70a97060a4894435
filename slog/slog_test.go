package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/scsmith60/recipeclip"
	"github.com/scsmith60/recipeclip/mock"
	recipeslog "github.com/scsmith60/recipeclip/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string, identity recipeclip.Identity) (string, error) {
			return "<html>page</html>", nil
		},
	}

	fetcher := recipeslog.NewLoggingFetcher(inner, newTestLogger(&buf))

	html, err := fetcher.Fetch(context.Background(), "https://example.com", recipeclip.IdentityMobile)
	require.NoError(t, err)
	assert.Equal(t, "<html>page</html>", html)

	out := buf.String()
	assert.Contains(t, out, "fetch")
	assert.Contains(t, out, "https://example.com")
	assert.Contains(t, out, "identity=mobile")
	assert.Contains(t, out, "bytes=17")

	require.NoError(t, fetcher.Close())
}

func TestLoggingClassifier(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.SiteClassifier{
		ClassifyFn: func(rawurl string) recipeclip.SiteCategory {
			return recipeclip.SiteTikTok
		},
	}

	classifier := recipeslog.NewLoggingClassifier(inner, newTestLogger(&buf))

	category := classifier.Classify("https://www.tiktok.com/@cook/video/1")
	assert.Equal(t, recipeclip.SiteTikTok, category)
	assert.Contains(t, buf.String(), "category=tiktok")

	err := classifier.DiscoverIfNeeded(context.Background(), "https://blog.example/post", recipeclip.DetectJSONLD)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "site discovery")
	assert.Contains(t, buf.String(), "method=structured-markup")
}

func TestLoggingAttemptLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	var logged *recipeclip.ImportAttempt
	inner := &mock.AttemptLogger{
		AppendAttemptFn: func(ctx context.Context, attempt *recipeclip.ImportAttempt) error {
			logged = attempt
			return nil
		},
	}

	logger := recipeslog.NewLoggingAttemptLogger(inner, newTestLogger(&buf))

	err := logger.AppendAttempt(context.Background(), &recipeclip.ImportAttempt{
		URL:          "https://example.com/soup",
		SiteCategory: recipeclip.SiteRecipe,
		StrategyUsed: recipeclip.StrategyJSONLD,
		Success:      true,
		Confidence:   recipeclip.ConfidenceHigh,
		Ingredients:  5,
		Steps:        3,
	})
	require.NoError(t, err)
	require.NotNil(t, logged)

	out := buf.String()
	assert.Contains(t, out, "import attempt")
	assert.Contains(t, out, "strategy=jsonld")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "confidence=high")
}
