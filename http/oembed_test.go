package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/scsmith60/recipeclip"
	recipehttp "github.com/scsmith60/recipeclip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ recipeclip.EmbedClient = (*recipehttp.EmbedClient)(nil)

func classifyAll(category recipeclip.SiteCategory) func(string) recipeclip.SiteCategory {
	return func(string) recipeclip.SiteCategory { return category }
}

func TestEmbedClient_Embed(t *testing.T) {
	t.Parallel()

	t.Run("decodes embed info", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "https://www.tiktok.com/@cook/video/1", r.URL.Query().Get("url"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"title": "Feta pasta recipe", "author_name": "cook", "thumbnail_url": "https://cdn.example.com/t.jpg"}`))
		}))
		defer server.Close()

		client := recipehttp.NewEmbedClient(
			classifyAll(recipeclip.SiteTikTok),
			recipehttp.WithEmbedEndpoint(recipeclip.SiteTikTok, server.URL),
		)

		info, err := client.Embed(context.Background(), "https://www.tiktok.com/@cook/video/1")
		require.NoError(t, err)
		assert.Equal(t, "Feta pasta recipe", info.Title)
		assert.Equal(t, "cook", info.AuthorName)
		assert.Equal(t, "https://cdn.example.com/t.jpg", info.ThumbnailURL)
	})

	t.Run("platform without endpoint", func(t *testing.T) {
		t.Parallel()

		client := recipehttp.NewEmbedClient(classifyAll(recipeclip.SiteGeneric))

		_, err := client.Embed(context.Background(), "https://example.com/post")
		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	})

	t.Run("non-200 response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := recipehttp.NewEmbedClient(
			classifyAll(recipeclip.SiteTikTok),
			recipehttp.WithEmbedEndpoint(recipeclip.SiteTikTok, server.URL),
		)

		_, err := client.Embed(context.Background(), "https://www.tiktok.com/@cook/video/2")
		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		}))
		defer server.Close()

		client := recipehttp.NewEmbedClient(
			classifyAll(recipeclip.SiteTikTok),
			recipehttp.WithEmbedEndpoint(recipeclip.SiteTikTok, server.URL),
		)

		_, err := client.Embed(context.Background(), "https://www.tiktok.com/@cook/video/3")
		require.Error(t, err)
		assert.Equal(t, recipeclip.EUNAVAILABLE, recipeclip.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := recipehttp.NewEmbedClient(
			classifyAll(recipeclip.SiteTikTok),
			recipehttp.WithEmbedEndpoint(recipeclip.SiteTikTok, server.URL),
		)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := client.Embed(ctx, "https://www.tiktok.com/@cook/video/4")
		require.Error(t, err)
	})
}
