package nlp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Luismorlan/newsdash/cache"
)

const articleHtml = `<html>
<head><title>Site | Headline</title></head>
<body>
  <nav><p>Subscribe now</p></nav>
  <h1> Headline </h1>
  <article>
    <p>The first paragraph is here.</p>
    <p>The   second
       paragraph follows.</p>
  </article>
</body>
</html>`

func newArticleServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/article", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(articleHtml))
	})
	mux.HandleFunc("/plain", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(`<html><head><title>Only Title</title></head><body><p>Body text.</p></body></html>`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCollyExtractor(t *testing.T) {
	server := newArticleServer(t)
	extractor := NewCollyExtractor(5 * time.Second)

	page, err := extractor.Extract(context.Background(), server.URL+"/article")
	require.NoError(t, err)
	require.Equal(t, Page{
		Title: "Headline",
		Text:  "The first paragraph is here.\nThe second paragraph follows.",
	}, page)

	page, err = extractor.Extract(context.Background(), server.URL+"/plain")
	require.NoError(t, err)
	require.Equal(t, Page{Title: "Only Title", Text: "Body text."}, page)

	// the same url can be extracted again
	_, err = extractor.Extract(context.Background(), server.URL+"/article")
	require.NoError(t, err)
}

func TestCollyExtractor_NotFound(t *testing.T) {
	server := newArticleServer(t)
	_, err := NewCollyExtractor(5*time.Second).Extract(context.Background(), server.URL+"/missing")
	require.Error(t, err)
}

func TestSummarizeArticle_FromPage(t *testing.T) {
	server := newArticleServer(t)
	p := NewProcessor(
		cache.NewTTLCache[any]("nlp_test_page", 10, time.Minute),
		WithArticleExtractor(NewCollyExtractor(5*time.Second)),
	)

	summary, err := p.SummarizeArticle(context.Background(), server.URL+"/article")
	require.NoError(t, err)
	require.Contains(t, summary, "The first paragraph is here.")
	require.Contains(t, summary, "paragraph follows.")
}
