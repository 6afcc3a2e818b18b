package show

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/bookfind/internal/errors"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
	"github.com/mlahtinen/bookfind/internal/ratelimit"
)

func newTestClient(t *testing.T, handler http.Handler) *openlibrary.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return openlibrary.NewClient(
		openlibrary.WithBaseURL(server.URL),
		openlibrary.WithHTTPClient(server.Client()),
		openlibrary.WithRateLimiter(ratelimit.NewWithBurst("test", 1000, 1000)),
		openlibrary.WithoutCache(),
	)
}

func TestRunWorkText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/works/OL45883W.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"key": "/works/OL45883W",
			"title": "The Great Gatsby",
			"description": {"type": "/type/text", "value": "A portrait of the Jazz Age."},
			"subjects": ["Fiction", "Classic Literature"]
		}`))
	})

	var out bytes.Buffer
	err := RunWork(Options{ID: "OL45883W", Output: &out, Client: newTestClient(t, mux)})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "The Great Gatsby")
	assert.Contains(t, text, "A portrait of the Jazz Age.")
	assert.Contains(t, text, "Subjects: Fiction, Classic Literature")
}

func TestRunWorkAcceptsPrefixedKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/works/OL45883W.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"key": "/works/OL45883W", "title": "The Great Gatsby"}`))
	})

	var out bytes.Buffer
	err := RunWork(Options{ID: "/works/OL45883W", Output: &out, Client: newTestClient(t, mux)})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "The Great Gatsby")
}

func TestRunWorkJSON(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/works/OL45883W.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"key": "/works/OL45883W", "title": "The Great Gatsby"}`))
	})

	var out bytes.Buffer
	err := RunWork(Options{ID: "OL45883W", JSON: true, Output: &out, Client: newTestClient(t, mux)})
	require.NoError(t, err)

	var work openlibrary.WorkDetails
	require.NoError(t, json.Unmarshal(out.Bytes(), &work))
	assert.Equal(t, "The Great Gatsby", work.Title)
}

func TestRunWorkNotFound(t *testing.T) {
	mux := http.NewServeMux()

	err := RunWork(Options{ID: "OL0W", Output: &bytes.Buffer{}, Client: newTestClient(t, mux)})
	require.Error(t, err)
	assert.True(t, errors.IsServerError(err))
}

func TestRunAuthorText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/authors/OL23919A.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"key": "/authors/OL23919A",
			"name": "F. Scott Fitzgerald",
			"birth_date": "24 September 1896",
			"death_date": "21 December 1940",
			"bio": "American novelist."
		}`))
	})

	var out bytes.Buffer
	err := RunAuthor(Options{ID: "OL23919A", Output: &out, Client: newTestClient(t, mux)})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "F. Scott Fitzgerald")
	assert.Contains(t, text, "Lived: 24 September 1896 - 21 December 1940")
	assert.Contains(t, text, "American novelist.")
}
