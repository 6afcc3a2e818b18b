package search

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/bookfind/internal/storage"
	"github.com/mlahtinen/bookfind/internal/testutil"
)

func TestRunTrending(t *testing.T) {
	testutil.SetTestConfig(t)

	var gotSubject string
	mux := http.NewServeMux()
	mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
		gotSubject = r.URL.Query().Get("subject")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[
			{"key":"/works/OL1W","title":"Trending Title","ratings_average":4.0,"ratings_count":10}
		]}`))
	})

	var out bytes.Buffer
	err := RunTrending(Options{
		Seed:   42,
		Output: &out,
		Client: newTestClient(t, mux),
		Store:  storage.NewMemStore(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, gotSubject)
	text := out.String()
	assert.Contains(t, text, "Trending now: "+gotSubject)
	assert.Contains(t, text, "Trending Title")
}

func TestRunTrendingSeedIsStable(t *testing.T) {
	testutil.SetTestConfig(t)

	subjects := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		mux := http.NewServeMux()
		mux.HandleFunc("/search.json", func(w http.ResponseWriter, r *http.Request) {
			subjects = append(subjects, r.URL.Query().Get("subject"))
			_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"/works/OL1W","title":"T"}]}`))
		})

		err := RunTrending(Options{
			Seed:   99,
			Output: &bytes.Buffer{},
			Client: newTestClient(t, mux),
			Store:  storage.NewMemStore(),
		})
		require.NoError(t, err)
	}

	require.Len(t, subjects, 2)
	assert.Equal(t, subjects[0], subjects[1])
}
