package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yiblet/vocab/internal/store"
)

func TestHTTPSource_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		json.NewEncoder(w).Encode([]store.Word{
			{ID: 1, Text: "apt", Definition: "suitable"},
			{ID: 2, Text: "brisk", Definition: "quick"},
			{ID: 3, Text: "crux", Definition: "core"},
		})
	}))
	defer srv.Close()

	words, err := NewHTTPSource(srv.URL).Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "apt", words[0].Text)
}

func TestHTTPSource_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL).Fetch(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

const catalogYAML = `words:
  - id: 1
    text: apt
    definition: suitable
  - id: 2
    text: brisk
    definition: quick
    partOfSpeech: adjective
  - id: 3
    text: crux
    definition: the decisive point
`

func TestFileSource_RotatesByDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0644))

	day := time.Date(2024, 5, 10, 12, 0, 0, 0, time.Local)
	src := &FileSource{Path: path, Now: func() time.Time { return day }}

	first, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	again, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, first, again, "same day, same words")

	day = day.AddDate(0, 0, 1)
	next, err := src.Fetch(context.Background(), 2)
	require.NoError(t, err)
	assert.NotEqual(t, first, next)
}

func TestFileSource_MoreThanAvailable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(catalogYAML), 0644))

	words, err := (&FileSource{Path: path}).Fetch(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, words, 3)
}

func TestWindowWraps(t *testing.T) {
	words := []store.Word{{ID: 1}, {ID: 2}, {ID: 3}}
	got := window(words, 1, 2) // start at 2
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
}
