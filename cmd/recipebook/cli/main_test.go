package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook"
	"recipebook/forkify"
	"recipebook/state"
)

func TestMapErrorToExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "validation", err: fmt.Errorf("upload: %w", &state.ValidationError{Field: "servings"}), want: 2},
		{name: "missing key", err: fmt.Errorf("upload recipe: %w", forkify.ErrMissingAPIKey), want: 2},
		{name: "network", err: fmt.Errorf("%w: refused", forkify.ErrNetwork), want: 3},
		{name: "not found", err: &forkify.StatusError{Code: 404, Message: "gone"}, want: 4},
		{name: "other", err: errors.New("boom"), want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapErrorToExitCode(tt.err))
		})
	}
}

func TestReadUpload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rice.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
title: Test Rice
sourceUrl: http://example.com/rice
image: http://example.com/rice.jpg
publisher: Me
cookingTime: "20"
servings: "2"
ingredients:
  - 0.5,kg,Rice
  - ",,Salt"
`), 0o644))

	upload, err := readUpload(path)
	require.NoError(t, err)
	assert.Equal(t, recipebook.Upload{
		Title:       "Test Rice",
		SourceURL:   "http://example.com/rice",
		Image:       "http://example.com/rice.jpg",
		Publisher:   "Me",
		CookingTime: "20",
		Servings:    "2",
		Ingredients: []string{"0.5,kg,Rice", ",,Salt"},
	}, upload)

	_, err = readUpload(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPrintSearchPage(t *testing.T) {
	search := state.Search{
		Query:          "pizza",
		Results:        []recipebook.SearchResult{{ID: "a", Title: "Pizza", Publisher: "P"}, {ID: "b", Title: "Mine", Key: "k"}},
		Page:           1,
		ResultsPerPage: 1,
	}

	var buf bytes.Buffer
	printSearchPage(&buf, search, search.Results[:1])
	assert.Contains(t, buf.String(), "Pizza")
	assert.NotContains(t, buf.String(), "Mine")
	assert.Contains(t, buf.String(), "Page 1 of 2 (2 results)")

	buf.Reset()
	printSearchPage(&buf, state.Search{Query: "zzz"}, nil)
	assert.Equal(t, "No recipes found for \"zzz\"\n", buf.String())
}

func TestPrintRecipe(t *testing.T) {
	half := 0.5
	var buf bytes.Buffer
	printRecipe(&buf, recipebook.Recipe{
		Title:       "Rice",
		Publisher:   "Me",
		Servings:    2,
		CookingTime: 20,
		Bookmarked:  true,
		Ingredients: []recipebook.Ingredient{{Quantity: &half, Unit: "kg", Description: "Rice"}},
	})
	out := buf.String()
	assert.Contains(t, out, "Rice [bookmarked]")
	assert.Contains(t, out, "2 servings, 20 minutes")
	assert.Contains(t, out, "  - 0.5 kg Rice")
}

func TestPrintBookmarks(t *testing.T) {
	var buf bytes.Buffer
	printBookmarks(&buf, nil)
	assert.Equal(t, "No bookmarks yet\n", buf.String())

	buf.Reset()
	printBookmarks(&buf, []recipebook.Recipe{{ID: "a", Title: "Pizza", Publisher: "P"}})
	assert.Contains(t, buf.String(), "Pizza")
}
