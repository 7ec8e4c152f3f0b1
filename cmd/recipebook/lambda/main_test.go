package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipebook"
	"recipebook/forkify"
	"recipebook/state"
	"recipebook/storage"
)

func newTestState(t *testing.T) *state.State {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Query().Has("search"):
			recipes := make([]map[string]any, 12)
			for i := range recipes {
				recipes[i] = map[string]any{"id": string(rune('a' + i)), "title": "Pizza", "publisher": "P", "image_url": "img"}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "success", "data": map[string]any{"recipes": recipes}})
		case r.URL.Path == "/recipes/pizza":
			_, _ = io.WriteString(w, `{"status":"success","data":{"recipe":{"id":"pizza","title":"Pizza","servings":2,"cooking_time":30,
				"ingredients":[{"quantity":1,"unit":"kg","description":"flour"}]}}}`)
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"status":"fail","message":"Invalid _id"}`)
		}
	}))
	t.Cleanup(srv.Close)

	api := forkify.NewClient(recipebook.APIConfig{URL: srv.URL + "/recipes/", TimeoutSec: 5}, srv.Client())
	st := state.New(api, storage.NewMemoryStore(), 10, nil)
	require.NoError(t, st.Initialize(context.Background()))
	return st
}

func TestHandle(t *testing.T) {
	ctx := context.Background()
	st := newTestState(t)

	res, err := handle(ctx, st, Params{Action: "search", Query: "pizza", Page: 2})
	require.NoError(t, err)
	assert.Len(t, res.Results, 2)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.NumPages)

	res, err = handle(ctx, st, Params{Action: "recipe", ID: "pizza", Servings: 4})
	require.NoError(t, err)
	require.NotNil(t, res.Recipe)
	assert.Equal(t, 4, res.Recipe.Servings)
	assert.InDelta(t, 2.0, *res.Recipe.Ingredients[0].Quantity, 1e-9)

	res, err = handle(ctx, st, Params{Action: "bookmark_add", ID: "pizza"})
	require.NoError(t, err)
	require.Len(t, res.Bookmarks, 1)

	res, err = handle(ctx, st, Params{Action: "bookmark_delete", ID: "pizza"})
	require.NoError(t, err)
	assert.Empty(t, res.Bookmarks)

	_, err = handle(ctx, st, Params{Action: "bookmark_add", ID: "pizza"})
	require.NoError(t, err)
	res, err = handle(ctx, st, Params{Action: "bookmark_clear"})
	require.NoError(t, err)
	assert.Empty(t, res.Bookmarks)
	res, err = handle(ctx, st, Params{Action: "bookmarks"})
	require.NoError(t, err)
	assert.Empty(t, res.Bookmarks)

	_, err = handle(ctx, st, Params{Action: "recipe", ID: "nope"})
	assert.ErrorIs(t, err, forkify.ErrNotFound)

	_, err = handle(ctx, st, Params{Action: "dance"})
	assert.ErrorContains(t, err, "unknown action")
}
