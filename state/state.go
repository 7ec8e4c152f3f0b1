// Package state holds the recipe browsing session: the recipe being viewed,
// the current search and its pagination, and the persisted bookmark list.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"recipebook"
	"recipebook/storage"
)

// BookmarksKey is the storage key the bookmark list is persisted under.
const BookmarksKey = "bookmarks"

const defaultResultsPerPage = 10

// State is the application state for one user session. It is safe for
// concurrent use, but operations that wait on the network are not serialized
// with each other: the last one to finish wins.
type State struct {
	api      recipebook.RecipeAPI
	store    storage.Store
	activity recipebook.ActivityLogger
	tracer   trace.Tracer

	mu        sync.Mutex
	recipe    recipebook.Recipe
	search    Search
	bookmarks []recipebook.Recipe
}

// New creates an empty state. Call Initialize before use to load bookmarks.
func New(api recipebook.RecipeAPI, store storage.Store, resultsPerPage int, activity recipebook.ActivityLogger) *State {
	if resultsPerPage <= 0 {
		resultsPerPage = defaultResultsPerPage
	}
	if activity == nil {
		activity = recipebook.NewNoOpActivityLogger()
	}
	return &State{
		api:      api,
		store:    store,
		activity: activity,
		tracer:   otel.Tracer(recipebook.TracerNameState),
		search: Search{
			Results:        []recipebook.SearchResult{},
			Page:           1,
			ResultsPerPage: resultsPerPage,
		},
		bookmarks: []recipebook.Recipe{},
	}
}

// begin opens a span and returns the function that closes it, logs any
// failure and records the activity.
func (s *State) begin(ctx context.Context, op string, input map[string]any) (context.Context, func(error)) {
	attrs := make([]attribute.KeyValue, 0, len(input))
	for k, v := range input {
		attrs = append(attrs, attribute.String("input."+k, fmt.Sprint(v)))
	}
	ctx, span := s.tracer.Start(ctx, "State."+op, trace.WithAttributes(attrs...))
	activity := recipebook.NewActivity(op, input)

	return ctx, func(err error) {
		activity.Duration = time.Since(activity.Timestamp)
		if err != nil {
			activity.Error = err.Error()
			span.SetStatus(codes.Error, op+" failed")
			span.RecordError(err)
			slog.Error("STATE: Operation failed", "operation", op, "error", err)
		}
		if logErr := s.activity.LogActivity(activity); logErr != nil {
			slog.Warn("STATE: Failed to record activity", "operation", op, "error", logErr)
		}
		span.End()
	}
}

// Initialize loads the persisted bookmark list. A missing list is not an error.
func (s *State) Initialize(ctx context.Context) (err error) {
	ctx, done := s.begin(ctx, "initialize", nil)
	defer func() { done(err) }()

	data, err := s.store.Get(ctx, BookmarksKey)
	if errors.Is(err, storage.ErrNotFound) {
		slog.Info("STATE: No stored bookmarks")
		return nil
	}
	if err != nil {
		return &StorageError{Op: "load", Err: err}
	}

	var stored []recipebook.Recipe
	if err := json.Unmarshal(data, &stored); err != nil {
		return &StorageError{Op: "decode", Err: err}
	}

	bookmarks := make([]recipebook.Recipe, 0, len(stored))
	for _, r := range stored {
		if indexOf(bookmarks, r.ID) >= 0 {
			continue
		}
		r.Bookmarked = true
		bookmarks = append(bookmarks, r)
	}

	s.mu.Lock()
	s.bookmarks = bookmarks
	if !s.recipe.IsZero() {
		s.recipe.Bookmarked = indexOf(bookmarks, s.recipe.ID) >= 0
	}
	s.mu.Unlock()

	slog.Info("STATE: Bookmarks loaded", "count", len(bookmarks))
	return nil
}

// LoadRecipe fetches the recipe with id and makes it the current recipe.
func (s *State) LoadRecipe(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "load_recipe", map[string]any{"id": id})
	defer func() { done(err) }()

	recipe, err := s.api.GetRecipe(ctx, id)
	if err != nil {
		return fmt.Errorf("load recipe %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	recipe.Bookmarked = indexOf(s.bookmarks, recipe.ID) >= 0
	s.recipe = recipe
	return nil
}

// LoadSearchResults runs query and replaces the current results, resetting to page 1.
// On failure the previous search is left untouched.
func (s *State) LoadSearchResults(ctx context.Context, query string) (err error) {
	ctx, done := s.begin(ctx, "load_search_results", map[string]any{"query": query})
	defer func() { done(err) }()

	results, err := s.api.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search %q: %w", query, err)
	}
	if results == nil {
		results = []recipebook.SearchResult{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.search.Query = query
	s.search.Results = results
	s.search.Page = 1
	slog.Info("STATE: Search results loaded", "query", query, "results", len(results))
	return nil
}

// SearchResultsPage makes page the current page and returns its results.
// Pages below 1 are treated as page 1; pages past the end are empty.
func (s *State) SearchResultsPage(page int) []recipebook.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.search.Page = page
	return s.search.pageSlice(page)
}

// CurrentPage returns the results of the current page.
func (s *State) CurrentPage() []recipebook.SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.pageSlice(s.search.Page)
}

// UpdateServings rescales every ingredient of the current recipe to newServings.
// Unspecified quantities stay unspecified.
func (s *State) UpdateServings(ctx context.Context, newServings int) (err error) {
	_, done := s.begin(ctx, "update_servings", map[string]any{"servings": newServings})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recipe.IsZero() {
		return ErrNoRecipe
	}
	if newServings <= 0 {
		return &ValidationError{Field: "servings", Message: fmt.Sprintf("%d must be at least 1", newServings)}
	}
	old := s.recipe.Servings
	if old <= 0 {
		return &ValidationError{Field: "servings", Message: fmt.Sprintf("recipe %s has %d servings and cannot be scaled", s.recipe.ID, old)}
	}

	for i := range s.recipe.Ingredients {
		q := s.recipe.Ingredients[i].Quantity
		if q == nil {
			continue
		}
		scaled := *q * float64(newServings) / float64(old)
		s.recipe.Ingredients[i].Quantity = &scaled
	}
	s.recipe.Servings = newServings
	return nil
}

// AddBookmark appends recipe to the bookmark list and persists it. Adding a
// recipe that is already bookmarked does nothing.
func (s *State) AddBookmark(ctx context.Context, recipe recipebook.Recipe) (err error) {
	ctx, done := s.begin(ctx, "add_bookmark", map[string]any{"id": recipe.ID})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addBookmarkLocked(ctx, recipe)
}

func (s *State) addBookmarkLocked(ctx context.Context, recipe recipebook.Recipe) error {
	if recipe.ID == "" {
		return &ValidationError{Field: "id", Message: "cannot bookmark a recipe without an id"}
	}
	if indexOf(s.bookmarks, recipe.ID) < 0 {
		bookmark := recipe.Clone()
		bookmark.Bookmarked = true

		next := append(slices.Clone(s.bookmarks), bookmark)
		if err := s.persist(ctx, next); err != nil {
			return err
		}
		s.bookmarks = next
	}

	if recipe.ID == s.recipe.ID {
		s.recipe.Bookmarked = true
	}
	return nil
}

// DeleteBookmark removes the bookmark with id and persists the list. Unknown ids are ignored.
func (s *State) DeleteBookmark(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "delete_bookmark", map[string]any{"id": id})
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := indexOf(s.bookmarks, id); i >= 0 {
		next := slices.Delete(slices.Clone(s.bookmarks), i, i+1)
		if err := s.persist(ctx, next); err != nil {
			return err
		}
		s.bookmarks = next
	}

	if id != "" && id == s.recipe.ID {
		s.recipe.Bookmarked = false
	}
	return nil
}

// ClearBookmarks removes the persisted bookmark list and empties it in memory.
func (s *State) ClearBookmarks(ctx context.Context) (err error) {
	ctx, done := s.begin(ctx, "clear_bookmarks", nil)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, BookmarksKey); err != nil {
		return &StorageError{Op: "clear", Err: err}
	}
	s.bookmarks = []recipebook.Recipe{}
	s.recipe.Bookmarked = false
	return nil
}

// UploadRecipe validates and posts a user recipe, makes the created recipe
// current and bookmarks it. Invalid input fails before any state changes.
func (s *State) UploadRecipe(ctx context.Context, upload recipebook.Upload) (err error) {
	ctx, done := s.begin(ctx, "upload_recipe", map[string]any{"title": upload.Title})
	defer func() { done(err) }()

	newRecipe, err := parseUpload(upload)
	if err != nil {
		return err
	}

	created, err := s.api.CreateRecipe(ctx, newRecipe)
	if err != nil {
		return fmt.Errorf("upload recipe: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created.Bookmarked = false
	s.recipe = created
	return s.addBookmarkLocked(ctx, created)
}

// Recipe returns a copy of the current recipe; the zero Recipe if none is loaded.
func (s *State) Recipe() recipebook.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipe.Clone()
}

// Search returns a copy of the current search state.
func (s *State) Search() Search {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.search
	out.Results = slices.Clone(s.search.Results)
	return out
}

// Bookmarks returns a copy of the bookmark list in insertion order.
func (s *State) Bookmarks() []recipebook.Recipe {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]recipebook.Recipe, len(s.bookmarks))
	for i, b := range s.bookmarks {
		out[i] = b.Clone()
	}
	return out
}

func (s *State) persist(ctx context.Context, bookmarks []recipebook.Recipe) error {
	data, err := json.Marshal(bookmarks)
	if err != nil {
		return &StorageError{Op: "encode", Err: err}
	}
	if err := s.store.Set(ctx, BookmarksKey, data); err != nil {
		return &StorageError{Op: "save", Err: err}
	}
	return nil
}

func indexOf(recipes []recipebook.Recipe, id string) int {
	return slices.IndexFunc(recipes, func(r recipebook.Recipe) bool { return r.ID == id })
}
