package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joeshaw/envdecode"

	"recipebook"
	"recipebook/forkify"
	"recipebook/state"
	"recipebook/storage"
)

type Params struct {
	Action   string            `json:"action"`
	Query    string            `json:"query,omitempty"`
	Page     int               `json:"page,omitempty"`
	ID       string            `json:"id,omitempty"`
	Servings int               `json:"servings,omitempty"`
	Upload   recipebook.Upload `json:"upload,omitempty"`
}

type Results struct {
	Recipe    *recipebook.Recipe        `json:"recipe,omitempty"`
	Results   []recipebook.SearchResult `json:"results,omitempty"`
	Page      int                       `json:"page,omitempty"`
	NumPages  int                       `json:"num_pages,omitempty"`
	Bookmarks []recipebook.Recipe       `json:"bookmarks,omitempty"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var apiConfig recipebook.APIConfig
		if err := envdecode.Decode(&apiConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode api config: %w", err)
		}

		var storageConfig recipebook.StorageConfig
		if err := envdecode.Decode(&storageConfig); err != nil {
			return Results{}, fmt.Errorf("failed to decode storage config: %w", err)
		}
		if storageConfig.S3Bucket != "" {
			storageConfig.Backend = "s3"
		}

		otelShutdown, err := recipebook.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		store, err := storage.Open(ctx, storageConfig)
		if err != nil {
			slog.Error("SETUP: Failed to open bookmark storage", "error", err)
			return Results{}, err
		}

		api := forkify.NewClient(apiConfig, http.DefaultClient)
		st := state.New(api, store, apiConfig.ResultsPerPage, recipebook.NewStdoutActivityLogger())
		if err := st.Initialize(ctx); err != nil {
			return Results{}, err
		}

		return handle(ctx, st, params)
	}

	lambda.Start(fn)
}

func handle(ctx context.Context, st *state.State, params Params) (Results, error) {
	switch params.Action {
	case "search":
		if err := st.LoadSearchResults(ctx, params.Query); err != nil {
			return Results{}, err
		}
		page := st.SearchResultsPage(params.Page)
		search := st.Search()
		return Results{Results: page, Page: search.Page, NumPages: search.NumPages()}, nil

	case "recipe":
		if err := st.LoadRecipe(ctx, params.ID); err != nil {
			return Results{}, err
		}
		if params.Servings != 0 {
			if err := st.UpdateServings(ctx, params.Servings); err != nil {
				return Results{}, err
			}
		}
		return recipeResult(st), nil

	case "bookmark_add":
		if err := st.LoadRecipe(ctx, params.ID); err != nil {
			return Results{}, err
		}
		if err := st.AddBookmark(ctx, st.Recipe()); err != nil {
			return Results{}, err
		}
		return Results{Bookmarks: st.Bookmarks()}, nil

	case "bookmark_delete":
		if err := st.DeleteBookmark(ctx, params.ID); err != nil {
			return Results{}, err
		}
		return Results{Bookmarks: st.Bookmarks()}, nil

	case "bookmark_clear":
		if err := st.ClearBookmarks(ctx); err != nil {
			return Results{}, err
		}
		return Results{Bookmarks: st.Bookmarks()}, nil

	case "bookmarks":
		return Results{Bookmarks: st.Bookmarks()}, nil

	case "upload":
		if err := st.UploadRecipe(ctx, params.Upload); err != nil {
			return Results{}, err
		}
		return recipeResult(st), nil

	default:
		return Results{}, fmt.Errorf("unknown action %q", params.Action)
	}
}

func recipeResult(st *state.State) Results {
	recipe := st.Recipe()
	return Results{Recipe: &recipe}
}
