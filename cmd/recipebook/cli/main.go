package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/spf13/cobra"

	"recipebook"
	"recipebook/forkify"
	"recipebook/state"
	"recipebook/storage"
)

var version = "dev"

type globalOptions struct {
	activityLog string
	dump        bool
}

func main() {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "recipebook",
		Short: "Search recipes, scale servings and keep bookmarks",
		Long: `recipebook browses the forkify recipe API from the terminal.

Bookmarks are persisted between runs in the store selected by STORAGE_BACKEND
(file, s3, redis or memory). Uploading recipes requires API_KEY.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.activityLog, "activity-log", "", "Write a JSON log of state operations to this file")
	rootCmd.PersistentFlags().BoolVar(&opts.dump, "dump", false, "Dump the resulting state for debugging")

	rootCmd.AddCommand(
		newSearchCommand(opts),
		newRecipeCommand(opts),
		newBookmarksCommand(opts),
		newUploadCommand(opts),
		newShareCommand(opts),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(mapErrorToExitCode(err))
	}
}

// session is one fully wired state plus the cleanup for everything opened alongside it.
type session struct {
	state    *state.State
	cleanups []func(context.Context) error
}

func (s *session) Close(ctx context.Context) {
	for i := len(s.cleanups) - 1; i >= 0; i-- {
		if err := s.cleanups[i](ctx); err != nil {
			slog.Error("SHUTDOWN: Cleanup failed", "error", err)
		}
	}
}

func openSession(ctx context.Context, opts *globalOptions) (*session, error) {
	var apiConfig recipebook.APIConfig
	if err := envdecode.Decode(&apiConfig); err != nil {
		return nil, fmt.Errorf("failed to decode api config: %w", err)
	}

	var storageConfig recipebook.StorageConfig
	if err := envdecode.Decode(&storageConfig); err != nil {
		return nil, fmt.Errorf("failed to decode storage config: %w", err)
	}

	sess := &session{}

	otelShutdown, err := recipebook.InitOtel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	sess.cleanups = append(sess.cleanups, otelShutdown)

	store, err := storage.Open(ctx, storageConfig)
	if err != nil {
		sess.Close(ctx)
		return nil, err
	}

	activity, err := newActivityLogger(opts.activityLog, sess)
	if err != nil {
		sess.Close(ctx)
		return nil, err
	}

	api := forkify.NewClient(apiConfig, http.DefaultClient)
	sess.state = state.New(api, store, apiConfig.ResultsPerPage, activity)

	if err := sess.state.Initialize(ctx); err != nil {
		sess.Close(ctx)
		return nil, err
	}
	return sess, nil
}

func newActivityLogger(path string, sess *session) (recipebook.ActivityLogger, error) {
	if path == "" {
		return recipebook.NewNoOpActivityLogger(), nil
	}

	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open activity log: %w", err)
	}

	logger := recipebook.NewFileActivityLogger(logFile)
	sess.cleanups = append(sess.cleanups, func(context.Context) error {
		return errors.Join(logger.Flush(), logFile.Close())
	})
	return logger, nil
}

func mapErrorToExitCode(err error) int {
	var validationErr *state.ValidationError
	switch {
	case errors.As(err, &validationErr), errors.Is(err, forkify.ErrMissingAPIKey):
		return 2
	case errors.Is(err, forkify.ErrNetwork):
		return 3
	case errors.Is(err, forkify.ErrNotFound):
		return 4
	default:
		return 1
	}
}
