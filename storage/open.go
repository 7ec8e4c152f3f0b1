package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/redis/go-redis/v9"

	"recipebook"
)

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg recipebook.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "file":
		slog.Info("SETUP: Using file storage", "dir", cfg.BookmarksDir)
		return NewFileStore(cfg.BookmarksDir), nil

	case "memory":
		slog.Info("SETUP: Using in-memory storage")
		return NewMemoryStore(), nil

	case "s3":
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("missing S3 config: BOOKMARKS_S3_BUCKET must be set")
		}
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
		slog.Info("SETUP: Using S3 storage", "bucket", cfg.S3Bucket, "prefix", cfg.S3Prefix)
		return NewS3Store(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3Prefix), nil

	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
		}
		client := redis.NewClient(opts)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		slog.Info("SETUP: Using Redis storage", "addr", opts.Addr)
		return NewRedisStore(client, "recipebook:"), nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
