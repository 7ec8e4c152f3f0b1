package recipebook

import "time"

type APIConfig struct {
	URL            string `env:"API_URL,default=https://forkify-api.herokuapp.com/api/v2/recipes/"`
	ResultsPerPage int    `env:"RES_PER_PAGE,default=10"`
	Key            string `env:"API_KEY"`
	TimeoutSec     int    `env:"TIMEOUT_SEC,default=10"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

type StorageConfig struct {
	Backend      string `env:"STORAGE_BACKEND,default=file"`
	BookmarksDir string `env:"BOOKMARKS_DIR,default=.recipebook"`
	S3Bucket     string `env:"BOOKMARKS_S3_BUCKET"`
	S3Prefix     string `env:"BOOKMARKS_S3_PREFIX,default=recipebook/"`
	RedisURL     string `env:"REDIS_URL,default=redis://localhost:6379/0"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL"`
	Channel    string `env:"SLACK_CHANNEL,default=#recipes"`
}
