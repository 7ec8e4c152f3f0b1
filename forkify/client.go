package forkify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"recipebook"
)

// Client talks to the forkify recipe API.
type Client struct {
	baseURL    string
	key        string
	timeout    time.Duration
	httpClient recipebook.HTTPClient

	requests metric.Int64Counter
	failures metric.Int64Counter
	duration metric.Float64Histogram
}

var _ recipebook.RecipeAPI = (*Client)(nil)

// NewClient builds a client for cfg.URL. cfg.URL is used as a prefix: recipe
// ids are appended directly, so it normally ends with a slash.
func NewClient(cfg recipebook.APIConfig, httpClient recipebook.HTTPClient) *Client {
	meter := otel.Meter(recipebook.MeterNameForkify)

	requests, _ := meter.Int64Counter("forkify_requests_total",
		metric.WithDescription("Total number of requests sent to the recipe API"))
	failures, _ := meter.Int64Counter("forkify_request_failures_total",
		metric.WithDescription("Total number of recipe API requests that failed"))
	duration, _ := meter.Float64Histogram("forkify_request_duration_seconds",
		metric.WithDescription("Recipe API round trip time in seconds"))

	return &Client{
		baseURL:    cfg.URL,
		key:        cfg.Key,
		timeout:    cfg.Timeout(),
		httpClient: httpClient,
		requests:   requests,
		failures:   failures,
		duration:   duration,
	}
}

// GetRecipe fetches a single recipe by id.
func (c *Client) GetRecipe(ctx context.Context, id string) (recipebook.Recipe, error) {
	env, err := c.do(ctx, "get_recipe", http.MethodGet, c.baseURL+url.PathEscape(id), nil)
	if err != nil {
		return recipebook.Recipe{}, err
	}
	if env.Data.Recipe == nil {
		return recipebook.Recipe{}, fmt.Errorf("%w: missing recipe in response", ErrDecode)
	}
	return env.Data.Recipe.toRecipe(), nil
}

// Search returns every recipe matching query, in API order.
func (c *Client) Search(ctx context.Context, query string) ([]recipebook.SearchResult, error) {
	env, err := c.do(ctx, "search", http.MethodGet, c.baseURL+"?search="+url.QueryEscape(query), nil)
	if err != nil {
		return nil, err
	}

	results := make([]recipebook.SearchResult, 0, len(env.Data.Recipes))
	for _, rec := range env.Data.Recipes {
		results = append(results, rec.toSearchResult())
	}
	return results, nil
}

// CreateRecipe posts a new recipe under the client's API key and returns it as stored.
func (c *Client) CreateRecipe(ctx context.Context, recipe recipebook.NewRecipe) (recipebook.Recipe, error) {
	if c.key == "" {
		return recipebook.Recipe{}, ErrMissingAPIKey
	}

	payload, err := json.Marshal(recipe)
	if err != nil {
		return recipebook.Recipe{}, fmt.Errorf("failed to marshal recipe: %w", err)
	}

	env, err := c.do(ctx, "create_recipe", http.MethodPost, c.baseURL+"?key="+url.QueryEscape(c.key), payload)
	if err != nil {
		return recipebook.Recipe{}, err
	}
	if env.Data.Recipe == nil {
		return recipebook.Recipe{}, fmt.Errorf("%w: missing recipe in response", ErrDecode)
	}
	return env.Data.Recipe.toRecipe(), nil
}

func (c *Client) do(ctx context.Context, op, method, target string, body []byte) (*envelope, error) {
	attrs := metric.WithAttributes(attribute.String("operation", op))
	c.requests.Add(ctx, 1, attrs)
	start := time.Now()

	env, err := c.roundTrip(ctx, method, target, body)

	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)
	if err != nil {
		c.failures.Add(ctx, 1, attrs)
	}
	return env, err
}

func (c *Client) roundTrip(ctx context.Context, method, target string, body []byte) (*envelope, error) {
	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// A caller's own cancellation or deadline is reported as such, not as our timeout.
		if parentErr := parent.Err(); parentErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrNetwork, parentErr)
		}
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: request took too long, timeout after %s", ErrNetwork, c.timeout)
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if decodeErr != nil || msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, decodeErr)
	}
	return &env, nil
}
