package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"recipebook"
)

type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	webhookURL string
	httpClient doer
}

func NewClient(webhookURL string, httpClient doer) *Client {
	return &Client{
		webhookURL: webhookURL,
		httpClient: httpClient,
	}
}

// ShareRecipe posts a formatted recipe card to channel.
func (c *Client) ShareRecipe(ctx context.Context, channel string, recipe recipebook.Recipe) error {
	return c.PostMessage(ctx, channel, FormatRecipe(recipe))
}

func (c *Client) PostMessage(ctx context.Context, channel string, message string) error {
	payload, err := json.Marshal(map[string]any{
		"channel": channel,
		"text":    message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to post message: %s", resp.Status)
	}

	return nil
}

// FormatRecipe renders a recipe as Slack mrkdwn.
func FormatRecipe(r recipebook.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*%s*", r.Title)
	if r.Publisher != "" {
		fmt.Fprintf(&b, " by %s", r.Publisher)
	}
	fmt.Fprintf(&b, "\n%d servings, %d minutes\n", r.Servings, r.CookingTime)
	for _, ing := range r.Ingredients {
		b.WriteString("• ")
		if ing.Quantity != nil {
			b.WriteString(strconv.FormatFloat(*ing.Quantity, 'f', -1, 64))
			b.WriteString(" ")
		}
		if ing.Unit != "" {
			b.WriteString(ing.Unit)
			b.WriteString(" ")
		}
		b.WriteString(ing.Description)
		b.WriteString("\n")
	}
	if r.SourceURL != "" {
		fmt.Fprintf(&b, "<%s|Directions>", r.SourceURL)
	}
	return strings.TrimRight(b.String(), "\n")
}
