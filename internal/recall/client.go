// Package recall wraps the Recall bot-management REST API: launching a bot
// into a meeting and fetching a bot's state including its media download
// shortcuts.
package recall

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// requestTimeout bounds every provider call so a hung request cannot stall
// webhook processing indefinitely.
const requestTimeout = 15 * time.Second

// Client is an authenticated client for one provider region.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
	log     *logrus.Logger
}

// NewClient builds a client for the given region, e.g. "us-west-2".
func NewClient(apiKey, region string, log *logrus.Logger) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: fmt.Sprintf("https://%s.recall.ai/api/v1", region),
		httpc:   &http.Client{Timeout: requestTimeout},
		log:     log,
	}
}

// APIError is a non-success response from the provider, carrying the
// provider's detail message for caller-visible error reporting.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("recall api: %s (status %d)", e.Detail, e.StatusCode)
}

// CreateBot launches a bot into a meeting. The provider's rejection detail
// is surfaced through APIError.
func (c *Client) CreateBot(ctx context.Context, req CreateBotRequest) (*Bot, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding create bot request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bot", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building create bot request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling create bot: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading create bot response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var bot Bot
	if err := json.Unmarshal(body, &bot); err != nil {
		return nil, fmt.Errorf("decoding create bot response: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"bot_id":      bot.ID,
		"external_id": req.ExternalID,
	}).Info("Provider bot created")
	return &bot, nil
}

// GetBot fetches the bot detail, including media shortcuts once recording
// artifacts exist.
func (c *Client) GetBot(ctx context.Context, botID string) (*Bot, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bot/"+botID, nil)
	if err != nil {
		return nil, fmt.Errorf("building get bot request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Token "+c.apiKey)

	resp, err := c.httpc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("calling get bot %s: %w", botID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading get bot response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body)}
	}

	var bot Bot
	if err := json.Unmarshal(body, &bot); err != nil {
		return nil, fmt.Errorf("decoding get bot response: %w", err)
	}
	return &bot, nil
}

// errorDetail extracts the provider's "detail" message from an error body,
// falling back to a generic message on unparsable bodies.
func errorDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return "provider request failed"
}
