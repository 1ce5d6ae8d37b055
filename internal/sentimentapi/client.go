package sentimentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mshrynzw/auriary/pkg/model"
)

// Client talks to the sentiment analysis backend (the FastAPI service that
// runs the real model). The backend is optional; see Engine.
type Client struct {
	base string
	http *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		base: baseURL,
		http: &http.Client{Timeout: timeout},
	}
}

type analyzeRequest struct {
	Text string `json:"text"`
}

// Analyze sends text to the backend and returns the full analysis, including
// located highlighted words.
func (c *Client) Analyze(ctx context.Context, text string) (*model.SentimentResult, error) {
	b, err := json.Marshal(analyzeRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal analyze request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/analyze", bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sentiment api request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sentiment api response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("sentiment api error (%d): %s", resp.StatusCode, string(body))
	}

	var result model.SentimentResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode sentiment api response: %w", err)
	}
	return &result, nil
}

// Health reports whether the backend is up and answering.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/health", nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sentiment api health: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("sentiment api unhealthy: status %d", resp.StatusCode)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if status.Status != "ok" {
		return fmt.Errorf("sentiment api unhealthy: status %q", status.Status)
	}
	return nil
}
