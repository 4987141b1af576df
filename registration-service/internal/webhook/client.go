package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Poster forwards a form payload to its program webhook. The only
// outcomes callers see are submitted or failed; the automation host
// publishes no error body schema to care about.
type Poster interface {
	Post(ctx context.Context, url string, payload any) error
}

type Client struct {
	http *http.Client
	cb   *gobreaker.CircuitBreaker[int]
}

func NewClient(timeout time.Duration) *Client {
	cb := gobreaker.NewCircuitBreaker[int](gobreaker.Settings{
		Name:    "form-webhook",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		http: &http.Client{Timeout: timeout},
		cb:   cb,
	}
}

func (c *Client) Post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = c.cb.Execute(func() (int, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return 0, err
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := c.http.Do(req)
		if err != nil {
			return 0, err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return resp.StatusCode, fmt.Errorf("webhook responded %d", resp.StatusCode)
		}
		return resp.StatusCode, nil
	})
	return err
}
