package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/atlastours/rentals-backend/pkg/config"
)

// Sender delivers a payload to the external notification endpoint, which
// renders it into a confirmation email. The price figures inside the payload
// are snapshots; this package never recomputes them.
type Sender interface {
	Send(ctx context.Context, topic string, payload []byte) error
}

// Client POSTs payloads to the configured notification endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// NewClient builds a notifier from config. An empty endpoint yields an error
// so misconfiguration surfaces at boot rather than at first delivery.
func NewClient(cfg config.NotifyConfig) (*Client, error) {
	if cfg.EndpointURL == "" {
		return nil, fmt.Errorf("notification endpoint url is required")
	}
	return &Client{
		endpoint: cfg.EndpointURL,
		http:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type envelope struct {
	Topic   string          `json:"topic"`
	Payload json.RawMessage `json:"payload"`
}

// Send posts one event. Non-2xx responses are returned as errors so the
// caller can retry.
func (c *Client) Send(ctx context.Context, topic string, payload []byte) error {
	body, err := json.Marshal(envelope{Topic: topic, Payload: payload})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("notification endpoint returned %d", resp.StatusCode)
	}
	return nil
}
