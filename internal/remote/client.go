// Package remote implements the Hank chat server protocol: polling fetch,
// message send, and history clear over plain HTTP with JSON bodies.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Timeouts for the two very different request classes: polls must fail
// fast so the next cycle is not delayed, while a send waits out a slow
// assistant reply.
const (
	FetchTimeout = 2 * time.Second
	SendTimeout  = 120 * time.Second
	ClearTimeout = 10 * time.Second
)

// ErrMalformedResponse marks a response body that could not be decoded.
// Callers treat it like any other server error: transient, never fatal.
var ErrMalformedResponse = errors.New("malformed server response")

// StatusError is a non-success HTTP response from the server.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned status %d", e.Code)
}

// Message is the wire representation of a chat message.
type Message struct {
	Role      string `json:"role"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

// Client talks to a single Hank server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given base URL, e.g.
// "http://localhost:8080". Per-request deadlines come from the operation
// timeouts, not from the underlying http.Client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}
}

// BaseURL returns the server URL this client was built for.
func (c *Client) BaseURL() string { return c.baseURL }

// Fetch returns all messages with a timestamp strictly greater than
// since, in timestamp order.
func (c *Client) Fetch(ctx context.Context, since int64) ([]Message, error) {
	ctx, cancel := context.WithTimeout(ctx, FetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/messages?since=%d", c.baseURL, since)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building fetch request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching messages: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode}
	}

	var msgs []Message
	if err := json.NewDecoder(resp.Body).Decode(&msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return msgs, nil
}

type chatRequest struct {
	Message string `json:"message"`
}

// Send posts a user message and returns the assistant's reply. The call
// blocks up to SendTimeout; a timeout is reported as an error, never left
// pending.
func (c *Client) Send(ctx context.Context, text string) (Message, error) {
	ctx, cancel := context.WithTimeout(ctx, SendTimeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{Message: text})
	if err != nil {
		return Message{}, fmt.Errorf("encoding chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return Message{}, fmt.Errorf("building chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Message{}, fmt.Errorf("sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Message{}, &StatusError{Code: resp.StatusCode}
	}

	var reply Message
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return reply, nil
}

// Clear empties the server-side history.
func (c *Client) Clear(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ClearTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages/clear", nil)
	if err != nil {
		return fmt.Errorf("building clear request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("clearing messages: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}
