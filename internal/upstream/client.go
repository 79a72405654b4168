package upstream // package upstream is the REST gateway to the review backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrSessionExpired is returned whenever the backend answers 403. The
// caller must tear the session down and route the user back to login,
// regardless of which request triggered it.
var ErrSessionExpired = errors.New("session expired")

// APIError carries the backend's own message for a failed request so it
// can be surfaced to the user verbatim. Message falls back to a generic
// text when the response body had no usable message.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.Status)
}

// Client talks to the review backend. A bearer token is attached per call
// rather than per client: the client is shared across sessions while
// tokens are session-scoped.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the backend at baseURL. The "/api" prefix the
// backend mounts its routes under is appended here so callers pass plain
// route paths.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// doJSON performs a JSON round trip. A nil body sends no payload and a nil
// out discards the response body. Non-2xx responses are triaged into
// ErrSessionExpired (403) or *APIError.
func (c *Client) doJSON(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token, out)
}

// send executes a prepared request, attaching the bearer token when one is
// present, and decodes the response into out.
func (c *Client) send(req *http.Request, token string, out any) error {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode == http.StatusForbidden {
		return ErrSessionExpired
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: decodeMessage(respBody)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorBody is the backend's error envelope: either a single message or a
// validator-produced list of field errors.
type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

// decodeMessage extracts the server's message from an error response. The
// validator's field errors are joined line by line so they reach the user
// verbatim; an unreadable body yields a generic fallback.
func decodeMessage(body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if len(eb.Errors) > 0 {
			msgs := make([]string, 0, len(eb.Errors))
			for _, fe := range eb.Errors {
				if fe.Msg != "" {
					msgs = append(msgs, fe.Msg)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "\n")
			}
		}
		if eb.Message != "" {
			return eb.Message
		}
	}
	return "request failed"
}
