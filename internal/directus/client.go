// Package directus is a thin REST client for the headless CMS that owns all
// persisted content. The application never talks to the content database
// directly; everything goes through this API surface.
package directus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client handles all communication with the CMS REST API.
type Client struct {
	BaseURL    string
	HttpClient *http.Client

	token string
}

// New creates a client authenticated with a static admin token. The token is
// passed in explicitly so handlers can be tested against a fake server.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HttpClient: &http.Client{Timeout: 30 * time.Second},
		token:      token,
	}
}

// APIError carries the CMS's HTTP status and first error message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cms responded %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a CMS 404 or 403 (the CMS hides unknown
// collections behind 403 for unauthenticated roles).
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && (apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusForbidden)
}

// Ping hits the CMS health endpoint, for readiness probes.
func (c *Client) Ping(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/server/health", nil, nil, "")
	if err != nil {
		return err
	}
	return decodeData(resp, nil)
}

// do is the single, unified helper for making API requests.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create CMS request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cms unavailable: %w", err)
	}
	return resp, nil
}

// decodeData unwraps the CMS's {"data": ...} response envelope into out.
// A non-2xx response is drained into an APIError.
func decodeData(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiErrorFromBody(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode CMS response: %w", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("failed to decode CMS data: %w", err)
	}
	return nil
}

func apiErrorFromBody(resp *http.Response) error {
	bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var errBody struct {
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	message := string(bodyBytes)
	if err := json.Unmarshal(bodyBytes, &errBody); err == nil && len(errBody.Errors) > 0 {
		message = errBody.Errors[0].Message
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
