package chemistry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"molmine/internal/config"
)

const (
	defaultBaseURL     = "http://localhost:5000"
	defaultHTTPTimeout = 30 * time.Second
)

// Client wraps the recognition service HTTP API. Each call issues exactly one
// POST with a single-field JSON body; there is no retry and no fallback, so a
// failure surfaces immediately to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes the recognition client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default service base URL (useful for tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithTimeout sets the request timeout. Zero disables the timeout so a call
// waits for as long as the transport allows. The timeout applies on a copy of
// the current HTTP client, so it composes with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		client := *c.httpClient
		client.Timeout = timeout
		c.httpClient = &client
	}
}

// NewClient constructs a recognition service client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// NewFromConfig constructs a client from the [recognition] config section.
func NewFromConfig(cfg *config.Config) *Client {
	if cfg == nil {
		return NewClient()
	}
	return NewClient(
		WithBaseURL(cfg.Recognition.BaseURL),
		WithTimeout(time.Duration(cfg.Recognition.TimeoutSeconds)*time.Second),
	)
}

// ValidateSMILES asks the service to validate a SMILES string and returns the
// canonicalized structure data.
func (c *Client) ValidateSMILES(ctx context.Context, smiles string) (Structure, error) {
	return c.post(ctx, "/api/validate-smiles", "smiles", smiles, "validate smiles")
}

// RecognizeStructure submits an encoded image for optical structure
// recognition.
func (c *Client) RecognizeStructure(ctx context.Context, image string) (Structure, error) {
	return c.post(ctx, "/api/recognize-structure", "image", image, "recognize structure")
}

// MolfileToStructure converts a molblock into structure data.
func (c *Client) MolfileToStructure(ctx context.Context, molfile string) (Structure, error) {
	return c.post(ctx, "/api/molfile-to-structure", "molfile", molfile, "molfile to structure")
}

func (c *Client) post(ctx context.Context, path, field, value, op string) (Structure, error) {
	var empty Structure
	if strings.TrimSpace(value) == "" {
		return empty, fmt.Errorf("chemistry %s: %s required", op, field)
	}
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return empty, fmt.Errorf("chemistry %s: build url: %w", op, err)
	}
	encoded, err := json.Marshal(map[string]string{field: value})
	if err != nil {
		return empty, fmt.Errorf("chemistry %s: encode request: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, fmt.Errorf("chemistry %s: request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return empty, fmt.Errorf("chemistry %s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return empty, fmt.Errorf("chemistry %s: read body: %w", op, err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return empty, fmt.Errorf("chemistry %s: http %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// Any 2xx body is returned as-is, even when it reports an invalid
	// structure. Callers that need a pass/fail answer use Resolve.
	var parsed Structure
	if err := json.Unmarshal(body, &parsed); err != nil {
		return empty, fmt.Errorf("chemistry %s: decode response: %w", op, err)
	}
	parsed.Raw = json.RawMessage(body)
	return parsed, nil
}

// ErrInvalidStructure reports that the service parsed the request but judged
// the structure invalid.
var ErrInvalidStructure = errors.New("invalid structure")

// Resolve returns an error when the structure carries an explicit
// valid == false flag; otherwise it returns the structure unchanged.
func (s Structure) Resolve() (Structure, error) {
	if s.Valid != nil && !*s.Valid {
		if s.Error != "" {
			return s, fmt.Errorf("%w: %s", ErrInvalidStructure, s.Error)
		}
		return s, ErrInvalidStructure
	}
	return s, nil
}
