// Package client talks to the posts API and keeps the client-side view state.
package client

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

	"postboard/internal/config"
	"postboard/internal/models"
	"postboard/internal/validation"
)

// PostsAPI is the remote surface the Store and the CLI dispatch to.
type PostsAPI interface {
	List(ctx context.Context) ([]models.PostPrimitive, error)
	Create(ctx context.Context, in validation.CreatePostRequest) (models.PostPrimitive, error)
	Remove(ctx context.Context, id string) (models.PostPrimitive, error)
	Get(ctx context.Context, id string) (models.PostPrimitive, error)
}

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// Client is an HTTP implementation of PostsAPI.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the API rooted at baseURL (e.g.
// http://localhost:3000/api/v1).
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// NewFromConfig builds a Client from the loaded client configuration.
func NewFromConfig(cfg *config.ClientConfig) *Client {
	return New(cfg.APIBaseURL, cfg.Timeout())
}

type listResponse struct {
	Items []models.PostPrimitive `json:"items"`
}

// List returns every live post, newest first.
func (c *Client) List(ctx context.Context) ([]models.PostPrimitive, error) {
	var out listResponse
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []models.PostPrimitive{}
	}
	return out.Items, nil
}

// Create stores a new post.
func (c *Client) Create(ctx context.Context, in validation.CreatePostRequest) (models.PostPrimitive, error) {
	var out models.PostPrimitive
	err := c.do(ctx, http.MethodPost, "/posts", in, &out)
	return out, err
}

// Remove soft-deletes the post and returns it as it was at deletion.
func (c *Client) Remove(ctx context.Context, id string) (models.PostPrimitive, error) {
	var out models.PostPrimitive
	err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Get fetches a single live post.
func (c *Client) Get(ctx context.Context, id string) (models.PostPrimitive, error) {
	var out models.PostPrimitive
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp models.ErrorResponse
		if json.Unmarshal(raw, &errResp) == nil {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}
