package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-json-experiment/json/jsontext"

	"github.com/Mohammadwh/Graphqler/introspection"
)

var ErrNonJSONResponse = errors.New("response is not JSON")

type Client struct {
	client   *http.Client
	header   http.Header
	endpoint string
}

// NewClient creates a new http client wrapper.
func NewClient(endpoint string, options ...Option) *Client {
	client := &Client{
		endpoint: endpoint,
		client:   http.DefaultClient,
	}
	for _, option := range options {
		option(client)
	}

	return client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.client = httpClient
	}
}

func WithHTTPHeader(header http.Header) Option {
	return func(c *Client) {
		c.header = header
	}
}

// Post sends query and returns the raw response body, which is guaranteed to be valid JSON.
func (c *Client) Post(ctx context.Context, operationName, query string, variables map[string]any) (jsontext.Value, error) {
	req, err := NewRequest(ctx, c.endpoint, operationName, query, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to create post request: %w", err)
	}

	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	raw := jsontext.Value(body)
	if !raw.IsValid() {
		return nil, fmt.Errorf("%w: status %d", ErrNonJSONResponse, resp.StatusCode)
	}

	return raw, nil
}

// Introspect fetches the raw introspection document of the endpoint.
func (c *Client) Introspect(ctx context.Context) (jsontext.Value, error) {
	raw, err := c.Post(ctx, "IntrospectionQuery", introspection.Introspection, nil)
	if err != nil {
		return nil, fmt.Errorf("introspection query failed: %w", err)
	}

	return raw, nil
}
