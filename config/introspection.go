package config

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/Mohammadwh/Graphqler/client"
	"github.com/Mohammadwh/Graphqler/schema"
)

// HTTPClient builds the http.Client for the endpoint from the proxy and cookie settings.
func (c *Config) HTTPClient() (*http.Client, error) {
	var jar http.CookieJar
	if c.Cookies != "" {
		if c.EndpointURL() == "" {
			return nil, errors.New("'cookies' requires 'endpoint'")
		}
		var err error
		jar, err = client.LoadCookies(c.Cookies, c.EndpointURL())
		if err != nil {
			return nil, err
		}
	}

	httpClient, err := client.NewHTTPClient(c.Proxy, jar)
	if err != nil {
		return nil, err
	}

	return httpClient, nil
}

// Client returns the GraphQL client for the endpoint, or nil when no endpoint is configured.
func (c *Config) Client() (*client.Client, error) {
	if c.EndpointURL() == "" {
		return nil, nil
	}

	httpClient, err := c.HTTPClient()
	if err != nil {
		return nil, err
	}

	return client.NewClient(c.EndpointURL(), client.WithHTTPClient(httpClient), client.WithHTTPHeader(c.Endpoint.Headers)), nil
}

// LoadModel builds the schema model from the introspection file, or by introspecting gqlClient.
func (c *Config) LoadModel(ctx context.Context, gqlClient *client.Client) (*schema.Model, error) {
	var raw []byte
	switch {
	case c.Schema != "":
		content, err := os.ReadFile(c.Schema)
		if err != nil {
			return nil, fmt.Errorf("load introspection file failed: %w", err)
		}
		raw = content
	case gqlClient != nil:
		content, err := gqlClient.Introspect(ctx)
		if err != nil {
			return nil, fmt.Errorf("introspect schema failed: %w", err)
		}
		raw = content
	default:
		return nil, ErrNoSchemaSource
	}

	model, err := schema.Build(raw)
	if err != nil {
		return nil, err
	}

	return model, nil
}
