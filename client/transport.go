package client

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"

	"github.com/go-json-experiment/json"
)

// Cookie is one entry of a cookie file, as exported by browser extensions.
type Cookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// LoadCookies reads a JSON array of cookies from path and stores them in a jar for endpoint.
func LoadCookies(path, endpoint string) (http.CookieJar, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read cookies: %w", err)
	}

	var cookies []Cookie
	if err := json.Unmarshal(content, &cookies); err != nil {
		return nil, fmt.Errorf("unable to parse cookies: %w", err)
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	httpCookies := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		httpCookies = append(httpCookies, &http.Cookie{Name: c.Name, Value: c.Value})
	}
	jar.SetCookies(u, httpCookies)

	return jar, nil
}

// NewHTTPClient returns an http.Client using proxy for both http and https when it is set.
// jar may be nil.
func NewHTTPClient(proxy string, jar http.CookieJar) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxy != "" {
		proxyURL, err := url.Parse(proxy)
		if err != nil {
			return nil, fmt.Errorf("invalid proxy %q: %w", proxy, err)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Transport: transport,
		Jar:       jar,
	}, nil
}
