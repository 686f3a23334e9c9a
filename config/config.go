package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/Mohammadwh/Graphqler/selection"
)

const DefaultLogDir = "logs"

var (
	DefaultConfigNames = []string{".graphqler.yml", "graphqler.yml", ".graphqler.yaml", "graphqler.yaml"}

	ErrConfigNotFound = errors.New("config file not found")
	ErrNoSchemaSource = errors.New("neither 'schema' nor 'endpoint' specified. Use schema to load an introspection file, use endpoint to introspect a live server")
)

// Config represents the config file. Zero values are filled by Defaults.
type Config struct {
	// Schema is the path of a saved introspection document.
	Schema   string          `yaml:"schema,omitempty"`
	Endpoint *EndPointConfig `yaml:"endpoint,omitempty"`
	Proxy    string          `yaml:"proxy,omitempty"`
	// Cookies is the path of a JSON array of {name, value} objects.
	Cookies     string `yaml:"cookies,omitempty"`
	Logs        string `yaml:"logs,omitempty"`
	MaxDepth    int    `yaml:"max_depth,omitempty"`
	HistoryFile string `yaml:"history_file,omitempty"`
}

// EndPointConfig are the allowed options for the 'endpoint' config.
type EndPointConfig struct {
	Headers http.Header `yaml:"headers,omitempty"`
	URL     string      `yaml:"url"`
}

// LoadConfig loads and parses the config file. Environment variables are expanded first.
func LoadConfig(configFilename string) (*Config, error) {
	configContent, err := os.ReadFile(configFilename)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	var c Config

	yamlDecoder := yaml.NewDecoder(bytes.NewReader([]byte(os.ExpandEnv(string(configContent)))), yaml.DisallowUnknownField())
	if err := yamlDecoder.Decode(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}

	c.Defaults()

	return &c, nil
}

// FindConfigFile returns the first of names that exists in dir.
func FindConfigFile(dir string, names []string) (string, error) {
	for _, name := range names {
		path := filepath.Join(dir, name)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if !info.IsDir() {
			return path, nil
		}
	}

	return "", fmt.Errorf("%w in %s", ErrConfigNotFound, dir)
}

func (c *Config) Defaults() {
	if c.Logs == "" {
		c.Logs = DefaultLogDir
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = selection.DefaultMaxDepth
	}
}

// Validate checks that a schema source is configured.
// When both are set the file provides the schema and the endpoint receives the queries.
func (c *Config) Validate() error {
	if c.Schema == "" && c.EndpointURL() == "" {
		return ErrNoSchemaSource
	}

	return nil
}

func (c *Config) EndpointURL() string {
	if c.Endpoint == nil {
		return ""
	}

	return c.Endpoint.URL
}

// SetEndpoint overrides the endpoint URL, keeping configured headers.
func (c *Config) SetEndpoint(url string) {
	if c.Endpoint == nil {
		c.Endpoint = &EndPointConfig{}
	}
	c.Endpoint.URL = url
}
