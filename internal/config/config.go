// Package config loads the application configuration from environment
// variables, with optional .env support for local use.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// DefaultOutputFile is the report destination when OUTPUT_FILE is unset.
	DefaultOutputFile = "contributions.md"
	// DefaultGraphQLEndpoint is the public GitHub GraphQL API endpoint.
	DefaultGraphQLEndpoint = "https://api.github.com/graphql"
	// DefaultMaxPages bounds the pagination loop against a server that
	// never reports the page chain as exhausted.
	DefaultMaxPages = 100
)

// Config holds the application configuration
type Config struct {
	// GitHub
	GitHubToken     string
	GraphQLEndpoint string

	// Fetch
	MaxPages int

	// Output
	OutputFile string
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	maxPages, err := getEnvInt("MAX_PAGES", DefaultMaxPages)
	if err != nil {
		return nil, err
	}

	return &Config{
		GitHubToken:     getEnv("GITHUB_TOKEN", ""),
		GraphQLEndpoint: getEnv("GITHUB_GRAPHQL_URL", DefaultGraphQLEndpoint),
		MaxPages:        maxPages,
		OutputFile:      getEnv("OUTPUT_FILE", DefaultOutputFile),
	}, nil
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, &ConfigError{Field: key, Message: fmt.Sprintf("must be an integer, got %q", value)}
	}
	return n, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHubToken == "" {
		return &ConfigError{Field: "GITHUB_TOKEN", Message: "GitHub token is required"}
	}
	if c.GraphQLEndpoint == "" {
		return &ConfigError{Field: "GITHUB_GRAPHQL_URL", Message: "GraphQL endpoint must not be empty"}
	}
	if c.MaxPages <= 0 {
		return &ConfigError{Field: "MAX_PAGES", Message: "must be a positive integer"}
	}
	if c.OutputFile == "" {
		return &ConfigError{Field: "OUTPUT_FILE", Message: "output file must not be empty"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
