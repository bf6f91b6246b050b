// Package graphql talks to the upstream learning platform.
package graphql

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithSignInEndpoint sets the Basic-auth sign-in URL.
func WithSignInEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.signinEndpoint = endpoint
	}
}

// WithGraphQLEndpoint sets the GraphQL query URL.
func WithGraphQLEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.graphqlEndpoint = endpoint
	}
}

// WithTimeout sets the per-request timeout on the underlying HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, used by tests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithQuery overrides the embedded profile query.
func WithQuery(query string) Option {
	return func(c *Client) {
		if query != "" {
			c.query = query
		}
	}
}
