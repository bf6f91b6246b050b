// Package graphql talks to the upstream learning platform: Basic-auth
// sign-in for a bearer token, then a single GraphQL query for the full
// profile payload.
package graphql

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"profilehub/internal/domain/payload"
	"profilehub/pkg/metrics"
)

//go:embed user.graphql
var userQuery string

// Client performs sign-in and profile queries against the upstream API.
type Client struct {
	signinEndpoint  string
	graphqlEndpoint string
	query           string
	http            *http.Client
}

// NewClient creates an upstream client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		query: userQuery,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.signinEndpoint = strings.TrimSpace(c.signinEndpoint)
	c.graphqlEndpoint = strings.TrimSpace(c.graphqlEndpoint)
	return c
}

// SignIn exchanges credentials for a bearer token. The endpoint answers with
// one of several shapes: a raw JWT, a JSON string literal, or an object
// wrapping the token; all of them resolve to a cleaned token string.
func (c *Client) SignIn(ctx context.Context, username, password string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.signinEndpoint, nil)
	if err != nil {
		return "", err
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	req.Header.Set("Authorization", "Basic "+credentials)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status=%d", ErrSignInFailed, resp.StatusCode)
	}

	blob, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return "", err
	}

	token := extractToken(blob)
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// extractToken resolves the token out of the sign-in response body.
func extractToken(blob []byte) string {
	trimmed := bytes.TrimSpace(blob)
	if len(trimmed) == 0 {
		return ""
	}

	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		return cleanToken(str)
	}

	var obj struct {
		Token       string `json:"token"`
		AccessToken string `json:"accessToken"`
		JWT         string `json:"jwt"`
		Data        struct {
			Token       string `json:"token"`
			AccessToken string `json:"accessToken"`
		} `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, candidate := range []string{obj.Token, obj.AccessToken, obj.JWT, obj.Data.Token, obj.Data.AccessToken} {
			if token := cleanToken(candidate); token != "" {
				return token
			}
		}
		return ""
	}

	// Not JSON at all: treat the body as a raw JWT.
	return cleanToken(string(trimmed))
}

// cleanToken strips a leading BOM and surrounding whitespace.
func cleanToken(token string) string {
	return strings.TrimSpace(strings.TrimPrefix(token, "\uFEFF"))
}

// FetchUserData runs the profile query with the bearer token and returns the
// decoded payload. GraphQL-level errors are joined into one error so callers
// can classify expiry by message.
func (c *Client) FetchUserData(ctx context.Context, token string) (payload.Raw, error) {
	start := time.Now()
	metrics.RecordUpstreamFetch()

	raw, err := c.fetchUserData(ctx, cleanToken(token))
	metrics.RecordUpstreamFetchLatency(float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordUpstreamFetchError()
	}
	return raw, err
}

func (c *Client) fetchUserData(ctx context.Context, token string) (payload.Raw, error) {
	body, err := json.Marshal(map[string]string{"query": c.query})
	if err != nil {
		return payload.Raw{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.graphqlEndpoint, bytes.NewReader(body))
	if err != nil {
		return payload.Raw{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return payload.Raw{}, err
	}
	defer resp.Body.Close()

	blob, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return payload.Raw{}, err
	}

	// Error detail may arrive inside a 200 body, so decode before checking
	// the HTTP status.
	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(blob, &envelope); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return payload.Raw{}, fmt.Errorf("%w: status=%d body=%s", ErrUpstream, resp.StatusCode, excerpt(blob))
		}
		return payload.Raw{}, fmt.Errorf("%w: response not JSON: %s", ErrUpstream, excerpt(blob))
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return payload.Raw{}, fmt.Errorf("%w: %s", ErrUpstream, strings.Join(messages, "; "))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return payload.Raw{}, fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var raw payload.Raw
	if err := json.Unmarshal(blob, &raw); err != nil {
		return payload.Raw{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return raw, nil
}

func excerpt(blob []byte) string {
	const max = 512
	s := strings.TrimSpace(string(blob))
	if len(s) > max {
		s = s[:max] + "..."
	}
	return s
}

// IsSessionExpired reports whether err looks like an expired or invalid
// bearer token rather than a transient upstream failure.
func IsSessionExpired(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "jwt") || strings.Contains(msg, "expired")
}
