// Package net provides the HTTP client used for webhook deliveries.
package net

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const clientTimeoutSeconds = 10

// GetBearerClient returns an HTTP client suited for webhook posts. A
// non-empty token is attached to every request as a bearer credential.
func GetBearerClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return &http.Client{Timeout: clientTimeoutSeconds * time.Second}
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{
			TokenType:   "Bearer",
			AccessToken: token,
		},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = clientTimeoutSeconds * time.Second

	return tc
}
