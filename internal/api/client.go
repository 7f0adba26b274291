// Package api is the client for the remote storefront REST API. It is a
// black-box collaborator: this package only shapes requests and translates
// responses, all state lives in the stores.
package api

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ChukaCSTD/Macys-Clone/pkg/httpclient"
	"github.com/ChukaCSTD/Macys-Clone/pkg/logger"
)

// Client calls the storefront API.
type Client struct {
	baseURL string
	http    *httpclient.Client
	logger  *slog.Logger
}

// New creates an API client rooted at baseURL.
func New(baseURL string, hc *httpclient.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// url joins path segments onto the base URL, escaping each segment.
func (c *Client) url(segments ...string) string {
	var b strings.Builder
	b.WriteString(c.baseURL)
	for _, s := range segments {
		b.WriteString("/")
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// do executes a JSON request and records per-endpoint metrics. The endpoint
// label is a stable name, not the expanded URL, to keep cardinality bounded.
func (c *Client) do(ctx context.Context, endpoint string, r httpclient.JSONRequest) error {
	started := time.Now()
	err := c.http.DoJSON(ctx, r)
	observeRequest(endpoint, r.Method, err, time.Since(started))
	if err != nil {
		logger.WithContext(ctx, c.logger).DebugContext(ctx, "storefront API call failed",
			slog.String("endpoint", endpoint),
			slog.String("method", r.Method),
			slog.String("error", err.Error()),
		)
	}
	return err
}
