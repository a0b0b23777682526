// Copyright 2019 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gateway is a client for a tenant's remote workspace service.
//
// Every operation is scoped to exactly one tenant, passed explicitly.
// Non-2xx responses are returned as *HTTPError; nothing is retried.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 1 << 20

	requestIDHeader = "X-Request-Id"
)

// Config holds the client settings.
type Config struct {
	// BaseURL is the service root, e.g. "http://localhost:8000".
	BaseURL string

	// RateLimit is the steady request rate per second.  Zero or
	// less disables limiting.
	RateLimit float64

	// RateBurst is the number of requests allowed in a burst.
	RateBurst int
}

// Client talks to the workspace service over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	log     *slog.Logger
}

// New returns a Client.  A nil httpClient uses http.DefaultClient.
func New(cfg Config, httpClient *http.Client, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	burst := cfg.RateBurst
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	if burst < 1 {
		burst = 1
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		http:    httpClient,
		limiter: rate.NewLimiter(limit, burst),
		log:     logger.With("component", "gateway"),
	}
}

// tenantPath returns "/api/{tenant}" followed by the escaped elements.
func tenantPath(tenant string, elems ...string) string {
	var b strings.Builder
	b.WriteString("/api/")
	b.WriteString(url.PathEscape(tenant))
	for _, e := range elems {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(e))
	}
	return b.String()
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, v any) (request, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return request{}, errors.Wrapf(err, "encoding %s %s body", method, path)
	}
	return request{method: method, path: path, body: bytes.NewReader(b), contentType: "application/json"}, nil
}

// do performs r and decodes a 2xx JSON body into out, if out is not nil.
func (c *Client) do(ctx context.Context, r request, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return errors.Wrap(err, "waiting for rate limiter")
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, u, r.body)
	if err != nil {
		return errors.Wrapf(err, "creating %s %s request", r.method, r.path)
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.DebugContext(ctx, "request failed",
			slog.String("method", r.method),
			slog.String("path", r.path),
			slog.String("request_id", reqID),
			slog.String("error", err.Error()))
		return errors.Wrapf(err, "%s %s", r.method, r.path)
	}
	defer resp.Body.Close()

	c.log.DebugContext(ctx, "request done",
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.String("request_id", reqID))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Detail:     decodeDetail(body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decoding %s %s response", r.method, r.path)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, request{method: http.MethodGet, path: path, query: query}, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	r, err := jsonRequest(http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.do(ctx, r, out)
}
