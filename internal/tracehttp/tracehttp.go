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

package tracehttp

import (
	"log/slog"
	"net/http"
	"net/http/httputil"
)

// traceTransport is an http.RoundTripper that logs a dump of the
// request and response at debug level while delegating the real work to
// another http.RoundTripper.
type traceTransport struct {
	delegate http.RoundTripper
	log      *slog.Logger
	body     bool
}

// RoundTrip logs a dump of the request and response while delegating the
// round trip to the delegate.
func (t *traceTransport) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	ctx := req.Context()
	dump, dumpErr := httputil.DumpRequestOut(req, t.body)
	if dumpErr == nil {
		t.log.DebugContext(ctx, "http request", slog.String("dump", string(dump)))
	}
	resp, err = t.delegate.RoundTrip(req)
	if err != nil {
		t.log.DebugContext(ctx, "http error", slog.String("url", req.URL.Redacted()), slog.String("error", err.Error()))
		return resp, err
	}
	dump, dumpErr = httputil.DumpResponse(resp, t.body)
	if dumpErr == nil {
		t.log.DebugContext(ctx, "http response", slog.String("dump", string(dump)))
	}
	return resp, err
}

// Wrap returns a RoundTripper that traces d.  A nil d traces
// http.DefaultTransport.  Bodies are included when body is set.
func Wrap(d http.RoundTripper, logger *slog.Logger, body bool) http.RoundTripper {
	if d == nil {
		d = http.DefaultTransport
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &traceTransport{delegate: d, log: logger.With("component", "tracehttp"), body: body}
}
