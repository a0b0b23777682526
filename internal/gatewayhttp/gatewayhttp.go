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

/*
Package gatewayhttp builds the HTTP client used to reach the workspace
service.

Authentication is outside this program's concern; the client only
attaches what it is given.  A static bearer token is sent through an
oauth2.Transport, and an API key, when configured, is appended to every
request's query by the googleapi APIKey transport.  Neither is refreshed:
a token the service rejects surfaces as a 401 from the gateway client.
*/
package gatewayhttp

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/matta/worksync/internal/tracehttp"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi/transport"
)

// Config selects the transports.
type Config struct {
	APIKey  string
	Token   string
	Timeout time.Duration

	// Trace logs every request and response at debug level.
	Trace bool
}

// New returns an HTTP client for the workspace service.
func New(cfg Config, logger *slog.Logger) *http.Client {
	var rt http.RoundTripper = http.DefaultTransport
	if cfg.Trace {
		rt = tracehttp.Wrap(rt, logger, true)
	}
	if cfg.APIKey != "" {
		rt = &transport.APIKey{Key: cfg.APIKey, Transport: rt}
	}
	if cfg.Token != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		rt = &oauth2.Transport{
			Source: oauth2.ReuseTokenSource(nil, src),
			Base:   rt,
		}
	}
	return &http.Client{Transport: rt, Timeout: cfg.Timeout}
}
