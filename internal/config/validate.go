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

package config

import (
	"net/url"
	"strings"

	"github.com/matta/worksync/internal/channels"
	"github.com/matta/worksync/internal/tenant"
	"github.com/pkg/errors"
)

// Validate checks the loaded values.  Load calls it.
func (c *Config) Validate() error {
	if err := c.Gateway.validate(); err != nil {
		return errors.Wrap(err, "gateway")
	}
	if err := c.Session.validate(); err != nil {
		return errors.Wrap(err, "session")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.Errorf("log.format must be text or json (got %q)", c.Log.Format)
	}
	return nil
}

func (g *GatewayConfig) validate() error {
	u, err := url.Parse(g.BaseURL)
	if err != nil {
		return errors.Wrapf(err, "base_url %q", g.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return errors.Errorf("base_url must be an http or https URL (got %q)", g.BaseURL)
	}
	if g.Timeout < 0 {
		return errors.Errorf("timeout must be >= 0 (got %v)", g.Timeout)
	}
	if g.RateLimit < 0 {
		return errors.Errorf("rate_limit must be >= 0 (got %v)", g.RateLimit)
	}
	if g.RateLimit > 0 && g.RateBurst < 1 {
		return errors.Errorf("rate_burst must be >= 1 (got %d)", g.RateBurst)
	}
	if g.MessageLimit < 1 || g.MessageLimit > channels.MaxLimit {
		return errors.Errorf("message_limit must be between 1 and %d (got %d)", channels.MaxLimit, g.MessageLimit)
	}
	return nil
}

func (s *SessionConfig) validate() error {
	if s.Tenant != "" {
		if err := tenant.Validate(s.Tenant); err != nil {
			return err
		}
	}
	if strings.TrimSpace(s.DefaultChannel) == "" {
		return errors.New("default_channel must not be empty")
	}
	if strings.TrimSpace(s.PrivateChannel) == "" {
		return errors.New("private_channel must not be empty")
	}
	return nil
}
