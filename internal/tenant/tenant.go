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

// Package tenant derives the tenant slug from navigation context.
package tenant

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// MaxLen is the longest slug the service stores.
const MaxLen = 50

var (
	// ErrInvalidTenant is returned for a missing or malformed slug.
	ErrInvalidTenant = errors.New("invalid tenant")

	slugRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// Validate checks that slug can name a tenant.
func Validate(slug string) error {
	switch {
	case slug == "":
		return errors.Wrap(ErrInvalidTenant, "empty slug")
	case len(slug) > MaxLen:
		return errors.Wrapf(ErrInvalidTenant, "slug %.20q... is longer than %d", slug, MaxLen)
	case !slugRE.MatchString(slug):
		return errors.Wrapf(ErrInvalidTenant, "slug %q", slug)
	}
	return nil
}

// Resolve returns the tenant named by the first path segment of ref.
// ref may be a bare slug ("acme"), a path ("/acme/projects") or a URL
// ("https://host/acme?tab=files").
func Resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	path := ref
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "/") || strings.ContainsAny(ref, "?#") {
		u, err := url.Parse(ref)
		if err != nil {
			return "", errors.Wrapf(ErrInvalidTenant, "parsing %q: %v", ref, err)
		}
		path = u.Path
	}
	path = strings.TrimLeft(path, "/")
	slug, _, _ := strings.Cut(path, "/")
	slug, err := url.PathUnescape(slug)
	if err != nil {
		return "", errors.Wrapf(ErrInvalidTenant, "unescaping %q", slug)
	}
	if err := Validate(slug); err != nil {
		return "", err
	}
	return slug, nil
}
