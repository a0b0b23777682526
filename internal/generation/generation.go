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

// Package generation tags outstanding requests so that responses which
// were overtaken by a newer request can be recognized and dropped.
package generation

import (
	"sync/atomic"

	"github.com/pkg/errors"
)

// ErrStale is returned for a response that was overtaken by a newer
// request and has been dropped.
var ErrStale = errors.New("response superseded by a newer request")

// ID identifies one request.  Larger is newer.
type ID uint64

// Counter issues increasing IDs.  The zero value is ready to use and is
// safe for concurrent use.
type Counter struct {
	n atomic.Uint64
}

// Next starts a new generation and returns its ID.  Every ID issued
// before it stops being current.
func (c *Counter) Next() ID {
	return ID(c.n.Add(1))
}

// Current returns the latest ID issued, or 0.
func (c *Counter) Current() ID {
	return ID(c.n.Load())
}

// IsCurrent reports whether id is still the latest generation.
func (c *Counter) IsCurrent(id ID) bool {
	return c.Current() == id
}
