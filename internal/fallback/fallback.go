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

// Package fallback models a value that is either taken verbatim from the
// workspace service or derived locally when the service could not supply
// it.  Consumers call Value and never branch on where it came from.
package fallback

// Source records which path produced a Result.
type Source int

const (
	Authoritative Source = iota
	Derived
)

func (s Source) String() string {
	switch s {
	case Authoritative:
		return "authoritative"
	case Derived:
		return "derived"
	}
	return "unknown"
}

// Result holds a value and the path that produced it.  A derived value
// is computed once, when the Result is built.
type Result[T any] struct {
	source Source
	value  T
}

// Of returns an authoritative Result.
func Of[T any](v T) Result[T] {
	return Result[T]{source: Authoritative, value: v}
}

// From returns a Result derived by fn.  fn runs once, before From
// returns.  A nil fn derives the zero value.
func From[T any](fn func() T) Result[T] {
	r := Result[T]{source: Derived}
	if fn != nil {
		r.value = fn()
	}
	return r
}

// Source reports which path produced r.
func (r Result[T]) Source() Source {
	return r.source
}

// Value collapses r into its canonical value.
func (r Result[T]) Value() T {
	return r.value
}

// Resolve returns Of(v) when err is nil and From(derive) otherwise.
func Resolve[T any](v T, err error, derive func() T) Result[T] {
	if err != nil {
		return From(derive)
	}
	return Of(v)
}
