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

package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound matches any *HTTPError with a 404 status.
	ErrNotFound = errors.New("workspace resource not found")
)

// FieldError is one entry of a structured validation failure: the path
// of the offending field and a message.
type FieldError struct {
	Loc []string
	Msg string

	// Raw holds the entry verbatim when it did not carry a message.
	Raw json.RawMessage
}

// Detail is the decoded "detail" member of an error body.  At most one
// of Message, Fields and Raw is set.
type Detail struct {
	Message string
	Fields  []FieldError
	Raw     json.RawMessage
}

// Empty reports whether the body carried no detail at all.
func (d Detail) Empty() bool {
	return d.Message == "" && d.Fields == nil && len(d.Raw) == 0
}

// HTTPError is returned for every non-2xx response.
type HTTPError struct {
	Method     string
	Path       string
	StatusCode int
	Detail     Detail
}

func (e *HTTPError) Error() string {
	msg := e.Detail.Message
	switch {
	case msg != "":
	case e.Detail.Fields != nil:
		parts := make([]string, 0, len(e.Detail.Fields))
		for _, f := range e.Detail.Fields {
			parts = append(parts, f.Msg)
		}
		msg = strings.Join(parts, "; ")
	case len(e.Detail.Raw) > 0:
		msg = string(e.Detail.Raw)
	default:
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http %d: %s", e.Method, e.Path, e.StatusCode, msg)
}

// Is makes errors.Is(err, ErrNotFound) work for 404 responses.
func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status carried by err, or 0 when err did
// not come from a response.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}

// decodeDetail decodes a FastAPI style {"detail": ...} body.  Bodies
// that are not JSON objects are kept as the plain message.
func decodeDetail(body []byte) Detail {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Detail) == 0 {
		return Detail{Message: strings.TrimSpace(string(body))}
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		return Detail{Message: s}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		fields := make([]FieldError, 0, len(items))
		for _, item := range items {
			fields = append(fields, decodeFieldError(item))
		}
		return Detail{Fields: fields}
	}

	return Detail{Raw: envelope.Detail}
}

func decodeFieldError(item json.RawMessage) FieldError {
	var v struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(item, &v); err != nil || v.Msg == "" {
		return FieldError{Raw: item}
	}
	loc := make([]string, 0, len(v.Loc))
	for _, part := range v.Loc {
		switch p := part.(type) {
		case string:
			loc = append(loc, p)
		case float64:
			loc = append(loc, fmt.Sprintf("%d", int64(p)))
		default:
			loc = append(loc, fmt.Sprint(p))
		}
	}
	return FieldError{Loc: loc, Msg: v.Msg}
}
