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

package mutate

import (
	"fmt"
	"strings"

	"github.com/matta/worksync/internal/gateway"
	"github.com/pkg/errors"
)

// ValidationError is a rejected project submission with the service's
// explanation decoded.
type ValidationError struct {
	Domain Domain
	Detail gateway.Detail
}

// Report renders the detail as one human-readable block: a header line
// followed by one "- loc > path: message" line per field error.
func (v *ValidationError) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Failed to create %s:\n", v.Domain)
	d := v.Detail
	switch {
	case d.Fields != nil:
		lines := make([]string, 0, len(d.Fields))
		for _, f := range d.Fields {
			if len(f.Raw) > 0 {
				lines = append(lines, "- "+string(f.Raw))
				continue
			}
			loc := "field"
			if len(f.Loc) > 0 {
				loc = strings.Join(f.Loc, " > ")
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", loc, f.Msg))
		}
		b.WriteString(strings.Join(lines, "\n"))
	case d.Message != "":
		b.WriteString(d.Message)
	case len(d.Raw) > 0:
		b.Write(d.Raw)
	default:
		b.WriteString("unknown error")
	}
	return b.String()
}

func (v *ValidationError) Error() string {
	return v.Report()
}

// decodeRejection turns a service rejection into a ValidationError for
// the project domain.  Other errors are returned as they are.
func decodeRejection(d Domain, err error) error {
	var herr *gateway.HTTPError
	if d != Project || !errors.As(err, &herr) {
		return err
	}
	return &Failure{Domain: d, Err: &ValidationError{Domain: d, Detail: herr.Detail}}
}

// UserMessage returns the text to show the user for err, and false when
// err should only be logged.
//
// Precondition failures carry guidance.  Project rejections show the
// decoded report, and rejections of other kinds a generic message.
// Failures that never reached the service are shown only for events and
// messages.
func UserMessage(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	switch {
	case errors.Is(err, ErrBusy):
		return "", false
	case errors.Is(err, ErrNoContacts):
		return "Create a contact first.", true
	case errors.Is(err, ErrEmptyContent):
		return "Type a message first.", true
	case errors.Is(err, ErrNoFile):
		return "Choose a file to upload.", true
	case errors.Is(err, ErrInvalidInput):
		return err.Error(), true
	}

	var v *ValidationError
	if errors.As(err, &v) {
		return v.Report(), true
	}
	var f *Failure
	if !errors.As(err, &f) {
		return "", false
	}
	if gateway.StatusCode(err) != 0 {
		return fmt.Sprintf("Failed to create %s.", f.Domain), true
	}
	switch f.Domain {
	case Event, Message:
		return fmt.Sprintf("Could not reach the server to create the %s.", f.Domain), true
	}
	return "", false
}
