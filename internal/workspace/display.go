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

package workspace

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Unassigned is the name shown for a missing or unknown contact.
const Unassigned = "Unassigned"

// Initials returns the upper-cased first letter of each
// whitespace-separated token of name.
func Initials(name string) string {
	var b strings.Builder
	for _, tok := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Initials returns the contact's display initials.
func (c Contact) Initials() string {
	return Initials(c.Name)
}

// ContactName resolves id against contacts.  A nil id, or one that is
// not in contacts, yields Unassigned.
func ContactName(contacts []Contact, id *ID) string {
	if id == nil {
		return Unassigned
	}
	for _, c := range contacts {
		if c.ID == *id {
			return c.Name
		}
	}
	return Unassigned
}

// TotalUnread sums the unread counts of every channel.
func TotalUnread(channels []Channel) int {
	total := 0
	for _, ch := range channels {
		total += ch.UnreadCount
	}
	return total
}

// UpcomingEvents returns up to n events starting at or after now,
// earliest first.  A negative n returns all of them.
func UpcomingEvents(events []Event, now time.Time, n int) []Event {
	var out []Event
	for _, e := range events {
		if !e.StartTime.Before(now) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime.Time)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
