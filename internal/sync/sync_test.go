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

package sync

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/matta/worksync/internal/gateway"
	"github.com/matta/worksync/internal/gateway/gatewaytest"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

var _ Gateway = (*gateway.Client)(nil)
var _ Gateway = (*gatewaytest.Fake)(nil)

var listOps = []string{
	"ListContacts", "ListTasks", "ListChannels", "ListDocuments",
	"ListFolders", "ListEvents", "ListProjects",
}

func seeded(t *testing.T) *gatewaytest.Fake {
	t.Helper()
	ctx := context.Background()
	f := gatewaytest.New(time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local))
	ada, err := f.CreateContact(ctx, "acme", workspace.NewContact{Name: "Ada Lovelace", Email: "ada@example.com"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.CreateTask(ctx, "acme", workspace.NewTask{Title: "Draft", AssigneeID: &ada.ID, Status: workspace.TaskTodo, Priority: workspace.TaskHigh}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.CreateMessage(ctx, "acme", workspace.NewMessage{Content: "hi", SenderID: ada.ID, Channel: "general"}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestFetch(t *testing.T) {
	f := seeded(t)
	s, err := Fetch(context.Background(), f, "acme", nil)
	if err != nil {
		t.Fatalf("Fetch() = %v", err)
	}
	if len(s.Contacts) != 1 || len(s.Tasks) != 1 || len(s.Channels) != 1 {
		t.Errorf("Fetch() = %+v, want one contact, task and channel", s)
	}
	if s.Documents == nil || s.Folders == nil || s.Events == nil || s.Projects == nil {
		t.Errorf("Fetch() left empty collections nil: %+v", s)
	}
	for _, op := range listOps {
		if n := f.Calls(op); n != 1 {
			t.Errorf("%s called %d times, want 1", op, n)
		}
	}
}

func TestFetchIdempotent(t *testing.T) {
	f := seeded(t)
	a, err := Fetch(context.Background(), f, "acme", nil)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Fetch(context.Background(), f, "acme", nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("second Fetch() differs (-first +second):\n%s", diff)
	}
}

func TestFetchAllOrNothing(t *testing.T) {
	boom := errors.New("boom")
	for _, op := range listOps {
		t.Run(op, func(t *testing.T) {
			f := seeded(t)
			f.Fail(op, boom)
			s, err := Fetch(context.Background(), f, "acme", nil)
			if s != nil {
				t.Errorf("Fetch() = %+v, want nil snapshot", s)
			}
			if !errors.Is(err, boom) {
				t.Errorf("Fetch() error = %v, want %v", err, boom)
			}
		})
	}
}

func TestFetchContactRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := gatewaytest.New(time.Now())
	if _, err := f.CreateContact(ctx, "acme", workspace.NewContact{Name: "Ada Lovelace", Email: "ada@example.com"}); err != nil {
		t.Fatal(err)
	}
	s, err := Fetch(ctx, f, "acme", nil)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := s.FirstContact()
	if !ok || c.Name != "Ada Lovelace" || c.Email != "ada@example.com" {
		t.Errorf("FirstContact() = %+v, %v; want Ada Lovelace", c, ok)
	}
	if c.ID == 0 {
		t.Errorf("contact has no server-assigned id")
	}
}

func TestFetchTenantIsolation(t *testing.T) {
	f := seeded(t)
	s, err := Fetch(context.Background(), f, "other", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Contacts) != 0 || len(s.Tasks) != 0 {
		t.Errorf("Fetch(other) = %+v, want empty", s)
	}
}

func TestSnapshotHelpers(t *testing.T) {
	var nilSnap *Snapshot
	if _, ok := nilSnap.FirstContact(); ok {
		t.Errorf("nil FirstContact() ok = true")
	}
	s := &Snapshot{Channels: []workspace.Channel{{Name: "general"}}}
	if !s.HasChannel("general") || s.HasChannel("private") {
		t.Errorf("HasChannel() mismatch for %+v", s.Channels)
	}
}
