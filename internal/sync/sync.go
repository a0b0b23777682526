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

// Package sync fetches a tenant's primary collections as one snapshot.
package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Snapshot is the complete copy of a tenant's seven primary
// collections.  A Snapshot is never patched; a newer fetch replaces it
// wholesale.
type Snapshot struct {
	Contacts  []workspace.Contact
	Tasks     []workspace.Task
	Channels  []workspace.Channel
	Documents []workspace.Document
	Folders   []workspace.Folder
	Events    []workspace.Event
	Projects  []workspace.Project
}

// FirstContact returns the contact used as the acting identity for
// submissions, if any contact exists.
func (s *Snapshot) FirstContact() (workspace.Contact, bool) {
	if s == nil || len(s.Contacts) == 0 {
		return workspace.Contact{}, false
	}
	return s.Contacts[0], true
}

// HasChannel reports whether the service reported a channel by name.
func (s *Snapshot) HasChannel(name string) bool {
	if s == nil {
		return false
	}
	for _, ch := range s.Channels {
		if ch.Name == name {
			return true
		}
	}
	return false
}

// collect runs fn on grp and stores its result in dst.  A nil result is
// stored as an empty collection so two fetches of the same data compare
// equal.
func collect[T any](ctx context.Context, grp *errgroup.Group, dst *[]T, what string,
	fn func(context.Context) ([]T, error)) {
	grp.Go(func() error {
		v, err := fn(ctx)
		if err != nil {
			return errors.Wrapf(err, "unable to list %s", what)
		}
		if v == nil {
			v = []T{}
		}
		*dst = v
		return nil
	})
}

// Fetch reads the seven primary collections of tenant concurrently.
// Either all reads succeed and a complete Snapshot is returned, or the
// first failure is returned and no Snapshot at all.
func Fetch(ctx context.Context, g CollectionLister, tenant string, logger *slog.Logger) (*Snapshot, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	var s Snapshot
	grp, ctx := errgroup.WithContext(ctx)
	collect(ctx, grp, &s.Contacts, "contacts", func(ctx context.Context) ([]workspace.Contact, error) {
		return g.ListContacts(ctx, tenant)
	})
	collect(ctx, grp, &s.Tasks, "tasks", func(ctx context.Context) ([]workspace.Task, error) {
		return g.ListTasks(ctx, tenant)
	})
	collect(ctx, grp, &s.Channels, "channels", func(ctx context.Context) ([]workspace.Channel, error) {
		return g.ListChannels(ctx, tenant)
	})
	collect(ctx, grp, &s.Documents, "documents", func(ctx context.Context) ([]workspace.Document, error) {
		return g.ListDocuments(ctx, tenant)
	})
	collect(ctx, grp, &s.Folders, "folders", func(ctx context.Context) ([]workspace.Folder, error) {
		return g.ListFolders(ctx, tenant)
	})
	collect(ctx, grp, &s.Events, "events", func(ctx context.Context) ([]workspace.Event, error) {
		return g.ListEvents(ctx, tenant)
	})
	collect(ctx, grp, &s.Projects, "projects", func(ctx context.Context) ([]workspace.Project, error) {
		return g.ListProjects(ctx, tenant)
	})
	if err := grp.Wait(); err != nil {
		return nil, errors.Wrapf(err, "failed to fetch snapshot for %s", tenant)
	}

	logger.Debug("fetched snapshot",
		slog.String("tenant", tenant),
		slog.Int("contacts", len(s.Contacts)),
		slog.Int("tasks", len(s.Tasks)),
		slog.Int("channels", len(s.Channels)),
		slog.Int("documents", len(s.Documents)),
		slog.Int("folders", len(s.Folders)),
		slog.Int("events", len(s.Events)),
		slog.Int("projects", len(s.Projects)),
		slog.Duration("elapsed", time.Since(start)))
	return &s, nil
}
