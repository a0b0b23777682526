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

package store

import (
	"maps"

	"github.com/matta/worksync/internal/folders"
	"github.com/matta/worksync/internal/mutate"
	"github.com/matta/worksync/internal/stats"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/workspace"
)

// Snapshot returns the committed snapshot.  It is replaced, never
// modified, so callers may hold on to it but must not change it.
func (s *Store) Snapshot() (*sync.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.snap != nil
}

// Loading reports whether a fetch is in flight or nothing has been
// committed yet.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0 || s.snap == nil
}

// Stats returns the statistics of the committed snapshot, once
// resolved.
func (s *Store) Stats() (stats.Stats, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return stats.Stats{}, false
	}
	return *s.stats, true
}

func (s *Store) CalendarStats() (workspace.CalendarStats, bool) {
	st, ok := s.Stats()
	if !ok {
		return workspace.CalendarStats{}, false
	}
	return st.Calendar.Value(), true
}

func (s *Store) ProjectStats() (workspace.ProjectStats, bool) {
	st, ok := s.Stats()
	if !ok {
		return workspace.ProjectStats{}, false
	}
	p := st.Projects.Value()
	p.ProjectsByStatus = maps.Clone(p.ProjectsByStatus)
	p.ProjectsByPriority = maps.Clone(p.ProjectsByPriority)
	return p, true
}

// FirstContact returns the acting identity for submissions.
func (s *Store) FirstContact() (workspace.Contact, bool) {
	snap, _ := s.Snapshot()
	return snap.FirstContact()
}

// CurrentFolder returns the folder being viewed, nil for the root.
func (s *Store) CurrentFolder() *workspace.ID {
	return s.folders.Current().Ref()
}

// FolderView returns the resolved current folder.
func (s *Store) FolderView() (folders.View, bool) {
	return s.folders.View()
}

// Channel returns the active channel name.
func (s *Store) Channel() string {
	return s.channels.Active()
}

// Messages returns the active channel's history, oldest first.
func (s *Store) Messages() []workspace.Message {
	return s.channels.Messages()
}

// Channels returns the committed channel list with its counts.
func (s *Store) Channels() []workspace.Channel {
	snap, ok := s.Snapshot()
	if !ok {
		return nil
	}
	return append([]workspace.Channel(nil), snap.Channels...)
}

// Recipient returns the selected private-message recipient.
func (s *Store) Recipient() *workspace.ID {
	return s.channels.Recipient()
}

// Busy reports which kinds of submission are in flight.
func (s *Store) Busy() map[mutate.Domain]bool {
	b := s.mutations.Busy()
	b[mutate.Message] = s.channels.Sending()
	return b
}
