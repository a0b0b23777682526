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

// Package store is the view model of one tenant session.
//
// A Store holds the committed snapshot of the seven primary collections
// along with the views derived from it: statistics, the current folder
// and the active channel.  Commands change it; queries read it.  A Store
// belongs to exactly one tenant; selecting another tenant means creating
// another Store.
package store

import (
	"context"
	"log/slog"
	gosync "sync"
	"time"

	"github.com/google/uuid"
	"github.com/matta/worksync/internal/channels"
	"github.com/matta/worksync/internal/folders"
	"github.com/matta/worksync/internal/generation"
	"github.com/matta/worksync/internal/mutate"
	"github.com/matta/worksync/internal/stats"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/tenant"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNotLoaded is returned by commands that need a snapshot before
	// the first load has committed one.
	ErrNotLoaded = errors.New("workspace not loaded yet")
)

// Options configures a Store.
type Options struct {
	Channels channels.Options

	// SerializeMutations makes every submission wait for any other
	// submission to finish, across all kinds.
	SerializeMutations bool

	// Now returns the reference instant for statistics.  It defaults to
	// time.Now.
	Now func() time.Time
}

// Store is a tenant session.  It is safe for concurrent use.
type Store struct {
	id     uuid.UUID
	tenant string
	g      sync.Gateway
	log    *slog.Logger
	now    func() time.Time
	loads  generation.Counter

	folders   *folders.Controller
	channels  *channels.Controller
	mutations *mutate.Set

	mu       gosync.RWMutex
	snap     *sync.Snapshot
	stats    *stats.Stats
	inflight int
}

var (
	_ mutate.Session       = (*Store)(nil)
	_ channels.ChannelList = (*Store)(nil)
)

// New returns an empty Store for slug.  Nothing is fetched until Load.
func New(g sync.Gateway, slug string, opts Options, logger *slog.Logger) (*Store, error) {
	if err := tenant.Validate(slug); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	var gate *mutate.Gate
	if opts.SerializeMutations {
		gate = mutate.NewGate()
		opts.Channels.Gate = gate
	}

	id := uuid.New()
	logger = logger.With("tenant", slug, "session", id.String())
	s := &Store{
		id:      id,
		tenant:  slug,
		g:       g,
		log:     logger.With("component", "store"),
		now:     opts.Now,
		folders: folders.NewController(g, slug, logger),
	}
	opts.Channels.List = s
	s.channels = channels.NewController(g, slug, opts.Channels, logger)
	s.mutations = mutate.NewSet(g, slug, s, gate, logger)
	return s, nil
}

// ID identifies the session in logs.
func (s *Store) ID() string {
	return s.id.String()
}

// Tenant returns the tenant slug.
func (s *Store) Tenant() string {
	return s.tenant
}

// Load fetches the snapshot and, once it is committed, the statistics
// and the active channel's history.  The first Load also resolves the
// root folder.  A failed fetch commits nothing and leaves the previous
// snapshot in place.
func (s *Store) Load(ctx context.Context) error {
	return s.Reload(ctx)
}

// Reload is Load; it lets the Store act as the session of its own
// submissions.
func (s *Store) Reload(ctx context.Context) error {
	gen := s.loads.Next()
	s.mu.Lock()
	s.inflight++
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}()

	snap, err := sync.Fetch(ctx, s.g, s.tenant, s.log)
	if err != nil {
		s.log.Error("failed to load workspace",
			slog.Uint64("generation", uint64(gen)),
			slog.String("error", err.Error()))
		return err
	}

	s.mu.Lock()
	if !s.loads.IsCurrent(gen) {
		s.mu.Unlock()
		s.log.Debug("dropping stale snapshot", slog.Uint64("generation", uint64(gen)))
		return generation.ErrStale
	}
	s.snap = snap
	s.mu.Unlock()

	s.seed(ctx, gen, snap)
	return nil
}

// seed resolves the views that depend on a committed snapshot.  None of
// them can fail the load.
func (s *Store) seed(ctx context.Context, gen generation.ID, snap *sync.Snapshot) {
	var grp errgroup.Group
	grp.Go(func() error {
		st := stats.Resolve(ctx, s.g, s.tenant, snap, s.now(), s.log)
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.loads.IsCurrent(gen) {
			s.stats = &st
		}
		return nil
	})
	if len(snap.Channels) > 0 {
		grp.Go(func() error {
			if err := s.channels.Load(ctx); err != nil && !errors.Is(err, generation.ErrStale) {
				s.log.Warn("failed to load channel history", slog.String("error", err.Error()))
			}
			return nil
		})
	}
	if _, ok := s.folders.View(); !ok {
		grp.Go(func() error {
			if _, err := s.folders.Navigate(ctx, folders.Root, snap); err != nil && !errors.Is(err, generation.ErrStale) {
				s.log.Warn("failed to resolve root folder", slog.String("error", err.Error()))
			}
			return nil
		})
	}
	_ = grp.Wait()
}

// Navigate moves the folder view to p.
func (s *Store) Navigate(ctx context.Context, p folders.Pointer) (folders.View, error) {
	snap, ok := s.Snapshot()
	if !ok {
		return folders.View{}, ErrNotLoaded
	}
	return s.folders.Navigate(ctx, p, snap)
}

// RefreshFolder re-resolves the current folder against the committed
// snapshot.
func (s *Store) RefreshFolder(ctx context.Context) error {
	snap, ok := s.Snapshot()
	if !ok {
		return ErrNotLoaded
	}
	_, err := s.folders.Refresh(ctx, snap)
	if errors.Is(err, generation.ErrStale) {
		return nil
	}
	return err
}

// RefreshChannels refetches the channel list and commits it as a new
// snapshot sharing every other collection with the current one.  When a
// load starts meanwhile, the list is dropped with generation.ErrStale
// and the load's snapshot stands.
func (s *Store) RefreshChannels(ctx context.Context) error {
	gen := s.loads.Current()
	chs, err := s.g.ListChannels(ctx, s.tenant)
	if err != nil {
		return errors.Wrap(err, "refreshing channel list")
	}
	if chs == nil {
		chs = []workspace.Channel{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap == nil {
		return ErrNotLoaded
	}
	if !s.loads.IsCurrent(gen) {
		return generation.ErrStale
	}
	next := *s.snap
	next.Channels = chs
	s.snap = &next
	return nil
}

// SwitchChannel makes name the active channel and loads it.
func (s *Store) SwitchChannel(ctx context.Context, name string) error {
	return s.channels.Switch(ctx, name)
}

// SelectRecipient addresses the next private message to id, or to the
// whole channel when id is nil.
func (s *Store) SelectRecipient(id *workspace.ID) {
	s.channels.SelectRecipient(id)
}

// Send posts content to the active channel as the first contact.
func (s *Store) Send(ctx context.Context, content string) (workspace.Message, error) {
	var sender *workspace.Contact
	if c, ok := s.FirstContact(); ok {
		sender = &c
	}
	return s.channels.Send(ctx, sender, content)
}

func (s *Store) CreateContact(ctx context.Context, f *mutate.ContactForm) (workspace.Contact, error) {
	return s.mutations.CreateContact(ctx, f)
}

func (s *Store) CreateTask(ctx context.Context, f *mutate.TaskForm) (workspace.Task, error) {
	return s.mutations.CreateTask(ctx, f)
}

func (s *Store) CreateFolder(ctx context.Context, f *mutate.FolderForm) (workspace.Folder, error) {
	return s.mutations.CreateFolder(ctx, f)
}

func (s *Store) Upload(ctx context.Context, f *mutate.UploadForm) (workspace.Document, error) {
	return s.mutations.UploadDocument(ctx, f)
}

func (s *Store) CreateEvent(ctx context.Context, f *mutate.EventForm) (workspace.Event, error) {
	return s.mutations.CreateEvent(ctx, f)
}

func (s *Store) CreateProject(ctx context.Context, f *mutate.ProjectForm) (workspace.Project, error) {
	return s.mutations.CreateProject(ctx, f)
}

// DownloadURL resolves where document id can be fetched from.
func (s *Store) DownloadURL(ctx context.Context, id workspace.ID) (workspace.Download, error) {
	d, err := s.g.DownloadURL(ctx, s.tenant, id)
	if err != nil {
		return workspace.Download{}, errors.Wrapf(err, "resolving download of document %d", id)
	}
	return d, nil
}
