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

// Package app wires the configuration, the gateway client and a tenant
// session together for the command line.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/matta/worksync/internal/channels"
	"github.com/matta/worksync/internal/config"
	"github.com/matta/worksync/internal/folders"
	"github.com/matta/worksync/internal/gateway"
	"github.com/matta/worksync/internal/gatewayhttp"
	"github.com/matta/worksync/internal/store"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/tenant"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

// upcomingShown is how many upcoming events the summary lists.
const upcomingShown = 5

// Request selects what Run shows.
type Request struct {
	// Tenant is a slug, a path or a URL naming the tenant.
	Tenant string

	// Folder is a folder id to open.  Empty opens the root.
	Folder string

	// Channel is the channel to open.  Empty opens the default.
	Channel string
}

// NewGateway builds the workspace service client from cfg.
func NewGateway(cfg config.GatewayConfig, logger *slog.Logger) *gateway.Client {
	httpClient := gatewayhttp.New(gatewayhttp.Config{
		APIKey:  cfg.APIKey,
		Token:   cfg.Token,
		Timeout: cfg.Timeout,
		Trace:   cfg.Trace,
	}, logger)
	return gateway.New(gateway.Config{
		BaseURL:   cfg.BaseURL,
		RateLimit: cfg.RateLimit,
		RateBurst: cfg.RateBurst,
	}, httpClient, logger)
}

// NewStore opens a tenant session on g.
func NewStore(g sync.Gateway, slug string, cfg *config.Config, logger *slog.Logger) (*store.Store, error) {
	return store.New(g, slug, store.Options{
		Channels: channels.Options{
			DefaultChannel: cfg.Session.DefaultChannel,
			PrivateChannel: cfg.Session.PrivateChannel,
			Limit:          cfg.Gateway.MessageLimit,
		},
		SerializeMutations: cfg.Session.SerializeMutations,
	}, logger)
}

// Run loads the requested tenant and writes a summary of it to out.
func Run(ctx context.Context, g sync.Gateway, cfg *config.Config, req Request, out io.Writer, logger *slog.Logger) error {
	ref := req.Tenant
	if ref == "" {
		ref = cfg.Session.Tenant
	}
	slug, err := tenant.Resolve(ref)
	if err != nil {
		return errors.Wrap(err, "unable to determine tenant")
	}

	s, err := NewStore(g, slug, cfg, logger)
	if err != nil {
		return errors.Wrap(err, "unable to open session")
	}
	if err := s.Load(ctx); err != nil {
		return errors.Wrapf(err, "unable to load %s", slug)
	}

	if req.Folder != "" {
		id, err := strconv.ParseInt(req.Folder, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "folder %q", req.Folder)
		}
		if _, err := s.Navigate(ctx, folders.At(workspace.ID(id))); err != nil {
			return errors.Wrapf(err, "unable to open folder %d", id)
		}
	}
	if req.Channel != "" && req.Channel != s.Channel() {
		if err := s.SwitchChannel(ctx, req.Channel); err != nil {
			return errors.Wrapf(err, "unable to open #%s", req.Channel)
		}
	}

	return Summarize(out, s, time.Now())
}

// Summarize writes a plain-text overview of the session.
func Summarize(out io.Writer, s *store.Store, now time.Time) error {
	snap, ok := s.Snapshot()
	if !ok {
		return store.ErrNotLoaded
	}
	w := &errWriter{w: out}

	w.printf("Tenant %s\n\n", s.Tenant())
	w.printf("Contacts: %d\n", len(snap.Contacts))
	w.printf("Tasks:    %d\n", len(snap.Tasks))
	for _, t := range snap.Tasks {
		w.printf("  [%s] %s (%s, %s)\n", t.Status, t.Title, t.Priority, workspace.ContactName(snap.Contacts, t.AssigneeID))
	}

	if cal, ok := s.CalendarStats(); ok {
		w.printf("Events:   %d total, %d upcoming, %d this week, %d this month\n",
			cal.TotalEvents, cal.UpcomingEvents, cal.EventsThisWeek, cal.EventsThisMonth)
	}
	for _, e := range workspace.UpcomingEvents(snap.Events, now, upcomingShown) {
		w.printf("  %s  %s\n", e.StartTime.Format("2006-01-02 15:04"), e.Title)
	}

	if ps, ok := s.ProjectStats(); ok {
		w.printf("Projects: %d total, %d active, %d completed, %d overdue\n",
			ps.TotalProjects, ps.ActiveProjects, ps.CompletedProjects, ps.OverdueProjects)
	}

	if v, ok := s.FolderView(); ok {
		path := []string{folders.RootName}
		for _, f := range v.Breadcrumb {
			path = append(path, f.Name)
		}
		w.printf("\nFolder %s (%d items)\n", strings.Join(path, " / "), v.Contents.TotalItems)
		for _, f := range v.Contents.Folders {
			w.printf("  %s/\n", f.Name)
		}
		for _, d := range v.Contents.Documents {
			w.printf("  %s  %d bytes\n", d.Name, d.FileSize)
		}
	}

	chs := s.Channels()
	w.printf("\nChannels: %d (%d unread)\n", len(chs), workspace.TotalUnread(chs))
	w.printf("#%s\n", s.Channel())
	for _, m := range s.Messages() {
		who := "?"
		if m.Sender != nil {
			who = m.Sender.Name
		}
		w.printf("  %s %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Content)
	}
	return w.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
