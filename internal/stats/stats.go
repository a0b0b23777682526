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

// Package stats computes the calendar and project aggregates, preferring
// the figures the workspace service publishes and deriving identical
// ones from the raw collections when it does not.
package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/matta/worksync/internal/fallback"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/workspace"
	"golang.org/x/sync/errgroup"
)

// WeekStart returns midnight of the Sunday on or before now, in now's
// location.
func WeekStart(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-int(now.Weekday()), 0, 0, 0, 0, now.Location())
}

// MonthStart returns midnight of the first day of now's month.
func MonthStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location())
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// Calendar derives the calendar aggregates of events as of now.  The
// month window covers the whole of its last day.
func Calendar(events []workspace.Event, now time.Time) workspace.CalendarStats {
	week := WeekStart(now)
	nextWeek := week.AddDate(0, 0, 7)
	month := MonthStart(now)
	nextMonth := month.AddDate(0, 1, 0)

	s := workspace.CalendarStats{TotalEvents: len(events)}
	for _, e := range events {
		start := e.StartTime.Time
		if start.After(now) {
			s.UpcomingEvents++
		}
		if within(start, week, nextWeek) {
			s.EventsThisWeek++
		}
		if within(start, month, nextMonth) {
			s.EventsThisMonth++
		}
	}
	return s
}

// Overdue reports whether p has a deadline before now and is not
// completed.
func Overdue(p workspace.Project, now time.Time) bool {
	return p.Deadline != nil && !p.Deadline.IsZero() && p.Deadline.Before(now) &&
		p.Status != workspace.ProjectCompleted
}

// Projects derives the project aggregates of projects as of now.  The
// frequency maps hold only the values that occur.
func Projects(projects []workspace.Project, now time.Time) workspace.ProjectStats {
	s := workspace.ProjectStats{
		TotalProjects:      len(projects),
		ProjectsByStatus:   make(map[workspace.ProjectStatus]int),
		ProjectsByPriority: make(map[workspace.ProjectPriority]int),
	}
	for _, p := range projects {
		switch p.Status {
		case workspace.ProjectActive:
			s.ActiveProjects++
		case workspace.ProjectCompleted:
			s.CompletedProjects++
		}
		if Overdue(p, now) {
			s.OverdueProjects++
		}
		s.ProjectsByStatus[p.Status]++
		s.ProjectsByPriority[p.Priority]++
	}
	return s
}

// ResolveCalendar asks g for the calendar aggregates and falls back to
// deriving them from events when that fails for any reason.
func ResolveCalendar(ctx context.Context, g sync.StatsGetter, tenant string, events []workspace.Event,
	now time.Time, logger *slog.Logger) fallback.Result[workspace.CalendarStats] {
	v, err := g.CalendarStats(ctx, tenant)
	if err != nil {
		logFallback(logger, tenant, "calendar", err)
	}
	return fallback.Resolve(v, err, func() workspace.CalendarStats {
		return Calendar(events, now)
	})
}

// ResolveProjects is ResolveCalendar for the project aggregates.
func ResolveProjects(ctx context.Context, g sync.StatsGetter, tenant string, projects []workspace.Project,
	now time.Time, logger *slog.Logger) fallback.Result[workspace.ProjectStats] {
	v, err := g.ProjectStats(ctx, tenant)
	if err != nil {
		logFallback(logger, tenant, "projects", err)
	}
	if err == nil && v.ProjectsByStatus == nil {
		v.ProjectsByStatus = make(map[workspace.ProjectStatus]int)
	}
	if err == nil && v.ProjectsByPriority == nil {
		v.ProjectsByPriority = make(map[workspace.ProjectPriority]int)
	}
	return fallback.Resolve(v, err, func() workspace.ProjectStats {
		return Projects(projects, now)
	})
}

func logFallback(logger *slog.Logger, tenant, domain string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("statistics unavailable, deriving locally",
		slog.String("tenant", tenant),
		slog.String("domain", domain),
		slog.String("error", err.Error()))
}

// Stats holds both aggregates.
type Stats struct {
	Calendar fallback.Result[workspace.CalendarStats]
	Projects fallback.Result[workspace.ProjectStats]
}

// Resolve runs both statistics reads concurrently against the
// collections in snap.  It never fails; each side falls back on its own.
func Resolve(ctx context.Context, g sync.StatsGetter, tenant string, snap *sync.Snapshot,
	now time.Time, logger *slog.Logger) Stats {
	var s Stats
	var grp errgroup.Group
	grp.Go(func() error {
		s.Calendar = ResolveCalendar(ctx, g, tenant, snap.Events, now, logger)
		return nil
	})
	grp.Go(func() error {
		s.Projects = ResolveProjects(ctx, g, tenant, snap.Projects, now, logger)
		return nil
	})
	_ = grp.Wait()
	return s
}
