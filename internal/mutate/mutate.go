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
	"context"
	"log/slog"

	"github.com/matta/worksync/internal/generation"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

// Session is the tenant session a Set submits on behalf of.
type Session interface {
	// FirstContact is the acting identity for submissions.
	FirstContact() (workspace.Contact, bool)

	// CurrentFolder is the folder being viewed, nil for the root.
	CurrentFolder() *workspace.ID

	// Reload refetches the whole snapshot.
	Reload(ctx context.Context) error

	// RefreshFolder re-resolves the folder being viewed.
	RefreshFolder(ctx context.Context) error
}

// Set holds the coordinators for every submission other than messages,
// which belong to the channel controller.
type Set struct {
	g       sync.Creator
	session Session
	tenant  string
	log     *slog.Logger

	Contact *Coordinator
	Task    *Coordinator
	Folder  *Coordinator
	Upload  *Coordinator
	Event   *Coordinator
	Project *Coordinator
}

// NewSet returns a Set submitting to g for tenant.  gate may be nil.
func NewSet(g sync.Creator, tenant string, session Session, gate *Gate, logger *slog.Logger) *Set {
	if logger == nil {
		logger = slog.Default()
	}
	return &Set{
		g:       g,
		session: session,
		tenant:  tenant,
		log:     logger.With("component", "mutate", "tenant", tenant),
		Contact: NewCoordinator(Contact, gate, logger),
		Task:    NewCoordinator(Task, gate, logger),
		Folder:  NewCoordinator(Folder, gate, logger),
		Upload:  NewCoordinator(Upload, gate, logger),
		Event:   NewCoordinator(Event, gate, logger),
		Project: NewCoordinator(Project, gate, logger),
	}
}

// Busy reports which coordinators have a submission in flight.
func (m *Set) Busy() map[Domain]bool {
	return map[Domain]bool{
		Contact: m.Contact.Busy(),
		Task:    m.Task.Busy(),
		Folder:  m.Folder.Busy(),
		Upload:  m.Upload.Busy(),
		Event:   m.Event.Busy(),
		Project: m.Project.Busy(),
	}
}

// reload refetches after a successful submission.  Its failure is the
// fetch's to report; the submission itself succeeded.  A reload
// overtaken by a newer one counts as done.  The folder view is
// re-resolved whatever the reload's outcome, since a newer load keeps
// an existing view as it is.
func (m *Set) reload(ctx context.Context, d Domain, folder bool) {
	if err := m.session.Reload(ctx); err != nil && !errors.Is(err, generation.ErrStale) {
		m.log.Warn("refresh after create failed", slog.String("domain", string(d)), slog.String("error", err.Error()))
	}
	if !folder {
		return
	}
	if err := m.session.RefreshFolder(ctx); err != nil {
		m.log.Warn("folder refresh after create failed", slog.String("domain", string(d)), slog.String("error", err.Error()))
	}
}

func (m *Set) creator() *workspace.ID {
	c, ok := m.session.FirstContact()
	if !ok {
		return nil
	}
	return &c.ID
}

// CreateContact submits f and resets it on success.
func (m *Set) CreateContact(ctx context.Context, f *ContactForm) (workspace.Contact, error) {
	var out workspace.Contact
	err := m.Contact.Run(ctx, func(ctx context.Context) error {
		in, err := f.Payload()
		if err != nil {
			return err
		}
		if out, err = m.g.CreateContact(ctx, m.tenant, in); err != nil {
			return err
		}
		*f = ContactForm{}
		m.reload(ctx, Contact, false)
		return nil
	})
	return out, err
}

// CreateTask submits f and resets it on success.
func (m *Set) CreateTask(ctx context.Context, f *TaskForm) (workspace.Task, error) {
	var out workspace.Task
	err := m.Task.Run(ctx, func(ctx context.Context) error {
		in, err := f.Payload()
		if err != nil {
			return err
		}
		if out, err = m.g.CreateTask(ctx, m.tenant, in); err != nil {
			return err
		}
		*f = NewTaskForm()
		m.reload(ctx, Task, false)
		return nil
	})
	return out, err
}

// CreateFolder creates f inside the folder being viewed.
func (m *Set) CreateFolder(ctx context.Context, f *FolderForm) (workspace.Folder, error) {
	var out workspace.Folder
	err := m.Folder.Run(ctx, func(ctx context.Context) error {
		in, err := f.Payload(m.session.CurrentFolder(), m.creator())
		if err != nil {
			return err
		}
		if out, err = m.g.CreateFolder(ctx, m.tenant, in); err != nil {
			return err
		}
		*f = FolderForm{}
		m.reload(ctx, Folder, true)
		return nil
	})
	return out, err
}

// UploadDocument uploads f into the folder being viewed.
func (m *Set) UploadDocument(ctx context.Context, f *UploadForm) (workspace.Document, error) {
	var out workspace.Document
	err := m.Upload.Run(ctx, func(ctx context.Context) error {
		in, err := f.Payload(m.session.CurrentFolder(), m.creator())
		if err != nil {
			return err
		}
		if out, err = m.g.UploadDocument(ctx, m.tenant, in); err != nil {
			return err
		}
		*f = UploadForm{}
		m.reload(ctx, Upload, true)
		return nil
	})
	return out, err
}

// CreateEvent submits f with the first contact as its creator.
func (m *Set) CreateEvent(ctx context.Context, f *EventForm) (workspace.Event, error) {
	var out workspace.Event
	err := m.Event.Run(ctx, func(ctx context.Context) error {
		creator := m.creator()
		if creator == nil {
			return ErrNoContacts
		}
		in, err := f.Payload(*creator)
		if err != nil {
			return err
		}
		if out, err = m.g.CreateEvent(ctx, m.tenant, in); err != nil {
			return err
		}
		*f = NewEventForm()
		m.reload(ctx, Event, false)
		return nil
	})
	return out, err
}

// CreateProject submits f with the first contact as its creator.  A
// rejection carries the service's field errors as a *ValidationError.
func (m *Set) CreateProject(ctx context.Context, f *ProjectForm) (workspace.Project, error) {
	var out workspace.Project
	err := m.Project.Run(ctx, func(ctx context.Context) error {
		creator := m.creator()
		if creator == nil {
			return ErrNoContacts
		}
		in, err := f.Payload(*creator)
		if err != nil {
			return err
		}
		if out, err = m.g.CreateProject(ctx, m.tenant, in); err != nil {
			return decodeRejection(Project, err)
		}
		*f = NewProjectForm()
		m.reload(ctx, Project, false)
		return nil
	})
	return out, err
}
