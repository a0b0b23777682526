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

// This file declares what the rest of the program needs from the remote
// workspace service.  *gateway.Client satisfies all of it.

import (
	"context"

	"github.com/matta/worksync/internal/gateway"
	"github.com/matta/worksync/internal/workspace"
)

// CollectionLister reads the seven primary collections of a tenant.
type CollectionLister interface {
	ListContacts(ctx context.Context, tenant string) ([]workspace.Contact, error)
	ListTasks(ctx context.Context, tenant string) ([]workspace.Task, error)
	ListChannels(ctx context.Context, tenant string) ([]workspace.Channel, error)
	ListDocuments(ctx context.Context, tenant string) ([]workspace.Document, error)
	ListFolders(ctx context.Context, tenant string) ([]workspace.Folder, error)
	ListEvents(ctx context.Context, tenant string) ([]workspace.Event, error)
	ListProjects(ctx context.Context, tenant string) ([]workspace.Project, error)
}

// StatsGetter reads the optional precomputed aggregates.
type StatsGetter interface {
	CalendarStats(ctx context.Context, tenant string) (workspace.CalendarStats, error)
	ProjectStats(ctx context.Context, tenant string) (workspace.ProjectStats, error)
}

// ContentsGetter reads nested-contents views of the document tree.
type ContentsGetter interface {
	RootContents(ctx context.Context, tenant string) (workspace.FolderContents, error)
	FolderContents(ctx context.Context, tenant string, id workspace.ID) (workspace.FolderContents, error)
}

// Messenger reads and writes channel history.
type Messenger interface {
	ListChannels(ctx context.Context, tenant string) ([]workspace.Channel, error)
	ListMessages(ctx context.Context, tenant string, q gateway.MessageQuery) ([]workspace.Message, error)
	CreateMessage(ctx context.Context, tenant string, in workspace.NewMessage) (workspace.Message, error)
}

// Creator submits new entities.
type Creator interface {
	CreateContact(ctx context.Context, tenant string, in workspace.NewContact) (workspace.Contact, error)
	CreateTask(ctx context.Context, tenant string, in workspace.NewTask) (workspace.Task, error)
	CreateFolder(ctx context.Context, tenant string, in workspace.NewFolder) (workspace.Folder, error)
	CreateEvent(ctx context.Context, tenant string, in workspace.NewEvent) (workspace.Event, error)
	CreateProject(ctx context.Context, tenant string, in workspace.NewProject) (workspace.Project, error)
	UploadDocument(ctx context.Context, tenant string, up workspace.Upload) (workspace.Document, error)
}

// Downloader resolves document download locations.
type Downloader interface {
	DownloadURL(ctx context.Context, tenant string, id workspace.ID) (workspace.Download, error)
}

// Gateway provides every action available against the workspace
// service.
type Gateway interface {
	CollectionLister
	StatsGetter
	ContentsGetter
	Messenger
	Creator
	Downloader
}

var _ Gateway = (*gateway.Client)(nil)
