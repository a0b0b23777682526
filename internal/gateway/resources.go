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

package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

// MessageQuery selects one page of a channel's history.
type MessageQuery struct {
	Channel string

	// Limit bounds the page size.  Zero lets the service choose.
	Limit int

	// ThreadID selects the replies of one thread.  When nil the
	// service returns top-level messages only.
	ThreadID *workspace.ID
}

func idString(id workspace.ID) string {
	return strconv.FormatInt(int64(id), 10)
}

func (c *Client) ListContacts(ctx context.Context, tenant string) ([]workspace.Contact, error) {
	var out []workspace.Contact
	err := c.get(ctx, tenantPath(tenant, "contacts"), nil, &out)
	return out, err
}

func (c *Client) CreateContact(ctx context.Context, tenant string, in workspace.NewContact) (workspace.Contact, error) {
	var out workspace.Contact
	err := c.post(ctx, tenantPath(tenant, "contacts"), in, &out)
	return out, err
}

func (c *Client) ListTasks(ctx context.Context, tenant string) ([]workspace.Task, error) {
	var out []workspace.Task
	err := c.get(ctx, tenantPath(tenant, "tasks"), nil, &out)
	return out, err
}

func (c *Client) CreateTask(ctx context.Context, tenant string, in workspace.NewTask) (workspace.Task, error) {
	var out workspace.Task
	err := c.post(ctx, tenantPath(tenant, "tasks"), in, &out)
	return out, err
}

// ListChannels returns the per-channel aggregates.
func (c *Client) ListChannels(ctx context.Context, tenant string) ([]workspace.Channel, error) {
	var out []workspace.Channel
	err := c.get(ctx, tenantPath(tenant, "messages", "channels"), nil, &out)
	return out, err
}

// ListMessages returns one page of history, newest first.
func (c *Client) ListMessages(ctx context.Context, tenant string, q MessageQuery) ([]workspace.Message, error) {
	query := url.Values{}
	if q.Channel != "" {
		query.Set("channel", q.Channel)
	}
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.ThreadID != nil {
		query.Set("thread_id", idString(*q.ThreadID))
	}
	var out []workspace.Message
	err := c.get(ctx, tenantPath(tenant, "messages"), query, &out)
	return out, err
}

func (c *Client) CreateMessage(ctx context.Context, tenant string, in workspace.NewMessage) (workspace.Message, error) {
	var out workspace.Message
	err := c.post(ctx, tenantPath(tenant, "messages"), in, &out)
	return out, err
}

func (c *Client) ListDocuments(ctx context.Context, tenant string) ([]workspace.Document, error) {
	var out []workspace.Document
	err := c.get(ctx, tenantPath(tenant, "documents"), nil, &out)
	return out, err
}

// RootContents returns the nested-contents view of the tree root.
func (c *Client) RootContents(ctx context.Context, tenant string) (workspace.FolderContents, error) {
	var out workspace.FolderContents
	err := c.get(ctx, tenantPath(tenant, "documents", "root"), nil, &out)
	return out, err
}

// UploadDocument sends up.Content as a multipart form.
func (c *Client) UploadDocument(ctx context.Context, tenant string, up workspace.Upload) (workspace.Document, error) {
	var out workspace.Document
	if up.Content == nil {
		return out, errors.New("upload has no content")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(up.Filename)))
	ctype := mime.TypeByExtension(filepath.Ext(up.Filename))
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	h.Set("Content-Type", ctype)
	part, err := mw.CreatePart(h)
	if err != nil {
		return out, errors.Wrap(err, "creating file part")
	}
	if _, err := io.Copy(part, up.Content); err != nil {
		return out, errors.Wrapf(err, "reading %s", up.Filename)
	}
	if err := mw.WriteField("uploaded_by", idString(up.UploadedBy)); err != nil {
		return out, errors.Wrap(err, "writing uploaded_by")
	}
	if up.FolderID != nil {
		if err := mw.WriteField("folder_id", idString(*up.FolderID)); err != nil {
			return out, errors.Wrap(err, "writing folder_id")
		}
	}
	if err := mw.Close(); err != nil {
		return out, errors.Wrap(err, "closing multipart body")
	}

	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        tenantPath(tenant, "documents", "upload"),
		body:        &body,
		contentType: mw.FormDataContentType(),
	}, &out)
	return out, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// DownloadURL resolves where a document's content can be fetched.
func (c *Client) DownloadURL(ctx context.Context, tenant string, id workspace.ID) (workspace.Download, error) {
	var out workspace.Download
	err := c.get(ctx, tenantPath(tenant, "documents", idString(id), "download"), nil, &out)
	return out, err
}

func (c *Client) ListFolders(ctx context.Context, tenant string) ([]workspace.Folder, error) {
	var out []workspace.Folder
	err := c.get(ctx, tenantPath(tenant, "folders"), nil, &out)
	return out, err
}

func (c *Client) CreateFolder(ctx context.Context, tenant string, in workspace.NewFolder) (workspace.Folder, error) {
	var out workspace.Folder
	err := c.post(ctx, tenantPath(tenant, "folders"), in, &out)
	return out, err
}

// FolderContents returns the nested-contents view of one folder.
func (c *Client) FolderContents(ctx context.Context, tenant string, id workspace.ID) (workspace.FolderContents, error) {
	var out workspace.FolderContents
	err := c.get(ctx, tenantPath(tenant, "folders", idString(id), "contents"), nil, &out)
	return out, err
}

func (c *Client) ListEvents(ctx context.Context, tenant string) ([]workspace.Event, error) {
	var out []workspace.Event
	err := c.get(ctx, tenantPath(tenant, "events"), nil, &out)
	return out, err
}

func (c *Client) CreateEvent(ctx context.Context, tenant string, in workspace.NewEvent) (workspace.Event, error) {
	var out workspace.Event
	err := c.post(ctx, tenantPath(tenant, "events"), in, &out)
	return out, err
}

// CalendarStats returns the service-computed calendar aggregates.  Not
// every deployment serves them.
func (c *Client) CalendarStats(ctx context.Context, tenant string) (workspace.CalendarStats, error) {
	var out workspace.CalendarStats
	err := c.get(ctx, tenantPath(tenant, "events", "stats"), nil, &out)
	return out, err
}

func (c *Client) ListProjects(ctx context.Context, tenant string) ([]workspace.Project, error) {
	var out []workspace.Project
	err := c.get(ctx, tenantPath(tenant, "projects"), nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, tenant string, in workspace.NewProject) (workspace.Project, error) {
	var out workspace.Project
	err := c.post(ctx, tenantPath(tenant, "projects"), in, &out)
	return out, err
}

// ProjectStats returns the service-computed project aggregates.  Not
// every deployment serves them.
func (c *Client) ProjectStats(ctx context.Context, tenant string) (workspace.ProjectStats, error) {
	var out workspace.ProjectStats
	err := c.get(ctx, tenantPath(tenant, "projects", "stats"), nil, &out)
	return out, err
}
