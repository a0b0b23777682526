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

// Package gatewaytest provides an in-memory workspace service for
// tests.  It mirrors the behaviour of the real service closely enough to
// exercise the fallbacks: statistics and nested-contents views can be
// switched off, and any operation can be made to fail.
package gatewaytest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	gosync "sync"
	"time"

	"github.com/matta/worksync/internal/gateway"
	"github.com/matta/worksync/internal/workspace"
)

type tenantData struct {
	contacts  []workspace.Contact
	tasks     []workspace.Task
	messages  []workspace.Message
	documents []workspace.Document
	folders   []workspace.Folder
	events    []workspace.Event
	projects  []workspace.Project

	calendarStats *workspace.CalendarStats
	projectStats  *workspace.ProjectStats
}

// Fake is an in-memory, tenant-scoped workspace service.  The zero
// value is not usable; call New.
type Fake struct {
	mu      gosync.Mutex
	nextID  workspace.ID
	clock   time.Time
	tenants map[string]*tenantData
	fail    map[string]error
	calls   map[string]int
	hooks   map[string]func()

	contentsAvailable bool
}

// New returns an empty Fake whose clock starts at now.  Nested-contents
// views are served; statistics are not until set.
func New(now time.Time) *Fake {
	return &Fake{
		clock:             now,
		tenants:           make(map[string]*tenantData),
		fail:              make(map[string]error),
		calls:             make(map[string]int),
		hooks:             make(map[string]func()),
		contentsAvailable: true,
	}
}

// Fail makes every later call of op return err.  A nil err clears it.
func (f *Fake) Fail(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// OnCall runs fn, without holding the Fake's lock, whenever op is called
// and before it does anything else.
func (f *Fake) OnCall(op string, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[op] = fn
}

// Calls returns how many times op was invoked.
func (f *Fake) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of invocations of every operation.
func (f *Fake) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// SetContentsAvailable switches the nested-contents endpoints on or off.
func (f *Fake) SetContentsAvailable(ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contentsAvailable = ok
}

// SetCalendarStats makes the calendar statistics endpoint serve s.  A
// nil s makes it respond 404.
func (f *Fake) SetCalendarStats(tenant string, s *workspace.CalendarStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenant(tenant).calendarStats = s
}

// SetProjectStats makes the project statistics endpoint serve s.  A nil
// s makes it respond 404.
func (f *Fake) SetProjectStats(tenant string, s *workspace.ProjectStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tenant(tenant).projectStats = s
}

// AddEvent stores e verbatim, assigning an id when e has none.
func (f *Fake) AddEvent(tenant string, e workspace.Event) workspace.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	e.ID = f.assign(e.ID)
	t := f.tenant(tenant)
	t.events = append(t.events, e)
	return e
}

// AddProject stores p verbatim, assigning an id when p has none.
func (f *Fake) AddProject(tenant string, p workspace.Project) workspace.Project {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.assign(p.ID)
	t := f.tenant(tenant)
	t.projects = append(t.projects, p)
	return p
}

// AddMessage stores m verbatim, assigning an id when m has none.
func (f *Fake) AddMessage(tenant string, m workspace.Message) workspace.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	m.ID = f.assign(m.ID)
	t := f.tenant(tenant)
	t.messages = append(t.messages, m)
	return m
}

// AddFolder stores d verbatim, assigning an id when d has none.
func (f *Fake) AddFolder(tenant string, d workspace.Folder) workspace.Folder {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.assign(d.ID)
	t := f.tenant(tenant)
	t.folders = append(t.folders, d)
	return d
}

// AddDocument stores d verbatim, assigning an id when d has none.
func (f *Fake) AddDocument(tenant string, d workspace.Document) workspace.Document {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.ID = f.assign(d.ID)
	t := f.tenant(tenant)
	t.documents = append(t.documents, d)
	return d
}

func (f *Fake) tenant(name string) *tenantData {
	t, ok := f.tenants[name]
	if !ok {
		t = &tenantData{}
		f.tenants[name] = t
	}
	return t
}

func (f *Fake) id() workspace.ID {
	f.nextID++
	return f.nextID
}

// assign keeps an explicit id, making sure later ids are above it, or
// picks the next one.
func (f *Fake) assign(id workspace.ID) workspace.ID {
	if id == 0 {
		return f.id()
	}
	if id > f.nextID {
		f.nextID = id
	}
	return id
}

// tick advances the clock so that created entities are strictly
// ordered.
func (f *Fake) tick() workspace.Time {
	f.clock = f.clock.Add(time.Second)
	return workspace.At(f.clock)
}

// enter records a call of op and returns the tenant data locked, or the
// configured failure.  The caller must call f.mu.Unlock when err is nil.
func (f *Fake) enter(op, tenant string) (*tenantData, error) {
	f.mu.Lock()
	hook := f.hooks[op]
	f.calls[op]++
	f.mu.Unlock()

	if hook != nil {
		hook()
	}

	f.mu.Lock()
	if err := f.fail[op]; err != nil {
		f.mu.Unlock()
		return nil, err
	}
	return f.tenant(tenant), nil
}

func notFound(method, path, detail string) error {
	return &gateway.HTTPError{
		Method:     method,
		Path:       path,
		StatusCode: http.StatusNotFound,
		Detail:     gateway.Detail{Message: detail},
	}
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func info(c workspace.Contact) workspace.ContactInfo {
	return workspace.ContactInfo{ID: c.ID, Name: c.Name, Email: c.Email}
}

func (t *tenantData) contact(id workspace.ID) (workspace.Contact, bool) {
	for _, c := range t.contacts {
		if c.ID == id {
			return c, true
		}
	}
	return workspace.Contact{}, false
}

func (t *tenantData) folder(id workspace.ID) bool {
	for _, d := range t.folders {
		if d.ID == id {
			return true
		}
	}
	return false
}

func (f *Fake) ListContacts(ctx context.Context, tenant string) ([]workspace.Contact, error) {
	t, err := f.enter("ListContacts", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.contacts), nil
}

func (f *Fake) CreateContact(ctx context.Context, tenant string, in workspace.NewContact) (workspace.Contact, error) {
	t, err := f.enter("CreateContact", tenant)
	if err != nil {
		return workspace.Contact{}, err
	}
	defer f.mu.Unlock()
	c := workspace.Contact{ID: f.id(), Name: in.Name, Email: in.Email, Phone: in.Phone, Company: in.Company}
	t.contacts = append(t.contacts, c)
	return c, nil
}

func (f *Fake) ListTasks(ctx context.Context, tenant string) ([]workspace.Task, error) {
	t, err := f.enter("ListTasks", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.tasks), nil
}

func (f *Fake) CreateTask(ctx context.Context, tenant string, in workspace.NewTask) (workspace.Task, error) {
	t, err := f.enter("CreateTask", tenant)
	if err != nil {
		return workspace.Task{}, err
	}
	defer f.mu.Unlock()
	now := f.tick()
	task := workspace.Task{
		ID:          f.id(),
		Title:       in.Title,
		Description: in.Description,
		AssigneeID:  in.AssigneeID,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.tasks = append(t.tasks, task)
	return task, nil
}

func (f *Fake) ListChannels(ctx context.Context, tenant string) ([]workspace.Channel, error) {
	t, err := f.enter("ListChannels", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	var order []string
	byName := make(map[string]*workspace.Channel)
	for i := range t.messages {
		m := t.messages[i]
		ch, ok := byName[m.Channel]
		if !ok {
			ch = &workspace.Channel{Name: m.Channel}
			byName[m.Channel] = ch
			order = append(order, m.Channel)
		}
		ch.MessageCount++
		if !m.IsRead {
			ch.UnreadCount++
		}
		if ch.LastMessage == nil || m.CreatedAt.After(ch.LastMessage.CreatedAt.Time) {
			ch.LastMessage = &m
		}
	}
	out := make([]workspace.Channel, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	return out, nil
}

func (f *Fake) ListMessages(ctx context.Context, tenant string, q gateway.MessageQuery) ([]workspace.Message, error) {
	t, err := f.enter("ListMessages", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	channel := q.Channel
	if channel == "" {
		channel = "general"
	}
	var out []workspace.Message
	for _, m := range t.messages {
		if m.Channel != channel {
			continue
		}
		if q.ThreadID == nil && m.ThreadID != nil {
			continue
		}
		if q.ThreadID != nil && (m.ThreadID == nil || *m.ThreadID != *q.ThreadID) {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt.Time)
	})
	limit := q.Limit
	if limit <= 0 {
		limit = 50
	}
	if len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []workspace.Message{}
	}
	return out, nil
}

func (f *Fake) CreateMessage(ctx context.Context, tenant string, in workspace.NewMessage) (workspace.Message, error) {
	t, err := f.enter("CreateMessage", tenant)
	if err != nil {
		return workspace.Message{}, err
	}
	defer f.mu.Unlock()
	path := "/api/" + tenant + "/messages"
	sender, ok := t.contact(in.SenderID)
	if !ok {
		return workspace.Message{}, notFound(http.MethodPost, path, "Sender not found")
	}
	m := workspace.Message{
		ID:          f.id(),
		Content:     in.Content,
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Channel:     in.Channel,
		ThreadID:    in.ThreadID,
		MessageType: "text",
		CreatedAt:   f.tick(),
	}
	si := info(sender)
	m.Sender = &si
	if in.RecipientID != nil {
		recipient, ok := t.contact(*in.RecipientID)
		if !ok {
			return workspace.Message{}, notFound(http.MethodPost, path, "Recipient not found")
		}
		ri := info(recipient)
		m.Recipient = &ri
	}
	t.messages = append(t.messages, m)
	return m, nil
}

func (f *Fake) ListDocuments(ctx context.Context, tenant string) ([]workspace.Document, error) {
	t, err := f.enter("ListDocuments", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.documents), nil
}

func sameParent(p *workspace.ID, id *workspace.ID) bool {
	if p == nil || id == nil {
		return p == nil && id == nil
	}
	return *p == *id
}

func (f *Fake) contents(t *tenantData, parent *workspace.ID) workspace.FolderContents {
	out := workspace.FolderContents{Folders: []workspace.Folder{}, Documents: []workspace.Document{}}
	for _, d := range t.folders {
		if sameParent(d.ParentID, parent) {
			out.Folders = append(out.Folders, d)
		}
	}
	for _, d := range t.documents {
		if sameParent(d.FolderID, parent) {
			out.Documents = append(out.Documents, d)
		}
	}
	sort.SliceStable(out.Folders, func(i, j int) bool { return out.Folders[i].Name < out.Folders[j].Name })
	sort.SliceStable(out.Documents, func(i, j int) bool { return out.Documents[i].Name < out.Documents[j].Name })
	out.TotalItems = len(out.Folders) + len(out.Documents)
	return out
}

func (f *Fake) RootContents(ctx context.Context, tenant string) (workspace.FolderContents, error) {
	t, err := f.enter("RootContents", tenant)
	if err != nil {
		return workspace.FolderContents{}, err
	}
	defer f.mu.Unlock()
	if !f.contentsAvailable {
		return workspace.FolderContents{}, notFound(http.MethodGet, "/api/"+tenant+"/documents/root", "Not Found")
	}
	return f.contents(t, nil), nil
}

func (f *Fake) FolderContents(ctx context.Context, tenant string, id workspace.ID) (workspace.FolderContents, error) {
	t, err := f.enter("FolderContents", tenant)
	if err != nil {
		return workspace.FolderContents{}, err
	}
	defer f.mu.Unlock()
	path := fmt.Sprintf("/api/%s/folders/%d/contents", tenant, id)
	if !f.contentsAvailable {
		return workspace.FolderContents{}, notFound(http.MethodGet, path, "Not Found")
	}
	if !t.folder(id) {
		return workspace.FolderContents{}, notFound(http.MethodGet, path, "Folder not found")
	}
	return f.contents(t, &id), nil
}

func (f *Fake) UploadDocument(ctx context.Context, tenant string, up workspace.Upload) (workspace.Document, error) {
	t, err := f.enter("UploadDocument", tenant)
	if err != nil {
		return workspace.Document{}, err
	}
	defer f.mu.Unlock()
	path := "/api/" + tenant + "/documents/upload"
	uploader, ok := t.contact(up.UploadedBy)
	if !ok {
		return workspace.Document{}, notFound(http.MethodPost, path, "Uploader not found")
	}
	if up.FolderID != nil && !t.folder(*up.FolderID) {
		return workspace.Document{}, notFound(http.MethodPost, path, "Folder not found")
	}
	n, err := io.Copy(io.Discard, up.Content)
	if err != nil {
		return workspace.Document{}, err
	}
	ui := info(uploader)
	d := workspace.Document{
		ID:        f.id(),
		Name:      up.Filename,
		FileSize:  n,
		MimeType:  "application/octet-stream",
		FolderID:  up.FolderID,
		CreatedAt: f.tick(),
		Uploader:  &ui,
	}
	t.documents = append(t.documents, d)
	return d, nil
}

func (f *Fake) DownloadURL(ctx context.Context, tenant string, id workspace.ID) (workspace.Download, error) {
	t, err := f.enter("DownloadURL", tenant)
	if err != nil {
		return workspace.Download{}, err
	}
	defer f.mu.Unlock()
	for i := range t.documents {
		if t.documents[i].ID == id {
			t.documents[i].DownloadCount++
			return workspace.Download{
				URL:      fmt.Sprintf("https://storage.example.com/%s/%d", tenant, id),
				Filename: t.documents[i].Name,
			}, nil
		}
	}
	return workspace.Download{}, notFound(http.MethodGet, fmt.Sprintf("/api/%s/documents/%d/download", tenant, id), "Document not found")
}

func (f *Fake) ListFolders(ctx context.Context, tenant string) ([]workspace.Folder, error) {
	t, err := f.enter("ListFolders", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.folders), nil
}

func (f *Fake) CreateFolder(ctx context.Context, tenant string, in workspace.NewFolder) (workspace.Folder, error) {
	t, err := f.enter("CreateFolder", tenant)
	if err != nil {
		return workspace.Folder{}, err
	}
	defer f.mu.Unlock()
	path := "/api/" + tenant + "/folders"
	if in.CreatedBy == nil {
		return workspace.Folder{}, &gateway.HTTPError{
			Method:     http.MethodPost,
			Path:       path,
			StatusCode: http.StatusUnprocessableEntity,
			Detail: gateway.Detail{Fields: []gateway.FieldError{
				{Loc: []string{"body", "created_by"}, Msg: "field required"},
			}},
		}
	}
	creator, ok := t.contact(*in.CreatedBy)
	if !ok {
		return workspace.Folder{}, notFound(http.MethodPost, path, "Creator not found")
	}
	if in.ParentID != nil && !t.folder(*in.ParentID) {
		return workspace.Folder{}, notFound(http.MethodPost, path, "Parent folder not found")
	}
	ci := info(creator)
	d := workspace.Folder{
		ID:          f.id(),
		Name:        in.Name,
		Description: in.Description,
		ParentID:    in.ParentID,
		CreatedAt:   f.tick(),
		Creator:     &ci,
	}
	t.folders = append(t.folders, d)
	return d, nil
}

func (f *Fake) ListEvents(ctx context.Context, tenant string) ([]workspace.Event, error) {
	t, err := f.enter("ListEvents", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.events), nil
}

func (f *Fake) CreateEvent(ctx context.Context, tenant string, in workspace.NewEvent) (workspace.Event, error) {
	t, err := f.enter("CreateEvent", tenant)
	if err != nil {
		return workspace.Event{}, err
	}
	defer f.mu.Unlock()
	path := "/api/" + tenant + "/events"
	if _, ok := t.contact(in.CreatedBy); !ok {
		return workspace.Event{}, notFound(http.MethodPost, path, "Creator not found")
	}
	if !in.EndTime.After(in.StartTime.Time) {
		return workspace.Event{}, &gateway.HTTPError{
			Method:     http.MethodPost,
			Path:       path,
			StatusCode: http.StatusUnprocessableEntity,
			Detail: gateway.Detail{Fields: []gateway.FieldError{
				{Loc: []string{"body", "end_time"}, Msg: "end_time must be after start_time"},
			}},
		}
	}
	e := workspace.Event{
		ID:          f.id(),
		Title:       in.Title,
		Description: in.Description,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Location:    in.Location,
		EventType:   in.EventType,
		IsAllDay:    in.IsAllDay,
		CreatedAt:   f.tick(),
		CreatedBy:   in.CreatedBy,
	}
	for _, pid := range in.ParticipantIDs {
		c, ok := t.contact(pid)
		if !ok {
			continue
		}
		e.Participants = append(e.Participants, workspace.EventParticipant{
			ID: f.id(), EventID: e.ID, ContactID: pid, Contact: info(c),
		})
	}
	t.events = append(t.events, e)
	return e, nil
}

func (f *Fake) CalendarStats(ctx context.Context, tenant string) (workspace.CalendarStats, error) {
	t, err := f.enter("CalendarStats", tenant)
	if err != nil {
		return workspace.CalendarStats{}, err
	}
	defer f.mu.Unlock()
	if t.calendarStats == nil {
		return workspace.CalendarStats{}, notFound(http.MethodGet, "/api/"+tenant+"/events/stats", "Not Found")
	}
	return *t.calendarStats, nil
}

func (f *Fake) ListProjects(ctx context.Context, tenant string) ([]workspace.Project, error) {
	t, err := f.enter("ListProjects", tenant)
	if err != nil {
		return nil, err
	}
	defer f.mu.Unlock()
	return clone(t.projects), nil
}

func (f *Fake) CreateProject(ctx context.Context, tenant string, in workspace.NewProject) (workspace.Project, error) {
	t, err := f.enter("CreateProject", tenant)
	if err != nil {
		return workspace.Project{}, err
	}
	defer f.mu.Unlock()
	path := "/api/" + tenant + "/projects"
	var fields []gateway.FieldError
	if strings.TrimSpace(in.Name) == "" {
		fields = append(fields, gateway.FieldError{Loc: []string{"body", "name"}, Msg: "field required"})
	}
	if !in.Status.Valid() {
		fields = append(fields, gateway.FieldError{Loc: []string{"body", "status"}, Msg: "invalid status"})
	}
	if !in.Priority.Valid() {
		fields = append(fields, gateway.FieldError{Loc: []string{"body", "priority"}, Msg: "invalid priority"})
	}
	if fields != nil {
		return workspace.Project{}, &gateway.HTTPError{
			Method:     http.MethodPost,
			Path:       path,
			StatusCode: http.StatusUnprocessableEntity,
			Detail:     gateway.Detail{Fields: fields},
		}
	}
	creator, ok := t.contact(in.CreatedBy)
	if !ok {
		return workspace.Project{}, notFound(http.MethodPost, path, "Creator not found")
	}
	now := f.tick()
	p := workspace.Project{
		ID:             f.id(),
		Name:           in.Name,
		Status:         in.Status,
		Priority:       in.Priority,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
		Deadline:       in.Deadline,
		Budget:         in.Budget,
		EstimatedHours: in.EstimatedHours,
		CreatedBy:      in.CreatedBy,
		ClientID:       in.ClientID,
		IsPublic:       in.IsPublic,
		Color:          in.Color,
		CreatedAt:      now,
		UpdatedAt:      now,
		Creator:        info(creator),
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	for _, mid := range in.MemberIDs {
		c, ok := t.contact(mid)
		if !ok {
			continue
		}
		p.Members = append(p.Members, workspace.ProjectMember{
			ID: f.id(), ProjectID: p.ID, ContactID: mid, Role: "member", Contact: info(c),
		})
	}
	t.projects = append(t.projects, p)
	return p, nil
}

func (f *Fake) ProjectStats(ctx context.Context, tenant string) (workspace.ProjectStats, error) {
	t, err := f.enter("ProjectStats", tenant)
	if err != nil {
		return workspace.ProjectStats{}, err
	}
	defer f.mu.Unlock()
	if t.projectStats == nil {
		return workspace.ProjectStats{}, notFound(http.MethodGet, "/api/"+tenant+"/projects/stats", "Not Found")
	}
	return *t.projectStats, nil
}
