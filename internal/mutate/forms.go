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
	"io"
	"strconv"
	"strings"

	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultProjectColor is the color preselected for new projects.
const DefaultProjectColor = "#3B82F6"

// optionalID parses a selected-id string.  An empty selection is nil.
func optionalID(field, s string) (*workspace.ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "%s %q is not an id", field, s)
	}
	id := workspace.ID(n)
	return &id, nil
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}

func optionalTime(field, s string) (*workspace.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := workspace.ParseTime(s)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "%s: %v", field, err)
	}
	return &t, nil
}

func required(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.Wrapf(ErrInvalidInput, "%s is required", field)
	}
	return nil
}

// ContactForm is the input of a new contact.
type ContactForm struct {
	Name    string
	Email   string
	Phone   string
	Company string
}

// Payload validates f and builds the request body.
func (f ContactForm) Payload() (workspace.NewContact, error) {
	if err := required("name", f.Name); err != nil {
		return workspace.NewContact{}, err
	}
	if err := required("email", f.Email); err != nil {
		return workspace.NewContact{}, err
	}
	return workspace.NewContact{
		Name:    strings.TrimSpace(f.Name),
		Email:   strings.TrimSpace(f.Email),
		Phone:   strings.TrimSpace(f.Phone),
		Company: strings.TrimSpace(f.Company),
	}, nil
}

// TaskForm is the input of a new task.  AssigneeID is the selected
// contact id, or empty for none.
type TaskForm struct {
	Title       string
	Description string
	AssigneeID  string
	Status      workspace.TaskStatus
	Priority    workspace.TaskPriority
}

// NewTaskForm returns a TaskForm holding the defaults.
func NewTaskForm() TaskForm {
	return TaskForm{Status: workspace.TaskTodo, Priority: workspace.TaskMedium}
}

func (f TaskForm) Payload() (workspace.NewTask, error) {
	if err := required("title", f.Title); err != nil {
		return workspace.NewTask{}, err
	}
	assignee, err := optionalID("assignee", f.AssigneeID)
	if err != nil {
		return workspace.NewTask{}, err
	}
	if !f.Status.Valid() || !f.Priority.Valid() {
		return workspace.NewTask{}, errors.Wrapf(ErrInvalidInput, "task status %q or priority %q", f.Status, f.Priority)
	}
	return workspace.NewTask{
		Title:       f.Title,
		Description: f.Description,
		AssigneeID:  assignee,
		Status:      f.Status,
		Priority:    f.Priority,
	}, nil
}

// FolderForm is the input of a new folder.  Where it goes and who
// creates it come from the session.
type FolderForm struct {
	Name        string
	Description string
}

func (f FolderForm) Payload(parent, creator *workspace.ID) (workspace.NewFolder, error) {
	if err := required("name", f.Name); err != nil {
		return workspace.NewFolder{}, err
	}
	return workspace.NewFolder{
		Name:        f.Name,
		Description: f.Description,
		ParentID:    parent,
		CreatedBy:   creator,
	}, nil
}

// UploadForm is a file chosen for upload.
type UploadForm struct {
	Filename string
	Content  io.Reader
}

// fallbackUploader is sent as the uploader when the tenant has no
// contacts.
const fallbackUploader workspace.ID = 1

func (f UploadForm) Payload(folder, uploader *workspace.ID) (workspace.Upload, error) {
	if f.Content == nil || strings.TrimSpace(f.Filename) == "" {
		return workspace.Upload{}, ErrNoFile
	}
	by := fallbackUploader
	if uploader != nil {
		by = *uploader
	}
	return workspace.Upload{
		Filename:   f.Filename,
		Content:    f.Content,
		UploadedBy: by,
		FolderID:   folder,
	}, nil
}

// EventForm is the input of a new event.  Times accept the forms
// workspace.ParseTime does.
type EventForm struct {
	Title          string
	Description    string
	StartTime      string
	EndTime        string
	Location       string
	EventType      workspace.EventType
	IsAllDay       bool
	ParticipantIDs []workspace.ID
}

func NewEventForm() EventForm {
	return EventForm{EventType: workspace.EventMeeting, ParticipantIDs: []workspace.ID{}}
}

func (f EventForm) Payload(creator workspace.ID) (workspace.NewEvent, error) {
	if err := required("title", f.Title); err != nil {
		return workspace.NewEvent{}, err
	}
	start, err := workspace.ParseTime(f.StartTime)
	if err != nil {
		return workspace.NewEvent{}, errors.Wrapf(ErrInvalidInput, "start time: %v", err)
	}
	end, err := workspace.ParseTime(f.EndTime)
	if err != nil {
		return workspace.NewEvent{}, errors.Wrapf(ErrInvalidInput, "end time: %v", err)
	}
	if !f.EventType.Valid() {
		return workspace.NewEvent{}, errors.Wrapf(ErrInvalidInput, "event type %q", f.EventType)
	}
	participants := f.ParticipantIDs
	if participants == nil {
		participants = []workspace.ID{}
	}
	return workspace.NewEvent{
		Title:          f.Title,
		Description:    f.Description,
		StartTime:      start,
		EndTime:        end,
		Location:       f.Location,
		EventType:      f.EventType,
		IsAllDay:       f.IsAllDay,
		ParticipantIDs: participants,
		CreatedBy:      creator,
	}, nil
}

// ProjectForm is the input of a new project.  Numeric and date fields
// are kept as typed; empty means absent.
type ProjectForm struct {
	Name           string
	Description    string
	Status         workspace.ProjectStatus
	Priority       workspace.ProjectPriority
	ClientID       string
	Budget         string
	EstimatedHours string
	StartDate      string
	EndDate        string
	Deadline       string
	Color          string
	IsPublic       bool
	MemberIDs      []workspace.ID
}

func NewProjectForm() ProjectForm {
	return ProjectForm{
		Status:    workspace.ProjectPlanning,
		Priority:  workspace.ProjectMedium,
		Color:     DefaultProjectColor,
		MemberIDs: []workspace.ID{},
	}
}

// Payload coerces f.  Name, status and priority are left for the
// service to validate so that its report reaches the user.
func (f ProjectForm) Payload(creator workspace.ID) (workspace.NewProject, error) {
	p := workspace.NewProject{
		Name:        f.Name,
		Description: optionalString(f.Description),
		Status:      f.Status,
		Priority:    f.Priority,
		CreatedBy:   creator,
		Color:       f.Color,
		IsPublic:    f.IsPublic,
		MemberIDs:   f.MemberIDs,
	}
	if p.MemberIDs == nil {
		p.MemberIDs = []workspace.ID{}
	}

	var err error
	if p.ClientID, err = optionalID("client", f.ClientID); err != nil {
		return workspace.NewProject{}, err
	}
	if s := strings.TrimSpace(f.Budget); s != "" {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return workspace.NewProject{}, errors.Wrapf(ErrInvalidInput, "budget %q is not a number", s)
		}
		p.Budget = &d
	}
	if s := strings.TrimSpace(f.EstimatedHours); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return workspace.NewProject{}, errors.Wrapf(ErrInvalidInput, "estimated hours %q is not a whole number", s)
		}
		p.EstimatedHours = &n
	}
	if p.StartDate, err = optionalTime("start date", f.StartDate); err != nil {
		return workspace.NewProject{}, err
	}
	if p.EndDate, err = optionalTime("end date", f.EndDate); err != nil {
		return workspace.NewProject{}, err
	}
	if p.Deadline, err = optionalTime("deadline", f.Deadline); err != nil {
		return workspace.NewProject{}, err
	}
	return p, nil
}
