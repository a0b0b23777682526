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

// Package workspace provides the common data objects used by the rest
// of the program: the entities a tenant's remote workspace service
// returns, and the payloads used to create them.
//
// Every value here is a read-only materialized copy of state owned by
// the remote service.  Nothing in this package mutates a collection in
// place; callers replace whole collections on refetch.
package workspace

import (
	"github.com/shopspring/decimal"
)

// ID identifies an entity within a tenant.  Identifiers are assigned
// by the remote service.
type ID int64

// Contact is a person known to the tenant.
type Contact struct {
	ID      ID     `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// ContactInfo is the abbreviated contact embedded in other entities.
type ContactInfo struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Task is a unit of work, optionally assigned to a contact.
type Task struct {
	ID          ID           `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AssigneeID  *ID          `json:"assignee_id,omitempty"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	DueDate     *Time        `json:"due_date,omitempty"`
	CreatedAt   Time         `json:"created_at"`
	UpdatedAt   Time         `json:"updated_at"`
}

// Message is a single entry in a channel's stream.  Messages are
// ordered by CreatedAt.
type Message struct {
	ID          ID           `json:"id"`
	Content     string       `json:"content"`
	SenderID    ID           `json:"sender_id"`
	RecipientID *ID          `json:"recipient_id,omitempty"`
	Channel     string       `json:"channel"`
	ThreadID    *ID          `json:"thread_id,omitempty"`
	MessageType string       `json:"message_type,omitempty"`
	IsRead      bool         `json:"is_read"`
	CreatedAt   Time         `json:"created_at"`
	Sender      *ContactInfo `json:"sender,omitempty"`
	Recipient   *ContactInfo `json:"recipient,omitempty"`
}

// Channel is the per-channel aggregate returned by the service.  It is
// never persisted by itself.
type Channel struct {
	Name         string   `json:"channel"`
	MessageCount int      `json:"message_count"`
	UnreadCount  int      `json:"unread_count"`
	LastMessage  *Message `json:"last_message,omitempty"`
}

// Folder is a node of the document tree.  A nil ParentID places the
// folder at the root.
type Folder struct {
	ID          ID           `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	ParentID    *ID          `json:"parent_id,omitempty"`
	IsShared    bool         `json:"is_shared"`
	CreatedAt   Time         `json:"created_at"`
	Creator     *ContactInfo `json:"creator,omitempty"`
}

// Document is a leaf of the document tree.  A nil FolderID places the
// document at the root.
type Document struct {
	ID            ID           `json:"id"`
	Name          string       `json:"name"`
	FileSize      int64        `json:"file_size"`
	MimeType      string       `json:"mime_type"`
	FolderID      *ID          `json:"folder_id,omitempty"`
	IsPublic      bool         `json:"is_public"`
	DownloadCount int          `json:"download_count"`
	CreatedAt     Time         `json:"created_at"`
	Uploader      *ContactInfo `json:"uploader,omitempty"`
}

// FolderContents enumerates the immediate children of one level of the
// document tree.  It is transient and recomputed on every navigation.
type FolderContents struct {
	Folders    []Folder   `json:"folders"`
	Documents  []Document `json:"documents"`
	TotalItems int        `json:"total_items"`
}

// Download is the resolved location of a document's content.
type Download struct {
	URL      string `json:"download_url"`
	Filename string `json:"filename,omitempty"`
}

// Event is a calendar entry.
type Event struct {
	ID           ID                 `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	StartTime    Time               `json:"start_time"`
	EndTime      Time               `json:"end_time"`
	Location     string             `json:"location,omitempty"`
	EventType    EventType          `json:"event_type"`
	IsAllDay     bool               `json:"is_all_day"`
	CreatedAt    Time               `json:"created_at"`
	CreatedBy    ID                 `json:"created_by"`
	Participants []EventParticipant `json:"participants"`
}

// EventParticipant links a contact to an event.
type EventParticipant struct {
	ID        ID          `json:"id"`
	EventID   ID          `json:"event_id"`
	ContactID ID          `json:"contact_id"`
	Contact   ContactInfo `json:"contact"`
}

// CalendarStats are the calendar aggregates.  The field set is the
// same whether the service computed them or they were derived locally.
type CalendarStats struct {
	TotalEvents     int `json:"total_events"`
	UpcomingEvents  int `json:"upcoming_events"`
	EventsThisWeek  int `json:"events_this_week"`
	EventsThisMonth int `json:"events_this_month"`
}

// Project groups contacts, tasks and documents under a shared goal.
type Project struct {
	ID             ID               `json:"id"`
	Name           string           `json:"name"`
	Description    string           `json:"description,omitempty"`
	Status         ProjectStatus    `json:"status"`
	Priority       ProjectPriority  `json:"priority"`
	StartDate      *Time            `json:"start_date,omitempty"`
	EndDate        *Time            `json:"end_date,omitempty"`
	Deadline       *Time            `json:"deadline,omitempty"`
	Budget         *decimal.Decimal `json:"budget,omitempty"`
	EstimatedHours *int             `json:"estimated_hours,omitempty"`
	CreatedBy      ID               `json:"created_by"`
	ClientID       *ID              `json:"client_id,omitempty"`
	IsPublic       bool             `json:"is_public"`
	IsArchived     bool             `json:"is_archived"`
	Color          string           `json:"color"`
	CreatedAt      Time             `json:"created_at"`
	UpdatedAt      Time             `json:"updated_at"`
	Creator        ContactInfo      `json:"creator"`
	Client         *ContactInfo     `json:"client,omitempty"`
	Members        []ProjectMember  `json:"members"`
}

// ProjectMember links a contact to a project with a role.
type ProjectMember struct {
	ID         ID               `json:"id"`
	ProjectID  ID               `json:"project_id"`
	ContactID  ID               `json:"contact_id"`
	Role       string           `json:"role"`
	JoinedAt   *Time            `json:"joined_at,omitempty"`
	HourlyRate *decimal.Decimal `json:"hourly_rate,omitempty"`
	Contact    ContactInfo      `json:"contact"`
}

// ProjectStats are the project aggregates.  Like CalendarStats the
// shape does not depend on where the numbers came from.
type ProjectStats struct {
	TotalProjects      int                     `json:"total_projects"`
	ActiveProjects     int                     `json:"active_projects"`
	CompletedProjects  int                     `json:"completed_projects"`
	OverdueProjects    int                     `json:"overdue_projects"`
	ProjectsByStatus   map[ProjectStatus]int   `json:"projects_by_status"`
	ProjectsByPriority map[ProjectPriority]int `json:"projects_by_priority"`
}
