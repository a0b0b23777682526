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

package workspace

import (
	"io"

	"github.com/shopspring/decimal"
)

// NewContact is the body of a create-contact request.
type NewContact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
}

// NewTask is the body of a create-task request.  A nil AssigneeID is
// sent as null.
type NewTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AssigneeID  *ID          `json:"assignee_id"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
}

// NewMessage is the body of a create-message request.  A nil
// RecipientID broadcasts to the whole channel.
type NewMessage struct {
	Content     string `json:"content"`
	SenderID    ID     `json:"sender_id"`
	Channel     string `json:"channel"`
	RecipientID *ID    `json:"recipient_id"`
	ThreadID    *ID    `json:"thread_id,omitempty"`
}

// NewFolder is the body of a create-folder request.  A nil ParentID
// creates the folder at the root.
type NewFolder struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    *ID    `json:"parent_id"`
	CreatedBy   *ID    `json:"created_by"`
}

// NewEvent is the body of a create-event request.
type NewEvent struct {
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	StartTime      Time      `json:"start_time"`
	EndTime        Time      `json:"end_time"`
	Location       string    `json:"location,omitempty"`
	EventType      EventType `json:"event_type"`
	IsAllDay       bool      `json:"is_all_day"`
	ParticipantIDs []ID      `json:"participant_ids"`
	CreatedBy      ID        `json:"created_by"`
}

// NewProject is the body of a create-project request.  Optional
// numeric and date fields are sent as null when absent, never as zero.
type NewProject struct {
	Name           string           `json:"name"`
	Description    *string          `json:"description"`
	Status         ProjectStatus    `json:"status"`
	Priority       ProjectPriority  `json:"priority"`
	CreatedBy      ID               `json:"created_by"`
	ClientID       *ID              `json:"client_id"`
	Budget         *decimal.Decimal `json:"budget"`
	EstimatedHours *int             `json:"estimated_hours"`
	StartDate      *Time            `json:"start_date"`
	EndDate        *Time            `json:"end_date"`
	Deadline       *Time            `json:"deadline"`
	Color          string           `json:"color"`
	IsPublic       bool             `json:"is_public"`
	MemberIDs      []ID             `json:"member_ids"`
}

// Upload describes a document upload.  The content is streamed as the
// "file" part of a multipart form.
type Upload struct {
	Filename   string
	Content    io.Reader
	UploadedBy ID
	FolderID   *ID
}
