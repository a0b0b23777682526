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

// TaskStatus is the workflow state of a Task.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

// Valid reports whether s is a known task status.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

// TaskPriority ranks a Task.
type TaskPriority string

const (
	TaskLow    TaskPriority = "low"
	TaskMedium TaskPriority = "medium"
	TaskHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case TaskLow, TaskMedium, TaskHigh:
		return true
	}
	return false
}

// EventType classifies an Event.
type EventType string

const (
	EventMeeting      EventType = "meeting"
	EventTaskDeadline EventType = "task_deadline"
	EventHoliday      EventType = "holiday"
	EventAppointment  EventType = "appointment"
	EventReminder     EventType = "reminder"
)

func (t EventType) Valid() bool {
	switch t {
	case EventMeeting, EventTaskDeadline, EventHoliday, EventAppointment, EventReminder:
		return true
	}
	return false
}

// ProjectStatus is the lifecycle state of a Project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "planning"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

// ProjectStatuses lists every project status in display order.
var ProjectStatuses = []ProjectStatus{
	ProjectPlanning, ProjectActive, ProjectOnHold, ProjectCompleted, ProjectCancelled,
}

func (s ProjectStatus) Valid() bool {
	for _, v := range ProjectStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ProjectPriority ranks a Project.
type ProjectPriority string

const (
	ProjectLow      ProjectPriority = "low"
	ProjectMedium   ProjectPriority = "medium"
	ProjectHigh     ProjectPriority = "high"
	ProjectCritical ProjectPriority = "critical"
)

// ProjectPriorities lists every project priority from lowest to highest.
var ProjectPriorities = []ProjectPriority{
	ProjectLow, ProjectMedium, ProjectHigh, ProjectCritical,
}

func (p ProjectPriority) Valid() bool {
	for _, v := range ProjectPriorities {
		if p == v {
			return true
		}
	}
	return false
}
