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
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL + "/"}, srv.Client(), nil)
}

func TestTenantPath(t *testing.T) {
	cases := []struct {
		tenant string
		elems  []string
		want   string
	}{
		{"acme", nil, "/api/acme"},
		{"acme", []string{"folders", "7", "contents"}, "/api/acme/folders/7/contents"},
		{"a b", []string{"tasks"}, "/api/a%20b/tasks"},
	}
	for _, tc := range cases {
		if got := tenantPath(tc.tenant, tc.elems...); got != tc.want {
			t.Errorf("tenantPath(%q, %q) = %q, want %q", tc.tenant, tc.elems, got, tc.want)
		}
	}
}

func TestListContacts(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/acme/contacts", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get(requestIDHeader))
		io.WriteString(w, `[{"id":1,"name":"Ada Lovelace","email":"ada@example.com"}]`)
	})

	got, err := c.ListContacts(context.Background(), "acme")
	require.NoError(t, err)
	assert.Equal(t, []workspace.Contact{{ID: 1, Name: "Ada Lovelace", Email: "ada@example.com"}}, got)
}

func TestCreateTaskSendsNullAssignee(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			return
		}
		v, ok := body["assignee_id"]
		assert.True(t, ok, "assignee_id missing from body")
		assert.Nil(t, v)
		io.WriteString(w, `{"id":9,"title":"Write docs","status":"todo","priority":"medium","created_at":"2024-05-01T10:00:00","updated_at":"2024-05-01T10:00:00"}`)
	})

	got, err := c.CreateTask(context.Background(), "acme", workspace.NewTask{
		Title:    "Write docs",
		Status:   workspace.TaskTodo,
		Priority: workspace.TaskMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, workspace.ID(9), got.ID)
	assert.Nil(t, got.AssigneeID)
}

func TestListMessagesQuery(t *testing.T) {
	thread := workspace.ID(4)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/acme/messages", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "general", q.Get("channel"))
		assert.Equal(t, "50", q.Get("limit"))
		assert.Equal(t, "4", q.Get("thread_id"))
		io.WriteString(w, `[]`)
	})

	got, err := c.ListMessages(context.Background(), "acme", MessageQuery{Channel: "general", Limit: 50, ThreadID: &thread})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUploadDocument(t *testing.T) {
	folder := workspace.ID(3)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/acme/documents/upload", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "1", r.FormValue("uploaded_by"))
		assert.Equal(t, "3", r.FormValue("folder_id"))
		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		b, _ := io.ReadAll(f)
		assert.Equal(t, "notes.txt", hdr.Filename)
		assert.Equal(t, "hello", string(b))
		io.WriteString(w, `{"id":12,"name":"notes.txt","file_size":5,"mime_type":"text/plain","folder_id":3}`)
	})

	got, err := c.UploadDocument(context.Background(), "acme", workspace.Upload{
		Filename:   "notes.txt",
		Content:    strings.NewReader("hello"),
		UploadedBy: 1,
		FolderID:   &folder,
	})
	require.NoError(t, err)
	assert.Equal(t, workspace.ID(12), got.ID)
	require.NotNil(t, got.FolderID)
	assert.Equal(t, folder, *got.FolderID)
}

func TestUploadDocumentOmitsRootFolder(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		_, ok := r.MultipartForm.Value["folder_id"]
		assert.False(t, ok, "folder_id sent for a root upload")
		io.WriteString(w, `{"id":13,"name":"a.bin"}`)
	})

	_, err := c.UploadDocument(context.Background(), "acme", workspace.Upload{
		Filename:   "a.bin",
		Content:    strings.NewReader("x"),
		UploadedBy: 1,
	})
	require.NoError(t, err)
}

func TestDownloadURL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/acme/documents/12/download", r.URL.Path)
		io.WriteString(w, `{"download_url":"https://files.example.com/12","filename":"notes.txt"}`)
	})

	got, err := c.DownloadURL(context.Background(), "acme", 12)
	require.NoError(t, err)
	assert.Equal(t, workspace.Download{URL: "https://files.example.com/12", Filename: "notes.txt"}, got)
}

func TestNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"detail":"Not Found"}`)
	})

	_, err := c.CalendarStats(context.Background(), "acme")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, http.StatusNotFound, StatusCode(err))
	assert.Contains(t, err.Error(), "Not Found")
}

func TestDecodeDetail(t *testing.T) {
	cases := []struct {
		name string
		body string
		want Detail
	}{
		{
			name: "string",
			body: `{"detail":"Sender not found"}`,
			want: Detail{Message: "Sender not found"},
		},
		{
			name: "fields",
			body: `{"detail":[{"loc":["body","name"],"msg":"field required"},{"loc":["body","member_ids",0],"msg":"value is not a valid integer"}]}`,
			want: Detail{Fields: []FieldError{
				{Loc: []string{"body", "name"}, Msg: "field required"},
				{Loc: []string{"body", "member_ids", "0"}, Msg: "value is not a valid integer"},
			}},
		},
		{
			name: "entry without message",
			body: `{"detail":[{"type":"missing"}]}`,
			want: Detail{Fields: []FieldError{{Raw: json.RawMessage(`{"type":"missing"}`)}}},
		},
		{
			name: "object",
			body: `{"detail":{"code":7}}`,
			want: Detail{Raw: json.RawMessage(`{"code":7}`)},
		},
		{
			name: "not json",
			body: "upstream timeout\n",
			want: Detail{Message: "upstream timeout"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeDetail([]byte(tc.body)))
		})
	}
}

func TestValidationErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":[{"loc":["body","name"],"msg":"field required"}]}`)
	})

	_, err := c.CreateProject(context.Background(), "acme", workspace.NewProject{})
	require.Error(t, err)
	var herr *HTTPError
	require.True(t, errors.As(err, &herr))
	assert.Equal(t, http.StatusUnprocessableEntity, herr.StatusCode)
	assert.Len(t, herr.Detail.Fields, 1)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestContextCanceled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[]`)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTasks(ctx, "acme")
	require.Error(t, err)
	assert.Zero(t, StatusCode(err))
}
