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

// Package folders navigates the document tree.  The contents of a level
// come from the service's nested-contents view when it is available, and
// are otherwise filtered out of the flat folder and document collections.
package folders

import (
	"context"
	"log/slog"
	"strconv"
	gosync "sync"

	"github.com/matta/worksync/internal/fallback"
	"github.com/matta/worksync/internal/generation"
	"github.com/matta/worksync/internal/sync"
	"github.com/matta/worksync/internal/workspace"
	"github.com/pkg/errors"
)

// RootName is the display name of the tree root.
const RootName = "Root"

var (
	// ErrUnknownFolder is returned when navigating to a folder that
	// neither the service nor the current snapshot knows.
	ErrUnknownFolder = errors.New("unknown folder")
)

// Pointer designates one level of the tree: the root, or a folder.  The
// zero value is the root.
type Pointer struct {
	id  workspace.ID
	set bool
}

// Root is the pointer to the tree root.
var Root = Pointer{}

// At returns a pointer to folder id.
func At(id workspace.ID) Pointer {
	return Pointer{id: id, set: true}
}

// AtRef returns At(*id), or Root when id is nil.
func AtRef(id *workspace.ID) Pointer {
	if id == nil {
		return Root
	}
	return At(*id)
}

// IsRoot reports whether p is the root.
func (p Pointer) IsRoot() bool {
	return !p.set
}

// ID returns the folder p points at, or false for the root.
func (p Pointer) ID() (workspace.ID, bool) {
	return p.id, p.set
}

// Ref returns the folder id as a nullable reference, nil for the root.
func (p Pointer) Ref() *workspace.ID {
	if !p.set {
		return nil
	}
	id := p.id
	return &id
}

func (p Pointer) String() string {
	if !p.set {
		return "root"
	}
	return strconv.FormatInt(int64(p.id), 10)
}

// Filter derives the contents of p from the flat collections.
func Filter(folders []workspace.Folder, documents []workspace.Document, p Pointer) workspace.FolderContents {
	return NewIndex(folders, documents).Contents(p)
}

// Resolve returns the contents of p, preferring the nested-contents view
// and taking the level from idx when the view is unavailable.  A folder
// the service cannot serve and idx does not know is ErrUnknownFolder.
func Resolve(ctx context.Context, g sync.ContentsGetter, tenant string, p Pointer,
	idx *Index, logger *slog.Logger) (fallback.Result[workspace.FolderContents], error) {
	var (
		c   workspace.FolderContents
		err error
	)
	id, isFolder := p.ID()
	if isFolder {
		c, err = g.FolderContents(ctx, tenant, id)
	} else {
		c, err = g.RootContents(ctx, tenant)
	}
	if err != nil {
		if isFolder {
			if _, known := idx.Lookup(id); !known {
				return fallback.Result[workspace.FolderContents]{}, errors.Wrapf(ErrUnknownFolder, "folder %d (%v)", id, err)
			}
		}
		if logger == nil {
			logger = slog.Default()
		}
		logger.Info("folder contents unavailable, filtering locally",
			slog.String("tenant", tenant),
			slog.String("folder", p.String()),
			slog.String("error", err.Error()))
	} else {
		if c.Folders == nil {
			c.Folders = []workspace.Folder{}
		}
		if c.Documents == nil {
			c.Documents = []workspace.Document{}
		}
	}
	return fallback.Resolve(c, err, func() workspace.FolderContents {
		return idx.Contents(p)
	}), nil
}

// View is one resolved level of the tree.
type View struct {
	Pointer    Pointer
	Name       string
	Breadcrumb []workspace.Folder
	Contents   workspace.FolderContents
	Source     fallback.Source
}

// Controller holds the current folder pointer and the view resolved for
// it.  It is safe for concurrent use.
type Controller struct {
	g      sync.ContentsGetter
	tenant string
	log    *slog.Logger
	gen    generation.Counter

	mu      gosync.Mutex
	current Pointer
	view    *View
}

// NewController returns a Controller positioned at the root with no
// view resolved yet.
func NewController(g sync.ContentsGetter, tenant string, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{g: g, tenant: tenant, log: logger.With("component", "folders")}
}

// Current returns the current pointer.
func (c *Controller) Current() Pointer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// View returns the latest resolved view, if any.
func (c *Controller) View() (View, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.view == nil {
		return View{}, false
	}
	return *c.view, true
}

// Navigate moves to p and resolves its contents, falling back to snap.
// A folder the service cannot serve and snap does not hold leaves the
// pointer where it was and returns ErrUnknownFolder.  When a later
// Navigate or Refresh started before this one finished, the result is
// dropped and generation.ErrStale returned.
func (c *Controller) Navigate(ctx context.Context, p Pointer, snap *sync.Snapshot) (View, error) {
	if snap == nil {
		return View{}, errors.New("no snapshot to navigate")
	}
	idx := NewIndex(snap.Folders, snap.Documents)

	gen := c.gen.Next()
	c.mu.Lock()
	prev := c.current
	c.current = p
	c.mu.Unlock()

	r, err := Resolve(ctx, c.g, c.tenant, p, idx, c.log)
	if err != nil {
		c.mu.Lock()
		if c.gen.IsCurrent(gen) {
			c.current = prev
		}
		c.mu.Unlock()
		return View{}, err
	}
	v := View{
		Pointer:    p,
		Name:       idx.Name(p),
		Breadcrumb: idx.Breadcrumb(p),
		Contents:   r.Value(),
		Source:     r.Source(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.gen.IsCurrent(gen) {
		c.log.Debug("dropping stale folder view", slog.String("folder", p.String()))
		return View{}, generation.ErrStale
	}
	c.view = &v
	return v, nil
}

// Refresh re-resolves the current pointer against snap.  A current
// folder that no longer exists sends the controller back to the root.
func (c *Controller) Refresh(ctx context.Context, snap *sync.Snapshot) (View, error) {
	p := c.Current()
	v, err := c.Navigate(ctx, p, snap)
	if errors.Is(err, ErrUnknownFolder) {
		return c.Navigate(ctx, Root, snap)
	}
	return v, err
}
