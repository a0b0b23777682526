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

package folders

import (
	"github.com/matta/worksync/internal/workspace"
)

// Index is a flat table of folders keyed by id, with parent indexes
// for the folders and documents at each level.  Folders never point at
// each other directly, so a malformed tree cannot make a lookup loop
// forever.
type Index struct {
	folders   []workspace.Folder
	documents []workspace.Document
	byID      map[workspace.ID]int

	// Positions in folders and documents by parent.  The root's
	// entries are rootFolders and rootDocs.
	children    map[workspace.ID][]int
	docsIn      map[workspace.ID][]int
	rootFolders []int
	rootDocs    []int
}

// NewIndex indexes folders and documents.  The slices are not copied and
// must not be modified afterwards.
func NewIndex(folders []workspace.Folder, documents []workspace.Document) *Index {
	x := &Index{
		folders:   folders,
		documents: documents,
		byID:      make(map[workspace.ID]int, len(folders)),
		children:  make(map[workspace.ID][]int),
		docsIn:    make(map[workspace.ID][]int),
	}
	for i, f := range folders {
		x.byID[f.ID] = i
		if f.ParentID == nil {
			x.rootFolders = append(x.rootFolders, i)
			continue
		}
		x.children[*f.ParentID] = append(x.children[*f.ParentID], i)
	}
	for i, d := range documents {
		if d.FolderID == nil {
			x.rootDocs = append(x.rootDocs, i)
			continue
		}
		x.docsIn[*d.FolderID] = append(x.docsIn[*d.FolderID], i)
	}
	return x
}

// Lookup returns the folder with id.
func (x *Index) Lookup(id workspace.ID) (workspace.Folder, bool) {
	i, ok := x.byID[id]
	if !ok {
		return workspace.Folder{}, false
	}
	return x.folders[i], true
}

// Name returns the display name of p: "Root" for the root and the
// folder's name otherwise, or "" for an unknown folder.
func (x *Index) Name(p Pointer) string {
	id, ok := p.ID()
	if !ok {
		return RootName
	}
	f, _ := x.Lookup(id)
	return f.Name
}

// Children returns the folders whose parent is p, in table order.
func (x *Index) Children(p Pointer) []workspace.Folder {
	idx := x.rootFolders
	if id, ok := p.ID(); ok {
		idx = x.children[id]
	}
	out := make([]workspace.Folder, 0, len(idx))
	for _, i := range idx {
		out = append(out, x.folders[i])
	}
	return out
}

// Documents returns the documents filed in p, in table order.
func (x *Index) Documents(p Pointer) []workspace.Document {
	idx := x.rootDocs
	if id, ok := p.ID(); ok {
		idx = x.docsIn[id]
	}
	out := make([]workspace.Document, 0, len(idx))
	for _, i := range idx {
		out = append(out, x.documents[i])
	}
	return out
}

// Contents returns the level p as the nested-contents view would.  The
// total is the sum of both list sizes.
func (x *Index) Contents(p Pointer) workspace.FolderContents {
	c := workspace.FolderContents{
		Folders:   x.Children(p),
		Documents: x.Documents(p),
	}
	c.TotalItems = len(c.Folders) + len(c.Documents)
	return c
}

// Breadcrumb returns the chain of folders from the root down to p,
// inclusive.  The root itself is not part of the chain.  A parent link
// to an unknown folder ends the chain, as does a cycle.
func (x *Index) Breadcrumb(p Pointer) []workspace.Folder {
	id, ok := p.ID()
	if !ok {
		return nil
	}
	var rev []workspace.Folder
	seen := make(map[workspace.ID]bool)
	for {
		f, ok := x.Lookup(id)
		if !ok || seen[id] {
			break
		}
		seen[id] = true
		rev = append(rev, f)
		if f.ParentID == nil {
			break
		}
		id = *f.ParentID
	}
	out := make([]workspace.Folder, len(rev))
	for i, f := range rev {
		out[len(rev)-1-i] = f
	}
	return out
}
