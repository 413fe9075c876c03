// Copyright 2026 cloudygreybeard
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package bookmark reads the bookmark tree of a Chromium profile.
package bookmark

import (
	"fmt"
	"time"
)

// RootParentID is the parent of the top-level folders (bookmark bar,
// other bookmarks, mobile bookmarks).
const RootParentID = "0"

// Node is a bookmark or a bookmark folder.
type Node struct {
	// ID is the browser-assigned identifier, unique within the profile.
	ID string

	// ParentID is the ID of the containing folder.
	ParentID string

	// Title is the display name of the bookmark or folder.
	Title string

	// URL is the bookmark's target. Empty for folders.
	URL string

	IsFolder bool

	// DateAdded is when the node was created.
	// Zero value means the date is unknown.
	DateAdded time.Time

	// FolderPath lists the titles of the enclosing folders, outermost first.
	// Example: ["Bookmarks bar", "Work", "Tools"]
	FolderPath []string
}

// Tree is a profile's bookmarks in the browser's display order.
type Tree struct {
	// Nodes holds every node in depth-first, pre-order.
	Nodes []Node

	// index maps an ID to its first node. Children are keyed by the
	// parent's position in Nodes, so duplicated IDs cannot form a cycle.
	index    map[string]int
	children map[int][]int
}

// noParent is the position of the parent of the root folders.
const noParent = -1

func newTree() *Tree {
	return &Tree{
		Nodes:    []Node{},
		index:    make(map[string]int),
		children: make(map[int][]int),
	}
}

// add appends n below the node at position parent and returns the
// position of n.
func (t *Tree) add(n Node, parent int) int {
	i := len(t.Nodes)
	if _, dup := t.index[n.ID]; !dup {
		t.index[n.ID] = i
	}
	t.children[parent] = append(t.children[parent], i)
	t.Nodes = append(t.Nodes, n)
	return i
}

// Count returns the number of nodes, folders included.
func (t *Tree) Count() int {
	return len(t.Nodes)
}

// List returns every node, or, when folderID is set, every node below that
// folder. The folder itself is not included.
func (t *Tree) List(folderID string) ([]Node, error) {
	if folderID == "" {
		return append([]Node{}, t.Nodes...), nil
	}

	i, ok := t.index[folderID]
	if !ok || !t.Nodes[i].IsFolder {
		return nil, fmt.Errorf("bookmark folder %q not found", folderID)
	}

	result := []Node{}
	t.walk(i, func(n Node) { result = append(result, n) })
	return result, nil
}

func (t *Tree) walk(parent int, visit func(Node)) {
	for _, i := range t.children[parent] {
		visit(t.Nodes[i])
		t.walk(i, visit)
	}
}
