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

package bookmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/source"
)

// FileName is the bookmarks file inside a profile directory.
const FileName = "Bookmarks"

// rootOrder is the order in which the browser shows its root folders.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

// Reader reads bookmarks from a profile directory.
type Reader struct {
	profileDir string
}

// NewReader returns a Reader for the given profile directory.
func NewReader(profileDir string) *Reader {
	return &Reader{profileDir: profileDir}
}

// Path returns the bookmarks file path.
func (r *Reader) Path() string {
	return filepath.Join(r.profileDir, FileName)
}

// Read parses the profile's bookmarks file.
func (r *Reader) Read(ctx context.Context) (*Tree, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path())
	if err != nil {
		return nil, source.Unreadable(source.KindBookmarks, r.Path(), err)
	}

	tree, err := Parse(data)
	if err != nil {
		return nil, source.Unreadable(source.KindBookmarks, r.Path(), err)
	}
	return tree, nil
}

type chromiumNode struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Name      string         `json:"name"`
	URL       string         `json:"url"`
	DateAdded string         `json:"date_added"`
	Children  []chromiumNode `json:"children"`
}

// Parse decodes the contents of a Chromium Bookmarks file.
func Parse(data []byte) (*Tree, error) {
	var chromiumData struct {
		Roots map[string]json.RawMessage `json:"roots"`
	}
	if err := json.Unmarshal(data, &chromiumData); err != nil {
		return nil, fmt.Errorf("decoding bookmarks: %w", err)
	}
	if chromiumData.Roots == nil {
		return nil, fmt.Errorf("decoding bookmarks: no roots")
	}

	tree := newTree()
	for _, key := range rootOrder {
		rootData, ok := chromiumData.Roots[key]
		if !ok {
			continue
		}
		var node chromiumNode
		if err := json.Unmarshal(rootData, &node); err != nil {
			return nil, fmt.Errorf("decoding bookmarks root %q: %w", key, err)
		}
		if node.Type == "folder" {
			addNode(tree, node, RootParentID, noParent, nil)
		}
	}

	return tree, nil
}

func addNode(tree *Tree, node chromiumNode, parentID string, parent int, path []string) {
	n := Node{
		ID:         node.ID,
		ParentID:   parentID,
		Title:      node.Name,
		DateAdded:  parseChromiumDate(node.DateAdded),
		FolderPath: path,
	}

	switch node.Type {
	case "url":
		n.URL = node.URL
		tree.add(n, parent)
	case "folder":
		n.IsFolder = true
		self := tree.add(n, parent)

		childPath := append(append([]string{}, path...), node.Name)
		for _, child := range node.Children {
			addNode(tree, child, node.ID, self, childPath)
		}
	}
}

func parseChromiumDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	chromeMicroseconds, err := strconv.ParseInt(dateStr, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return browser.ParseTime(chromeMicroseconds)
}
