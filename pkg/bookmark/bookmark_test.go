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
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudygreybeard/chromium-profile/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `{
  "checksum": "0f3c",
  "roots": {
    "synced": {"id": "3", "type": "folder", "name": "Mobile bookmarks", "children": []},
    "other": {
      "id": "2", "type": "folder", "name": "Other bookmarks",
      "children": [
        {"id": "9", "type": "url", "name": "Python docs", "url": "https://docs.python.org/3/"}
      ]
    },
    "bookmark_bar": {
      "id": "1", "type": "folder", "name": "Bookmarks bar", "date_added": "13348540800000000",
      "children": [
        {"id": "5", "type": "url", "name": "GitHub", "url": "https://github.com/"},
        {
          "id": "6", "type": "folder", "name": "Work",
          "children": [
            {"id": "7", "type": "url", "name": "Tracker", "url": "https://tracker.example.com/"},
            {"id": "8", "type": "folder", "name": "Tools", "children": [
              {"id": "10", "type": "url", "name": "Go playground", "url": "https://go.dev/play"}
            ]}
          ]
        }
      ]
    }
  },
  "version": 1
}`

func ids(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.ID)
	}
	return out
}

func parseFixture(t *testing.T) *Tree {
	t.Helper()
	tree, err := Parse([]byte(fixture))
	require.NoError(t, err)
	return tree
}

func TestParse_TreeOrder(t *testing.T) {
	tree := parseFixture(t)

	assert.Equal(t, []string{"1", "5", "6", "7", "8", "10", "2", "9", "3"}, ids(tree.Nodes))
	assert.Equal(t, 9, tree.Count())

	bar := tree.Nodes[0]
	assert.True(t, bar.IsFolder)
	assert.Equal(t, RootParentID, bar.ParentID)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), bar.DateAdded.UTC())

	playground := tree.Nodes[5]
	assert.Equal(t, "Go playground", playground.Title)
	assert.Equal(t, "8", playground.ParentID)
	assert.False(t, playground.IsFolder)
	assert.Equal(t, []string{"Bookmarks bar", "Work", "Tools"}, playground.FolderPath)
	assert.True(t, playground.DateAdded.IsZero())
}

func TestList_Folder(t *testing.T) {
	tree := parseFixture(t)

	nodes, err := tree.List("6")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "8", "10"}, ids(nodes))

	nodes, err = tree.List("3")
	require.NoError(t, err)
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)

	_, err = tree.List("404")
	assert.ErrorContains(t, err, `"404" not found`)

	_, err = tree.List("5")
	assert.Error(t, err, "a bookmark is not a folder")
}

func TestList_DuplicateIDs(t *testing.T) {
	// Chromium renumbers duplicate IDs on load, so files with them exist.
	tree, err := Parse([]byte(`{"roots": {"bookmark_bar": {"id": "1", "type": "folder", "name": "Bar", "children": [
	  {"id": "1", "type": "folder", "name": "Copy", "children": [
	    {"id": "2", "type": "url", "name": "Go", "url": "https://go.dev/"}
	  ]},
	  {"id": "2", "type": "url", "name": "Rust", "url": "https://rust-lang.org/"}
	]}}}`))
	require.NoError(t, err)

	nodes, err := tree.List("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Copy", "Go", "Rust"}, titles(nodes))

	nodes, err = tree.Search("go", "1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Go"}, titles(nodes))
}

func TestSearch(t *testing.T) {
	tree := parseFixture(t)

	nodes, err := tree.Search("GO", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"10"}, ids(nodes))

	nodes, err = tree.Search("work", "")
	require.NoError(t, err)
	assert.Equal(t, []string{"6"}, ids(nodes))

	nodes, err = tree.Search("https", "6")
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "10"}, ids(nodes))

	nodes, err = tree.Search("python", "6")
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("{"))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"version": 1}`))
	assert.Error(t, err)
}

func TestReader(t *testing.T) {
	dir := t.TempDir()
	r := NewReader(dir)

	_, err := r.Read(context.Background())
	var srcErr *source.Error
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, source.KindBookmarks, srcErr.Kind)

	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(fixture), 0o644))
	tree, err := r.Read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, tree.Count())
}

func titles(nodes []Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Title
	}
	return out
}
