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

package markdown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	"github.com/cloudygreybeard/chromium-profile/pkg/status"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

func render(t *testing.T, doc output.Document) string {
	t.Helper()
	data, err := New().Render(doc)
	require.NoError(t, err)
	return string(data)
}

func TestRender_History(t *testing.T) {
	got := render(t, output.HistoryDocument{Entries: []history.Entry{{
		URL:        "https://example.com/a|b",
		Title:      "A [draft] | notes",
		VisitTime:  time.Date(2026, 5, 6, 7, 8, 0, 0, time.Local),
		VisitCount: 2,
	}}})

	assert.Equal(t, "# Browser History\n\n"+
		"| Page | Last visited | Visits |\n"+
		"|---|---|---|\n"+
		`| [A \[draft\] \| notes](https://example.com/a\|b) | 2026-05-06 07:08 | 2 |`+"\n", got)
}

func TestRender_BookmarksNested(t *testing.T) {
	added := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	got := render(t, output.BookmarksDocument{Nodes: []bookmark.Node{
		{ID: "3", Title: "Dev", IsFolder: true, FolderPath: []string{"Bookmarks bar"}},
		{ID: "4", Title: "Go", URL: "https://go.dev/", FolderPath: []string{"Bookmarks bar", "Dev"}, DateAdded: added},
		{ID: "5", Title: "", URL: "https://rust-lang.org/", FolderPath: []string{"Bookmarks bar", "Dev"}},
	}})

	assert.Equal(t, "# Bookmarks\n\n"+
		"- **Dev**\n"+
		"  - [Go](https://go.dev/) *(2025-12-24)*\n"+
		"  - [https://rust-lang.org/](https://rust-lang.org/)\n", got)
}

func TestRender_Tabs(t *testing.T) {
	got := render(t, output.SyncedTabsDocument{Devices: []tabs.Device{
		{Name: "Pixel", Type: "phone", Tabs: []tabs.Tab{{Title: "Go", URL: "https://go.dev/"}}},
		{Name: "Desk", Type: "linux"},
	}})
	assert.Equal(t, "# Synced Tabs\n\n## Pixel (phone)\n\n- [Go](https://go.dev/)\n\n## Desk (linux)\n\n*No open tabs.*\n", got)
}

func TestRender_Status(t *testing.T) {
	got := render(t, output.StatusDocument{Profile: "/p", Items: []status.Item{
		{Name: "History", State: status.StateFailed, Detail: "locked | busy"},
	}})
	assert.Contains(t, got, "| History | ✗ | locked \\| busy |\n")
}

func TestRender_Empty(t *testing.T) {
	assert.Contains(t, render(t, output.HistoryDocument{}), "*No history entries found.*")
	assert.Contains(t, render(t, output.BookmarksDocument{Query: "x"}), "# Bookmarks matching \"x\"")
	assert.Contains(t, render(t, output.LocalTabsDocument{}), "*No open tabs.*")
}
