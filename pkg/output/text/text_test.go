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

package text

import (
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	jsonout "github.com/cloudygreybeard/chromium-profile/pkg/output/json"
	"github.com/cloudygreybeard/chromium-profile/pkg/status"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

func render(t *testing.T, doc output.Document) string {
	t.Helper()
	out, err := NewWithRenderer(lipgloss.NewRenderer(io.Discard)).Render(doc)
	require.NoError(t, err)
	return string(out)
}

func TestRender_History(t *testing.T) {
	visited := time.Date(2026, 3, 4, 15, 30, 0, 0, time.Local)
	doc := output.HistoryDocument{Entries: []history.Entry{
		{URL: "https://github.com/", Title: "GitHub", VisitTime: visited, VisitCount: 3},
		{URL: "https://go.dev/", Title: "Go", VisitTime: visited, VisitCount: 1},
	}}

	got := render(t, doc)
	assert.True(t, strings.HasPrefix(got, "\n📜 Found 2 history entries:\n\n"))
	assert.Contains(t, got, "  • GitHub\n    https://github.com/\n    2026-03-04 15:30 (3×)\n\n")
	assert.Contains(t, got, "  • Go\n    https://go.dev/\n    2026-03-04 15:30\n\n")
}

func TestRender_EmptyResults(t *testing.T) {
	tests := []struct {
		doc  output.Document
		want string
	}{
		{output.HistoryDocument{}, "No history entries found.\n"},
		{output.BookmarksDocument{}, "No bookmarks found.\n"},
		{output.BookmarksDocument{Query: "rust"}, "No bookmarks matching 'rust'.\n"},
		{output.LocalTabsDocument{}, "No open tabs found.\n"},
		{output.SyncedTabsDocument{}, "No synced devices found.\n"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, render(t, tt.doc))

		data, err := jsonout.New().Render(tt.doc)
		require.NoError(t, err)
		assert.Equal(t, "[]\n", string(data))
	}
}

func TestRender_Bookmarks(t *testing.T) {
	nodes := []bookmark.Node{
		{ID: "5", ParentID: "1", Title: "Dev", IsFolder: true},
		{ID: "6", ParentID: "5", Title: "Go", URL: "https://go.dev/"},
	}

	got := render(t, output.BookmarksDocument{Nodes: nodes})
	assert.Equal(t, "\n🔖 Found 2 bookmarks:\n\n  📁 Dev (id: 5)\n  • Go\n    https://go.dev/\n", got)

	got = render(t, output.BookmarksDocument{Nodes: nodes, Query: "go"})
	assert.Equal(t, "\n🔖 Found 2 matching bookmarks:\n\n  📁 Dev\n  • Go\n    https://go.dev/\n", got)
}

func TestRender_Tabs(t *testing.T) {
	got := render(t, output.LocalTabsDocument{Tabs: []tabs.Tab{
		{Title: "Go", URL: "https://go.dev/"},
		{URL: "about:blank"},
	}})
	assert.Equal(t, "\n📑 Found 2 open tabs:\n\n  • Go\n    https://go.dev/\n  • about:blank\n", got)

	got = render(t, output.SyncedTabsDocument{Devices: []tabs.Device{
		{Name: "Pixel", Type: "phone", Tabs: []tabs.Tab{{Title: "Go", URL: "https://go.dev/"}}},
		{Name: "Desk", Type: "linux", Tabs: []tabs.Tab{}},
	}})
	assert.Equal(t, "\n📱 Pixel (Phone)\n  • Go\n    https://go.dev/\n\n📱 Desk (Linux)\n  (no tabs)\n", got)
}

func TestRender_Status(t *testing.T) {
	got := render(t, output.StatusDocument{
		Profile: "/p/Default",
		Items: []status.Item{
			{Name: "History", State: status.StateOK, Detail: "1 entries sampled"},
			{Name: "Synced tabs", State: status.StateEmpty, Detail: "No synced devices"},
		},
	})
	assert.Equal(t, "\n📊 Browser Data Status\n\nProfile: /p/Default\n\n"+
		"  ✓ History         1 entries sampled\n"+
		"  ○ Synced tabs     No synced devices\n\n", got)
}

func TestRender_Browsers(t *testing.T) {
	got := render(t, output.BrowsersDocument{
		Browsers: []output.BrowserInfo{
			{Browser: browser.Brave, Installed: true, Path: "/home/u/.config/BraveSoftware/Brave-Browser/Default", Version: "1.70.1"},
			{Browser: browser.Chrome},
		},
		Formats: []string{"json (JSON, .json)", "text (Text, .txt)"},
	})
	assert.Contains(t, got, "BROWSER")
	assert.Contains(t, got, "Brave")
	assert.Contains(t, got, "1.70.1")
	assert.Contains(t, got, "Google Chrome")
	assert.Contains(t, got, "Output formats: json (JSON, .json), text (Text, .txt)\n")
}

type otherDocument struct{}

func (otherDocument) Records() any { return []string{} }

func TestRender_Unsupported(t *testing.T) {
	_, err := New().Render(otherDocument{})
	assert.Error(t, err)
}

// Both formats must describe the same records.
func TestRender_ConsistentWithJSON(t *testing.T) {
	doc := output.HistoryDocument{Entries: []history.Entry{
		{URL: "https://a.example/", Title: "A", VisitTime: time.Now(), VisitCount: 2},
		{URL: "https://b.example/", Title: "B", VisitTime: time.Now(), VisitCount: 1},
	}}

	data, err := jsonout.New().Render(doc)
	require.NoError(t, err)
	var records []map[string]any
	require.NoError(t, json.Unmarshal(data, &records))

	text := render(t, doc)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Contains(t, text, "• "+r["title"].(string)+"\n")
		assert.Contains(t, text, r["url"].(string))
	}
	assert.Equal(t, 2, strings.Count(text, "• "))
}
