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

// Package markdown provides an output adapter for markdown format, for
// pasting profile data into notes or handing it to an assistant as context.
package markdown

import (
	"fmt"
	"strings"

	"github.com/cloudygreybeard/chromium-profile/pkg/adapter"
	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

func init() {
	adapter.RegisterOutput(New())
}

// Adapter implements output.Adapter for markdown format.
type Adapter struct{}

// New creates a new markdown adapter.
func New() *Adapter {
	return &Adapter{}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "markdown"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Markdown"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".md", ".markdown"}
}

// Render converts a document to markdown.
func (a *Adapter) Render(doc output.Document) ([]byte, error) {
	var sb strings.Builder

	switch d := doc.(type) {
	case output.HistoryDocument:
		renderHistory(&sb, d)
	case output.BookmarksDocument:
		renderBookmarks(&sb, d)
	case output.LocalTabsDocument:
		sb.WriteString("# Open Tabs\n\n")
		renderTabs(&sb, d.Tabs)
	case output.SyncedTabsDocument:
		renderSynced(&sb, d)
	case output.StatusDocument:
		renderStatus(&sb, d)
	case output.BrowsersDocument:
		renderBrowsers(&sb, d)
	default:
		return nil, fmt.Errorf("markdown output does not support %T", doc)
	}

	return []byte(sb.String()), nil
}

func renderHistory(sb *strings.Builder, d output.HistoryDocument) {
	sb.WriteString("# Browser History\n\n")
	if len(d.Entries) == 0 {
		sb.WriteString("*No history entries found.*\n")
		return
	}

	sb.WriteString("| Page | Last visited | Visits |\n")
	sb.WriteString("|---|---|---|\n")
	for _, e := range d.Entries {
		fmt.Fprintf(sb, "| %s | %s | %d |\n",
			escapeTableCell(link(e.Title, e.URL)),
			e.VisitTime.Local().Format("2006-01-02 15:04"),
			e.VisitCount)
	}
}

func renderBookmarks(sb *strings.Builder, d output.BookmarksDocument) {
	if d.Query != "" {
		fmt.Fprintf(sb, "# Bookmarks matching %q\n\n", d.Query)
	} else {
		sb.WriteString("# Bookmarks\n\n")
	}
	if len(d.Nodes) == 0 {
		sb.WriteString("*No bookmarks found.*\n")
		return
	}

	// Indent by folder depth relative to the shallowest node, so a
	// folder's subtree starts at the margin.
	base := -1
	for _, n := range d.Nodes {
		if base < 0 || len(n.FolderPath) < base {
			base = len(n.FolderPath)
		}
	}

	for _, n := range d.Nodes {
		indent := strings.Repeat("  ", depth(n, base))
		if n.IsFolder {
			fmt.Fprintf(sb, "%s- **%s**\n", indent, n.Title)
			continue
		}
		line := indent + "- " + link(n.Title, n.URL)
		if !n.DateAdded.IsZero() {
			line += " *(" + n.DateAdded.Format("2006-01-02") + ")*"
		}
		sb.WriteString(line + "\n")
	}
}

func depth(n bookmark.Node, base int) int {
	if d := len(n.FolderPath) - base; d > 0 {
		return d
	}
	return 0
}

func renderTabs(sb *strings.Builder, list []tabs.Tab) {
	if len(list) == 0 {
		sb.WriteString("*No open tabs.*\n")
		return
	}
	for _, t := range list {
		sb.WriteString("- " + link(t.Title, t.URL) + "\n")
	}
}

func renderSynced(sb *strings.Builder, d output.SyncedTabsDocument) {
	sb.WriteString("# Synced Tabs\n")
	if len(d.Devices) == 0 {
		sb.WriteString("\n*No synced devices found.*\n")
		return
	}
	for _, dev := range d.Devices {
		fmt.Fprintf(sb, "\n## %s (%s)\n\n", dev.Name, dev.Type)
		renderTabs(sb, dev.Tabs)
	}
}

func renderStatus(sb *strings.Builder, d output.StatusDocument) {
	sb.WriteString("# Browser Data Status\n\n")
	fmt.Fprintf(sb, "Profile: `%s`\n\n", d.Profile)
	sb.WriteString("| Data | State | Detail |\n")
	sb.WriteString("|---|---|---|\n")
	for _, item := range d.Items {
		fmt.Fprintf(sb, "| %s | %s | %s |\n", item.Name, item.State.Symbol(), escapeTableCell(item.Detail))
	}
}

func renderBrowsers(sb *strings.Builder, d output.BrowsersDocument) {
	sb.WriteString("# Browsers\n\n")
	sb.WriteString("| Browser | Installed | Version | Profile |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, b := range d.Browsers {
		installed, path := "no", ""
		if b.Installed {
			installed, path = "yes", "`"+b.Path+"`"
		}
		fmt.Fprintf(sb, "| %s | %s | %s | %s |\n", b.Browser.DisplayName(), installed, b.Version, path)
	}
}

// link formats a markdown link, falling back to the URL as its text.
func link(title, url string) string {
	if title == "" {
		title = url
	}
	title = strings.ReplaceAll(title, "[", "\\[")
	title = strings.ReplaceAll(title, "]", "\\]")
	return fmt.Sprintf("[%s](%s)", title, url)
}

func escapeTableCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
