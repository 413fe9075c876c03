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

// Package text provides the terminal output adapter. It is the default
// format.
package text

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cloudygreybeard/chromium-profile/pkg/adapter"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

func init() {
	adapter.RegisterOutput(New())
}

// visitTimeLayout is how visit times are shown.
const visitTimeLayout = "2006-01-02 15:04"

// Adapter implements output.Adapter for human-readable terminal output.
type Adapter struct {
	dim   lipgloss.Style
	title cases.Caser
}

// New creates a text adapter that styles for the terminal on stdout.
func New() *Adapter {
	return NewWithRenderer(lipgloss.DefaultRenderer())
}

// NewWithRenderer creates a text adapter styling for the given renderer.
func NewWithRenderer(r *lipgloss.Renderer) *Adapter {
	return &Adapter{
		dim:   r.NewStyle().Faint(true),
		title: cases.Title(language.English),
	}
}

// Name returns the adapter identifier.
func (a *Adapter) Name() string {
	return "text"
}

// DisplayName returns a human-friendly name.
func (a *Adapter) DisplayName() string {
	return "Text"
}

// Extensions returns supported file extensions.
func (a *Adapter) Extensions() []string {
	return []string{".txt"}
}

// Render formats the document for reading in a terminal.
func (a *Adapter) Render(doc output.Document) ([]byte, error) {
	var buf bytes.Buffer

	switch d := doc.(type) {
	case output.HistoryDocument:
		a.history(&buf, d)
	case output.BookmarksDocument:
		a.bookmarks(&buf, d)
	case output.LocalTabsDocument:
		a.localTabs(&buf, d)
	case output.SyncedTabsDocument:
		a.syncedTabs(&buf, d)
	case output.StatusDocument:
		a.status(&buf, d)
	case output.BrowsersDocument:
		a.browsers(&buf, d)
	default:
		return nil, fmt.Errorf("text output does not support %T", doc)
	}

	return buf.Bytes(), nil
}

func (a *Adapter) history(buf *bytes.Buffer, d output.HistoryDocument) {
	if len(d.Entries) == 0 {
		buf.WriteString("No history entries found.\n")
		return
	}

	fmt.Fprintf(buf, "\n📜 Found %d history entries:\n\n", len(d.Entries))
	for _, e := range d.Entries {
		when := e.VisitTime.Local().Format(visitTimeLayout)
		if e.VisitCount > 1 {
			when += fmt.Sprintf(" (%d×)", e.VisitCount)
		}
		fmt.Fprintf(buf, "  • %s\n", e.Title)
		fmt.Fprintf(buf, "    %s\n", a.dim.Render(e.URL))
		fmt.Fprintf(buf, "    %s\n\n", a.dim.Render(when))
	}
}

func (a *Adapter) bookmarks(buf *bytes.Buffer, d output.BookmarksDocument) {
	search := d.Query != ""

	if len(d.Nodes) == 0 {
		if search {
			fmt.Fprintf(buf, "No bookmarks matching '%s'.\n", d.Query)
		} else {
			buf.WriteString("No bookmarks found.\n")
		}
		return
	}

	if search {
		fmt.Fprintf(buf, "\n🔖 Found %d matching bookmarks:\n\n", len(d.Nodes))
	} else {
		fmt.Fprintf(buf, "\n🔖 Found %d bookmarks:\n\n", len(d.Nodes))
	}
	for _, n := range d.Nodes {
		switch {
		case n.IsFolder && search:
			fmt.Fprintf(buf, "  📁 %s\n", n.Title)
		case n.IsFolder:
			fmt.Fprintf(buf, "  📁 %s (id: %s)\n", n.Title, n.ID)
		default:
			fmt.Fprintf(buf, "  • %s\n", n.Title)
			fmt.Fprintf(buf, "    %s\n", a.dim.Render(n.URL))
		}
	}
}

func (a *Adapter) tab(buf *bytes.Buffer, t tabs.Tab) {
	if t.Title == "" {
		fmt.Fprintf(buf, "  • %s\n", t.URL)
		return
	}
	fmt.Fprintf(buf, "  • %s\n", t.Title)
	fmt.Fprintf(buf, "    %s\n", a.dim.Render(t.URL))
}

func (a *Adapter) localTabs(buf *bytes.Buffer, d output.LocalTabsDocument) {
	if len(d.Tabs) == 0 {
		buf.WriteString("No open tabs found.\n")
		return
	}

	fmt.Fprintf(buf, "\n📑 Found %d open tabs:\n\n", len(d.Tabs))
	for _, t := range d.Tabs {
		a.tab(buf, t)
	}
}

func (a *Adapter) syncedTabs(buf *bytes.Buffer, d output.SyncedTabsDocument) {
	if len(d.Devices) == 0 {
		buf.WriteString("No synced devices found.\n")
		return
	}

	for _, dev := range d.Devices {
		fmt.Fprintf(buf, "\n📱 %s (%s)\n", dev.Name, a.title.String(dev.Type))
		if len(dev.Tabs) == 0 {
			buf.WriteString("  (no tabs)\n")
			continue
		}
		for _, t := range dev.Tabs {
			a.tab(buf, t)
		}
	}
}

func (a *Adapter) status(buf *bytes.Buffer, d output.StatusDocument) {
	buf.WriteString("\n📊 Browser Data Status\n\n")
	fmt.Fprintf(buf, "Profile: %s\n\n", d.Profile)
	for _, item := range d.Items {
		fmt.Fprintf(buf, "  %s %-15s %s\n", item.State.Symbol(), item.Name, item.Detail)
	}
	buf.WriteString("\n")
}

func (a *Adapter) browsers(buf *bytes.Buffer, d output.BrowsersDocument) {
	rows := make([][]string, 0, len(d.Browsers))
	for _, b := range d.Browsers {
		installed, version, path := "no", "-", "-"
		if b.Installed {
			installed = "yes"
			path = b.Path
		}
		if b.Version != "" {
			version = b.Version
		}
		rows = append(rows, []string{b.Browser.DisplayName(), installed, version, path})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BROWSER", "INSTALLED", "VERSION", "PROFILE").
		Rows(rows...)
	buf.WriteString("Browsers:\n\n")
	buf.WriteString(t.Render())
	buf.WriteString("\n")

	if len(d.Formats) > 0 {
		buf.WriteString("\nOutput formats: ")
		buf.WriteString(strings.Join(d.Formats, ", "))
		buf.WriteString("\n")
	}
}
