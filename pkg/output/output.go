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

// Package output provides the Adapter interface for rendering profile data.
//
// Commands wrap what they read in a Document and hand it to the adapter
// selected with --format. Structured adapters (json, yaml) serialize the
// document's Records; the text adapter renders each document type for a
// terminal.
//
// # Implementing an Output Adapter
//
//  1. Create a new package under pkg/output/
//  2. Implement the Adapter interface
//  3. Register via init() using adapter.RegisterOutput()
//  4. Import it in cmd/root.go to include it in the build
package output

import (
	"time"

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/status"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

// Adapter is the interface for output renderers.
type Adapter interface {
	// Name returns the identifier used with the --format flag.
	Name() string

	// DisplayName returns a human-friendly name for listings.
	DisplayName() string

	// Extensions returns file extensions for the format, default first.
	Extensions() []string

	// Render converts a document to the output format.
	Render(doc Document) ([]byte, error)
}

// Document is a command result ready for rendering.
type Document interface {
	// Records returns the serializable form of the document. It is never
	// nil, so empty results encode as an empty list.
	Records() any
}

// HistoryRecord is the serialized form of a history entry.
type HistoryRecord struct {
	URL        string `json:"url" yaml:"url"`
	Title      string `json:"title" yaml:"title"`
	VisitTime  string `json:"visit_time" yaml:"visit_time"`
	VisitCount int    `json:"visit_count" yaml:"visit_count"`
}

// HistoryDocument holds filtered history entries, most recent first.
type HistoryDocument struct {
	Entries []history.Entry
}

// Records implements Document.
func (d HistoryDocument) Records() any {
	records := make([]HistoryRecord, 0, len(d.Entries))
	for _, e := range d.Entries {
		records = append(records, HistoryRecord{
			URL:        e.URL,
			Title:      e.Title,
			VisitTime:  e.VisitTime.Format(time.RFC3339),
			VisitCount: e.VisitCount,
		})
	}
	return records
}

// BookmarkRecord is the serialized form of a bookmark or folder.
type BookmarkRecord struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	URL      string `json:"url" yaml:"url"`
	IsFolder bool   `json:"is_folder" yaml:"is_folder"`
	ParentID string `json:"parent_id" yaml:"parent_id"`
}

// BookmarksDocument holds bookmark nodes in tree order. Query is set for
// search results.
type BookmarksDocument struct {
	Nodes []bookmark.Node
	Query string
}

// Records implements Document.
func (d BookmarksDocument) Records() any {
	records := make([]BookmarkRecord, 0, len(d.Nodes))
	for _, n := range d.Nodes {
		records = append(records, BookmarkRecord{
			ID:       n.ID,
			Title:    n.Title,
			URL:      n.URL,
			IsFolder: n.IsFolder,
			ParentID: n.ParentID,
		})
	}
	return records
}

// TabRecord is the serialized form of a tab.
type TabRecord struct {
	URL   string `json:"url" yaml:"url"`
	Title string `json:"title" yaml:"title"`
}

func tabRecords(list []tabs.Tab) []TabRecord {
	records := make([]TabRecord, 0, len(list))
	for _, t := range list {
		records = append(records, TabRecord{URL: t.URL, Title: t.Title})
	}
	return records
}

// LocalTabsDocument holds the tabs open on this machine.
type LocalTabsDocument struct {
	Tabs []tabs.Tab
}

// Records implements Document.
func (d LocalTabsDocument) Records() any {
	return tabRecords(d.Tabs)
}

// DeviceRecord is the serialized form of a synced device.
type DeviceRecord struct {
	Device string      `json:"device" yaml:"device"`
	Type   string      `json:"type" yaml:"type"`
	Tabs   []TabRecord `json:"tabs" yaml:"tabs"`
}

// SyncedTabsDocument holds the tabs of other synced devices.
type SyncedTabsDocument struct {
	Devices []tabs.Device
}

// Records implements Document.
func (d SyncedTabsDocument) Records() any {
	records := make([]DeviceRecord, 0, len(d.Devices))
	for _, dev := range d.Devices {
		records = append(records, DeviceRecord{
			Device: dev.Name,
			Type:   dev.Type,
			Tabs:   tabRecords(dev.Tabs),
		})
	}
	return records
}

// StatusRecord is the serialized form of one status line.
type StatusRecord struct {
	Name   string `json:"name" yaml:"name"`
	State  string `json:"state" yaml:"state"`
	Detail string `json:"detail" yaml:"detail"`
}

// StatusReport is the serialized form of a status check.
type StatusReport struct {
	Profile string         `json:"profile" yaml:"profile"`
	Items   []StatusRecord `json:"items" yaml:"items"`
}

// StatusDocument holds the result of a status check.
type StatusDocument struct {
	Profile string
	Items   []status.Item
}

// Records implements Document.
func (d StatusDocument) Records() any {
	report := StatusReport{Profile: d.Profile, Items: make([]StatusRecord, 0, len(d.Items))}
	for _, item := range d.Items {
		report.Items = append(report.Items, StatusRecord{
			Name:   item.Name,
			State:  string(item.State),
			Detail: item.Detail,
		})
	}
	return report
}

// BrowserInfo describes one supported browser on this machine.
type BrowserInfo struct {
	Browser   browser.Browser
	Installed bool
	Path      string
	Version   string
}

// BrowserRecord is the serialized form of a BrowserInfo.
type BrowserRecord struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"display_name" yaml:"display_name"`
	Installed   bool   `json:"installed" yaml:"installed"`
	Path        string `json:"path,omitempty" yaml:"path,omitempty"`
	Version     string `json:"version,omitempty" yaml:"version,omitempty"`
}

// BrowsersDocument lists the supported browsers.
type BrowsersDocument struct {
	Browsers []BrowserInfo

	// Formats lists the registered output formats as
	// "name (Display, .ext ...)".
	Formats []string
}

// Records implements Document.
func (d BrowsersDocument) Records() any {
	records := make([]BrowserRecord, 0, len(d.Browsers))
	for _, b := range d.Browsers {
		records = append(records, BrowserRecord{
			Name:        string(b.Browser),
			DisplayName: b.Browser.DisplayName(),
			Installed:   b.Installed,
			Path:        b.Path,
			Version:     b.Version,
		})
	}
	return records
}
