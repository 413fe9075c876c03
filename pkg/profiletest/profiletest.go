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

// Package profiletest writes small browser profile directories for tests
// of packages that read several kinds of profile data.
package profiletest

import (
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"
	"unicode/utf16"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
)

// Visit is a row of the history database.
type Visit struct {
	URL   string
	Title string
	Count int
	Time  time.Time
}

// WriteHistory creates the profile's History database with the given rows.
func WriteHistory(t testing.TB, profileDir string, visits ...Visit) {
	t.Helper()
	require.NoError(t, os.MkdirAll(profileDir, 0o755))

	db, err := sql.Open("sqlite3", filepath.Join(profileDir, "History"))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL)`)
	require.NoError(t, err)

	for _, v := range visits {
		_, err := db.Exec(`INSERT INTO urls(url, title, visit_count, last_visit_time) VALUES(?,?,?,?)`,
			v.URL, v.Title, v.Count, browser.Timestamp(v.Time))
		require.NoError(t, err)
	}
}

// Bookmark is a bookmark, or a folder when Children is non-nil.
type Bookmark struct {
	Name     string
	URL      string
	Children []Bookmark
}

// WriteBookmarks creates the profile's Bookmarks file with the given
// entries in the bookmarks bar. IDs are assigned in tree order starting
// at 1 for the bookmarks bar itself.
func WriteBookmarks(t testing.TB, profileDir string, bar ...Bookmark) {
	t.Helper()
	require.NoError(t, os.MkdirAll(profileDir, 0o755))

	next := 0
	var encode func(b Bookmark) map[string]any
	encode = func(b Bookmark) map[string]any {
		next++
		node := map[string]any{"id": strconv.Itoa(next), "name": b.Name}
		if b.Children == nil {
			node["type"] = "url"
			node["url"] = b.URL
			return node
		}
		children := []any{}
		for _, c := range b.Children {
			children = append(children, encode(c))
		}
		node["type"] = "folder"
		node["children"] = children
		return node
	}

	doc := map[string]any{
		"version": 1,
		"roots": map[string]any{
			"bookmark_bar": encode(Bookmark{Name: "Bookmarks bar", Children: append([]Bookmark{}, bar...)}),
		},
	}
	data, err := json.MarshalIndent(doc, "", "   ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(profileDir, "Bookmarks"), data, 0o644))
}

// Tab is an open tab.
type Tab struct {
	URL   string
	Title string
}

// WriteSession creates a session file in the profile's Sessions directory
// with the tabs open in a single window.
func WriteSession(t testing.TB, profileDir string, tabs ...Tab) {
	t.Helper()
	dir := filepath.Join(profileDir, "Sessions")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	buf := []byte("SNSS")
	buf = binary.LittleEndian.AppendUint32(buf, 3)
	command := func(id byte, payload []byte) {
		buf = binary.LittleEndian.AppendUint16(buf, uint16(len(payload)+1))
		buf = append(buf, id)
		buf = append(buf, payload...)
	}

	for i, tab := range tabs {
		id := int32(i + 1)
		command(0, int32s(1, id))
		command(2, int32s(id, int32(i)))
		command(6, navigationPickle(id, tab))
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Session_13390000000000000"), buf, 0o644))
}

func int32s(vs ...int32) []byte {
	var b []byte
	for _, v := range vs {
		b = binary.LittleEndian.AppendUint32(b, uint32(v))
	}
	return b
}

func align(b []byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, 0)
	}
	return b
}

func navigationPickle(tabID int32, tab Tab) []byte {
	body := int32s(tabID, 0, int32(len(tab.URL)))
	body = align(append(body, tab.URL...))

	units := utf16.Encode([]rune(tab.Title))
	body = append(body, int32s(int32(len(units)))...)
	for _, u := range units {
		body = binary.LittleEndian.AppendUint16(body, u)
	}
	body = align(body)

	return append(int32s(int32(len(body))), body...)
}

// Device is a synced device and its open tabs.
type Device struct {
	Name string

	// Type is the sync_pb device type, e.g. 3 for Linux or 6 for a phone.
	Type int
	Tabs []Tab
}

// WriteSyncStore creates the profile's sync LevelDB store holding a
// session for each device, all of its tabs in one window.
func WriteSyncStore(t testing.TB, profileDir string, devices ...Device) {
	t.Helper()

	db, err := leveldb.OpenFile(filepath.Join(profileDir, "Sync Data", "LevelDB"), nil)
	require.NoError(t, err)
	defer db.Close()

	for i, d := range devices {
		tag := fmt.Sprintf("session_tag_%d", i)

		var window []byte
		for j := range d.Tabs {
			window = protowire.AppendTag(window, 4, protowire.VarintType)
			window = protowire.AppendVarint(window, uint64(j))
		}
		var header []byte
		header = protowire.AppendTag(header, 2, protowire.BytesType)
		header = protowire.AppendBytes(header, window)
		header = protowire.AppendTag(header, 3, protowire.BytesType)
		header = protowire.AppendString(header, d.Name)
		header = protowire.AppendTag(header, 4, protowire.VarintType)
		header = protowire.AppendVarint(header, uint64(d.Type))
		require.NoError(t, db.Put([]byte("sessions-dt-"+tag), specifics(tag, 2, header), nil))

		for j, tab := range d.Tabs {
			var nav []byte
			nav = protowire.AppendTag(nav, 2, protowire.BytesType)
			nav = protowire.AppendString(nav, tab.URL)
			nav = protowire.AppendTag(nav, 4, protowire.BytesType)
			nav = protowire.AppendString(nav, tab.Title)

			var rec []byte
			rec = protowire.AppendTag(rec, 1, protowire.VarintType)
			rec = protowire.AppendVarint(rec, uint64(j))
			rec = protowire.AppendTag(rec, 7, protowire.BytesType)
			rec = protowire.AppendBytes(rec, nav)

			key := fmt.Sprintf("sessions-dt-%s-%d", tag, j)
			require.NoError(t, db.Put([]byte(key), specifics(tag, 3, rec), nil))
		}
	}
}

func specifics(tag string, field protowire.Number, msg []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, 1, protowire.BytesType)
	b = protowire.AppendString(b, tag)
	b = protowire.AppendTag(b, field, protowire.BytesType)
	b = protowire.AppendBytes(b, msg)
	return b
}
