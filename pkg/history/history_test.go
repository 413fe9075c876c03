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

package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type visit struct {
	url    string
	title  string
	count  int
	visits time.Time
}

func writeHistory(t *testing.T, profileDir string, visits []visit) {
	t.Helper()
	require.NoError(t, os.MkdirAll(profileDir, 0o755))

	db, err := sql.Open("sqlite3", filepath.Join(profileDir, FileName))
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE urls(
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0 NOT NULL,
		typed_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER NOT NULL,
		hidden INTEGER DEFAULT 0 NOT NULL)`)
	require.NoError(t, err)

	for _, v := range visits {
		_, err := db.Exec(`INSERT INTO urls(url, title, visit_count, last_visit_time) VALUES(?,?,?,?)`,
			v.url, v.title, v.count, browser.Timestamp(v.visits))
		require.NoError(t, err)
	}
}

func TestRead_OrderedByRecency(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Default")
	now := time.Now().Truncate(time.Second)
	writeHistory(t, dir, []visit{
		{"https://old.example", "Old", 1, now.Add(-48 * time.Hour)},
		{"https://new.example", "New", 3, now.Add(-time.Hour)},
		{"https://mid.example", "Mid", 2, now.Add(-24 * time.Hour)},
		{"https://never.example", "Never", 0, time.Time{}},
	})

	entries, err := NewReader(dir).Read(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "New", entries[0].Title)
	assert.Equal(t, 3, entries[0].VisitCount)
	assert.True(t, now.Add(-time.Hour).Equal(entries[0].VisitTime))
	assert.Equal(t, "Mid", entries[1].Title)
	assert.Equal(t, "Old", entries[2].Title)

	limited, err := NewReader(dir).Read(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "New", limited[0].Title)
}

func TestRead_Missing(t *testing.T) {
	dir := t.TempDir()
	_, err := NewReader(dir).Read(context.Background(), 0)

	var srcErr *source.Error
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, source.KindHistory, srcErr.Kind)
	assert.Equal(t, filepath.Join(dir, FileName), srcErr.Path)
}

func TestRead_NotADatabase(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("definitely not sqlite, just some text padding it out"), 0o644))

	_, err := NewReader(dir).Read(context.Background(), 0)
	var srcErr *source.Error
	assert.True(t, errors.As(err, &srcErr))
}
