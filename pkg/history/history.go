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

// Package history reads a Chromium profile's browsing history.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/source"
)

// FileName is the history database inside a profile directory.
const FileName = "History"

// Entry is one visited URL.
type Entry struct {
	URL        string
	Title      string
	VisitTime  time.Time
	VisitCount int
}

// Reader reads history from a profile directory.
type Reader struct {
	profileDir string
}

// NewReader returns a Reader for the given profile directory.
func NewReader(profileDir string) *Reader {
	return &Reader{profileDir: profileDir}
}

// Path returns the history database path.
func (r *Reader) Path() string {
	return filepath.Join(r.profileDir, FileName)
}

// Read returns history entries, most recently visited first. A positive
// limit caps the number of rows read.
//
// The browser keeps the database locked while running, so a snapshot copy
// is read instead.
func (r *Reader) Read(ctx context.Context, limit int) ([]Entry, error) {
	entries, err := r.read(ctx, limit)
	if err != nil {
		return nil, source.Unreadable(source.KindHistory, r.Path(), err)
	}
	return entries, nil
}

// Search returns the entries passing f, most recent first. Day-based
// bounds are measured from now. When f only truncates, the limit is
// applied by the query itself.
func (r *Reader) Search(ctx context.Context, f Filter, now time.Time) ([]Entry, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	readLimit := 0
	if !f.HasPredicates() {
		readLimit = f.Limit
	}
	entries, err := r.Read(ctx, readLimit)
	if err != nil {
		return nil, err
	}
	return f.Apply(entries, now)
}

func (r *Reader) read(ctx context.Context, limit int) ([]Entry, error) {
	snapshot, cleanup, err := source.SnapshotFile(r.Path())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(snapshot)+"?mode=ro")
	if err != nil {
		return nil, err
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT url, title, visit_count, last_visit_time
		FROM urls
		WHERE last_visit_time > 0
		ORDER BY last_visit_time DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying urls: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var url string
		var title sql.NullString
		var visitCount sql.NullInt64
		var lastVisit int64

		if err := rows.Scan(&url, &title, &visitCount, &lastVisit); err != nil {
			return nil, err
		}

		entries = append(entries, Entry{
			URL:        url,
			Title:      title.String,
			VisitTime:  browser.ParseTime(lastVisit),
			VisitCount: int(visitCount.Int64),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
