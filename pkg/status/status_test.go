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

package status

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudygreybeard/chromium-profile/pkg/profiletest"
)

func TestCheck_AllReadable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Default")
	profiletest.WriteHistory(t, dir,
		profiletest.Visit{URL: "https://a.example/", Title: "A", Count: 1, Time: time.Now().Add(-time.Hour)},
		profiletest.Visit{URL: "https://b.example/", Title: "B", Count: 1, Time: time.Now()},
	)
	profiletest.WriteBookmarks(t, dir,
		profiletest.Bookmark{Name: "Go", URL: "https://go.dev/"},
		profiletest.Bookmark{Name: "Docs", Children: []profiletest.Bookmark{{Name: "pkg", URL: "https://pkg.go.dev/"}}},
	)
	profiletest.WriteSession(t, dir, profiletest.Tab{URL: "https://go.dev/", Title: "Go"})
	profiletest.WriteSyncStore(t, dir,
		profiletest.Device{Name: "Phone", Type: 6, Tabs: []profiletest.Tab{{URL: "https://m.example/"}, {URL: "https://n.example/"}}},
	)

	items := Check(context.Background(), dir, DefaultCheckers()...)
	assert.Equal(t, []Item{
		{Name: "History", State: StateOK, Detail: "1 entries sampled"},
		{Name: "Bookmarks", State: StateOK, Detail: "4 items"},
		{Name: "Local tabs", State: StateOK, Detail: "1 tabs"},
		{Name: "Synced tabs", State: StateOK, Detail: "1 devices, 2 tabs"},
	}, items)
}

func TestCheck_FailuresAreIndependent(t *testing.T) {
	dir := t.TempDir()
	profiletest.WriteBookmarks(t, dir, profiletest.Bookmark{Name: "Go", URL: "https://go.dev/"})
	profiletest.WriteSyncStore(t, dir)

	items := Check(context.Background(), dir, DefaultCheckers()...)
	require.Len(t, items, 4)

	assert.Equal(t, StateFailed, items[0].State)
	assert.Contains(t, items[0].Detail, "history unreadable")
	assert.Equal(t, Item{Name: "Bookmarks", State: StateOK, Detail: "2 items"}, items[1])
	assert.Equal(t, StateFailed, items[2].State)
	assert.Contains(t, items[2].Detail, "local tabs unreadable")
	assert.Equal(t, Item{Name: "Synced tabs", State: StateEmpty, Detail: "No synced devices"}, items[3])
}

func TestCheck_CheckerError(t *testing.T) {
	checker := Checker{Name: "Broken", Run: func(context.Context, string) (State, string, error) {
		return StateOK, "ignored", errors.New("boom")
	}}

	items := Check(context.Background(), t.TempDir(), checker)
	assert.Equal(t, []Item{{Name: "Broken", State: StateFailed, Detail: "boom"}}, items)
}

func TestStateSymbol(t *testing.T) {
	assert.Equal(t, "✓", StateOK.Symbol())
	assert.Equal(t, "✗", StateFailed.Symbol())
	assert.Equal(t, "○", StateEmpty.Symbol())
}
