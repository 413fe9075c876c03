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

package tabs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"google.golang.org/protobuf/encoding/protowire"

	"github.com/cloudygreybeard/chromium-profile/pkg/source"
)

func encodeNavigation(url, title string) []byte {
	var b []byte
	b = protowire.AppendTag(b, navigationVirtualURL, protowire.BytesType)
	b = protowire.AppendString(b, url)
	b = protowire.AppendTag(b, navigationTitle, protowire.BytesType)
	b = protowire.AppendString(b, title)
	return b
}

func encodeTabRecord(tag string, id int32, current int, navs ...[]byte) []byte {
	var tab []byte
	tab = protowire.AppendTag(tab, tabID, protowire.VarintType)
	tab = protowire.AppendVarint(tab, uint64(id))
	if current >= 0 {
		tab = protowire.AppendTag(tab, tabCurrentNavigationIndex, protowire.VarintType)
		tab = protowire.AppendVarint(tab, uint64(current))
	}
	for _, nav := range navs {
		tab = protowire.AppendTag(tab, tabNavigation, protowire.BytesType)
		tab = protowire.AppendBytes(tab, nav)
	}

	var b []byte
	b = protowire.AppendTag(b, specificsSessionTag, protowire.BytesType)
	b = protowire.AppendString(b, tag)
	b = protowire.AppendTag(b, specificsTab, protowire.BytesType)
	b = protowire.AppendBytes(b, tab)
	return b
}

// encodeHeaderRecord writes the first window packed and the rest unpacked,
// as both encodings occur in practice.
func encodeHeaderRecord(tag, name string, deviceType int, windows ...[]int32) []byte {
	var header []byte
	for i, tabs := range windows {
		var window []byte
		if i == 0 {
			var packed []byte
			for _, id := range tabs {
				packed = protowire.AppendVarint(packed, uint64(id))
			}
			window = protowire.AppendTag(window, windowTab, protowire.BytesType)
			window = protowire.AppendBytes(window, packed)
		} else {
			for _, id := range tabs {
				window = protowire.AppendTag(window, windowTab, protowire.VarintType)
				window = protowire.AppendVarint(window, uint64(id))
			}
		}
		header = protowire.AppendTag(header, headerWindow, protowire.BytesType)
		header = protowire.AppendBytes(header, window)
	}
	if name != "" {
		header = protowire.AppendTag(header, headerClientName, protowire.BytesType)
		header = protowire.AppendString(header, name)
	}
	header = protowire.AppendTag(header, headerDeviceType, protowire.VarintType)
	header = protowire.AppendVarint(header, uint64(deviceType))

	var b []byte
	b = protowire.AppendTag(b, specificsSessionTag, protowire.BytesType)
	b = protowire.AppendString(b, tag)
	b = protowire.AppendTag(b, specificsHeader, protowire.BytesType)
	b = protowire.AppendBytes(b, header)
	return b
}

func writeSyncStore(t *testing.T, profileDir string, records map[string][]byte) {
	t.Helper()

	db, err := leveldb.OpenFile(filepath.Join(profileDir, filepath.FromSlash(SyncStoreDir)), nil)
	require.NoError(t, err)
	for key, value := range records {
		require.NoError(t, db.Put([]byte(key), value, nil))
	}
	require.NoError(t, db.Close())
}

func TestSyncedReader_OrdersByNameThenTag(t *testing.T) {
	profile := t.TempDir()
	writeSyncStore(t, profile, map[string][]byte{
		"sessions-dt-zz": encodeHeaderRecord("zz", "Laptop", 3),
		"sessions-dt-aa": encodeHeaderRecord("aa", "Laptop", 6),
		"sessions-dt-mm": encodeHeaderRecord("mm", "Desktop", 3),
	})

	devices, err := NewSyncedReader(profile).Read(context.Background())
	require.NoError(t, err)
	require.Len(t, devices, 3)
	assert.Equal(t, "Desktop", devices[0].Name)
	assert.Equal(t, []string{"Laptop", "phone"}, []string{devices[1].Name, devices[1].Type})
	assert.Equal(t, []string{"Laptop", "linux"}, []string{devices[2].Name, devices[2].Type})
}

func TestSyncedReader_Read(t *testing.T) {
	profile := t.TempDir()
	writeSyncStore(t, profile, map[string][]byte{
		"sessions-dt-phone":      encodeHeaderRecord("phone", "Pixel 8", 6, []int32{1}),
		"sessions-dt-phone-1":    encodeTabRecord("phone", 1, -1, encodeNavigation("https://m.example/", "Mobile")),
		"sessions-dt-laptop":     encodeHeaderRecord("laptop", "Work Laptop", 3, []int32{2, 1}, []int32{3}),
		"sessions-dt-laptop-1":   encodeTabRecord("laptop", 1, 0, encodeNavigation("https://go.dev/", "Go"), encodeNavigation("https://go.dev/doc/", "Docs")),
		"sessions-dt-laptop-2":   encodeTabRecord("laptop", 2, 1, encodeNavigation("https://a.example/", "A")),
		"sessions-dt-laptop-3":   encodeTabRecord("laptop", 3, 0, encodeNavigation("https://b.example/", "B")),
		"sessions-dt-laptop-9":   encodeTabRecord("laptop", 9, 0, encodeNavigation("https://stale.example/", "Stale")),
		"sessions-dt-orphan-1":   encodeTabRecord("orphan", 1, 0, encodeNavigation("https://orphan.example/", "Orphan")),
		"sessions-md-laptop":     []byte("not a session record"),
		"sessions-dt-nameless":   encodeHeaderRecord("nameless", "", 42),
		"bookmarks-dt-unrelated": []byte{0xff},
	})

	devices, err := NewSyncedReader(profile).Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []Device{
		{Name: "Pixel 8", Type: "phone", Tabs: []Tab{{Title: "Mobile", URL: "https://m.example/"}}},
		{Name: "Work Laptop", Type: "linux", Tabs: []Tab{
			{Title: "A", URL: "https://a.example/"},
			{Title: "Go", URL: "https://go.dev/"},
			{Title: "B", URL: "https://b.example/"},
		}},
		{Name: "nameless", Type: "unknown", Tabs: []Tab{}},
	}, devices)
	assert.Equal(t, 4, TabCount(devices))
}

func TestSyncedReader_EmptyStore(t *testing.T) {
	profile := t.TempDir()
	writeSyncStore(t, profile, map[string][]byte{"other-key": []byte("x")})

	devices, err := NewSyncedReader(profile).Read(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestSyncedReader_MissingStore(t *testing.T) {
	r := NewSyncedReader(t.TempDir())

	_, err := r.Read(context.Background())
	var srcErr *source.Error
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, source.KindSyncedTabs, srcErr.Kind)
	assert.Equal(t, r.Path(), srcErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSyncedReader_CorruptRecord(t *testing.T) {
	profile := t.TempDir()
	writeSyncStore(t, profile, map[string][]byte{"sessions-dt-bad": {0x0a, 0x10, 'x'}})

	_, err := NewSyncedReader(profile).Read(context.Background())
	assert.ErrorContains(t, err, "sessions-dt-bad")
}

func TestSessionTabCurrent(t *testing.T) {
	navs := []navigation{{url: "a"}, {url: "b"}}

	nav, ok := sessionTab{currentNav: 0, navs: navs}.current()
	assert.True(t, ok)
	assert.Equal(t, "a", nav.url)

	nav, _ = sessionTab{currentNav: 7, navs: navs}.current()
	assert.Equal(t, "b", nav.url)

	_, ok = sessionTab{}.current()
	assert.False(t, ok)
}
