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
	"fmt"
	"path/filepath"
	"sort"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/cloudygreybeard/chromium-profile/pkg/source"
)

// SyncStoreDir is the sync LevelDB store inside a profile directory.
const SyncStoreDir = "Sync Data/LevelDB"

// sessionDataPrefix prefixes the keys of session records in the sync
// store. Metadata records use "sessions-md-" and are not needed.
const sessionDataPrefix = "sessions-dt-"

// SyncedReader reads the sessions of other devices from the sync store.
type SyncedReader struct {
	profileDir string
}

// NewSyncedReader returns a SyncedReader for the given profile directory.
func NewSyncedReader(profileDir string) *SyncedReader {
	return &SyncedReader{profileDir: profileDir}
}

// Path returns the sync store directory.
func (r *SyncedReader) Path() string {
	return filepath.Join(r.profileDir, filepath.FromSlash(SyncStoreDir))
}

// Read returns one Device per synced session, ordered by device name.
func (r *SyncedReader) Read(ctx context.Context) ([]Device, error) {
	devices, err := r.read(ctx)
	if err != nil {
		return nil, source.Unreadable(source.KindSyncedTabs, r.Path(), err)
	}
	return devices, nil
}

func (r *SyncedReader) read(ctx context.Context) ([]Device, error) {
	// The running browser holds the store's LOCK, so read a copy.
	snapshot, cleanup, err := source.SnapshotDir(r.Path())
	if err != nil {
		return nil, err
	}
	defer cleanup()

	db, err := leveldb.OpenFile(snapshot, &opt.Options{ReadOnly: true, ErrorIfMissing: true})
	if err != nil {
		return nil, fmt.Errorf("opening sync store: %w", err)
	}
	defer db.Close()

	iter := db.NewIterator(util.BytesPrefix([]byte(sessionDataPrefix)), nil)
	defer iter.Release()

	var records []sessionSpecifics
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := decodeSessionSpecifics(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", iter.Key(), err)
		}
		records = append(records, rec)
	}
	if err := iter.Error(); err != nil {
		return nil, err
	}

	return assembleDevices(records), nil
}

// assembleDevices joins session headers with their tab records. Tabs are
// listed in window and tab strip order; tab records no window refers to
// are stale and dropped.
func assembleDevices(records []sessionSpecifics) []Device {
	type session struct {
		header *sessionHeader
		tabs   map[int32]sessionTab
	}

	sessions := make(map[string]*session)
	for _, rec := range records {
		if rec.tag == "" {
			continue
		}
		s, ok := sessions[rec.tag]
		if !ok {
			s = &session{tabs: make(map[int32]sessionTab)}
			sessions[rec.tag] = s
		}
		if rec.header != nil {
			s.header = rec.header
		}
		if rec.tab != nil {
			s.tabs[rec.tab.id] = *rec.tab
		}
	}

	tags := make([]string, 0, len(sessions))
	for tag, s := range sessions {
		if s.header != nil {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)

	devices := make([]Device, 0, len(tags))
	for _, tag := range tags {
		s := sessions[tag]
		d := Device{
			Name: s.header.clientName,
			Type: deviceTypeName(s.header.deviceType),
			Tabs: []Tab{},
		}
		if d.Name == "" {
			d.Name = tag
		}

		for _, window := range s.header.windows {
			for _, id := range window {
				t, ok := s.tabs[id]
				if !ok {
					continue
				}
				nav, ok := t.current()
				if !ok || nav.url == "" {
					continue
				}
				d.Tabs = append(d.Tabs, Tab{Title: nav.title, URL: nav.url})
			}
		}

		devices = append(devices, d)
	}

	// By name; devices sharing a name stay in tag order.
	sort.SliceStable(devices, func(i, j int) bool {
		return devices[i].Name < devices[j].Name
	})

	return devices
}
