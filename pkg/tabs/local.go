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
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudygreybeard/chromium-profile/pkg/source"
)

const (
	// SessionsDir holds the session files of current Chromium versions.
	SessionsDir = "Sessions"

	// legacySessionFile is where older versions keep the current session.
	legacySessionFile = "Current Session"

	sessionFilePrefix = "Session_"
)

// LocalReader reads the tabs open in the browser on this machine.
type LocalReader struct {
	profileDir string
}

// NewLocalReader returns a LocalReader for the given profile directory.
func NewLocalReader(profileDir string) *LocalReader {
	return &LocalReader{profileDir: profileDir}
}

// Path returns the session file that would be read, or the sessions
// directory when none exists.
func (r *LocalReader) Path() string {
	if path, err := latestSessionFile(r.profileDir); err == nil {
		return path
	}
	return filepath.Join(r.profileDir, SessionsDir)
}

// Read returns the open tabs of the newest session file.
func (r *LocalReader) Read(ctx context.Context) ([]Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := latestSessionFile(r.profileDir)
	if err != nil {
		return nil, source.Unreadable(source.KindLocalTabs, filepath.Join(r.profileDir, SessionsDir), err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, source.Unreadable(source.KindLocalTabs, path, err)
	}

	tabs, err := ParseSession(data)
	if err != nil {
		return nil, source.Unreadable(source.KindLocalTabs, path, err)
	}
	return tabs, nil
}

// latestSessionFile picks the most recently written Sessions/Session_*
// file, falling back to the legacy "Current Session" file.
func latestSessionFile(profileDir string) (string, error) {
	dir := filepath.Join(profileDir, SessionsDir)
	entries, err := os.ReadDir(dir)
	if err == nil {
		var newest string
		var newestInfo fs.FileInfo
		for _, entry := range entries {
			if !entry.Type().IsRegular() || !strings.HasPrefix(entry.Name(), sessionFilePrefix) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if newestInfo == nil || info.ModTime().After(newestInfo.ModTime()) ||
				(info.ModTime().Equal(newestInfo.ModTime()) && entry.Name() > newestInfo.Name()) {
				newest = filepath.Join(dir, entry.Name())
				newestInfo = info
			}
		}
		if newest != "" {
			return newest, nil
		}
	}

	legacy := filepath.Join(profileDir, legacySessionFile)
	if _, err := os.Stat(legacy); err == nil {
		return legacy, nil
	}

	return "", fmt.Errorf("no session file found: %w", fs.ErrNotExist)
}
