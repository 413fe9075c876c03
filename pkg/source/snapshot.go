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

package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// SnapshotFile copies a SQLite database and its -wal/-shm sidecars into a
// fresh temporary directory. The returned cleanup removes the copy.
func SnapshotFile(src string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "chromium-profile-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	target := filepath.Join(dir, filepath.Base(src))
	if err := copyFile(src, target); err != nil {
		cleanup()
		return "", nil, err
	}

	// Recent writes may still live in the WAL.
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := copyFileIfExists(src+suffix, target+suffix); err != nil {
			cleanup()
			return "", nil, err
		}
	}

	return target, cleanup, nil
}

// SnapshotDir copies the regular files of src, except LOCK, into a fresh
// temporary directory. It is used for LevelDB stores, whose LOCK file is
// held by the running browser.
func SnapshotDir(src string) (string, func(), error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return "", nil, err
	}

	dir, err := os.MkdirTemp("", "chromium-profile-")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	for _, entry := range entries {
		if !entry.Type().IsRegular() || entry.Name() == "LOCK" {
			continue
		}
		if err := copyFile(filepath.Join(src, entry.Name()), filepath.Join(dir, entry.Name())); err != nil {
			cleanup()
			return "", nil, fmt.Errorf("copying %s: %w", entry.Name(), err)
		}
	}

	return dir, cleanup, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}

func copyFileIfExists(src, dst string) error {
	if _, err := os.Stat(src); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return copyFile(src, dst)
}
