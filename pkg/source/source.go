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

// Package source holds what the profile data readers share: the error
// reported for an unreadable store and read-only snapshots of stores the
// running browser keeps locked.
package source

import "fmt"

// Kind names a kind of profile data.
type Kind string

const (
	KindHistory    Kind = "history"
	KindBookmarks  Kind = "bookmarks"
	KindLocalTabs  Kind = "local tabs"
	KindSyncedTabs Kind = "synced tabs"
)

// Error reports that a profile data store could not be read.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s unreadable at %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Unreadable wraps err as an Error for the given kind and store path.
func Unreadable(kind Kind, path string, err error) error {
	return &Error{Kind: kind, Path: path, Err: err}
}
