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

// Package status checks which kinds of profile data can be read.
package status

import (
	"context"
	"fmt"

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

// State is the outcome of probing one kind of data.
type State string

const (
	StateOK     State = "ok"
	StateFailed State = "failed"
	StateEmpty  State = "empty"
)

// Symbol returns the marker printed next to an item.
func (s State) Symbol() string {
	switch s {
	case StateOK:
		return "✓"
	case StateEmpty:
		return "○"
	default:
		return "✗"
	}
}

// Item is one line of a status report.
type Item struct {
	Name   string
	State  State
	Detail string
}

// Checker reads one kind of data from a profile directory and summarizes it.
type Checker struct {
	Name string
	Run  func(ctx context.Context, profileDir string) (State, string, error)
}

// Check runs every checker against profileDir. A failing checker is reported
// in its item and never stops the others.
func Check(ctx context.Context, profileDir string, checkers ...Checker) []Item {
	items := make([]Item, 0, len(checkers))
	for _, c := range checkers {
		state, detail, err := c.Run(ctx, profileDir)
		if err != nil {
			state, detail = StateFailed, err.Error()
		}
		items = append(items, Item{Name: c.Name, State: state, Detail: detail})
	}
	return items
}

// DefaultCheckers returns the checkers for history, bookmarks, local tabs and
// synced tabs, in that order.
func DefaultCheckers() []Checker {
	return []Checker{
		{Name: "History", Run: checkHistory},
		{Name: "Bookmarks", Run: checkBookmarks},
		{Name: "Local tabs", Run: checkLocalTabs},
		{Name: "Synced tabs", Run: checkSyncedTabs},
	}
}

func checkHistory(ctx context.Context, profileDir string) (State, string, error) {
	entries, err := history.NewReader(profileDir).Read(ctx, 1)
	if err != nil {
		return StateFailed, "", err
	}
	return StateOK, fmt.Sprintf("%d entries sampled", len(entries)), nil
}

func checkBookmarks(ctx context.Context, profileDir string) (State, string, error) {
	tree, err := bookmark.NewReader(profileDir).Read(ctx)
	if err != nil {
		return StateFailed, "", err
	}
	return StateOK, fmt.Sprintf("%d items", tree.Count()), nil
}

func checkLocalTabs(ctx context.Context, profileDir string) (State, string, error) {
	open, err := tabs.NewLocalReader(profileDir).Read(ctx)
	if err != nil {
		return StateFailed, "", err
	}
	return StateOK, fmt.Sprintf("%d tabs", len(open)), nil
}

func checkSyncedTabs(ctx context.Context, profileDir string) (State, string, error) {
	devices, err := tabs.NewSyncedReader(profileDir).Read(ctx)
	if err != nil {
		return StateFailed, "", err
	}
	if len(devices) == 0 {
		return StateEmpty, "No synced devices", nil
	}
	return StateOK, fmt.Sprintf("%d devices, %d tabs", len(devices), tabs.TabCount(devices)), nil
}
