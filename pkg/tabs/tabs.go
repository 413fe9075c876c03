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

// Package tabs reads the tabs open in a Chromium profile: the local
// browser session and the sessions other devices share through sync.
package tabs

// Tab is an open tab, reduced to its current page.
type Tab struct {
	Title string
	URL   string
}

// Device is another browser signed into the same sync account.
type Device struct {
	Name string

	// Type is the device class reported by sync, e.g. "linux" or "phone".
	Type string

	Tabs []Tab
}

// TabCount returns the number of tabs across devices.
func TabCount(devices []Device) int {
	n := 0
	for _, d := range devices {
		n += len(d.Tabs)
	}
	return n
}
