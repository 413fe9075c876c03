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

// Package browser knows where Chromium-based browsers keep their profiles
// and detects which of them are installed.
package browser

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Browser identifies a Chromium-based browser.
type Browser string

const (
	Brave    Browser = "brave"
	Chrome   Browser = "chrome"
	Chromium Browser = "chromium"
)

// DefaultProfile is the directory name of a browser's first profile.
const DefaultProfile = "Default"

// All returns the supported browsers in alphabetical order.
func All() []Browser {
	return []Browser{Brave, Chrome, Chromium}
}

var displayNames = map[Browser]string{
	Brave:    "Brave",
	Chrome:   "Google Chrome",
	Chromium: "Chromium",
}

// DisplayName returns a human-friendly name for the browser.
func (b Browser) DisplayName() string {
	if name, ok := displayNames[b]; ok {
		return name
	}
	return cases.Title(language.English).String(string(b))
}

// userDataPaths holds each browser's user data directory, relative to the
// OS base directory (XDG config home on Linux, home on macOS,
// LOCALAPPDATA on Windows).
var userDataPaths = map[Browser]map[string]string{
	Brave: {
		"linux":   "BraveSoftware/Brave-Browser",
		"darwin":  "Library/Application Support/BraveSoftware/Brave-Browser",
		"windows": "BraveSoftware/Brave-Browser/User Data",
	},
	Chrome: {
		"linux":   "google-chrome",
		"darwin":  "Library/Application Support/Google/Chrome",
		"windows": "Google/Chrome/User Data",
	},
	Chromium: {
		"linux":   "chromium",
		"darwin":  "Library/Application Support/Chromium",
		"windows": "Chromium/User Data",
	},
}

// Profile is a detected browser profile directory.
type Profile struct {
	Browser Browser

	// Path is the profile directory, e.g. ~/.config/google-chrome/Default.
	Path string

	// Name is the profile name shown by the browser, when it could be read
	// from the profile's Preferences file.
	Name string
}

// Detector scans the known install locations for browser profiles.
type Detector struct {
	GOOS         string
	Home         string
	ConfigHome   string
	LocalAppData string

	// Applications is where macOS app bundles live.
	Applications string
}

// NewDetector returns a Detector for the current user and platform.
func NewDetector() *Detector {
	home, _ := os.UserHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" && home != "" {
		configHome = filepath.Join(home, ".config")
	}

	return &Detector{
		GOOS:         runtime.GOOS,
		Home:         home,
		ConfigHome:   configHome,
		LocalAppData: os.Getenv("LOCALAPPDATA"),
		Applications: "/Applications",
	}
}

// UserDataDir returns the browser's user data directory on this platform,
// or "" if the platform is unsupported.
func (d *Detector) UserDataDir(b Browser) string {
	paths, ok := userDataPaths[b]
	if !ok {
		return ""
	}

	relPath, ok := paths[d.GOOS]
	if !ok {
		return ""
	}

	var base string
	switch d.GOOS {
	case "windows":
		base = d.LocalAppData
	case "darwin":
		base = d.Home
	default:
		base = d.ConfigHome
	}
	if base == "" {
		return ""
	}

	return filepath.Join(base, filepath.FromSlash(relPath))
}

// ProfileDir returns where the browser's default profile would be.
func (d *Detector) ProfileDir(b Browser) string {
	dir := d.UserDataDir(b)
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, DefaultProfile)
}

// Detect returns the installed browsers' default profiles, ordered
// alphabetically by browser name.
func (d *Detector) Detect() []Profile {
	var profiles []Profile
	for _, b := range All() {
		dir := d.ProfileDir(b)
		if dir == "" || !isDir(dir) {
			continue
		}
		profiles = append(profiles, Profile{
			Browser: b,
			Path:    dir,
			Name:    ProfileName(dir),
		})
	}
	return profiles
}

// ProfileName reads the profile's display name from its Preferences file.
// It returns "" when the file is missing or carries no name.
func ProfileName(profileDir string) string {
	data, err := os.ReadFile(filepath.Join(profileDir, "Preferences"))
	if err != nil {
		return ""
	}
	return gjson.GetBytes(data, "profile.name").String()
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
