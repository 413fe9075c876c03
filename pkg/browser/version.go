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

package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"
)

// appBundles names each browser's macOS application bundle.
var appBundles = map[Browser]string{
	Brave:    "Brave Browser.app",
	Chrome:   "Google Chrome.app",
	Chromium: "Chromium.app",
}

// Version returns the installed browser version, or "" if unknown.
//
// Chromium writes the running version to "Last Version" in the user data
// directory. On macOS the app bundle's Info.plist is used as a fallback.
func (d *Detector) Version(b Browser) string {
	if dir := d.UserDataDir(b); dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, "Last Version")); err == nil {
			if v := strings.TrimSpace(string(data)); v != "" {
				return v
			}
		}
	}

	if d.GOOS != "darwin" || d.Applications == "" {
		return ""
	}
	bundle, ok := appBundles[b]
	if !ok {
		return ""
	}
	v, err := BundleVersion(filepath.Join(d.Applications, bundle, "Contents", "Info.plist"))
	if err != nil {
		return ""
	}
	return v
}

type bundleInfo struct {
	ShortVersion string `plist:"CFBundleShortVersionString"`
	Version      string `plist:"CFBundleVersion"`
}

// BundleVersion reads the version of a macOS application bundle from its
// Info.plist.
func BundleVersion(infoPlist string) (string, error) {
	file, err := os.Open(infoPlist)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var info bundleInfo
	if err := plist.NewDecoder(file).Decode(&info); err != nil {
		return "", fmt.Errorf("decoding %s: %w", infoPlist, err)
	}

	if info.ShortVersion != "" {
		return info.ShortVersion, nil
	}
	return info.Version, nil
}
