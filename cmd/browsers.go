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

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/chromium-profile/pkg/adapter"
	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
)

func newBrowsersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browsers",
		Short: "List supported browsers and output formats",
		Long: `Lists the supported browsers, whether each is installed, where its
default profile lives and which version is installed, followed by the
registered output formats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := output.BrowsersDocument{}
			for _, b := range browser.All() {
				info := output.BrowserInfo{Browser: b, Path: a.detector.ProfileDir(b)}
				info.Installed = info.Path != "" && browser.Exists(info.Path)
				if info.Installed {
					info.Version = a.detector.Version(b)
				}
				doc.Browsers = append(doc.Browsers, info)
			}
			for _, out := range adapter.AllOutputs() {
				doc.Formats = append(doc.Formats, fmt.Sprintf("%s (%s, %s)", out.Name(), out.DisplayName(), strings.Join(out.Extensions(), " ")))
			}
			return a.render(cmd, doc)
		},
	}
}
