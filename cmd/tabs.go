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
	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	"github.com/cloudygreybeard/chromium-profile/pkg/tabs"
)

func newTabsCmd(a *app) *cobra.Command {
	tabsCmd := &cobra.Command{
		Use:   "tabs",
		Short: "Show open tabs",
	}

	localCmd := &cobra.Command{
		Use:   "local",
		Short: "Show tabs from the local browser session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveProfile()
			if err != nil {
				return err
			}

			open, err := tabs.NewLocalReader(dir).Read(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, output.LocalTabsDocument{Tabs: open})
		},
	}
	localCmd.Flags().Bool("json", false, "output as JSON")

	syncedCmd := &cobra.Command{
		Use:   "synced",
		Short: "Show tabs from all synced devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveProfile()
			if err != nil {
				return err
			}

			devices, err := tabs.NewSyncedReader(dir).Read(cmd.Context())
			if err != nil {
				return err
			}
			return a.render(cmd, output.SyncedTabsDocument{Devices: devices})
		},
	}
	syncedCmd.Flags().Bool("json", false, "output as JSON")

	tabsCmd.AddCommand(localCmd, syncedCmd)
	return tabsCmd
}
