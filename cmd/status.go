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
	"github.com/cloudygreybeard/chromium-profile/pkg/status"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check what browser data is accessible",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolveProfile()
			if err != nil {
				return err
			}

			items := status.Check(cmd.Context(), dir, status.DefaultCheckers()...)
			for _, item := range items {
				if item.State == status.StateFailed {
					a.logger.Debug("data unreadable", "kind", item.Name, "error", item.Detail)
				}
			}
			return a.render(cmd, output.StatusDocument{Profile: dir, Items: items})
		},
	}
}
