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

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/chromium-profile/pkg/history"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
)

func newHistoryCmd(a *app) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Search browsing history",
		Long: `Search browsing history, most recent visits first.

Examples:
  chromium-profile-cli history -q github
  chromium-profile-cli history -p "docs\.python\.org"
  chromium-profile-cli history --days 7 -l 50
  chromium-profile-cli history --after 2026-01-01`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHistory(cmd)
		},
	}

	historyCmd.Flags().StringP("query", "q", "", "search text (case-insensitive substring of title or URL)")
	historyCmd.Flags().StringP("pattern", "p", "", "regular expression to match title or URL")
	historyCmd.Flags().IntP("limit", "l", history.DefaultLimit, "maximum results, 0 for no limit")
	historyCmd.Flags().Int("days", 0, "only the last N days")
	historyCmd.Flags().String("after", "", "only on or after this date (YYYY-MM-DD)")
	historyCmd.Flags().String("before", "", "only before this date (YYYY-MM-DD)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	return historyCmd
}

func (a *app) runHistory(cmd *cobra.Command) error {
	var f history.Filter
	f.Query, _ = cmd.Flags().GetString("query")
	f.Pattern, _ = cmd.Flags().GetString("pattern")
	f.Limit, _ = cmd.Flags().GetInt("limit")
	f.Days, _ = cmd.Flags().GetInt("days")
	f.After, _ = cmd.Flags().GetString("after")
	f.Before, _ = cmd.Flags().GetString("before")

	if cmd.Flags().Changed("days") && f.Days <= 0 {
		return fmt.Errorf("invalid days %d: must be positive", f.Days)
	}
	// Reject bad arguments before touching the profile.
	if err := f.Validate(); err != nil {
		return err
	}

	dir, err := a.resolveProfile()
	if err != nil {
		return err
	}

	entries, err := history.NewReader(dir).Search(cmd.Context(), f, a.now())
	if err != nil {
		return err
	}
	a.logger.Debug("history filtered", "results", len(entries))

	return a.render(cmd, output.HistoryDocument{Entries: entries})
}
