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

	"github.com/cloudygreybeard/chromium-profile/pkg/bookmark"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
)

func newBookmarksCmd(a *app) *cobra.Command {
	bookmarksCmd := &cobra.Command{
		Use:   "bookmarks",
		Short: "View and search bookmarks",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List all bookmarks, or those inside a folder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, _ := cmd.Flags().GetString("folder")

			tree, err := a.readBookmarks(cmd)
			if err != nil {
				return err
			}
			nodes, err := tree.List(folder)
			if err != nil {
				return err
			}
			return a.render(cmd, output.BookmarksDocument{Nodes: nodes})
		},
	}
	listCmd.Flags().String("folder", "", "only bookmarks inside this folder ID")
	listCmd.Flags().Bool("json", false, "output as JSON")

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search bookmarks by title or URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder, _ := cmd.Flags().GetString("folder")

			tree, err := a.readBookmarks(cmd)
			if err != nil {
				return err
			}
			nodes, err := tree.Search(args[0], folder)
			if err != nil {
				return err
			}
			return a.render(cmd, output.BookmarksDocument{Nodes: nodes, Query: args[0]})
		},
	}
	searchCmd.Flags().String("folder", "", "only search inside this folder ID")
	searchCmd.Flags().Bool("json", false, "output as JSON")

	bookmarksCmd.AddCommand(listCmd, searchCmd)
	return bookmarksCmd
}

func (a *app) readBookmarks(cmd *cobra.Command) (*bookmark.Tree, error) {
	dir, err := a.resolveProfile()
	if err != nil {
		return nil, err
	}
	return bookmark.NewReader(dir).Read(cmd.Context())
}
