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
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/chromium-profile/pkg/mcp"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as an MCP server",
		Long: `Runs chromium-profile-cli as an MCP (Model Context Protocol) server.

The server communicates via JSON-RPC over stdin/stdout, exposing:

Resources:
  - chromium-profile://history             The 100 most recent visits
  - chromium-profile://bookmarks           All bookmarks (JSON)
  - chromium-profile://bookmarks/markdown  All bookmarks (Markdown)
  - chromium-profile://tabs/local          Tabs open on this machine
  - chromium-profile://tabs/synced         Tabs open on synced devices
  - chromium-profile://status              What can be read

Tools:
  - search_history      Search history with the filters of 'history'
  - search_bookmarks    Search bookmarks by title or URL
  - list_tabs           List local or synced tabs

The profile is resolved once at startup. Stdin carries the protocol, so
when several browsers are installed the profile must already be saved
with 'config set' or given in CHROMIUM_PROFILE_PATH.

Add to your MCP configuration:

  {
    "mcpServers": {
      "chromium-profile": {
        "command": "/path/to/chromium-profile-cli",
        "args": ["serve"]
      }
    }
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := a.resolve(nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.serve(ctx, dir)
		},
	}
}

func (a *app) serve(ctx context.Context, dir string) error {
	server := mcp.NewServer(dir, Version, a.logger)
	server.Now = a.now

	fmt.Fprintf(a.errOut, "chromium-profile-cli MCP server started for %s\n", dir)
	err := server.Run(ctx, a.in, a.out)
	if errors.Is(err, context.Canceled) {
		a.logger.Debug("mcp server stopped", "reason", context.Cause(ctx))
		return nil
	}
	return err
}
