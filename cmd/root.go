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

// Package cmd implements the chromium-profile-cli commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/cloudygreybeard/chromium-profile/pkg/adapter"
	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/config"
	"github.com/cloudygreybeard/chromium-profile/pkg/output"
	"github.com/cloudygreybeard/chromium-profile/pkg/profile"

	// Import adapters to trigger init() registration
	_ "github.com/cloudygreybeard/chromium-profile/pkg/output/json"
	_ "github.com/cloudygreybeard/chromium-profile/pkg/output/markdown"
	_ "github.com/cloudygreybeard/chromium-profile/pkg/output/text"
	_ "github.com/cloudygreybeard/chromium-profile/pkg/output/yaml"
)

const defaultFormat = "text"

// app carries the state of one invocation through the command handlers.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	lookupEnv func(string) (string, bool)
	detector  *browser.Detector
	now       func() time.Time

	// prompt overrides the terminal prompter.
	prompt profile.Prompter

	cfgPath string
	cfg     config.Config
	cfgErr  error
	verbose bool
	format  string
	logger  *slog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:        in,
		out:       out,
		errOut:    errOut,
		lookupEnv: os.LookupEnv,
		detector:  browser.NewDetector(),
		now:       time.Now,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chromium-profile-cli",
		Short: "Read history, bookmarks and tabs from a Chromium browser profile",
		Long: `chromium-profile-cli reads the local profile of a Chromium-based browser
(Brave, Google Chrome, Chromium) and shows its history, bookmarks, open
tabs and the tabs of other devices signed into the same sync account.

The profile is taken from $CHROMIUM_PROFILE_PATH, then from the saved
config, and otherwise detected. When several browsers are installed you
are asked to pick one, and may save the choice.

Examples:
  chromium-profile-cli status                    # What can be read
  chromium-profile-cli history -q github --days 7
  chromium-profile-cli history -p "docs\.python\.org" --json
  chromium-profile-cli bookmarks search golang
  chromium-profile-cli tabs synced
  chromium-profile-cli config set                # Choose the default profile`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/chromium-profile-cli/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose output to stderr")
	rootCmd.PersistentFlags().StringVar(&a.format, "format", defaultFormat, "output format: text, json, yaml, or markdown")

	rootCmd.SetVersionTemplate(fmt.Sprintf("chromium-profile-cli %s (commit: %s, built: %s)\n", Version, Commit, Date))
	rootCmd.SetIn(a.in)
	rootCmd.SetOut(a.out)
	rootCmd.SetErr(a.errOut)

	rootCmd.AddCommand(
		newConfigCmd(a),
		newTabsCmd(a),
		newHistoryCmd(a),
		newBookmarksCmd(a),
		newStatusCmd(a),
		newBrowsersCmd(a),
		newServeCmd(a),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	a := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := newRootCmd(a).ExecuteContext(context.Background()); err != nil {
		a.reportError(err)
		os.Exit(1)
	}
}

func (a *app) setup() error {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	if a.cfgPath == "" {
		a.cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		// Surfaced only where the saved profile is read.
		a.logger.Debug("config unreadable", "path", a.cfgPath, "err", err)
		a.cfgErr = err
		return nil
	}
	a.cfg = cfg
	a.logger.Debug("config loaded", "path", a.cfgPath, "profile_path", cfg.ProfilePath)

	return nil
}

func (a *app) reportError(err error) {
	fmt.Fprintf(a.errOut, "❌ Error: %v\n", err)
	if errors.Is(err, profile.ErrProfileNotFound) || errors.Is(err, profile.ErrNotInteractive) {
		fmt.Fprintf(a.errOut, "\nSet %s to your browser profile directory,\n", profile.EnvVar)
		fmt.Fprintln(a.errOut, "or run 'chromium-profile-cli config set'")
	}
}

// prompter returns the Prompter used when a choice is needed, or nil when
// stdin is not a terminal.
func (a *app) prompter() profile.Prompter {
	if a.prompt != nil {
		return a.prompt
	}
	if f, ok := a.in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	return profile.NewLinePrompter(a.in, a.errOut)
}

// resolveProfile returns the profile directory for this invocation,
// prompting on first run when several browsers are installed.
func (a *app) resolveProfile() (string, error) {
	return a.resolve(a.prompter())
}

// resolve resolves the profile, asking p when a choice is needed. A nil p
// fails instead of asking.
func (a *app) resolve(p profile.Prompter) (string, error) {
	r := &profile.Resolver{
		LookupEnv:  a.lookupEnv,
		Config:     a.cfg,
		ConfigPath: a.cfgPath,
		ConfigErr:  a.cfgErr,
		Detector:   a.detector,
		Prompter:   p,
		Logger:     a.logger,
	}

	res, err := r.Resolve()
	if err != nil {
		return "", err
	}
	if res.Saved {
		a.cfg = r.Config
		fmt.Fprintf(a.errOut, "✓ Saved to %s\n", a.cfgPath)
	}

	a.logger.Debug("profile resolved", "path", res.Path, "source", res.Source)
	return res.Path, nil
}

// render writes doc in the selected output format. A --json flag on the
// command takes precedence over --format.
func (a *app) render(cmd *cobra.Command, doc output.Document) error {
	format := a.format
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		format = "json"
	}

	out, err := adapter.Lookup(format)
	if err != nil {
		return err
	}

	data, err := out.Render(doc)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", format, err)
	}
	_, err = a.out.Write(data)
	return err
}
