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
	"os"

	"github.com/spf13/cobra"

	"github.com/cloudygreybeard/chromium-profile/pkg/profile"
)

func newConfigCmd(a *app) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the saved browser profile",
	}

	configCmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the saved profile and the browsers available",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.configShow()
			},
		},
		&cobra.Command{
			Use:   "set",
			Short: "Choose the default profile among the detected browsers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.configSet()
			},
		},
		&cobra.Command{
			Use:   "set-path <path>",
			Short: "Save a profile directory as the default",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.configSetPath(args[0])
			},
		},
	)

	return configCmd
}

func (a *app) configShow() error {
	if a.cfgErr != nil {
		return a.cfgErr
	}
	if a.cfg.ProfilePath != "" {
		fmt.Fprintf(a.out, "Profile: %s\n", a.cfg.ProfilePath)
		return nil
	}

	fmt.Fprintln(a.out, "No saved profile configuration.")
	fmt.Fprintln(a.out, "\nAvailable browsers:")
	profiles := a.detector.Detect()
	if len(profiles) == 0 {
		fmt.Fprintln(a.out, "  (none found)")
		return nil
	}
	for _, p := range profiles {
		fmt.Fprintf(a.out, "  - %s: %s\n", p.Browser, p.Path)
	}
	return nil
}

func (a *app) configSet() error {
	profiles := a.detector.Detect()
	if len(profiles) == 0 {
		return profile.ErrProfileNotFound
	}

	p := a.prompter()
	if p == nil {
		return profile.ErrNotInteractive
	}

	chosen, err := profile.Choose(p, "Available browser profiles:", profiles)
	if err != nil {
		return err
	}
	if err := profile.Persist(a.cfgPath, &a.cfg, chosen.Path); err != nil {
		return err
	}
	a.cfgErr = nil

	fmt.Fprintf(a.out, "\n✓ Saved %s profile to %s\n", chosen.Browser, a.cfgPath)
	return nil
}

func (a *app) configSetPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, profile.ErrProfileInvalid)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", path)
	}

	if err := profile.Persist(a.cfgPath, &a.cfg, path); err != nil {
		return err
	}
	a.cfgErr = nil

	fmt.Fprintf(a.out, "✓ Saved profile path to %s\n", a.cfgPath)
	return nil
}
