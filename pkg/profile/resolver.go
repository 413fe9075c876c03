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

// Package profile decides which browser profile an invocation reads.
//
// Resolution runs through a fixed precedence:
//
//	environment override -> saved config -> detection -> failure
//
// Detection resolves silently when exactly one browser is installed and
// asks the Prompter to choose when several are.
package profile

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
	"github.com/cloudygreybeard/chromium-profile/pkg/config"
)

// EnvVar overrides the profile path for a single invocation.
const EnvVar = "CHROMIUM_PROFILE_PATH"

var (
	// ErrProfileNotFound means no override, no saved profile and no
	// installed browser could be found.
	ErrProfileNotFound = errors.New("no browser profile detected")

	// ErrProfileInvalid means a path chosen as profile does not exist.
	ErrProfileInvalid = errors.New("profile path does not exist")

	// ErrNotInteractive means a choice was needed but nobody can answer.
	ErrNotInteractive = errors.New("multiple browser profiles found and input is not interactive")
)

// Source records how a profile path was resolved.
type Source string

const (
	SourceEnv      Source = "environment"
	SourceConfig   Source = "config"
	SourceDetected Source = "detected"
	SourceSelected Source = "selected"
)

// Resolution is the outcome of resolving a profile.
type Resolution struct {
	Path   string
	Source Source

	// Browser is set when the profile came from detection.
	Browser browser.Browser

	// Saved reports that the choice was persisted to the config file.
	Saved bool
}

// Detector lists installed browser profiles in presentation order.
type Detector interface {
	Detect() []browser.Profile
}

// Prompter asks the user to pick among several profiles.
type Prompter interface {
	// Select returns the 0-based index of the chosen profile.
	Select(header string, profiles []browser.Profile) (int, error)

	// ConfirmSave asks whether the choice should become the default.
	ConfirmSave() (bool, error)
}

// Resolver resolves the profile for one invocation.
type Resolver struct {
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	Config     config.Config
	ConfigPath string

	// ConfigErr is the error from loading Config, if any. It is returned
	// only when resolution gets as far as the saved profile.
	ConfigErr error

	Detector Detector
	Prompter Prompter
	Logger   *slog.Logger
}

// Resolve returns the profile path to use.
func (r *Resolver) Resolve() (Resolution, error) {
	if res, ok := r.fromEnv(); ok {
		return res, nil
	}
	if r.ConfigErr != nil {
		return Resolution{}, r.ConfigErr
	}
	if res, ok := r.fromConfig(); ok {
		return res, nil
	}
	return r.fromDetection()
}

func (r *Resolver) fromEnv() (Resolution, bool) {
	lookup := r.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}

	path, ok := lookup(EnvVar)
	if !ok || path == "" {
		return Resolution{}, false
	}
	if !browser.Exists(path) {
		r.logger().Warn("ignoring profile override, path does not exist", "env", EnvVar, "path", path)
		return Resolution{}, false
	}

	r.logger().Debug("profile from environment", "env", EnvVar, "path", path)
	return Resolution{Path: path, Source: SourceEnv}, true
}

func (r *Resolver) fromConfig() (Resolution, bool) {
	path := r.Config.ProfilePath
	if path == "" {
		return Resolution{}, false
	}
	if !browser.Exists(path) {
		r.logger().Debug("saved profile no longer exists, detecting", "path", path)
		return Resolution{}, false
	}

	r.logger().Debug("profile from config", "path", path, "config", r.ConfigPath)
	return Resolution{Path: path, Source: SourceConfig}, true
}

func (r *Resolver) fromDetection() (Resolution, error) {
	var profiles []browser.Profile
	if r.Detector != nil {
		profiles = r.Detector.Detect()
	}

	switch len(profiles) {
	case 0:
		return Resolution{}, ErrProfileNotFound
	case 1:
		p := profiles[0]
		r.logger().Debug("single profile detected", "browser", p.Browser, "path", p.Path)
		return Resolution{Path: p.Path, Source: SourceDetected, Browser: p.Browser}, nil
	}

	if r.Prompter == nil {
		return Resolution{}, ErrNotInteractive
	}

	chosen, err := Choose(r.Prompter, "Multiple browser profiles detected:", profiles)
	if err != nil {
		return Resolution{}, err
	}
	res := Resolution{Path: chosen.Path, Source: SourceSelected, Browser: chosen.Browser}

	save, err := r.Prompter.ConfirmSave()
	if err != nil {
		return Resolution{}, err
	}
	if save {
		if err := Persist(r.ConfigPath, &r.Config, chosen.Path); err != nil {
			return Resolution{}, err
		}
		res.Saved = true
	}

	return res, nil
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

// Choose asks p to pick one of profiles.
func Choose(p Prompter, header string, profiles []browser.Profile) (browser.Profile, error) {
	if len(profiles) == 0 {
		return browser.Profile{}, ErrProfileNotFound
	}

	idx, err := p.Select(header, profiles)
	if err != nil {
		return browser.Profile{}, err
	}
	if idx < 0 || idx >= len(profiles) {
		return browser.Profile{}, fmt.Errorf("selection %d out of range 1-%d", idx+1, len(profiles))
	}

	return profiles[idx], nil
}

// Persist saves path as the default profile. Paths that do not exist are
// refused.
func Persist(configPath string, cfg *config.Config, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if !browser.Exists(abs) {
		return fmt.Errorf("%s: %w", abs, ErrProfileInvalid)
	}

	next := *cfg
	next.ProfilePath = abs
	if err := config.Save(configPath, next); err != nil {
		return err
	}

	*cfg = next
	return nil
}
