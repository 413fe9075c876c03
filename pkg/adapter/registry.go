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

// Package adapter holds the output formats known to the CLI. Format
// packages register themselves from init.
package adapter

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/cloudygreybeard/chromium-profile/pkg/output"
)

// ErrUnknownFormat is returned by Lookup for a name nothing registered.
var ErrUnknownFormat = errors.New("unknown output format")

var (
	outputsMu sync.RWMutex
	outputs   = make(map[string]output.Adapter)
)

// RegisterOutput registers an output adapter under its name. It panics if
// the name is already taken, as database/sql.Register does.
func RegisterOutput(a output.Adapter) {
	outputsMu.Lock()
	defer outputsMu.Unlock()
	if _, dup := outputs[a.Name()]; dup {
		panic("adapter: output format registered twice: " + a.Name())
	}
	outputs[a.Name()] = a
}

// GetOutput returns an output adapter by name.
func GetOutput(name string) (output.Adapter, bool) {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	a, ok := outputs[name]
	return a, ok
}

// Lookup is GetOutput for callers that report the failure to a user: the
// error names the available formats.
func Lookup(name string) (output.Adapter, error) {
	if a, ok := GetOutput(name); ok {
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownFormat, name, ListOutputs())
}

// ListOutputs returns the registered format names, sorted.
func ListOutputs() []string {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	names := make([]string, 0, len(outputs))
	for name := range outputs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AllOutputs returns all registered output adapters, sorted by name.
func AllOutputs() []output.Adapter {
	outputsMu.RLock()
	defer outputsMu.RUnlock()
	adapters := make([]output.Adapter, 0, len(outputs))
	for _, a := range outputs {
		adapters = append(adapters, a)
	}
	sort.Slice(adapters, func(i, j int) bool {
		return adapters[i].Name() < adapters[j].Name()
	})
	return adapters
}
