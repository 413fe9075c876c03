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

package profile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cloudygreybeard/chromium-profile/pkg/browser"
)

// LinePrompter asks questions on out and reads one answer per line from in.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a Prompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Select lists profiles numbered from 1 and reads a choice. An empty answer
// picks the first profile; invalid answers are asked again.
func (p *LinePrompter) Select(header string, profiles []browser.Profile) (int, error) {
	fmt.Fprintf(p.out, "\n🔍 %s\n\n", header)
	for i, prof := range profiles {
		fmt.Fprintf(p.out, "  %d. %-10s %s\n", i+1, prof.Browser, prof.Path)
	}
	fmt.Fprintln(p.out)

	for {
		fmt.Fprintf(p.out, "Select a browser [1]: ")
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return 0, nil
		}

		n, err := strconv.Atoi(answer)
		if err == nil && n >= 1 && n <= len(profiles) {
			return n - 1, nil
		}
		fmt.Fprintf(p.out, "Error: %q is not in the range 1-%d.\n", answer, len(profiles))
	}
}

// ConfirmSave asks whether to save the choice, defaulting to yes.
func (p *LinePrompter) ConfirmSave() (bool, error) {
	for {
		fmt.Fprintf(p.out, "\n💾 Save as default? [Y/n]: ")
		answer, err := p.readLine()
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "", "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "Error: invalid input")
	}
}

func (p *LinePrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading answer: %w", io.ErrUnexpectedEOF)
		}
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
