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

package tabs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/encoding/unicode"
)

// Session files are a log of commands replayed to rebuild the browser's
// windows and tabs. Each command is a little-endian uint16 size, a one
// byte command ID and a payload of size-1 bytes.

var snssMagic = []byte("SNSS")

// Command IDs of the session service.
const (
	cmdSetTabWindow                = 0
	cmdSetTabIndexInWindow         = 2
	cmdTabNavigationPrunedFromBack = 5
	cmdUpdateTabNavigation         = 6
	cmdSetSelectedNavigationIndex  = 7
	cmdTabClosed                   = 16
	cmdWindowClosed                = 17
	cmdTabNavigationPathPruned     = 24
)

var errShortPayload = errors.New("short payload")

type localTab struct {
	id          int32
	window      int32
	hasWindow   bool
	index       int32
	selectedNav int32
	navs        map[int32]navigation
	closed      bool
}

type sessionState struct {
	tabs        map[int32]*localTab
	windowOrder map[int32]int
	closedWin   map[int32]bool
}

func (s *sessionState) tab(id int32) *localTab {
	t, ok := s.tabs[id]
	if !ok {
		t = &localTab{id: id, selectedNav: -1, navs: make(map[int32]navigation)}
		s.tabs[id] = t
	}
	return t
}

// ParseSession replays a session file and returns its open tabs in window
// and tab strip order.
func ParseSession(data []byte) ([]Tab, error) {
	if len(data) < 8 || string(data[:4]) != string(snssMagic) {
		return nil, errors.New("not a session file")
	}
	version := int32(binary.LittleEndian.Uint32(data[4:8]))
	if version != 1 && version != 3 {
		return nil, fmt.Errorf("unsupported session file version %d", version)
	}

	state := &sessionState{
		tabs:        make(map[int32]*localTab),
		windowOrder: make(map[int32]int),
		closedWin:   make(map[int32]bool),
	}

	rest := data[8:]
	for len(rest) >= 2 {
		size := int(binary.LittleEndian.Uint16(rest))
		rest = rest[2:]
		if size == 0 || size > len(rest) {
			// A command cut short by a crash ends the usable log.
			break
		}
		id, payload := rest[0], rest[1:size]
		rest = rest[size:]

		if err := state.apply(id, payload); err != nil {
			return nil, fmt.Errorf("command %d: %w", id, err)
		}
	}

	return state.openTabs(), nil
}

func (s *sessionState) apply(id byte, payload []byte) error {
	switch id {
	case cmdSetTabWindow:
		window, tabID, err := readPair(payload)
		if err != nil {
			return err
		}
		if _, ok := s.windowOrder[window]; !ok {
			s.windowOrder[window] = len(s.windowOrder)
		}
		t := s.tab(tabID)
		t.window, t.hasWindow = window, true

	case cmdSetTabIndexInWindow:
		tabID, index, err := readPair(payload)
		if err != nil {
			return err
		}
		s.tab(tabID).index = index

	case cmdTabNavigationPrunedFromBack:
		tabID, count, err := readPair(payload)
		if err != nil {
			return err
		}
		t := s.tab(tabID)
		for i := range t.navs {
			if i >= count {
				delete(t.navs, i)
			}
		}
		if t.selectedNav >= count {
			t.selectedNav = count - 1
		}

	case cmdTabNavigationPathPruned:
		tabID, index, count, err := readTriple(payload)
		if err != nil {
			return err
		}
		s.tab(tabID).prunePath(index, count)

	case cmdUpdateTabNavigation:
		tabID, index, nav, err := readNavigation(payload)
		if err != nil {
			return err
		}
		s.tab(tabID).navs[index] = nav

	case cmdSetSelectedNavigationIndex:
		tabID, index, err := readPair(payload)
		if err != nil {
			return err
		}
		s.tab(tabID).selectedNav = index

	case cmdTabClosed:
		tabID, err := readInt32(payload)
		if err != nil {
			return err
		}
		s.tab(tabID).closed = true

	case cmdWindowClosed:
		window, err := readInt32(payload)
		if err != nil {
			return err
		}
		s.closedWin[window] = true
	}
	return nil
}

func (s *sessionState) openTabs() []Tab {
	var open []*localTab
	for _, t := range s.tabs {
		if t.closed || (t.hasWindow && s.closedWin[t.window]) {
			continue
		}
		if _, ok := t.current(); ok {
			open = append(open, t)
		}
	}

	order := func(t *localTab) int {
		if !t.hasWindow {
			return len(s.windowOrder)
		}
		return s.windowOrder[t.window]
	}
	sort.Slice(open, func(i, j int) bool {
		a, b := open[i], open[j]
		if order(a) != order(b) {
			return order(a) < order(b)
		}
		if a.index != b.index {
			return a.index < b.index
		}
		return a.id < b.id
	})

	tabs := make([]Tab, 0, len(open))
	for _, t := range open {
		nav, _ := t.current()
		tabs = append(tabs, Tab{Title: nav.title, URL: nav.url})
	}
	return tabs
}

// prunePath drops count navigations starting at index. Later entries move
// down to close the gap.
func (t *localTab) prunePath(index, count int32) {
	if count <= 0 {
		return
	}
	end := index + count

	navs := make(map[int32]navigation, len(t.navs))
	for i, nav := range t.navs {
		switch {
		case i < index:
			navs[i] = nav
		case i >= end:
			navs[i-count] = nav
		}
	}
	t.navs = navs

	switch {
	case t.selectedNav >= end:
		t.selectedNav -= count
	case t.selectedNav >= index:
		t.selectedNav = -1
	}
}

// current returns the selected navigation, or the newest one when the
// selection is unknown.
func (t *localTab) current() (navigation, bool) {
	if nav, ok := t.navs[t.selectedNav]; ok && nav.url != "" {
		return nav, true
	}

	best := int32(-1)
	for i, nav := range t.navs {
		if nav.url != "" && i > best {
			best = i
		}
	}
	if best < 0 {
		return navigation{}, false
	}
	return t.navs[best], true
}

func readInt32(b []byte) (int32, error) {
	if len(b) < 4 {
		return 0, errShortPayload
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

func readPair(b []byte) (int32, int32, error) {
	if len(b) < 8 {
		return 0, 0, errShortPayload
	}
	return int32(binary.LittleEndian.Uint32(b)), int32(binary.LittleEndian.Uint32(b[4:])), nil
}

func readTriple(b []byte) (int32, int32, int32, error) {
	if len(b) < 12 {
		return 0, 0, 0, errShortPayload
	}
	a, c, err := readPair(b)
	if err != nil {
		return 0, 0, 0, err
	}
	d, err := readInt32(b[8:])
	return a, c, d, err
}

// pickle reads the length-prefixed, 4-byte aligned fields of a serialized
// navigation entry.
type pickle struct {
	b   []byte
	pos int
}

func (p *pickle) next32() (int32, error) {
	if p.pos+4 > len(p.b) {
		return 0, errShortPayload
	}
	v := int32(binary.LittleEndian.Uint32(p.b[p.pos:]))
	p.pos += 4
	return v, nil
}

func (p *pickle) nextBytes(n int) ([]byte, error) {
	if n < 0 || p.pos+n > len(p.b) {
		return nil, errShortPayload
	}
	v := p.b[p.pos : p.pos+n]
	p.pos += (n + 3) &^ 3
	return v, nil
}

func (p *pickle) nextString() (string, error) {
	n, err := p.next32()
	if err != nil {
		return "", err
	}
	b, err := p.nextBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (p *pickle) nextString16() (string, error) {
	n, err := p.next32()
	if err != nil {
		return "", err
	}
	b, err := p.nextBytes(int(n) * 2)
	if err != nil {
		return "", err
	}
	decoded, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

func readNavigation(payload []byte) (int32, int32, navigation, error) {
	// The pickle starts with the size of its payload.
	p := &pickle{b: payload, pos: 4}

	tabID, err := p.next32()
	if err != nil {
		return 0, 0, navigation{}, err
	}
	index, err := p.next32()
	if err != nil {
		return 0, 0, navigation{}, err
	}
	url, err := p.nextString()
	if err != nil {
		return 0, 0, navigation{}, err
	}
	title, err := p.nextString16()
	if err != nil {
		return 0, 0, navigation{}, err
	}

	return tabID, index, navigation{url: url, title: title}, nil
}
