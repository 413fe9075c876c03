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
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the sync_pb session messages. Only the fields needed to
// list open tabs are decoded; everything else is skipped.
const (
	specificsSessionTag protowire.Number = 1
	specificsHeader     protowire.Number = 2
	specificsTab        protowire.Number = 3

	headerWindow     protowire.Number = 2
	headerClientName protowire.Number = 3
	headerDeviceType protowire.Number = 4

	windowTab protowire.Number = 4

	tabID                     protowire.Number = 1
	tabCurrentNavigationIndex protowire.Number = 4
	tabNavigation             protowire.Number = 7

	navigationVirtualURL protowire.Number = 2
	navigationTitle      protowire.Number = 4
)

var deviceTypes = map[int64]string{
	1: "windows",
	2: "mac",
	3: "linux",
	4: "chromeos",
	5: "other",
	6: "phone",
	7: "tablet",
}

func deviceTypeName(v int64) string {
	if name, ok := deviceTypes[v]; ok {
		return name
	}
	return "unknown"
}

type sessionSpecifics struct {
	tag    string
	header *sessionHeader
	tab    *sessionTab
}

type sessionHeader struct {
	clientName string
	deviceType int64
	windows    [][]int32
}

type sessionTab struct {
	id         int32
	currentNav int32
	navs       []navigation
}

type navigation struct {
	url   string
	title string
}

// current returns the navigation the tab is showing.
func (t sessionTab) current() (navigation, bool) {
	if len(t.navs) == 0 {
		return navigation{}, false
	}
	idx := int(t.currentNav)
	if idx < 0 || idx >= len(t.navs) {
		idx = len(t.navs) - 1
	}
	return t.navs[idx], true
}

// field is one decoded protobuf field.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

func walkFields(b []byte, visit func(field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			f.varint, n = protowire.ConsumeVarint(b)
		case protowire.BytesType:
			f.bytes, n = protowire.ConsumeBytes(b)
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		if err := visit(f); err != nil {
			return err
		}
	}
	return nil
}

func decodeSessionSpecifics(b []byte) (sessionSpecifics, error) {
	var s sessionSpecifics
	err := walkFields(b, func(f field) error {
		switch {
		case f.num == specificsSessionTag && f.typ == protowire.BytesType:
			s.tag = string(f.bytes)
		case f.num == specificsHeader && f.typ == protowire.BytesType:
			h, err := decodeHeader(f.bytes)
			if err != nil {
				return fmt.Errorf("header: %w", err)
			}
			s.header = &h
		case f.num == specificsTab && f.typ == protowire.BytesType:
			t, err := decodeTab(f.bytes)
			if err != nil {
				return fmt.Errorf("tab: %w", err)
			}
			s.tab = &t
		}
		return nil
	})
	return s, err
}

func decodeHeader(b []byte) (sessionHeader, error) {
	var h sessionHeader
	err := walkFields(b, func(f field) error {
		switch {
		case f.num == headerWindow && f.typ == protowire.BytesType:
			tabs, err := decodeWindow(f.bytes)
			if err != nil {
				return fmt.Errorf("window: %w", err)
			}
			h.windows = append(h.windows, tabs)
		case f.num == headerClientName && f.typ == protowire.BytesType:
			h.clientName = string(f.bytes)
		case f.num == headerDeviceType && f.typ == protowire.VarintType:
			h.deviceType = int64(f.varint)
		}
		return nil
	})
	return h, err
}

// decodeWindow returns the window's tab IDs in tab strip order.
func decodeWindow(b []byte) ([]int32, error) {
	var tabIDs []int32
	err := walkFields(b, func(f field) error {
		if f.num != windowTab {
			return nil
		}
		switch f.typ {
		case protowire.VarintType:
			tabIDs = append(tabIDs, int32(f.varint))
		case protowire.BytesType:
			packed := f.bytes
			for len(packed) > 0 {
				v, n := protowire.ConsumeVarint(packed)
				if n < 0 {
					return protowire.ParseError(n)
				}
				tabIDs = append(tabIDs, int32(v))
				packed = packed[n:]
			}
		}
		return nil
	})
	return tabIDs, err
}

func decodeTab(b []byte) (sessionTab, error) {
	t := sessionTab{id: -1, currentNav: -1}
	err := walkFields(b, func(f field) error {
		switch {
		case f.num == tabID && f.typ == protowire.VarintType:
			t.id = int32(f.varint)
		case f.num == tabCurrentNavigationIndex && f.typ == protowire.VarintType:
			t.currentNav = int32(f.varint)
		case f.num == tabNavigation && f.typ == protowire.BytesType:
			nav, err := decodeNavigation(f.bytes)
			if err != nil {
				return fmt.Errorf("navigation: %w", err)
			}
			t.navs = append(t.navs, nav)
		}
		return nil
	})
	return t, err
}

func decodeNavigation(b []byte) (navigation, error) {
	var nav navigation
	err := walkFields(b, func(f field) error {
		switch {
		case f.num == navigationVirtualURL && f.typ == protowire.BytesType:
			nav.url = string(f.bytes)
		case f.num == navigationTitle && f.typ == protowire.BytesType:
			nav.title = string(f.bytes)
		}
		return nil
	})
	return nav, err
}
