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

package history

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the format of --after and --before dates.
const DateLayout = "2006-01-02"

// DefaultLimit caps results when no limit is given.
const DefaultLimit = 100

// Filter selects history entries. Zero fields do not filter.
type Filter struct {
	// Query matches title or URL as a case-insensitive substring.
	Query string

	// Pattern is a regular expression matched against title or URL.
	Pattern string

	// Days keeps visits from the last N days.
	Days int

	// After keeps visits on or after this date (YYYY-MM-DD, local time).
	After string

	// Before keeps visits before this date (YYYY-MM-DD, local time).
	Before string

	// Limit truncates the result. Zero means no limit.
	Limit int
}

// HasPredicates reports whether the filter drops entries by content or
// date, as opposed to only truncating.
func (f Filter) HasPredicates() bool {
	return f.Query != "" || f.Pattern != "" || f.Days != 0 || f.After != "" || f.Before != ""
}

type predicate func(Entry) bool

// Validate reports a filter that can never be applied: a negative limit
// or day count, a bad pattern or a malformed date.
func (f Filter) Validate() error {
	_, err := f.compile(time.Now())
	return err
}

// Apply returns the entries that pass the filter, in their original order.
// Day-based bounds are measured from now. Apply is idempotent.
func (f Filter) Apply(entries []Entry, now time.Time) ([]Entry, error) {
	preds, err := f.compile(now)
	if err != nil {
		return nil, err
	}

	result := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.Limit > 0 && len(result) >= f.Limit {
			break
		}
		if matchesAll(e, preds) {
			result = append(result, e)
		}
	}

	return result, nil
}

func (f Filter) compile(now time.Time) ([]predicate, error) {
	if f.Limit < 0 {
		return nil, fmt.Errorf("invalid limit %d: must not be negative", f.Limit)
	}

	var preds []predicate

	if f.Query != "" {
		q := strings.ToLower(f.Query)
		preds = append(preds, func(e Entry) bool {
			return strings.Contains(strings.ToLower(e.Title), q) ||
				strings.Contains(strings.ToLower(e.URL), q)
		})
	}

	if f.Pattern != "" {
		re, err := regexp.Compile(f.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", f.Pattern, err)
		}
		preds = append(preds, func(e Entry) bool {
			return re.MatchString(e.Title) || re.MatchString(e.URL)
		})
	}

	if f.Days < 0 {
		return nil, fmt.Errorf("invalid days %d: must be positive", f.Days)
	}
	if f.Days > 0 {
		since := now.Add(-time.Duration(f.Days) * 24 * time.Hour)
		preds = append(preds, func(e Entry) bool {
			return !e.VisitTime.Before(since)
		})
	}

	if f.After != "" {
		after, err := ParseDate(f.After, now.Location())
		if err != nil {
			return nil, err
		}
		preds = append(preds, func(e Entry) bool {
			return !e.VisitTime.Before(after)
		})
	}

	if f.Before != "" {
		before, err := ParseDate(f.Before, now.Location())
		if err != nil {
			return nil, err
		}
		preds = append(preds, func(e Entry) bool {
			return e.VisitTime.Before(before)
		})
	}

	return preds, nil
}

func matchesAll(e Entry, preds []predicate) bool {
	for _, p := range preds {
		if !p(e) {
			return false
		}
	}
	return true
}

// ParseDate parses a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(DateLayout, s, loc)
	if err != nil {
		var parseErr *time.ParseError
		if errors.As(err, &parseErr) {
			return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
		}
		return time.Time{}, err
	}
	return t, nil
}
