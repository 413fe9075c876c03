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

package browser

import "time"

// chromeToUnixEpochDelta is the number of seconds between 1601-01-01 and
// 1970-01-01, the epochs of Chromium and Unix timestamps.
const chromeToUnixEpochDelta = 11644473600

// ParseTime converts a Chromium timestamp (microseconds since 1601-01-01
// UTC) to a time.Time. Zero or negative values map to the zero time.
func ParseTime(chromeMicroseconds int64) time.Time {
	if chromeMicroseconds <= 0 {
		return time.Time{}
	}

	chromeSeconds := chromeMicroseconds / 1000000
	unixSeconds := chromeSeconds - chromeToUnixEpochDelta
	microRemainder := chromeMicroseconds % 1000000

	return time.Unix(unixSeconds, microRemainder*1000)
}

// Timestamp converts t to a Chromium timestamp.
func Timestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return (t.Unix()+chromeToUnixEpochDelta)*1000000 + int64(t.Nanosecond()/1000)
}
