// Copyright (c) 2021-2026 Rustam Gilyazov and Contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package format

import (
	"strconv"
	"time"
)

// units is the list of units for RelativeTime, largest first.
var units = []struct {
	d    time.Duration
	name string
}{
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
}

// RelativeTime returns the age of t relative to now, i.e. "3 hours ago".  The
// largest unit whose floored value is at least 1 is used.  Timestamps in the
// future are reported as "0 seconds ago".
func RelativeTime(t, now time.Time) string {
	elapsed := max(now.Sub(t), 0)
	for _, u := range units {
		if n := int64(elapsed / u.d); n >= 1 {
			return plural(n, u.name) + " ago"
		}
	}
	return plural(0, "second") + " ago"
}

func plural(n int64, unit string) string {
	s := strconv.FormatInt(n, 10) + " " + unit
	if n != 1 {
		s += "s"
	}
	return s
}

// UnixMilli returns t as milliseconds since the epoch, or 0 for the zero time.
func UnixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
