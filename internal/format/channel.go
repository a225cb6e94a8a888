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
	"fmt"
	"reflect"
	"strconv"
)

// channelTypes maps both the numeric channel type codes and the enum names
// used by the Discord API to a human readable label.
var channelTypes = map[string]string{
	"0":  "Text Channel",
	"1":  "DM",
	"2":  "Voice Channel",
	"3":  "Group DM",
	"4":  "Category",
	"5":  "News Channel",
	"10": "News Thread",
	"11": "Public Thread",
	"12": "Private Thread",
	"13": "Stage Voice",
	"15": "Forum Channel",

	"GUILD_TEXT":           "Text Channel",
	"DM":                   "DM",
	"GUILD_VOICE":          "Voice Channel",
	"GROUP_DM":             "Group DM",
	"GUILD_CATEGORY":       "Category",
	"GUILD_NEWS":           "News Channel",
	"GUILD_NEWS_THREAD":    "News Thread",
	"GUILD_PUBLIC_THREAD":  "Public Thread",
	"GUILD_PRIVATE_THREAD": "Private Thread",
	"GUILD_STAGE_VOICE":    "Stage Voice",
	"GUILD_FORUM":          "Forum Channel",
}

// ChannelTypeLabel returns the human readable label for the channel type v,
// which may be given either as a numeric code or as an enum name.  Unknown
// values are returned as "Unknown (v)".
func ChannelTypeLabel[T ~int | ~int64 | ~string](v T) string {
	key := rawString(v)
	if label, ok := channelTypes[key]; ok {
		return label
	}
	return fmt.Sprintf("Unknown (%s)", key)
}

// rawString returns the underlying value of v as a string, bypassing any
// String method a named type might have.
func rawString(v any) string {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.String:
		return rv.String()
	}
	return fmt.Sprint(v)
}
