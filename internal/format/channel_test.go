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
	"testing"

	"github.com/stretchr/testify/assert"
)

type chanType int

// String must not be used for the lookup.
func (chanType) String() string { return "bogus" }

func TestChannelTypeLabel_codes(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "Text Channel"},
		{1, "DM"},
		{2, "Voice Channel"},
		{3, "Group DM"},
		{4, "Category"},
		{5, "News Channel"},
		{10, "News Thread"},
		{11, "Public Thread"},
		{12, "Private Thread"},
		{13, "Stage Voice"},
		{15, "Forum Channel"},
		{6, "Unknown (6)"},
		{14, "Unknown (14)"},
		{-1, "Unknown (-1)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelTypeLabel(tt.code))
		})
	}
}

func TestChannelTypeLabel_names(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"GUILD_TEXT", "Text Channel"},
		{"DM", "DM"},
		{"GUILD_VOICE", "Voice Channel"},
		{"GROUP_DM", "Group DM"},
		{"GUILD_CATEGORY", "Category"},
		{"GUILD_NEWS", "News Channel"},
		{"GUILD_NEWS_THREAD", "News Thread"},
		{"GUILD_PUBLIC_THREAD", "Public Thread"},
		{"GUILD_PRIVATE_THREAD", "Private Thread"},
		{"GUILD_STAGE_VOICE", "Stage Voice"},
		{"GUILD_FORUM", "Forum Channel"},
		{"GUILD_MEDIA", "Unknown (GUILD_MEDIA)"},
		{"", "Unknown ()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChannelTypeLabel(tt.name))
		})
	}
}

func TestChannelTypeLabel_namedType(t *testing.T) {
	assert.Equal(t, "Forum Channel", ChannelTypeLabel(chanType(15)))
	assert.Equal(t, "Unknown (99)", ChannelTypeLabel(chanType(99)))
}

func TestHexColor(t *testing.T) {
	assert.Equal(t, "#000000", HexColor(0))
	assert.Equal(t, "#ff0000", HexColor(0xff0000))
	assert.Equal(t, "#0a0b0c", HexColor(0x0a0b0c))
}
