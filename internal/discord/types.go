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

package discord

import (
	"time"

	"github.com/disgoorg/snowflake/v2"
)

// ChannelType is the numeric Discord channel type.
type ChannelType int

const (
	ChannelTypeGuildText          ChannelType = 0
	ChannelTypeDM                 ChannelType = 1
	ChannelTypeGuildVoice         ChannelType = 2
	ChannelTypeGroupDM            ChannelType = 3
	ChannelTypeGuildCategory      ChannelType = 4
	ChannelTypeGuildNews          ChannelType = 5
	ChannelTypeGuildNewsThread    ChannelType = 10
	ChannelTypeGuildPublicThread  ChannelType = 11
	ChannelTypeGuildPrivateThread ChannelType = 12
	ChannelTypeGuildStageVoice    ChannelType = 13
	ChannelTypeGuildDirectory     ChannelType = 14
	ChannelTypeGuildForum         ChannelType = 15
	ChannelTypeGuildMedia         ChannelType = 16
)

var channelTypeNames = map[ChannelType]string{
	ChannelTypeGuildText:          "GUILD_TEXT",
	ChannelTypeDM:                 "DM",
	ChannelTypeGuildVoice:         "GUILD_VOICE",
	ChannelTypeGroupDM:            "GROUP_DM",
	ChannelTypeGuildCategory:      "GUILD_CATEGORY",
	ChannelTypeGuildNews:          "GUILD_NEWS",
	ChannelTypeGuildNewsThread:    "GUILD_NEWS_THREAD",
	ChannelTypeGuildPublicThread:  "GUILD_PUBLIC_THREAD",
	ChannelTypeGuildPrivateThread: "GUILD_PRIVATE_THREAD",
	ChannelTypeGuildStageVoice:    "GUILD_STAGE_VOICE",
	ChannelTypeGuildDirectory:     "GUILD_DIRECTORY",
	ChannelTypeGuildForum:         "GUILD_FORUM",
	ChannelTypeGuildMedia:         "GUILD_MEDIA",
}

// Name returns the API enum name of the channel type, or an empty string if
// the type is not known.
func (t ChannelType) Name() string {
	return channelTypeNames[t]
}

// IsText reports whether messages can be read from and sent to channels of
// this type.  Voice and stage channels have a text chat of their own.
func (t ChannelType) IsText() bool {
	switch t {
	case ChannelTypeGuildText, ChannelTypeDM, ChannelTypeGroupDM, ChannelTypeGuildNews,
		ChannelTypeGuildNewsThread, ChannelTypeGuildPublicThread, ChannelTypeGuildPrivateThread,
		ChannelTypeGuildVoice, ChannelTypeGuildStageVoice:
		return true
	}
	return false
}

// User is a Discord user.
type User struct {
	ID            snowflake.ID
	Username      string
	Discriminator string
	GlobalName    string
	Bot           bool
	Verified      *bool // only known for the current user
}

// Tag returns the user tag, "name#1234", or just the name for users that
// migrated to unique usernames.
func (u User) Tag() string {
	if u.Discriminator == "" || u.Discriminator == "0" {
		return u.Username
	}
	return u.Username + "#" + u.Discriminator
}

// CreatedAt returns the account creation time, encoded in the user ID.
func (u User) CreatedAt() time.Time {
	return u.ID.Time()
}

// Guild is a Discord guild (server).
type Guild struct {
	ID          snowflake.ID
	Name        string
	OwnerID     snowflake.ID
	MemberCount int
	JoinedAt    time.Time
}

// Channel is a guild channel, thread or a private channel.  GuildID is zero
// for private channels.
type Channel struct {
	ID        snowflake.ID
	Name      string
	Type      ChannelType
	GuildID   snowflake.ID
	GuildName string
	Position  int
}

// Attachment is a file attached to a message.
type Attachment struct {
	Filename string
	URL      string
	Size     int
}

// EmbedField is a single named field of an embed.
type EmbedField struct {
	Name   string
	Value  string
	Inline bool
}

// Embed is a rich embed of a message.
type Embed struct {
	Title       string
	Description string
	URL         string
	Fields      []EmbedField
}

// Message is a channel message.
type Message struct {
	ID          snowflake.ID
	ChannelID   snowflake.ID
	Author      User
	Content     string
	CreatedAt   time.Time
	Attachments []Attachment
	Embeds      []Embed
}

// Role is a guild role.
type Role struct {
	ID       snowflake.ID
	Name     string
	Color    int
	Position int
}

// Member is a guild member.
type Member struct {
	User     User
	GuildID  snowflake.ID
	Nick     string
	JoinedAt time.Time
	RoleIDs  []snowflake.ID
	Status   string
}

// DisplayName returns the name the member is displayed with in the guild.
func (m Member) DisplayName() string {
	switch {
	case m.Nick != "":
		return m.Nick
	case m.User.GlobalName != "":
		return m.User.GlobalName
	}
	return m.User.Username
}

// MessageQuery selects the messages to fetch.  Zero Before and After are
// ignored.
type MessageQuery struct {
	Limit  int
	Before snowflake.ID
	After  snowflake.ID
}

// OutgoingMessage is a message to be sent.  If ReplyTo is set, the message is
// sent as a reply to the message with that ID in the same channel.
type OutgoingMessage struct {
	Content string
	ReplyTo snowflake.ID
}
