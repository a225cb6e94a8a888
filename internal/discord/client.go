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
	"context"
	"errors"

	"github.com/disgoorg/snowflake/v2"
)

//go:generate mockgen -destination=mock_discord/mock_discord.go . Client

// ErrNotFound is returned when the requested object does not exist or is not
// visible to the current user.
var ErrNotFound = errors.New("not found")

// Client is the part of the Discord client that the tools use.  Methods that
// do not take a context are served from the client cache.
type Client interface {
	// CurrentUser returns the authenticated user.  ok is false until the
	// client is logged in.
	CurrentUser() (u User, ok bool)
	// CurrentStatus returns the presence status of the authenticated user,
	// or an empty string if it is not known.
	CurrentStatus() string
	// Guilds returns all cached guilds.
	Guilds() []Guild
	// Guild returns the cached guild.
	Guild(guildID snowflake.ID) (Guild, bool)
	// FetchGuild returns the guild from the cache, or from the API if it's
	// not cached.
	FetchGuild(ctx context.Context, guildID snowflake.ID) (Guild, error)
	// Channels returns all cached channels.
	Channels() []Channel
	// GuildChannels returns the cached channels of the guild.
	GuildChannels(guildID snowflake.ID) []Channel
	// FetchChannel returns the channel from the cache or the API.
	FetchChannel(ctx context.Context, channelID snowflake.ID) (Channel, error)
	// FetchMessages returns up to q.Limit messages of the channel, newest
	// first.
	FetchMessages(ctx context.Context, channelID snowflake.ID, q MessageQuery) ([]Message, error)
	// FetchMessage returns a single message.
	FetchMessage(ctx context.Context, channelID, messageID snowflake.ID) (Message, error)
	// SendMessage sends the message to the channel and returns the created
	// message.
	SendMessage(ctx context.Context, channelID snowflake.ID, m OutgoingMessage) (Message, error)
	// FetchMembers returns up to limit members of the guild.
	FetchMembers(ctx context.Context, guildID snowflake.ID, limit int) ([]Member, error)
	// Roles returns the cached roles of the guild.
	Roles(guildID snowflake.ID) []Role
}
