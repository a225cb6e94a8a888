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

package tools

// In this file: guild and channel listing.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/format"
)

// ErrGuildNotFound is returned when the guild is not known to the client.
var ErrGuildNotFound = errors.New("guild not found")

type listChannelsPayload struct {
	TotalChannels int             `json:"totalChannels"`
	GuildFilter   string          `json:"guildFilter,omitempty"`
	Channels      []channelRecord `json:"channels"`
}

// ListChannels lists the channels of the guild, or every channel visible to
// the client if no guild is given.  Channels are sorted by position.
func (h *Handlers) ListChannels(ctx context.Context, a ListChannelsArgs) (*mcplib.CallToolResult, error) {
	var (
		payload listChannelsPayload
		chans   []discord.Channel
		defName = "DM"
	)
	if a.GuildID != 0 {
		g, ok := h.cl.Guild(a.GuildID)
		if !ok {
			return nil, fmt.Errorf("list_channels: %w", ErrGuildNotFound)
		}
		chans = h.cl.GuildChannels(g.ID)
		defName = "Unknown"
		payload.GuildFilter = a.GuildID.String()
	} else {
		chans = h.cl.Channels()
	}
	sortByPosition(chans)

	payload.Channels = make([]channelRecord, 0, len(chans))
	for _, ch := range chans {
		payload.Channels = append(payload.Channels, newChannelRecord(ch, defName))
	}
	payload.TotalChannels = len(payload.Channels)
	h.lg.DebugContext(ctx, "list_channels", "guild_id", a.GuildID, "count", payload.TotalChannels)
	return envelope(payload)
}

type listGuildsPayload struct {
	TotalGuilds int           `json:"totalGuilds"`
	Guilds      []guildRecord `json:"guilds"`
}

// ListGuilds lists the guilds the client is in, sorted by name.
func (h *Handlers) ListGuilds(ctx context.Context) (*mcplib.CallToolResult, error) {
	me, _ := h.cl.CurrentUser()
	guilds := h.cl.Guilds()
	sortByName(guilds, func(g discord.Guild) string { return g.Name })

	payload := listGuildsPayload{
		TotalGuilds: len(guilds),
		Guilds:      make([]guildRecord, 0, len(guilds)),
	}
	for _, g := range guilds {
		payload.Guilds = append(payload.Guilds, guildRecord{
			ID:          g.ID.String(),
			Name:        g.Name,
			MemberCount: g.MemberCount,
			Owner:       me.ID != 0 && g.OwnerID == me.ID,
			JoinedAt:    format.UnixMilli(g.JoinedAt),
		})
	}
	h.lg.DebugContext(ctx, "list_guilds", "count", payload.TotalGuilds)
	return envelope(payload)
}
