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

// In this file: current user and guild members.

import (
	"cmp"
	"context"
	"errors"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rusq/discordmcp/internal/discord"
)

// ErrNoUser is returned when the client is not logged in.
var ErrNoUser = errors.New("client user not available")

type userInfoPayload struct {
	User         userRecord `json:"user"`
	Status       string     `json:"status"`
	GuildCount   int        `json:"guildCount"`
	ChannelCount int        `json:"channelCount"`
}

// GetUserInfo describes the logged in user.
func (h *Handlers) GetUserInfo(ctx context.Context) (*mcplib.CallToolResult, error) {
	me, ok := h.cl.CurrentUser()
	if !ok {
		return nil, fmt.Errorf("get_user_info: %w", ErrNoUser)
	}
	payload := userInfoPayload{
		User:         newUserRecord(me),
		Status:       cmp.Or(h.cl.CurrentStatus(), "unknown"),
		GuildCount:   len(h.cl.Guilds()),
		ChannelCount: len(h.cl.Channels()),
	}
	h.lg.DebugContext(ctx, "get_user_info", "user", me.Tag())
	return envelope(payload)
}

type listMembersPayload struct {
	Guild        guildSummary   `json:"guild"`
	TotalMembers int            `json:"totalMembers"`
	IncludeRoles bool           `json:"includeRoles"`
	Members      []memberRecord `json:"members"`
}

// ListGuildMembers lists up to limit members of the guild, sorted by display
// name.
func (h *Handlers) ListGuildMembers(ctx context.Context, a ListGuildMembersArgs) (*mcplib.CallToolResult, error) {
	limit := clamp(a.Limit, defMemberLimit, minLimit, maxMemberLimit)
	g, ok := h.cl.Guild(a.GuildID)
	if !ok {
		return nil, fmt.Errorf("list_guild_members: %w", ErrGuildNotFound)
	}
	members, err := h.cl.FetchMembers(ctx, g.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list_guild_members: %w", err)
	}

	var roles map[snowflake.ID]discord.Role
	if a.IncludeRoles {
		rr := h.cl.Roles(g.ID)
		roles = make(map[snowflake.ID]discord.Role, len(rr))
		for _, r := range rr {
			roles[r.ID] = r
		}
	}

	recs := make([]memberRecord, 0, len(members))
	for _, m := range members {
		m.GuildID = g.ID
		r := h.newMemberRecord(m)
		if a.IncludeRoles {
			r.Roles = memberRoles(m, roles)
		}
		recs = append(recs, r)
	}
	sortByName(recs, func(r memberRecord) string { return r.DisplayName })

	memberCount := g.MemberCount
	h.lg.DebugContext(ctx, "list_guild_members", "guild_id", g.ID, "fetched", len(recs), "include_roles", a.IncludeRoles)
	return envelope(listMembersPayload{
		Guild:        guildSummary{ID: g.ID.String(), Name: g.Name, MemberCount: &memberCount},
		TotalMembers: len(recs),
		IncludeRoles: a.IncludeRoles,
		Members:      recs,
	})
}
