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

// In this file: JSON records returned by the tools.

import (
	"cmp"
	"slices"
	"time"

	"github.com/disgoorg/snowflake/v2"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/format"
)

type channelRecord struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Type            int    `json:"type"`
	TypeDescription string `json:"typeDescription"`
	GuildName       string `json:"guildName,omitempty"`
	GuildID         string `json:"guildId,omitempty"`
	Position        int    `json:"position"`
}

type guildRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
	Owner       bool   `json:"owner"`
	JoinedAt    int64  `json:"joinedAt"`
}

type authorRecord struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
}

type attachmentRecord struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int    `json:"size"`
}

type embedFieldRecord struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embedRecord struct {
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	URL         string             `json:"url,omitempty"`
	Fields      []embedFieldRecord `json:"fields"`
}

type messageRecord struct {
	ID           string             `json:"id"`
	Author       authorRecord       `json:"author"`
	Content      string             `json:"content"`
	Timestamp    int64              `json:"timestamp"`
	RelativeTime string             `json:"relativeTime"`
	Attachments  []attachmentRecord `json:"attachments"`
	Embeds       []embedRecord      `json:"embeds"`
	ChannelID    string             `json:"channelId,omitempty"`
	ChannelName  string             `json:"channelName,omitempty"`
}

type roleRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Position int    `json:"position"`
}

type memberRecord struct {
	ID               string       `json:"id"`
	Username         string       `json:"username"`
	Discriminator    string       `json:"discriminator"`
	Tag              string       `json:"tag"`
	DisplayName      string       `json:"displayName"`
	Nickname         string       `json:"nickname,omitempty"`
	Bot              bool         `json:"bot"`
	JoinedAt         int64        `json:"joinedAt"`
	JoinedAtRelative string       `json:"joinedAtRelative"`
	Roles            []roleRecord `json:"roles,omitzero"`
	Status           string       `json:"status"`
}

type userRecord struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Discriminator string `json:"discriminator"`
	Tag           string `json:"tag"`
	Bot           bool   `json:"bot"`
	Verified      *bool  `json:"verified,omitempty"`
	CreatedAt     int64  `json:"createdAt"`
}

// channelSummary identifies the channel a message batch came from.
type channelSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
}

// channelOutcome is the per-channel result of a guild-wide search.  Error is
// set only for skipped channels.
type channelOutcome struct {
	ChannelID    string `json:"channelId"`
	ChannelName  string `json:"channelName"`
	MessageCount int    `json:"messageCount,omitempty"`
	Error        string `json:"error,omitempty"`
}

func newChannelRecord(ch discord.Channel, defName string) channelRecord {
	r := channelRecord{
		ID:              ch.ID.String(),
		Name:            cmp.Or(ch.Name, defName),
		Type:            int(ch.Type),
		TypeDescription: format.ChannelTypeLabel(int(ch.Type)),
		GuildName:       ch.GuildName,
		Position:        ch.Position,
	}
	if ch.GuildID != 0 {
		r.GuildID = ch.GuildID.String()
	}
	return r
}

func newChannelSummary(ch discord.Channel) channelSummary {
	return channelSummary{
		ID:   ch.ID.String(),
		Name: cmp.Or(ch.Name, "DM"),
		Type: int(ch.Type),
	}
}

func (h *Handlers) newMessageRecord(m discord.Message) messageRecord {
	r := messageRecord{
		ID: m.ID.String(),
		Author: authorRecord{
			ID:            m.Author.ID.String(),
			Username:      m.Author.Username,
			Discriminator: m.Author.Discriminator,
		},
		Content:      m.Content,
		Timestamp:    format.UnixMilli(m.CreatedAt),
		RelativeTime: format.RelativeTime(m.CreatedAt, h.now()),
		Attachments:  make([]attachmentRecord, 0, len(m.Attachments)),
		Embeds:       make([]embedRecord, 0, len(m.Embeds)),
	}
	for _, a := range m.Attachments {
		r.Attachments = append(r.Attachments, attachmentRecord{
			Name: cmp.Or(a.Filename, "unknown"),
			URL:  a.URL,
			Size: a.Size,
		})
	}
	for _, e := range m.Embeds {
		er := embedRecord{
			Title:       e.Title,
			Description: e.Description,
			URL:         e.URL,
			Fields:      make([]embedFieldRecord, 0, len(e.Fields)),
		}
		for _, f := range e.Fields {
			er.Fields = append(er.Fields, embedFieldRecord(f))
		}
		r.Embeds = append(r.Embeds, er)
	}
	return r
}

func newRoleRecord(r discord.Role) roleRecord {
	return roleRecord{
		ID:       r.ID.String(),
		Name:     r.Name,
		Color:    format.HexColor(r.Color),
		Position: r.Position,
	}
}

// memberRoles returns the member's roles, excluding the guild's default role,
// sorted by descending position.
func memberRoles(m discord.Member, roles map[snowflake.ID]discord.Role) []roleRecord {
	out := make([]roleRecord, 0, len(m.RoleIDs))
	for _, id := range m.RoleIDs {
		if id == m.GuildID {
			continue
		}
		r, ok := roles[id]
		if !ok {
			continue
		}
		out = append(out, newRoleRecord(r))
	}
	slices.SortStableFunc(out, func(a, b roleRecord) int {
		return cmp.Compare(b.Position, a.Position)
	})
	return out
}

func (h *Handlers) newMemberRecord(m discord.Member) memberRecord {
	joined := m.JoinedAt
	if joined.IsZero() {
		joined = time.UnixMilli(0)
	}
	return memberRecord{
		ID:               m.User.ID.String(),
		Username:         m.User.Username,
		Discriminator:    m.User.Discriminator,
		Tag:              m.User.Tag(),
		DisplayName:      m.DisplayName(),
		Nickname:         m.Nick,
		Bot:              m.User.Bot,
		JoinedAt:         format.UnixMilli(m.JoinedAt),
		JoinedAtRelative: format.RelativeTime(joined, h.now()),
		Status:           cmp.Or(m.Status, "offline"),
	}
}

func newUserRecord(u discord.User) userRecord {
	return userRecord{
		ID:            u.ID.String(),
		Username:      u.Username,
		Discriminator: u.Discriminator,
		Tag:           u.Tag(),
		Bot:           u.Bot,
		Verified:      u.Verified,
		CreatedAt:     format.UnixMilli(u.CreatedAt()),
	}
}
