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

// In this file: conversion of disgo objects to records.

import (
	dg "github.com/disgoorg/disgo/discord"
)

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func convertUser(u dg.User) User {
	return User{
		ID:            u.ID,
		Username:      u.Username,
		Discriminator: u.Discriminator,
		GlobalName:    deref(u.GlobalName),
		Bot:           u.Bot,
	}
}

func convertGuild(g dg.Guild) Guild {
	return Guild{
		ID:          g.ID,
		Name:        g.Name,
		OwnerID:     g.OwnerID,
		MemberCount: max(g.MemberCount, g.ApproximateMemberCount),
		JoinedAt:    g.JoinedAt,
	}
}

func convertGuildChannel(ch dg.GuildChannel, guildName string) Channel {
	return Channel{
		ID:        ch.ID(),
		Name:      ch.Name(),
		Type:      ChannelType(ch.Type()),
		GuildID:   ch.GuildID(),
		GuildName: guildName,
		Position:  ch.Position(),
	}
}

// convertPrivateChannel converts a channel that does not belong to a guild.
func convertPrivateChannel(ch dg.Channel) Channel {
	return Channel{
		ID:   ch.ID(),
		Name: ch.Name(),
		Type: ChannelType(ch.Type()),
	}
}

func convertMessage(m dg.Message) Message {
	msg := Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		Author:    convertUser(m.Author),
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if len(m.Attachments) > 0 {
		msg.Attachments = make([]Attachment, 0, len(m.Attachments))
		for _, a := range m.Attachments {
			msg.Attachments = append(msg.Attachments, Attachment{
				Filename: a.Filename,
				URL:      a.URL,
				Size:     a.Size,
			})
		}
	}
	if len(m.Embeds) > 0 {
		msg.Embeds = make([]Embed, 0, len(m.Embeds))
		for _, e := range m.Embeds {
			msg.Embeds = append(msg.Embeds, convertEmbed(e))
		}
	}
	return msg
}

func convertEmbed(e dg.Embed) Embed {
	emb := Embed{
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
	}
	for _, f := range e.Fields {
		emb.Fields = append(emb.Fields, EmbedField{
			Name:   f.Name,
			Value:  f.Value,
			Inline: deref(f.Inline),
		})
	}
	return emb
}

func convertMember(m dg.Member, status string) Member {
	return Member{
		User:     convertUser(m.User),
		GuildID:  m.GuildID,
		Nick:     deref(m.Nick),
		JoinedAt: m.JoinedAt,
		RoleIDs:  m.RoleIDs,
		Status:   status,
	}
}

func convertRole(r dg.Role) Role {
	return Role{
		ID:       r.ID,
		Name:     r.Name,
		Color:    r.Color,
		Position: r.Position,
	}
}
