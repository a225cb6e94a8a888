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

// In this file: reading, searching and sending messages.

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/dustin/go-humanize"
	mcplib "github.com/mark3labs/mcp-go/mcp"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/format"
)

var (
	// ErrNotText is returned when the channel does not exist or can't hold
	// messages.
	ErrNotText = errors.New("channel not found or not a text channel")
	// ErrNotWritable is returned when a message can't be sent to the channel.
	ErrNotWritable = errors.New("channel not found or cannot send messages to this channel")
	// ErrNoTarget is returned by search when neither a channel nor a guild is
	// given.
	ErrNoTarget = errors.New("either channelId or guildId must be provided")
	// ErrReplyNotFound is returned when the message being replied to does not
	// exist.
	ErrReplyNotFound = errors.New("reply message not found")
)

// maxPerChannel is the most messages fetched from one channel in guild-wide
// search.
const maxPerChannel = 100

// textChannel fetches the channel and checks that it holds messages.  Missing
// and non-text channels both return errNotText.
func (h *Handlers) textChannel(ctx context.Context, id snowflake.ID, errNotText error) (discord.Channel, error) {
	ch, err := h.cl.FetchChannel(ctx, id)
	if err != nil {
		if errors.Is(err, discord.ErrNotFound) {
			return discord.Channel{}, errNotText
		}
		return discord.Channel{}, err
	}
	if !ch.Type.IsText() {
		return discord.Channel{}, errNotText
	}
	return ch, nil
}

// records maps a newest-first batch to message records, oldest first.
func (h *Handlers) records(msgs []discord.Message) []messageRecord {
	out := make([]messageRecord, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, h.newMessageRecord(m))
	}
	slices.Reverse(out)
	return out
}

func attachmentBytes(msgs []discord.Message) uint64 {
	var n uint64
	for _, m := range msgs {
		for _, a := range m.Attachments {
			n += uint64(max(a.Size, 0))
		}
	}
	return n
}

// ─── read_channel ─────────────────────────────────────────────────────────────

type readChannelPayload struct {
	Channel  channelSummary  `json:"channel"`
	Messages []messageRecord `json:"messages"`
}

// ReadChannel returns the most recent messages of the channel, oldest first.
func (h *Handlers) ReadChannel(ctx context.Context, a ReadChannelArgs) (*mcplib.CallToolResult, error) {
	limit := clamp(a.Limit, defReadLimit, minLimit, maxReadLimit)
	ch, err := h.textChannel(ctx, a.ChannelID, ErrNotText)
	if err != nil {
		return nil, fmt.Errorf("read_channel: %w", err)
	}
	msgs, err := h.cl.FetchMessages(ctx, ch.ID, discord.MessageQuery{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("read_channel: %w", err)
	}
	h.lg.DebugContext(ctx, "read_channel", "channel_id", ch.ID, "messages", len(msgs), "attachments", humanize.Bytes(attachmentBytes(msgs)))
	return envelope(readChannelPayload{
		Channel:  newChannelSummary(ch),
		Messages: h.records(msgs),
	})
}

// ─── search_messages ──────────────────────────────────────────────────────────

// filter matches messages against the author and content criteria of a
// search.
type filter struct {
	authorID snowflake.ID
	query    string // lower case
}

func newFilter(a SearchMessagesArgs) filter {
	return filter{authorID: a.AuthorID, query: strings.ToLower(a.Query)}
}

func (f filter) match(m discord.Message) bool {
	if f.authorID != 0 && m.Author.ID != f.authorID {
		return false
	}
	if f.query != "" && !strings.Contains(strings.ToLower(m.Content), f.query) {
		return false
	}
	return true
}

func (f filter) apply(msgs []discord.Message) []discord.Message {
	return slices.DeleteFunc(msgs, func(m discord.Message) bool { return !f.match(m) })
}

type searchChannelPayload struct {
	Channel      channelSummary  `json:"channel"`
	SearchQuery  string          `json:"searchQuery,omitempty"`
	AuthorFilter string          `json:"authorFilter,omitempty"`
	TotalResults int             `json:"totalResults"`
	Messages     []messageRecord `json:"messages"`
}

type guildSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount *int   `json:"memberCount,omitempty"`
}

type searchGuildPayload struct {
	Guild           guildSummary     `json:"guild"`
	ChannelResults  []channelOutcome `json:"channelResults"`
	SkippedChannels []channelOutcome `json:"skippedChannels"`
	SearchQuery     string           `json:"searchQuery,omitempty"`
	AuthorFilter    string           `json:"authorFilter,omitempty"`
	TotalResults    int              `json:"totalResults"`
	Messages        []messageRecord  `json:"messages"`
}

func authorFilter(id snowflake.ID) string {
	if id == 0 {
		return ""
	}
	return id.String()
}

// SearchMessages searches one channel, or every text channel of a guild, for
// messages matching the author and content filters.  If both channelId and
// guildId are given, the channel is searched.
func (h *Handlers) SearchMessages(ctx context.Context, a SearchMessagesArgs) (*mcplib.CallToolResult, error) {
	switch {
	case a.ChannelID != 0:
		return h.searchChannel(ctx, a)
	case a.GuildID != 0:
		return h.searchGuild(ctx, a)
	}
	return nil, fmt.Errorf("search_messages: %w", ErrNoTarget)
}

func (h *Handlers) searchChannel(ctx context.Context, a SearchMessagesArgs) (*mcplib.CallToolResult, error) {
	limit := clamp(a.Limit, defSearchLimit, minLimit, maxSearchLimit)
	ch, err := h.textChannel(ctx, a.ChannelID, ErrNotText)
	if err != nil {
		return nil, fmt.Errorf("search_messages: %w", err)
	}
	msgs, err := h.cl.FetchMessages(ctx, ch.ID, discord.MessageQuery{Limit: limit, Before: a.Before, After: a.After})
	if err != nil {
		return nil, fmt.Errorf("search_messages: %w", err)
	}
	fetched := len(msgs)
	msgs = newFilter(a).apply(msgs)
	h.lg.DebugContext(ctx, "search_messages", "channel_id", ch.ID, "fetched", fetched, "matched", len(msgs))

	recs := h.records(msgs)
	return envelope(searchChannelPayload{
		Channel:      newChannelSummary(ch),
		SearchQuery:  a.Query,
		AuthorFilter: authorFilter(a.AuthorID),
		TotalResults: len(recs),
		Messages:     recs,
	})
}

// perChannelLimit splits limit across n channels, at least one and at most
// maxPerChannel messages each.
func perChannelLimit(limit, n int) int {
	if n <= 0 {
		return 0
	}
	return max(1, min(limit/n, maxPerChannel))
}

func (h *Handlers) searchGuild(ctx context.Context, a SearchMessagesArgs) (*mcplib.CallToolResult, error) {
	limit := clamp(a.Limit, defSearchLimit, minLimit, maxSearchLimit)
	g, err := h.cl.FetchGuild(ctx, a.GuildID)
	if err != nil {
		if errors.Is(err, discord.ErrNotFound) {
			return nil, fmt.Errorf("search_messages: %w", ErrGuildNotFound)
		}
		return nil, fmt.Errorf("search_messages: %w", err)
	}

	chans := slices.DeleteFunc(h.cl.GuildChannels(g.ID), func(ch discord.Channel) bool {
		return !ch.Type.IsText()
	})
	sortByPosition(chans)
	per := perChannelLimit(limit, len(chans))
	flt := newFilter(a)

	payload := searchGuildPayload{
		Guild:           guildSummary{ID: g.ID.String(), Name: g.Name},
		ChannelResults:  []channelOutcome{},
		SkippedChannels: []channelOutcome{},
		SearchQuery:     a.Query,
		AuthorFilter:    authorFilter(a.AuthorID),
		Messages:        []messageRecord{},
	}
	for _, ch := range chans {
		if err := h.lim.Wait(ctx); err != nil {
			return nil, fmt.Errorf("search_messages: %w", err)
		}
		msgs, err := h.cl.FetchMessages(ctx, ch.ID, discord.MessageQuery{Limit: per, Before: a.Before, After: a.After})
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("search_messages: %w", ctx.Err())
			}
			h.lg.WarnContext(ctx, "search_messages: skipping channel", "channel_id", ch.ID, "error", err)
			payload.SkippedChannels = append(payload.SkippedChannels, channelOutcome{
				ChannelID:   ch.ID.String(),
				ChannelName: ch.Name,
				Error:       err.Error(),
			})
			continue
		}
		msgs = flt.apply(msgs)
		if len(msgs) == 0 {
			continue
		}
		recs := h.records(msgs)
		for i := range recs {
			recs[i].ChannelID = ch.ID.String()
			recs[i].ChannelName = ch.Name
		}
		payload.Messages = append(payload.Messages, recs...)
		payload.ChannelResults = append(payload.ChannelResults, channelOutcome{
			ChannelID:    ch.ID.String(),
			ChannelName:  ch.Name,
			MessageCount: len(recs),
		})
	}
	slices.SortStableFunc(payload.Messages, func(a, b messageRecord) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	})
	payload.TotalResults = len(payload.Messages)
	h.lg.DebugContext(ctx, "search_messages", "guild_id", g.ID, "channels", len(chans), "per_channel", per, "matched", payload.TotalResults, "skipped", len(payload.SkippedChannels))
	return envelope(payload)
}

// ─── send_message ─────────────────────────────────────────────────────────────

type sendMessagePayload struct {
	Success   bool    `json:"success"`
	MessageID string  `json:"messageId"`
	ChannelID string  `json:"channelId"`
	Content   string  `json:"content"`
	Timestamp int64   `json:"timestamp"`
	ReplyTo   *string `json:"replyTo"`
}

// SendMessage sends a message to the channel, optionally as a reply to
// another message in the same channel.
func (h *Handlers) SendMessage(ctx context.Context, a SendMessageArgs) (*mcplib.CallToolResult, error) {
	ch, err := h.textChannel(ctx, a.ChannelID, ErrNotWritable)
	if err != nil {
		return nil, fmt.Errorf("send_message: %w", err)
	}
	out := discord.OutgoingMessage{Content: a.Content}
	var replyTo *string
	if a.ReplyToMessageID != 0 {
		target, err := h.cl.FetchMessage(ctx, ch.ID, a.ReplyToMessageID)
		if err != nil {
			if errors.Is(err, discord.ErrNotFound) {
				return nil, fmt.Errorf("send_message: %w", ErrReplyNotFound)
			}
			return nil, fmt.Errorf("send_message: %w", err)
		}
		out.ReplyTo = target.ID
		id := a.ReplyToMessageID.String()
		replyTo = &id
	}
	sent, err := h.cl.SendMessage(ctx, ch.ID, out)
	if err != nil {
		return nil, fmt.Errorf("send_message: %w", err)
	}
	h.lg.InfoContext(ctx, "send_message: sent", "channel_id", ch.ID, "message_id", sent.ID, "reply_to", out.ReplyTo)
	return envelope(sendMessagePayload{
		Success:   true,
		MessageID: sent.ID.String(),
		ChannelID: a.ChannelID.String(),
		Content:   a.Content,
		Timestamp: format.UnixMilli(sent.CreatedAt),
		ReplyTo:   replyTo,
	})
}
