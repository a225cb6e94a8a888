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

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/discord/mock_discord"
)

var textChan = discord.Channel{ID: 100, Name: "general", Type: discord.ChannelTypeGuildText, GuildID: 10}

// newestFirst returns n messages in the order the API returns them, the
// newest first, one minute apart.
func newestFirst(n int) []discord.Message {
	out := make([]discord.Message, 0, n)
	for i := n; i > 0; i-- {
		out = append(out, msg(snowflake.ID(i), 1, fmt.Sprintf("message %d", i), testNow.Add(-time.Duration(n-i+1)*time.Minute)))
	}
	return out
}

// ─── ReadChannel ──────────────────────────────────────────────────────────────

func TestReadChannel(t *testing.T) {
	tests := []struct {
		name    string
		args    ReadChannelArgs
		setup   func(m *mock_discord.MockClient)
		wantErr error
		wantIDs []string
	}{
		{
			name: "oldest first",
			args: ReadChannelArgs{ChannelID: 100, Limit: 3},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), snowflake.ID(100)).Return(textChan, nil)
				m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(100), discord.MessageQuery{Limit: 3}).Return(newestFirst(3), nil)
			},
			wantIDs: []string{"1", "2", "3"},
		},
		{
			name: "limit capped at 100",
			args: ReadChannelArgs{ChannelID: 100, Limit: 500},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(textChan, nil)
				m.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), discord.MessageQuery{Limit: 100}).Return(nil, nil)
			},
			wantIDs: []string{},
		},
		{
			name: "default limit",
			args: ReadChannelArgs{ChannelID: 100},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(textChan, nil)
				m.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), discord.MessageQuery{Limit: 50}).Return(nil, nil)
			},
			wantIDs: []string{},
		},
		{
			name: "channel not found",
			args: ReadChannelArgs{ChannelID: 100},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(discord.Channel{}, fmt.Errorf("channel 100: %w", discord.ErrNotFound))
			},
			wantErr: ErrNotText,
		},
		{
			name: "category",
			args: ReadChannelArgs{ChannelID: 100},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(discord.Channel{ID: 100, Type: discord.ChannelTypeGuildCategory}, nil)
			},
			wantErr: ErrNotText,
		},
		{
			name: "fetch error",
			args: ReadChannelArgs{ChannelID: 100},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(textChan, nil)
				m.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errBoom)
			},
			wantErr: errBoom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(t)
			tt.setup(m)
			r, err := h.ReadChannel(t.Context(), tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, strings.HasPrefix(err.Error(), "read_channel: "))
				return
			}
			require.NoError(t, err)
			p := payload[readChannelPayload](t, r)
			assert.Equal(t, channelSummary{ID: "100", Name: "general", Type: 0}, p.Channel)
			ids := []string{}
			for _, m := range p.Messages {
				ids = append(ids, m.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

var errBoom = errors.New("boom")

func TestReadChannel_record(t *testing.T) {
	h, m := newTestHandlers(t)
	created := testNow.Add(-3 * time.Hour)
	m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(discord.Channel{ID: 7, Type: discord.ChannelTypeDM}, nil)
	m.EXPECT().FetchMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return([]discord.Message{{
		ID:        55,
		ChannelID: 7,
		Author:    discord.User{ID: 9, Username: "bob", Discriminator: "1234"},
		Content:   "hello",
		CreatedAt: created,
		Attachments: []discord.Attachment{
			{Filename: "a.png", URL: "https://cdn/a.png", Size: 2048},
			{URL: "https://cdn/x"},
		},
		Embeds: []discord.Embed{{
			Title:  "T",
			Fields: []discord.EmbedField{{Name: "k", Value: "v", Inline: true}},
		}, {}},
	}}, nil)

	r, err := h.ReadChannel(t.Context(), ReadChannelArgs{ChannelID: 7})
	require.NoError(t, err)
	p := payload[readChannelPayload](t, r)
	assert.Equal(t, "DM", p.Channel.Name)
	assert.Equal(t, 1, p.Channel.Type)
	require.Len(t, p.Messages, 1)
	got := p.Messages[0]
	assert.Equal(t, authorRecord{ID: "9", Username: "bob", Discriminator: "1234"}, got.Author)
	assert.Equal(t, created.UnixMilli(), got.Timestamp)
	assert.Equal(t, "3 hours ago", got.RelativeTime)
	assert.Equal(t, []attachmentRecord{
		{Name: "a.png", URL: "https://cdn/a.png", Size: 2048},
		{Name: "unknown", URL: "https://cdn/x"},
	}, got.Attachments)
	require.Len(t, got.Embeds, 2)
	assert.Equal(t, "T", got.Embeds[0].Title)
	assert.Equal(t, []embedFieldRecord{{Name: "k", Value: "v", Inline: true}}, got.Embeds[0].Fields)
	assert.Empty(t, got.ChannelID)

	text := firstText(t, r)
	assert.Contains(t, text, `"fields": []`)
	assert.NotContains(t, text, `"channelId"`)
}

// ─── SearchMessages ───────────────────────────────────────────────────────────

func TestSearchMessages_noTarget(t *testing.T) {
	h, _ := newTestHandlers(t)
	_, err := h.SearchMessages(t.Context(), SearchMessagesArgs{Query: "x"})
	assert.ErrorIs(t, err, ErrNoTarget)
}

func TestSearchMessages_channel(t *testing.T) {
	msgs := []discord.Message{
		msg(4, 2, "Hello WORLD", testNow.Add(-1*time.Minute)),
		msg(3, 1, "hello there", testNow.Add(-2*time.Minute)),
		msg(2, 2, "nothing", testNow.Add(-3*time.Minute)),
		msg(1, 2, "say hello", testNow.Add(-4*time.Minute)),
	}
	tests := []struct {
		name    string
		args    SearchMessagesArgs
		wantIDs []string
	}{
		{"query only", SearchMessagesArgs{Query: "HELLO"}, []string{"1", "3", "4"}},
		{"author only", SearchMessagesArgs{AuthorID: 2}, []string{"1", "2", "4"}},
		{"query and author", SearchMessagesArgs{Query: "hello", AuthorID: 2}, []string{"1", "4"}},
		{"no filter", SearchMessagesArgs{}, []string{"1", "2", "3", "4"}},
		{"no match", SearchMessagesArgs{Query: "absent"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(t)
			tt.args.ChannelID = 100
			tt.args.Before = 900
			tt.args.Limit = 1000
			m.EXPECT().FetchChannel(gomock.Any(), snowflake.ID(100)).Return(textChan, nil)
			m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(100), discord.MessageQuery{Limit: maxSearchLimit, Before: 900}).
				Return(append([]discord.Message(nil), msgs...), nil)

			r, err := h.SearchMessages(t.Context(), tt.args)
			require.NoError(t, err)
			p := payload[searchChannelPayload](t, r)
			ids := []string{}
			for _, m := range p.Messages {
				ids = append(ids, m.ID)
				if tt.args.Query != "" {
					assert.Contains(t, strings.ToLower(m.Content), strings.ToLower(tt.args.Query))
				}
				if tt.args.AuthorID != 0 {
					assert.Equal(t, tt.args.AuthorID.String(), m.Author.ID)
				}
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, len(ids), p.TotalResults)
			assert.Equal(t, tt.args.Query, p.SearchQuery)
		})
	}
}

func TestSearchMessages_channelTakesPrecedence(t *testing.T) {
	h, m := newTestHandlers(t)
	m.EXPECT().FetchChannel(gomock.Any(), snowflake.ID(100)).Return(textChan, nil)
	m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(100), gomock.Any()).Return(nil, nil)
	m.EXPECT().FetchGuild(gomock.Any(), gomock.Any()).Times(0)

	r, err := h.SearchMessages(t.Context(), SearchMessagesArgs{ChannelID: 100, GuildID: 10, Limit: 10})
	require.NoError(t, err)
	assert.Contains(t, firstText(t, r), `"channel"`)
	assert.NotContains(t, firstText(t, r), `"guild"`)
}

func TestSearchMessages_guild(t *testing.T) {
	h, m := newTestHandlers(t)
	guild := discord.Guild{ID: 10, Name: "Gophers"}
	m.EXPECT().FetchGuild(gomock.Any(), snowflake.ID(10)).Return(guild, nil)
	m.EXPECT().GuildChannels(snowflake.ID(10)).Return([]discord.Channel{
		{ID: 103, Name: "c", Type: discord.ChannelTypeGuildText, Position: 2},
		{ID: 200, Name: "topics", Type: discord.ChannelTypeGuildCategory, Position: 0},
		{ID: 101, Name: "a", Type: discord.ChannelTypeGuildText, Position: 0},
		{ID: 102, Name: "b", Type: discord.ChannelTypeGuildNews, Position: 1},
	})
	// 30 messages across 3 text channels is 10 per channel.
	q := discord.MessageQuery{Limit: 10, After: 5}
	gomock.InOrder(
		m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(101), q).Return([]discord.Message{
			msg(12, 1, "hello a2", testNow.Add(-1*time.Minute)),
			msg(11, 1, "hello a1", testNow.Add(-5*time.Minute)),
		}, nil),
		m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(102), q).Return(nil, errors.New("missing access")),
		m.EXPECT().FetchMessages(gomock.Any(), snowflake.ID(103), q).Return([]discord.Message{
			msg(32, 1, "hello c2", testNow.Add(-2*time.Minute)),
			msg(31, 1, "bye c1", testNow.Add(-3*time.Minute)),
		}, nil),
	)

	r, err := h.SearchMessages(t.Context(), SearchMessagesArgs{GuildID: 10, Query: "hello", Limit: 30, After: 5})
	require.NoError(t, err)
	p := payload[searchGuildPayload](t, r)

	assert.Equal(t, guildSummary{ID: "10", Name: "Gophers"}, p.Guild)
	assert.Equal(t, []channelOutcome{
		{ChannelID: "101", ChannelName: "a", MessageCount: 2},
		{ChannelID: "103", ChannelName: "c", MessageCount: 1},
	}, p.ChannelResults)
	assert.Equal(t, []channelOutcome{
		{ChannelID: "102", ChannelName: "b", Error: "missing access"},
	}, p.SkippedChannels)
	require.Equal(t, 3, p.TotalResults)
	var ids, chans []string
	for i, m := range p.Messages {
		ids = append(ids, m.ID)
		chans = append(chans, m.ChannelName)
		if i > 0 {
			assert.LessOrEqual(t, p.Messages[i-1].Timestamp, m.Timestamp)
		}
	}
	assert.Equal(t, []string{"11", "32", "12"}, ids)
	assert.Equal(t, []string{"a", "c", "a"}, chans)
	assert.Equal(t, "101", p.Messages[0].ChannelID)
}

func TestSearchMessages_guildNotFound(t *testing.T) {
	h, m := newTestHandlers(t)
	m.EXPECT().FetchGuild(gomock.Any(), gomock.Any()).Return(discord.Guild{}, fmt.Errorf("guild 10: %w", discord.ErrNotFound))
	_, err := h.SearchMessages(t.Context(), SearchMessagesArgs{GuildID: 10})
	assert.ErrorIs(t, err, ErrGuildNotFound)
}

func TestSearchMessages_guildWithoutTextChannels(t *testing.T) {
	h, m := newTestHandlers(t)
	m.EXPECT().FetchGuild(gomock.Any(), gomock.Any()).Return(discord.Guild{ID: 10, Name: "g"}, nil)
	m.EXPECT().GuildChannels(gomock.Any()).Return([]discord.Channel{{ID: 1, Type: discord.ChannelTypeGuildCategory}})

	r, err := h.SearchMessages(t.Context(), SearchMessagesArgs{GuildID: 10, Limit: 100})
	require.NoError(t, err)
	p := payload[searchGuildPayload](t, r)
	assert.Equal(t, 0, p.TotalResults)
	assert.NotNil(t, p.Messages)
	assert.NotNil(t, p.SkippedChannels)
}

func TestSearchMessages_guildCancelled(t *testing.T) {
	h, m := newTestHandlers(t)
	m.EXPECT().FetchGuild(gomock.Any(), gomock.Any()).Return(discord.Guild{ID: 10}, nil)
	m.EXPECT().GuildChannels(gomock.Any()).Return([]discord.Channel{{ID: 1, Type: discord.ChannelTypeGuildText}})

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	_, err := h.SearchMessages(ctx, SearchMessagesArgs{GuildID: 10, Limit: 100})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPerChannelLimit(t *testing.T) {
	tests := []struct {
		limit, n, want int
	}{
		{30, 3, 10},
		{500, 2, 100},
		{100, 3, 33},
		{2, 5, 1},
		{100, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.limit, tt.n), func(t *testing.T) {
			assert.Equal(t, tt.want, perChannelLimit(tt.limit, tt.n))
		})
	}
}

// ─── SendMessage ──────────────────────────────────────────────────────────────

func TestSendMessage(t *testing.T) {
	sentAt := testNow.Add(-time.Second)
	tests := []struct {
		name        string
		args        SendMessageArgs
		setup       func(m *mock_discord.MockClient)
		wantErr     error
		wantReplyTo *string
	}{
		{
			name: "plain message",
			args: SendMessageArgs{ChannelID: 100, Content: "hi"},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), snowflake.ID(100)).Return(textChan, nil)
				m.EXPECT().SendMessage(gomock.Any(), snowflake.ID(100), discord.OutgoingMessage{Content: "hi"}).
					Return(discord.Message{ID: 500, CreatedAt: sentAt}, nil)
			},
		},
		{
			name: "reply",
			args: SendMessageArgs{ChannelID: 100, Content: "hi", ReplyToMessageID: 42},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), snowflake.ID(100)).Return(textChan, nil)
				m.EXPECT().FetchMessage(gomock.Any(), snowflake.ID(100), snowflake.ID(42)).Return(discord.Message{ID: 42}, nil)
				m.EXPECT().SendMessage(gomock.Any(), snowflake.ID(100), discord.OutgoingMessage{Content: "hi", ReplyTo: 42}).
					Return(discord.Message{ID: 500, CreatedAt: sentAt}, nil)
			},
			wantReplyTo: ptr("42"),
		},
		{
			name: "reply target missing",
			args: SendMessageArgs{ChannelID: 100, Content: "hi", ReplyToMessageID: 42},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(textChan, nil)
				m.EXPECT().FetchMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(discord.Message{}, fmt.Errorf("message 42: %w", discord.ErrNotFound))
			},
			wantErr: ErrReplyNotFound,
		},
		{
			name: "category channel",
			args: SendMessageArgs{ChannelID: 100, Content: "hi"},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(discord.Channel{ID: 100, Type: discord.ChannelTypeGuildCategory}, nil)
			},
			wantErr: ErrNotWritable,
		},
		{
			name: "send fails",
			args: SendMessageArgs{ChannelID: 100, Content: "hi"},
			setup: func(m *mock_discord.MockClient) {
				m.EXPECT().FetchChannel(gomock.Any(), gomock.Any()).Return(textChan, nil)
				m.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any()).Return(discord.Message{}, errBoom)
			},
			wantErr: errBoom,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := newTestHandlers(t)
			tt.setup(m)
			r, err := h.SendMessage(t.Context(), tt.args)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			p := payload[sendMessagePayload](t, r)
			assert.True(t, p.Success)
			assert.Equal(t, "500", p.MessageID)
			assert.Equal(t, "100", p.ChannelID)
			assert.Equal(t, "hi", p.Content)
			assert.Equal(t, sentAt.UnixMilli(), p.Timestamp)
			assert.Equal(t, tt.wantReplyTo, p.ReplyTo)
			if tt.wantReplyTo == nil {
				assert.Contains(t, firstText(t, r), `"replyTo": null`)
			}
		})
	}
}

func ptr[T any](v T) *T { return &v }
