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

// In this file: Client implementation backed by disgo.

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	dg "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/gorilla/websocket"
)

// intents are the gateway intents the session subscribes to.  Members,
// presences and message content are privileged and must be enabled for the
// application in the developer portal.
var intents = []gateway.Intents{
	gateway.IntentGuilds,
	gateway.IntentGuildMembers,
	gateway.IntentGuildPresences,
	gateway.IntentGuildMessages,
	gateway.IntentDirectMessages,
	gateway.IntentMessageContent,
}

// Session is a Client connected to Discord through disgo.
type Session struct {
	client  bot.Client
	lg      *slog.Logger
	onReady func()
	onFail  func(error)
}

var _ Client = (*Session)(nil)

type options struct {
	lg         *slog.Logger
	onReady    func()
	onFail     func(error)
	restURL    string
	gatewayURL string
}

// Option configures the Session.
type Option func(*options)

// WithLogger sets the logger for the session and the underlying client.
func WithLogger(lg *slog.Logger) Option {
	return func(o *options) {
		if lg != nil {
			o.lg = lg
		}
	}
}

// WithReadyFunc sets the function that is called once all guilds are loaded
// into the cache after logging in.
func WithReadyFunc(fn func()) Option {
	return func(o *options) {
		o.onReady = fn
	}
}

// WithFailFunc sets the function that is called when the gateway closes the
// connection for good, i.e. when the token is rejected or the intents are
// not allowed.
func WithFailFunc(fn func(error)) Option {
	return func(o *options) {
		o.onFail = fn
	}
}

// withURLs points the session at another REST API and gateway.
func withURLs(restURL, gatewayURL string) Option {
	return func(o *options) {
		o.restURL = restURL
		o.gatewayURL = gatewayURL
	}
}

// New creates a new session with the given token.  It does not connect, call
// Open to log in.  New does no network calls, it fails only if the token is
// malformed.
func New(token string, opts ...Option) (*Session, error) {
	if token == "" {
		return nil, errors.New("discord: empty token")
	}
	o := options{lg: slog.Default(), onReady: func() {}, onFail: func(error) {}}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Session{lg: o.lg, onReady: o.onReady, onFail: o.onFail}

	gwOpts := []gateway.ConfigOpt{
		gateway.WithIntents(intents...),
		gateway.WithLogger(o.lg),
		gateway.WithOS(disgo.OS),
		gateway.WithBrowser(disgo.Name),
		gateway.WithDevice(disgo.Name),
	}
	var restOpts []rest.ConfigOpt
	if o.gatewayURL != "" {
		gwOpts = append(gwOpts, gateway.WithURL(o.gatewayURL))
	}
	if o.restURL != "" {
		restOpts = append(restOpts, rest.WithURL(o.restURL))
	}
	// disgo's default gateway has no close handler.
	gw := gateway.New(token, s.handleEvent, s.handleClose, gwOpts...)

	client, err := disgo.New(token,
		bot.WithLogger(o.lg),
		bot.WithGateway(gw),
		bot.WithRestClientConfigOpts(restOpts...),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagsAll)),
		bot.WithEventListenerFunc(s.handleReady),
		bot.WithEventListenerFunc(s.handleGuildsReady),
	)
	if err != nil {
		return nil, fmt.Errorf("discord: %w", err)
	}
	s.client = client
	return s, nil
}

// handleEvent passes gateway events to the client.
func (s *Session) handleEvent(t gateway.EventType, seq int, shardID int, ev gateway.EventData) {
	s.client.EventManager().HandleGatewayEvent(t, seq, shardID, ev)
}

// handleClose is called when the gateway gives up on the connection.
func (s *Session) handleClose(_ gateway.Gateway, err error) {
	var cerr *websocket.CloseError
	if errors.As(err, &cerr) {
		code := gateway.CloseEventCodeByCode(cerr.Code)
		err = fmt.Errorf("discord: gateway closed with %d %s: %w", cerr.Code, code.Description, err)
	} else {
		err = fmt.Errorf("discord: gateway closed: %w", err)
	}
	s.lg.Error("discord: connection lost", "error", err)
	s.onFail(err)
}

// handleReady signals readiness straight away if the user is not in any
// guilds, as there will be no guild events to wait for.
func (s *Session) handleReady(e *events.Ready) {
	if len(e.Guilds) > 0 {
		return
	}
	s.lg.Info("discord: client ready", "user", convertUser(e.User.User).Tag(), "guilds", 0)
	s.onReady()
}

func (s *Session) handleGuildsReady(e *events.GuildsReady) {
	if u, ok := e.Client().Caches().SelfUser(); ok {
		s.lg.Info("discord: client ready", "user", convertUser(u.User).Tag(), "guilds", e.Client().Caches().GuildsLen())
	}
	s.onReady()
}

// Open checks the token and connects to the gateway.  The gateway reports
// the result of the login asynchronously, through the ready and fail
// functions.
func (s *Session) Open(ctx context.Context) error {
	u, err := s.client.Rest().GetCurrentUser("", rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("discord: login: %w", apiErr(err))
	}
	s.lg.DebugContext(ctx, "discord: token accepted", "user", convertUser(u.User).Tag())
	if err := s.client.OpenGateway(ctx); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	return nil
}

// Close disconnects from the gateway.
func (s *Session) Close(ctx context.Context) {
	s.client.Close(ctx)
}

func (s *Session) CurrentUser() (User, bool) {
	u, ok := s.client.Caches().SelfUser()
	if !ok {
		return User{}, false
	}
	user := convertUser(u.User)
	user.Verified = &u.Verified
	return user, true
}

// CurrentStatus returns the status of the current user as seen in any of the
// guilds, as the gateway does not report it directly.
func (s *Session) CurrentStatus() string {
	self, ok := s.client.Caches().SelfUser()
	if !ok {
		return ""
	}
	var status string
	s.client.Caches().GuildsForEach(func(g dg.Guild) {
		if status != "" {
			return
		}
		if p, ok := s.client.Caches().Presence(g.ID, self.ID); ok {
			status = string(p.Status)
		}
	})
	return status
}

func (s *Session) Guilds() []Guild {
	var out []Guild
	s.client.Caches().GuildsForEach(func(g dg.Guild) {
		out = append(out, convertGuild(g))
	})
	return out
}

func (s *Session) Guild(guildID snowflake.ID) (Guild, bool) {
	g, ok := s.client.Caches().Guild(guildID)
	if !ok {
		return Guild{}, false
	}
	return convertGuild(g), true
}

func (s *Session) FetchGuild(ctx context.Context, guildID snowflake.ID) (Guild, error) {
	if g, ok := s.Guild(guildID); ok {
		return g, nil
	}
	g, err := s.client.Rest().GetGuild(guildID, true, rest.WithCtx(ctx))
	if err != nil {
		return Guild{}, fmt.Errorf("guild %s: %w", guildID, apiErr(err))
	}
	return convertGuild(g.Guild), nil
}

func (s *Session) guildName(guildID snowflake.ID) string {
	if g, ok := s.client.Caches().Guild(guildID); ok {
		return g.Name
	}
	return ""
}

func (s *Session) Channels() []Channel {
	var out []Channel
	s.client.Caches().ChannelsForEach(func(ch dg.GuildChannel) {
		out = append(out, convertGuildChannel(ch, s.guildName(ch.GuildID())))
	})
	return out
}

func (s *Session) GuildChannels(guildID snowflake.ID) []Channel {
	name := s.guildName(guildID)
	var out []Channel
	s.client.Caches().ChannelsForEach(func(ch dg.GuildChannel) {
		if ch.GuildID() == guildID {
			out = append(out, convertGuildChannel(ch, name))
		}
	})
	return out
}

func (s *Session) FetchChannel(ctx context.Context, channelID snowflake.ID) (Channel, error) {
	if ch, ok := s.client.Caches().Channel(channelID); ok {
		return convertGuildChannel(ch, s.guildName(ch.GuildID())), nil
	}
	ch, err := s.client.Rest().GetChannel(channelID, rest.WithCtx(ctx))
	if err != nil {
		return Channel{}, fmt.Errorf("channel %s: %w", channelID, apiErr(err))
	}
	if gc, ok := ch.(dg.GuildChannel); ok {
		return convertGuildChannel(gc, s.guildName(gc.GuildID())), nil
	}
	return convertPrivateChannel(ch), nil
}

func (s *Session) FetchMessages(ctx context.Context, channelID snowflake.ID, q MessageQuery) ([]Message, error) {
	page := func(ctx context.Context, before, after snowflake.ID, limit int) ([]Message, error) {
		msgs, err := s.client.Rest().GetMessages(channelID, 0, before, after, limit, rest.WithCtx(ctx))
		if err != nil {
			return nil, fmt.Errorf("messages of %s: %w", channelID, apiErr(err))
		}
		out := make([]Message, 0, len(msgs))
		for _, m := range msgs {
			out = append(out, convertMessage(m))
		}
		return out, nil
	}
	return fetchPaged(ctx, q, page)
}

func (s *Session) FetchMessage(ctx context.Context, channelID, messageID snowflake.ID) (Message, error) {
	m, err := s.client.Rest().GetMessage(channelID, messageID, rest.WithCtx(ctx))
	if err != nil {
		return Message{}, fmt.Errorf("message %s: %w", messageID, apiErr(err))
	}
	return convertMessage(*m), nil
}

func (s *Session) SendMessage(ctx context.Context, channelID snowflake.ID, m OutgoingMessage) (Message, error) {
	create := dg.MessageCreate{Content: m.Content}
	if m.ReplyTo != 0 {
		create.MessageReference = &dg.MessageReference{
			MessageID:       &m.ReplyTo,
			ChannelID:       &channelID,
			FailIfNotExists: true,
		}
	}
	sent, err := s.client.Rest().CreateMessage(channelID, create, rest.WithCtx(ctx))
	if err != nil {
		return Message{}, fmt.Errorf("send to %s: %w", channelID, apiErr(err))
	}
	return convertMessage(*sent), nil
}

func (s *Session) FetchMembers(ctx context.Context, guildID snowflake.ID, limit int) ([]Member, error) {
	members, err := s.client.Rest().GetMembers(guildID, limit, 0, rest.WithCtx(ctx))
	if err != nil {
		return nil, fmt.Errorf("members of %s: %w", guildID, apiErr(err))
	}
	out := make([]Member, 0, len(members))
	for _, m := range members {
		status := "offline"
		if p, ok := s.client.Caches().Presence(guildID, m.User.ID); ok && p.Status != "" {
			status = string(p.Status)
		}
		mem := convertMember(m, status)
		mem.GuildID = guildID
		out = append(out, mem)
	}
	return out, nil
}

func (s *Session) Roles(guildID snowflake.ID) []Role {
	var out []Role
	s.client.Caches().RolesForEach(guildID, func(r dg.Role) {
		out = append(out, convertRole(r))
	})
	return out
}

// apiErr wraps ErrNotFound into 404 responses.
func apiErr(err error) error {
	var rerr *rest.Error
	if errors.As(err, &rerr) && rerr.Response != nil && rerr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return err
}
