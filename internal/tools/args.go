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

// In this file: typed tool arguments and their decoding.

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/disgoorg/snowflake/v2"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const (
	defReadLimit = 50
	maxReadLimit = 100

	defSearchLimit = 100
	maxSearchLimit = 500

	defMemberLimit = 100
	maxMemberLimit = 1000

	minLimit = 1
)

// ReadChannelArgs are the arguments of read_channel.
type ReadChannelArgs struct {
	ChannelID snowflake.ID `mapstructure:"channelId" validate:"required"`
	Limit     int          `mapstructure:"limit"`
}

// ListChannelsArgs are the arguments of list_channels.
type ListChannelsArgs struct {
	GuildID snowflake.ID `mapstructure:"guildId"`
}

// SearchMessagesArgs are the arguments of search_messages.  ChannelID takes
// precedence over GuildID.
type SearchMessagesArgs struct {
	ChannelID snowflake.ID `mapstructure:"channelId" validate:"required_without=GuildID"`
	GuildID   snowflake.ID `mapstructure:"guildId"`
	Query     string       `mapstructure:"query"`
	AuthorID  snowflake.ID `mapstructure:"authorId"`
	Limit     int          `mapstructure:"limit"`
	Before    snowflake.ID `mapstructure:"before"`
	After     snowflake.ID `mapstructure:"after"`
}

// ListGuildMembersArgs are the arguments of list_guild_members.
type ListGuildMembersArgs struct {
	GuildID      snowflake.ID `mapstructure:"guildId" validate:"required"`
	Limit        int          `mapstructure:"limit"`
	IncludeRoles bool         `mapstructure:"includeRoles"`
}

// SendMessageArgs are the arguments of send_message.
type SendMessageArgs struct {
	ChannelID        snowflake.ID `mapstructure:"channelId" validate:"required"`
	Content          string       `mapstructure:"content" validate:"required"`
	ReplyToMessageID snowflake.ID `mapstructure:"replyToMessageId"`
}

// Defaults for the argument structs.  Decode leaves fields that are absent
// from the input untouched, so callers decode into a copy of these.
var (
	DefaultReadChannelArgs      = ReadChannelArgs{Limit: defReadLimit}
	DefaultSearchMessagesArgs   = SearchMessagesArgs{Limit: defSearchLimit}
	DefaultListGuildMembersArgs = ListGuildMembersArgs{Limit: defMemberLimit}
)

var validate = newValidator()

// newValidator returns a validator that reports fields by their argument
// names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("mapstructure"), ",")
		return name
	})
	return v
}

var snowflakeType = reflect.TypeFor[snowflake.ID]()

// ErrInvalidID is returned when an identifier argument is not a snowflake.
var ErrInvalidID = errors.New("invalid snowflake id")

// stringToSnowflake converts string arguments to snowflake IDs.  An empty
// string decodes to the zero ID.
func stringToSnowflake(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != snowflakeType || from.Kind() != reflect.String {
		return data, nil
	}
	s := strings.TrimSpace(data.(string))
	if s == "" {
		return snowflake.ID(0), nil
	}
	id, err := snowflake.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Decode decodes the raw tool arguments into out, which must be a pointer to
// one of the argument structs, and validates the result.
func Decode(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: stringToSnowflake,
		Result:     out,
		TagName:    "mapstructure",
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(in); err != nil {
		return err
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return describe(verrs)
		}
		return err
	}
	return nil
}

// describe converts validator field errors into a single readable error.
func describe(verrs validator.ValidationErrors) error {
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "required_without":
			msgs = append(msgs, "either "+fe.Field()+" or "+argName(fe.Param())+" must be provided")
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}

// argName turns a Go field name into the argument name, i.e. GuildID into
// guildId.
func argName(field string) string {
	if field == "" {
		return field
	}
	if base, ok := strings.CutSuffix(field, "ID"); ok {
		field = base + "Id"
	}
	return strings.ToLower(field[:1]) + field[1:]
}
