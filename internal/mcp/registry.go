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

package mcp

// In this file: the static tool descriptors.

import (
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Tool names.
const (
	ToolReadChannel      = "read_channel"
	ToolListChannels     = "list_channels"
	ToolListGuilds       = "list_guilds"
	ToolGetUserInfo      = "get_user_info"
	ToolSearchMessages   = "search_messages"
	ToolListGuildMembers = "list_guild_members"
	ToolSendMessage      = "send_message"
)

// registry is the list of tools exposed by the server, in the order they are
// advertised.
var registry = []mcplib.Tool{
	mcplib.NewTool(ToolReadChannel,
		mcplib.WithDescription("Read messages from a Discord channel"),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("channelId",
			mcplib.Description("The Discord channel ID to read messages from"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of messages to fetch (default: 50, max: 100)"),
			mcplib.DefaultNumber(50),
		),
	),
	mcplib.NewTool(ToolListChannels,
		mcplib.WithDescription("List all accessible channels for the current user"),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("guildId",
			mcplib.Description("Optional: Filter channels by guild ID"),
		),
	),
	mcplib.NewTool(ToolListGuilds,
		mcplib.WithDescription("List all guilds (servers) the user is in"),
		mcplib.WithReadOnlyHintAnnotation(true),
	),
	mcplib.NewTool(ToolGetUserInfo,
		mcplib.WithDescription("Get information about the logged-in user"),
		mcplib.WithReadOnlyHintAnnotation(true),
	),
	mcplib.NewTool(ToolSearchMessages,
		mcplib.WithDescription("Search for messages in a Discord channel or across all text channels of a guild by content, author, or date range"),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("channelId",
			mcplib.Description("The Discord channel ID to search messages in (takes precedence over guildId)"),
		),
		mcplib.WithString("guildId",
			mcplib.Description("The Discord guild ID to search all text channels of, if channelId is not given"),
		),
		mcplib.WithString("query",
			mcplib.Description("Text to search for in message content"),
		),
		mcplib.WithString("authorId",
			mcplib.Description("Optional: Filter by author ID"),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of messages to search through (default: 100, max: 500)"),
			mcplib.DefaultNumber(100),
		),
		mcplib.WithString("before",
			mcplib.Description("Optional: Search messages before this message ID"),
		),
		mcplib.WithString("after",
			mcplib.Description("Optional: Search messages after this message ID"),
		),
	),
	mcplib.NewTool(ToolListGuildMembers,
		mcplib.WithDescription("List members of a specific Discord guild/server"),
		mcplib.WithReadOnlyHintAnnotation(true),
		mcplib.WithString("guildId",
			mcplib.Description("The Discord guild ID to list members from"),
			mcplib.Required(),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Number of members to fetch (default: 100, max: 1000)"),
			mcplib.DefaultNumber(100),
		),
		mcplib.WithBoolean("includeRoles",
			mcplib.Description("Whether to include role information for each member"),
			mcplib.DefaultBool(false),
		),
	),
	mcplib.NewTool(ToolSendMessage,
		mcplib.WithDescription("Send a message to a specific Discord channel"),
		mcplib.WithReadOnlyHintAnnotation(false),
		mcplib.WithDestructiveHintAnnotation(false),
		mcplib.WithString("channelId",
			mcplib.Description("The Discord channel ID to send the message to"),
			mcplib.Required(),
		),
		mcplib.WithString("content",
			mcplib.Description("The message content to send"),
			mcplib.Required(),
		),
		mcplib.WithString("replyToMessageId",
			mcplib.Description("Optional: Message ID to reply to"),
		),
	),
}

// schemas holds the compiled input schema of every registered tool.
var schemas = mustCompile(registry)

func mustCompile(tools []mcplib.Tool) map[string]*jsonschema.Schema {
	m := make(map[string]*jsonschema.Schema, len(tools))
	for _, t := range tools {
		data, err := json.Marshal(inputSchema(t))
		if err != nil {
			panic(fmt.Sprintf("tool %s: marshal input schema: %v", t.Name, err))
		}
		m[t.Name] = jsonschema.MustCompileString(t.Name+".json", string(data))
	}
	return m
}

// inputSchema returns the JSON schema document of the tool's arguments.
func inputSchema(t mcplib.Tool) map[string]any {
	props := t.InputSchema.Properties
	if props == nil {
		props = map[string]any{}
	}
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(t.InputSchema.Required) > 0 {
		s["required"] = t.InputSchema.Required
	}
	return s
}

// lookup returns the descriptor of the named tool.
func lookup(name string) (mcplib.Tool, bool) {
	for _, t := range registry {
		if t.Name == name {
			return t, true
		}
	}
	return mcplib.Tool{}, false
}
