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

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/disgoorg/snowflake/v2"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/discord/mock_discord"
	"github.com/rusq/discordmcp/internal/tools"
)

// newTestServer creates a *Server with an open gate, backed by a mock client.
func newTestServer(t *testing.T) (*Server, *mock_discord.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mock_discord.NewMockClient(ctrl)
	g := NewGate()
	g.Open()
	srv := New(tools.New(m, tools.WithClock(func() time.Time { return testNow })), g, WithLogger(nil))
	require.NotNil(t, srv)
	return srv, m
}

// rpcResponse is a JSON-RPC response.
type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// rpc sends a raw JSON-RPC message to the server and decodes the response.
func rpc(t *testing.T, srv *Server, msg string) rpcResponse {
	t.Helper()
	out := srv.mcp.HandleMessage(t.Context(), json.RawMessage(msg))
	require.NotNil(t, out)
	data, err := json.Marshal(out)
	require.NoError(t, err)
	var resp rpcResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	return resp
}

const initMsg = `{"jsonrpc":"2.0","id":0,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"1.0"}}}`

func TestNew(t *testing.T) {
	srv, _ := newTestServer(t)
	assert.NotNil(t, srv.mcp)
	assert.NotNil(t, srv.disp)
	assert.NotNil(t, srv.logger)
}

func TestServer_initialize(t *testing.T) {
	srv, _ := newTestServer(t)
	resp := rpc(t, srv, initMsg)
	require.Nil(t, resp.Error)
	var res struct {
		ServerInfo struct {
			Name    string `json:"name"`
			Version string `json:"version"`
		} `json:"serverInfo"`
		Instructions string `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &res))
	assert.Equal(t, "discord-mcp", res.ServerInfo.Name)
	assert.Equal(t, "1.0.0", res.ServerInfo.Version)
	assert.Contains(t, res.Instructions, "Discord")
}

func TestServer_listTools(t *testing.T) {
	srv, _ := newTestServer(t)
	rpc(t, srv, initMsg)
	resp := rpc(t, srv, `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	require.Nil(t, resp.Error)

	var res struct {
		Tools []struct {
			Name        string         `json:"name"`
			Description string         `json:"description"`
			InputSchema map[string]any `json:"inputSchema"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &res))
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
		want, ok := lookup(tool.Name)
		require.True(t, ok)
		assert.Equal(t, want.Description, tool.Description)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	slices.Sort(names)
	assert.Equal(t, []string{
		ToolGetUserInfo, ToolListChannels, ToolListGuildMembers, ToolListGuilds,
		ToolReadChannel, ToolSearchMessages, ToolSendMessage,
	}, names)
}

func TestServer_callTool(t *testing.T) {
	srv, m := newTestServer(t)
	m.EXPECT().Guild(snowflake.ID(10)).Return(discord.Guild{ID: 10, Name: "Gophers"}, true)
	m.EXPECT().GuildChannels(snowflake.ID(10)).Return([]discord.Channel{
		{ID: 11, Name: "general", Type: discord.ChannelTypeGuildText, GuildID: 10, GuildName: "Gophers"},
	})

	rpc(t, srv, initMsg)
	resp := rpc(t, srv, `{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"list_channels","arguments":{"guildId":"10"}}}`)
	require.Nil(t, resp.Error)

	var res struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(resp.Result, &res))
	require.Len(t, res.Content, 1)
	assert.Equal(t, "text", res.Content[0].Type)

	var payload struct {
		TotalChannels int    `json:"totalChannels"`
		GuildFilter   string `json:"guildFilter"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.Content[0].Text), &payload))
	assert.Equal(t, 1, payload.TotalChannels)
	assert.Equal(t, "10", payload.GuildFilter)
}

func TestServer_callToolError(t *testing.T) {
	srv, _ := newTestServer(t)
	rpc(t, srv, initMsg)
	resp := rpc(t, srv, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"send_message","arguments":{"channelId":"1"}}}`)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Message, "missing required parameters: content")
}

func TestServer_callToolErrorKind(t *testing.T) {
	srv, _ := newTestServer(t)
	rpc(t, srv, initMsg)
	tests := []struct {
		name   string
		tool   string
		args   string
		prefix string
		detail string
	}{
		{"missing argument", ToolSendMessage, `{"channelId":"1"}`, "invalid params: ", "missing required parameters: content"},
		{"wrong type", ToolReadChannel, `{"channelId":"1","limit":"ten"}`, "invalid params: ", "/limit"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := rpc(t, srv, fmt.Sprintf(`{"jsonrpc":"2.0","id":%d,"method":"tools/call","params":{"name":%q,"arguments":%s}}`, 10+i, tt.tool, tt.args))
			require.NotNil(t, resp.Error)
			assert.Equal(t, mcplib.INTERNAL_ERROR, resp.Error.Code)
			assert.True(t, strings.HasPrefix(resp.Error.Message, tt.prefix), "message: %s", resp.Error.Message)
			assert.Contains(t, resp.Error.Message, tt.detail)
		})
	}
}

func TestServer_healthHandler(t *testing.T) {
	newServer := func(t *testing.T, g *Gate) *Server {
		ctrl := gomock.NewController(t)
		return New(tools.New(mock_discord.NewMockClient(ctrl)), g)
	}
	get := func(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
		t.Helper()
		w := httptest.NewRecorder()
		srv.httpHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}
	t.Run("connecting", func(t *testing.T) {
		w := get(t, newServer(t, NewGate()), "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"connecting"}`, w.Body.String())
	})
	t.Run("ready", func(t *testing.T) {
		g := NewGate()
		g.Open()
		w := get(t, newServer(t, g), "/healthz")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"status":"ready"}`, w.Body.String())
	})
	t.Run("failed", func(t *testing.T) {
		g := NewGate()
		g.Fail(errors.New("invalid token"))
		w := get(t, newServer(t, g), "/healthz")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t, `{"status":"failed","error":"invalid token"}`, w.Body.String())
	})
	t.Run("unknown path", func(t *testing.T) {
		w := get(t, newServer(t, NewGate()), "/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestServer_Serve(t *testing.T) {
	srv, _ := newTestServer(t)
	err := srv.Serve(t.Context(), Transport("smoke-signals"), "")
	assert.ErrorContains(t, err, "unknown transport")
}
