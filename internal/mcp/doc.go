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

// Package mcp implements a Model Context Protocol (MCP) server for a Discord
// account.  It exposes reading, searching and sending messages, and guild,
// channel and member listings as MCP tools that AI agents can call.
//
// Tool calls are held until the Discord connection is ready (see [Gate]).
// The arguments of every call are checked against the advertised input
// schema before the call is routed to its handler.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio  – standard MCP stdio transport (default); suitable for local
//     agent integration.
//   - http   – Streamable HTTP transport; suitable for remote agents or when
//     multiple concurrent clients are needed.  The endpoint is /mcp, and
//     GET /healthz reports the state of the Discord connection.
package mcp
