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

// In this file: routing of tool calls to the handlers.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/rusq/discordmcp/internal/tools"
)

// ToolError is the error returned by the dispatcher.  Code is one of the
// JSON-RPC error codes defined by mcp-go.
type ToolError struct {
	Code    int
	Message string
}

// codeNames prefix error messages, as mcp-go reports all handler errors with
// the INTERNAL_ERROR code.
var codeNames = map[int]string{
	mcplib.INVALID_PARAMS:   "invalid params",
	mcplib.METHOD_NOT_FOUND: "method not found",
	mcplib.INTERNAL_ERROR:   "internal error",
}

func (e *ToolError) Error() string {
	if name, ok := codeNames[e.Code]; ok {
		return name + ": " + e.Message
	}
	return e.Message
}

func invalidParams(format string, a ...any) *ToolError {
	return &ToolError{Code: mcplib.INVALID_PARAMS, Message: fmt.Sprintf(format, a...)}
}

func internalError(format string, a ...any) *ToolError {
	return &ToolError{Code: mcplib.INTERNAL_ERROR, Message: fmt.Sprintf(format, a...)}
}

// callFunc calls a handler with the raw arguments of the tool call.
type callFunc func(ctx context.Context, args map[string]any) (*mcplib.CallToolResult, error)

type route struct {
	// noArgs tools ignore their arguments.
	noArgs bool
	call   callFunc
}

// bind returns a callFunc that decodes the arguments into a copy of def and
// calls fn.
func bind[T any](def T, fn func(context.Context, T) (*mcplib.CallToolResult, error)) callFunc {
	return func(ctx context.Context, args map[string]any) (*mcplib.CallToolResult, error) {
		a := def
		if err := tools.Decode(args, &a); err != nil {
			return nil, invalidParams("%s", err)
		}
		return fn(ctx, a)
	}
}

func noArgs(fn func(context.Context) (*mcplib.CallToolResult, error)) route {
	return route{
		noArgs: true,
		call: func(ctx context.Context, _ map[string]any) (*mcplib.CallToolResult, error) {
			return fn(ctx)
		},
	}
}

// Dispatcher validates tool calls and routes them to the handlers.
type Dispatcher struct {
	gate   *Gate
	routes map[string]route
	lg     *slog.Logger
}

// NewDispatcher returns a dispatcher that routes calls to h once gate is
// open.
func NewDispatcher(h *tools.Handlers, gate *Gate, lg *slog.Logger) *Dispatcher {
	if lg == nil {
		lg = slog.Default()
	}
	return &Dispatcher{
		gate: gate,
		lg:   lg,
		routes: map[string]route{
			ToolReadChannel:      {call: bind(tools.DefaultReadChannelArgs, h.ReadChannel)},
			ToolListChannels:     {call: bind(tools.ListChannelsArgs{}, h.ListChannels)},
			ToolListGuilds:       noArgs(h.ListGuilds),
			ToolGetUserInfo:      noArgs(h.GetUserInfo),
			ToolSearchMessages:   {call: bind(tools.DefaultSearchMessagesArgs, h.SearchMessages)},
			ToolListGuildMembers: {call: bind(tools.DefaultListGuildMembersArgs, h.ListGuildMembers)},
			ToolSendMessage:      {call: bind(tools.SendMessageArgs{}, h.SendMessage)},
		},
	}
}

// Call executes the named tool with the raw arguments of the request.  It
// waits for the gate first.  All errors returned are *ToolError.
func (d *Dispatcher) Call(ctx context.Context, name string, rawArgs any) (*mcplib.CallToolResult, error) {
	lg := d.lg.With("tool", name, "call_id", uuid.NewString())
	lg.DebugContext(ctx, "mcp: tool call started")
	start := time.Now()
	res, err := d.call(ctx, name, rawArgs)
	lg = lg.With("took", time.Since(start))
	if err != nil {
		lg.WarnContext(ctx, "mcp: tool call failed", "error", err)
		return nil, err
	}
	lg.DebugContext(ctx, "mcp: tool call")
	return res, nil
}

func (d *Dispatcher) call(ctx context.Context, name string, rawArgs any) (*mcplib.CallToolResult, error) {
	if err := d.gate.Wait(ctx); err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return nil, internalError("%s", err)
		}
		return nil, internalError("discord connection failed: %s", err)
	}

	r, ok := d.routes[name]
	if !ok {
		return nil, &ToolError{Code: mcplib.METHOD_NOT_FOUND, Message: "unknown tool: " + name}
	}

	var args map[string]any
	if !r.noArgs {
		var err error
		if args, err = checkArgs(name, rawArgs); err != nil {
			return nil, err
		}
	}

	res, err := r.call(ctx, args)
	if err != nil {
		var te *ToolError
		if errors.As(err, &te) {
			return nil, te
		}
		return nil, internalError("%s", err)
	}
	return res, nil
}

// checkArgs checks the arguments against the tool's declared required keys
// and input schema and returns them as a map.
func checkArgs(name string, rawArgs any) (map[string]any, error) {
	args, ok := rawArgs.(map[string]any)
	if !ok || args == nil {
		return nil, invalidParams("invalid arguments provided")
	}
	tool, ok := lookup(name)
	if !ok {
		return nil, &ToolError{Code: mcplib.METHOD_NOT_FOUND, Message: "unknown tool: " + name}
	}
	var missing []string
	for _, k := range tool.InputSchema.Required {
		if _, ok := args[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, invalidParams("missing required parameters: %s", strings.Join(missing, ", "))
	}
	if err := validateSchema(name, args); err != nil {
		return nil, invalidParams("%s", err)
	}
	return args, nil
}

// validateSchema validates args against the compiled input schema of the
// tool.  The arguments are normalised through JSON first, so that the values
// have the types the validator expects.
func validateSchema(name string, args map[string]any) error {
	s, ok := schemas[name]
	if !ok {
		return nil
	}
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("arguments of %s: %w", name, err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("arguments of %s: %w", name, err)
	}
	if err := s.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			leaf := firstLeaf(ve)
			loc := leaf.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			return fmt.Errorf("invalid arguments at %s: %s", loc, leaf.Message)
		}
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// firstLeaf returns the first innermost cause of a validation error.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}
