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
	"cmp"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"time"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/rusq/discordmcp/internal/discord"
)

// Handlers holds the dependencies shared by all tool handlers.  Handlers are
// safe for concurrent use.
type Handlers struct {
	cl  discord.Client
	lg  *slog.Logger
	now func() time.Time
	// lim paces per-channel fetches in guild-wide search.
	lim *rate.Limiter
}

// Option configures [Handlers].
type Option func(*Handlers)

// WithLogger sets the logger.
func WithLogger(lg *slog.Logger) Option {
	return func(h *Handlers) {
		if lg != nil {
			h.lg = lg
		}
	}
}

// WithClock sets the function used to compute relative times.
func WithClock(now func() time.Time) Option {
	return func(h *Handlers) {
		if now != nil {
			h.now = now
		}
	}
}

// WithSearchRate limits guild-wide search to perSec channel fetches per
// second.  Zero or negative means unlimited.
func WithSearchRate(perSec float64) Option {
	return func(h *Handlers) {
		if perSec > 0 {
			h.lim = rate.NewLimiter(rate.Limit(perSec), 1)
		} else {
			h.lim = rate.NewLimiter(rate.Inf, 0)
		}
	}
}

// New creates the handlers backed by cl.
func New(cl discord.Client, opts ...Option) *Handlers {
	h := &Handlers{
		cl:  cl,
		lg:  slog.Default(),
		now: time.Now,
		lim: rate.NewLimiter(rate.Inf, 0),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// envelope marshals v with two-space indentation and wraps it in a single
// text content block.
func envelope(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}
	return mcplib.NewToolResultText(string(data)), nil
}

// clamp returns def if n is zero, otherwise n limited to [lo, hi].
func clamp(n, def, lo, hi int) int {
	if n == 0 {
		n = def
	}
	return max(min(n, hi), lo)
}

// sortByName sorts s by the name returned by key, using locale-aware
// collation.  The sort is stable.  A collator is not safe for concurrent
// use, so one is created per call.
func sortByName[T any](s []T, key func(T) string) {
	c := collate.New(language.Und)
	slices.SortStableFunc(s, func(a, b T) int {
		return c.CompareString(key(a), key(b))
	})
}

// sortByPosition sorts channels ascending by position, keeping the order of
// equal positions.
func sortByPosition(cc []discord.Channel) {
	slices.SortStableFunc(cc, func(a, b discord.Channel) int {
		return cmp.Compare(a.Position, b.Position)
	})
}
