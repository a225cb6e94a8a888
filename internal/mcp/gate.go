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
	"context"
	"errors"
	"sync"
)

// errUnknownConnErr is recorded when the gate is failed with a nil error.
var errUnknownConnErr = errors.New("unknown connection error")

// Gate holds tool calls until the Discord connection is resolved.  It starts
// not ready and is resolved exactly once, either by Open or by Fail; whichever
// is called first wins and later calls are ignored.  A failed gate stays
// failed.
type Gate struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewGate returns a gate that is not ready.
func NewGate() *Gate {
	return &Gate{done: make(chan struct{})}
}

// Open marks the connection as ready.
func (g *Gate) Open() {
	g.resolve(nil)
}

// Fail marks the connection as failed with err.
func (g *Gate) Fail(err error) {
	if err == nil {
		err = errUnknownConnErr
	}
	g.resolve(err)
}

func (g *Gate) resolve(err error) {
	g.once.Do(func() {
		g.err = err
		close(g.done)
	})
}

// Wait blocks until the gate is resolved or ctx is done.  It returns the
// connection error if the gate has failed, or ctx.Err() if ctx is done
// first.
func (g *Gate) Wait(ctx context.Context) error {
	select {
	case <-g.done:
		return g.err
	default:
	}
	select {
	case <-g.done:
		return g.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel that is closed when the gate is resolved.
func (g *Gate) Done() <-chan struct{} {
	return g.done
}

// Err returns the connection error, or nil if the gate is open or not yet
// resolved.
func (g *Gate) Err() error {
	select {
	case <-g.done:
		return g.err
	default:
		return nil
	}
}
