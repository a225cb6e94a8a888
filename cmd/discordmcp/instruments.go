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

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rusq/tracer"
	slogmulti "github.com/samber/slog-multi"
)

// newHandler returns a text or JSON handler writing to w.
func newHandler(w io.Writer, jsonHandler bool, opts *slog.HandlerOptions) slog.Handler {
	if jsonHandler {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// initLog initialises the logging.  Messages are always written to stderr,
// as stdout belongs to the stdio transport.  If the filename is not empty,
// messages are written to that file as well.  Returns the logger and the
// stop function that closes the log file, which must be called in the
// deferred call.  If the error is returned the stop function is nil.
func initLog(stderr io.Writer, filename string, jsonHandler bool, verbose bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{
		Level: iftrue(verbose, slog.LevelDebug, slog.LevelInfo),
	}
	if filename == "" {
		lg := slog.New(newHandler(stderr, jsonHandler, opts))
		slog.SetDefault(lg)
		return lg, func() {}, nil
	}

	lf, err := os.OpenFile(filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create the log file: %w", err)
	}
	lg := slog.New(slogmulti.Fanout(
		newHandler(stderr, jsonHandler, opts),
		newHandler(lf, jsonHandler, opts),
	))
	slog.SetDefault(lg)
	lg.Debug("log messages will be written to file", "filename", filename)

	stop := func() {
		if err := lf.Close(); err != nil {
			fmt.Fprintf(stderr, "failed to close the log file: %s\n", err)
		}
	}
	return lg, stop, nil
}

// initTrace initialises the tracing.  If the filename is not empty, the file
// will be opened, trace will write to that file.  Returns the stop function
// that must be called in the deferred call.
func initTrace(lg *slog.Logger, filename string) (stop func()) {
	stop = func() {}
	if filename == "" {
		return
	}

	lg.Info("trace will be written to", "filename", filename)

	trc := tracer.New(filename)
	if err := trc.Start(); err != nil {
		lg.Warn("failed to start the trace", "filename", filename, "error", err)
		return
	}

	stop = func() {
		if err := trc.End(); err != nil {
			lg.Warn("failed to write the trace file", "filename", filename, "error", err)
		}
	}
	return
}

func iftrue[T any](cond bool, t T, f T) T {
	if cond {
		return t
	}
	return f
}
