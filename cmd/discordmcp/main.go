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

// Command discordmcp is a Model Context Protocol server that exposes a
// Discord account to AI agents.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/rusq/discordmcp/internal/discord"
	"github.com/rusq/discordmcp/internal/mcp"
	"github.com/rusq/discordmcp/internal/tools"
)

var build = "dev"

// secrets defines the names of the supported secret files that we load our
// secrets from.  Inexperienced windows users might have bad experience trying
// to create .env file with the notepad as it will battle for having the
// "txt" extension.  Let it have it.
var secrets = []string{".env", ".env.txt", "secrets.txt"}

func main() {
	loadSecrets(secrets)

	p, err := parseCmdLine(os.Args[1:], os.Stderr)
	if err != nil {
		switch {
		case errors.Is(err, flag.ErrHelp):
			return
		case errors.Is(err, ErrNoToken):
			printTokenHelp(os.Stderr)
		default:
			fmt.Fprintln(os.Stderr, color.HiRedString("Error:"), err)
		}
		os.Exit(1)
	}
	if p.printVersion {
		fmt.Println(build)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, p); err != nil {
		slog.Error("fatal", "error", err)
		stop()
		os.Exit(1)
	}
}

// run connects to Discord and serves MCP requests until ctx is cancelled.
func run(ctx context.Context, p params) error {
	lg, closeLog, err := initLog(os.Stderr, p.cfg.LogFile, p.cfg.LogJSON, p.cfg.Verbose)
	if err != nil {
		return err
	}
	defer closeLog()
	defer initTrace(lg, p.cfg.TraceFile)()

	gate := mcp.NewGate()
	sess, err := discord.New(p.cfg.Token,
		discord.WithLogger(lg),
		discord.WithReadyFunc(gate.Open),
		discord.WithFailFunc(gate.Fail),
	)
	if err != nil {
		return err
	}
	connect(ctx, sess, gate, p.cfg.ConnectTimeout, lg)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		sess.Close(ctx)
	}()

	h := tools.New(sess, tools.WithLogger(lg), tools.WithSearchRate(p.cfg.SearchRate))
	srv := mcp.New(h, gate, mcp.WithLogger(lg))
	return srv.Serve(ctx, mcp.Transport(p.cfg.Transport), p.cfg.Listen)
}

// opener is the connectable part of the Discord session.
type opener interface {
	Open(ctx context.Context) error
}

// connect opens the Discord connection in the background.  The session opens
// the gate once all guilds are loaded, and fails it if the gateway rejects the
// login.  connect fails it if the token is rejected or the API can't be
// reached, or, if timeout is positive, the session is not ready in time.
func connect(ctx context.Context, s opener, gate *mcp.Gate, timeout time.Duration, lg *slog.Logger) {
	if timeout > 0 {
		t := time.AfterFunc(timeout, func() {
			gate.Fail(fmt.Errorf("discord client was not ready within %s", timeout))
		})
		go func() {
			select {
			case <-gate.Done():
			case <-ctx.Done():
			}
			t.Stop()
		}()
	}
	go func() {
		if err := s.Open(ctx); err != nil {
			gate.Fail(err)
		}
	}()
	go func() {
		select {
		case <-gate.Done():
			if err := gate.Err(); err != nil {
				lg.ErrorContext(ctx, "discord connection failed, tool calls will fail", "error", err)
			} else {
				lg.InfoContext(ctx, "discord connection ready")
			}
		case <-ctx.Done():
		}
	}()
}

// loadSecrets load secrets from the files in secrets slice.
func loadSecrets(files []string) {
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}
