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

// In this file: configuration file and command line parsing.

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/fatih/color"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entrans "github.com/go-playground/validator/v10/translations/en"
	"github.com/rusq/osenv/v2"

	"github.com/rusq/discordmcp/internal/mcp"
)

const (
	envToken     = "DISCORD_TOKEN"
	envConfig    = "DISCORD_MCP_CONFIG"
	envTransport = "DISCORD_MCP_TRANSPORT"
	envListen    = "DISCORD_MCP_LISTEN"
)

const defListen = "127.0.0.1:8484"

// ErrNoToken is returned when the Discord token is not configured.
var ErrNoToken = errors.New(envToken + " not found in environment variables")

// config is the server configuration.  Values are resolved in order:
// defaults, configuration file, environment, command line flags.
type config struct {
	Token          string        `toml:"token"`
	Transport      string        `toml:"transport" validate:"oneof=stdio http"`
	Listen         string        `toml:"listen" validate:"omitempty,hostname_port"`
	LogFile        string        `toml:"log_file"`
	LogJSON        bool          `toml:"log_json"`
	Verbose        bool          `toml:"verbose"`
	TraceFile      string        `toml:"trace_file"`
	ConnectTimeout time.Duration `toml:"connect_timeout" validate:"gte=0"`
	SearchRate     float64       `toml:"search_rate" validate:"gte=0"`
}

var defConfig = config{
	Transport: string(mcp.TransportStdio),
	Listen:    defListen,
}

// params is the command line parameters.
type params struct {
	cfg          config
	configFile   string
	printVersion bool
}

// loadConfig reads the TOML configuration file over c.
func loadConfig(filename string, c *config) error {
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return fmt.Errorf("config %s: %w", filename, err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		keys := make([]string, 0, len(undec))
		for _, k := range undec {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("config %s: unknown keys: %s", filename, strings.Join(keys, ", "))
	}
	return nil
}

// configArg returns the value of the -config flag from args, or def if it's
// not given.  The configuration file has to be read before the flag defaults
// can be set.
func configArg(args []string, def string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" || !strings.HasPrefix(a, "-") {
			break
		}
		name, val, hasVal := strings.Cut(strings.TrimLeft(a, "-"), "=")
		if name != "config" {
			continue
		}
		if hasVal {
			return val
		}
		if i+1 < len(args) {
			return args[i+1]
		}
	}
	return def
}

// parseCmdLine parses the command line arguments.
func parseCmdLine(args []string, output io.Writer) (params, error) {
	fs := flag.NewFlagSet("discordmcp", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(output, "Discord MCP server, %s\n\n"+
			"Exposes a Discord account to AI agents as Model Context Protocol tools.\n\n"+
			"Usage:  discordmcp [flags]\n\nflags:\n", build)
		fs.PrintDefaults()
	}

	p := params{cfg: defConfig}
	p.configFile = configArg(args, osenv.Value(envConfig, ""))
	if p.configFile != "" {
		if err := loadConfig(p.configFile, &p.cfg); err != nil {
			return p, err
		}
	}
	c := &p.cfg

	fs.StringVar(&p.configFile, "config", p.configFile, "configuration `file` in TOML format (environment: "+envConfig+")")
	fs.StringVar(&c.Token, "token", osenv.Secret(envToken, c.Token), "Discord bot `token` (environment: "+envToken+")")
	fs.StringVar(&c.Transport, "transport", osenv.Value(envTransport, c.Transport), "MCP `transport`: stdio or http (environment: "+envTransport+")")
	fs.StringVar(&c.Listen, "listen", osenv.Value(envListen, c.Listen), "`address` to listen on for the http transport (environment: "+envListen+")")
	fs.DurationVar(&c.ConnectTimeout, "connect-timeout", c.ConnectTimeout, "fail tool calls if Discord is not ready within `duration`, 0 waits forever")
	fs.Float64Var(&c.SearchRate, "search-rate", c.SearchRate, "limit guild-wide search to `N` channel fetches per second, 0 is unlimited")

	fs.StringVar(&c.LogFile, "log", osenv.Value("LOG_FILE", c.LogFile), "log `file`, messages are always printed to STDERR as well")
	fs.BoolVar(&c.LogJSON, "log-json", osenv.Value("JSON_LOG", c.LogJSON), "log in JSON format")
	fs.BoolVar(&c.Verbose, "v", osenv.Value("DEBUG", c.Verbose), "verbose messages")
	fs.StringVar(&c.TraceFile, "trace", osenv.Value("TRACE_FILE", c.TraceFile), "trace `file` (optional)")
	fs.BoolVar(&p.printVersion, "V", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return p, err
	}
	if fs.NArg() > 0 {
		return p, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return p, p.validate()
}

var (
	validate = newValidator()
	trans    = newTranslator(validate)
)

// newValidator returns a validator that reports fields by their
// configuration file names.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

func newTranslator(v *validator.Validate) ut.Translator {
	enLocale := en.New()
	tr, _ := ut.New(enLocale, enLocale).GetTranslator("en")
	if err := entrans.RegisterDefaultTranslations(v, tr); err != nil {
		panic(err)
	}
	return tr
}

// validate checks if the parameters are valid.
func (p *params) validate() error {
	if p.printVersion {
		return nil
	}
	if err := validate.Struct(p.cfg); err != nil {
		var vErr validator.ValidationErrors
		if errors.As(err, &vErr) {
			msgs := make([]string, 0, len(vErr))
			for _, fe := range vErr {
				msgs = append(msgs, fmt.Sprintf("%s (got %v)", fe.Translate(trans), fe.Value()))
			}
			return errors.New("invalid configuration: " + strings.Join(msgs, "; "))
		}
		return err
	}
	if p.cfg.Transport == string(mcp.TransportHTTP) && p.cfg.Listen == "" {
		return errors.New("listen address is required for the http transport")
	}
	if p.cfg.Token == "" {
		return ErrNoToken
	}
	return nil
}

// printTokenHelp prints the missing token error with an example MCP client
// configuration.
func printTokenHelp(w io.Writer) {
	example := map[string]any{
		"mcpServers": map[string]any{
			"discord": map[string]any{
				"command": "discordmcp",
				"args":    []string{},
				"env": map[string]string{
					envToken: "your_discord_token_here",
				},
			},
		},
	}
	data, _ := json.MarshalIndent(example, "", "  ")
	fmt.Fprintf(w, "%s %s\n", color.HiRedString("Error:"), ErrNoToken)
	fmt.Fprintf(w, "Please configure %s in your MCP client settings\n", envToken)
	fmt.Fprintf(w, "Example configuration:\n%s\n", data)
}
