// Package cmd wires up the CLI flags, environment and prompts, and
// dispatches to the chat core.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	flag "github.com/spf13/pflag"

	"sockchat/config"
	"sockchat/internal/console"
	"sockchat/internal/core"
	ncerr "sockchat/internal/errors"
	"sockchat/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X sockchat/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// ErrUsage marks command-line mistakes such as unknown flags.
var ErrUsage = errors.New("usage")

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1 // connection or runtime failure
	ExitConfig  = 2 // invalid flags, environment or input
)

// ExitCode maps an Execute error to the process exit status.  An
// interrupt during the prompts is a normal exit.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, context.Canceled) {
		return ExitOK
	}
	var ce *ncerr.ConfigError
	if errors.As(err, &ce) || errors.Is(err, ErrUsage) || errors.Is(err, ncerr.ErrInvalidUsername) {
		return ExitConfig
	}
	return ExitFailure
}

// Execute parses args and runs an interactive chat session on the
// process streams.
func Execute(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sockchat", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// ── connection ───────────────────────────────────────────────
	var (
		host       string
		port       int
		scheme     string
		timeoutSec int
		yes        bool
	)
	fs.StringVar(&host, "host", config.DefaultHost, "Server host or IP")
	fs.IntVar(&port, "port", config.DefaultPort, "Server port")
	fs.StringVar(&scheme, "scheme", config.DefaultScheme, "Server URL scheme (http or https)")
	fs.IntVarP(&timeoutSec, "timeout", "w", int(config.DefaultConnTimeout/time.Second), "Connect timeout in seconds")
	fs.BoolVarP(&yes, "yes", "y", false, "Use host and port without prompting")

	// ── identity ─────────────────────────────────────────────────
	var username string
	fs.StringVarP(&username, "username", "u", "", "Display name (3-20 of a-z A-Z 0-9 _ -)")

	// ── environment ──────────────────────────────────────────────
	var envFile string
	fs.StringVar(&envFile, "env-file", "", "Read environment from file (default .env when present)")

	// ── output ───────────────────────────────────────────────────
	var (
		verbose  int
		stats    bool
		noColor  bool
		showVer  bool
		showHelp bool
	)
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")
	fs.BoolVar(&stats, "stats", false, "Print session statistics on exit")
	fs.BoolVar(&noColor, "no-color", false, "Disable colored output")
	fs.BoolVar(&showVer, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(stderr, fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if showHelp {
		printUsage(stderr, fs)
		return nil
	}
	if showVer {
		fmt.Fprintf(stdout, "sockchat %s\n", version)
		return nil
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q (use --host and --port)", ErrUsage, fs.Arg(0))
	}

	// ── environment, then flags ──────────────────────────────────
	if err := config.LoadDotEnv(envFile); err != nil {
		return &ncerr.ConfigError{Field: "env-file", Value: envFile, Message: err.Error()}
	}
	cfg := config.New()
	if err := config.LoadFromEnv(cfg); err != nil {
		return &ncerr.ConfigError{Field: "env", Message: err.Error(), Hint: "check the SOCKCHAT_* variables"}
	}
	applyFlags(fs, cfg, flagValues{
		host: host, port: port, scheme: scheme, timeoutSec: timeoutSec,
		username: username, verbose: verbose, stats: stats, noColor: noColor,
	})
	cfg.Yes = yes
	cfg.EnvFile = envFile

	logger := util.NewLogger(cfg.Verbose)
	logger.SetOutput(stderr)

	colored := !cfg.NoColor && console.IsTerminal(stdout)
	console.NewConsole(stdout, stderr, colored).Banner()

	// ── prompts ──────────────────────────────────────────────────
	prompter := console.NewPrompter(stdin, stdout)
	if err := promptMissing(ctx, cfg, prompter, fs); err != nil {
		return err
	}

	// ── build and run ────────────────────────────────────────────
	mode, err := core.Build(cfg, logger, core.Streams{
		Stdin:  prompter.Reader(),
		Stdout: stdout,
		Stderr: stderr,
		Color:  colored,
	})
	if err != nil {
		return err
	}
	return mode.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

type flagValues struct {
	host, scheme, username string
	port, timeoutSec       int
	verbose                int
	stats, noColor         bool
}

// applyFlags overlays explicitly set flags onto cfg.
func applyFlags(fs *flag.FlagSet, cfg *config.Config, v flagValues) {
	if fs.Changed("host") {
		cfg.Host = v.host
	}
	if fs.Changed("port") {
		cfg.Port = v.port
	}
	if fs.Changed("scheme") {
		cfg.Scheme = v.scheme
	}
	if fs.Changed("timeout") {
		cfg.Timeout = time.Duration(v.timeoutSec) * time.Second
	}
	if fs.Changed("username") {
		cfg.Username = v.username
	}
	if fs.Changed("verbose") {
		cfg.Verbose = min(v.verbose, int(util.LogDebug))
	}
	if fs.Changed("stats") {
		cfg.Stats = v.stats
	}
	if fs.Changed("no-color") {
		cfg.NoColor = v.noColor
	}
}

// promptMissing asks for the host and port (unless given as flags or
// --yes) and for the username when none was configured.  A blocked
// terminal read cannot be interrupted, so the prompts run aside and a
// cancelled ctx abandons them.
func promptMissing(ctx context.Context, cfg *config.Config, p *console.Prompter, fs *flag.FlagSet) error {
	type answers struct {
		host, username string
		port           int
		err            error
	}
	host, port, username := cfg.Host, cfg.Port, cfg.Username
	askHost := !cfg.Yes && !fs.Changed("host")
	askPort := !cfg.Yes && !fs.Changed("port")
	askName := username == ""

	done := make(chan answers, 1)
	go func() {
		a := answers{host: host, port: port, username: username}
		if askHost {
			a.host, a.err = p.AskValid("Server host/IP", host, config.ValidateHost)
			if a.err != nil {
				a.err = promptError("host", a.err)
				done <- a
				return
			}
		}
		if askPort {
			var s string
			s, a.err = p.AskValid("Port", strconv.Itoa(port), config.ValidatePort)
			if a.err != nil {
				a.err = promptError("port", a.err)
				done <- a
				return
			}
			a.port, _ = config.ParsePort(s)
		}
		if askName {
			a.username, a.err = p.AskValid("Username (3-20, a-z A-Z 0-9 _ -)", "", config.ValidateUsername)
			if a.err != nil {
				a.err = promptError("username", a.err)
			}
		}
		done <- a
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case a := <-done:
		if a.err != nil {
			return a.err
		}
		cfg.Host, cfg.Port, cfg.Username = a.host, a.port, a.username
		return nil
	}
}

func promptError(field string, err error) error {
	if errors.Is(err, io.EOF) {
		return &ncerr.ConfigError{
			Field:   field,
			Message: "no value entered",
			Hint:    "pass --" + field + " or set SOCKCHAT_" + envName(field),
		}
	}
	return &ncerr.ConfigError{Field: field, Message: err.Error()}
}

func envName(field string) string {
	switch field {
	case "host":
		return "HOST"
	case "port":
		return "PORT"
	default:
		return "USERNAME"
	}
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `sockchat – Socket.IO chat client v%s

An interactive terminal client for Socket.IO chat servers.

Usage:
  sockchat [options]                          Prompt for host, port and username
  sockchat -y -u alice                        Use defaults, join as alice
  sockchat --host chat.lan --port 3000 -u bob Connect without prompting

Options:
`, version)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
In-session commands:
  /list    Ask the server for the list of connected users
  /quit    Leave the chat

%s
Exit status: 0 on /quit, 1 on connection failure, 2 on invalid configuration.
`, config.Usage())
}
