// Package main is the entry point for the orgmode outline editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/orgmode/internal/app"
	"github.com/dshills/orgmode/internal/logging"
	"github.com/dshills/orgmode/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cliOptions holds the parsed command line.
type cliOptions struct {
	app app.Options

	at      string
	action  string
	write   bool
	output  string
	version bool
	help    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("orgmode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	opts := parseFlags(fs, args)
	if opts == nil {
		return 2
	}

	if opts.help {
		fs.Usage()
		return 0
	}
	if opts.version {
		fmt.Fprintf(stdout, "orgmode %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	if opts.app.LogLevel != "" {
		if _, err := logging.ParseLevel(opts.app.LogLevel); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 2
		}
	}

	if fs.NArg() > 1 {
		fmt.Fprintf(stderr, "Error: only one file can be opened\n")
		return 2
	}
	if fs.NArg() == 1 {
		opts.app.Path = fs.Arg(0)
	}

	if opts.at != "" {
		return runBatch(opts, stdout, stderr)
	}
	if opts.write || opts.action != "" || opts.output != "" {
		fmt.Fprintf(stderr, "Error: -action, -w and -o require -at\n")
		return 2
	}
	return runInteractive(opts, stderr)
}

// runBatch applies one action and prints or saves the result.
func runBatch(opts *cliOptions, stdout, stderr io.Writer) int {
	if opts.app.Path == "" {
		fmt.Fprintf(stderr, "Error: batch mode needs a file\n")
		return 2
	}
	if opts.write && opts.output != "" {
		fmt.Fprintf(stderr, "Error: -w and -o cannot be combined\n")
		return 2
	}
	line, col, err := app.ParsePosition(opts.at)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	opts.app.LogOutput = stderr
	opts.app.NoWatch = true
	if opts.app.LogLevel == "" {
		opts.app.LogLevel = "warn"
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	batch := app.BatchOptions{
		Line:   line,
		Column: col,
		Action: opts.action,
		Write:  opts.write,
		Output: opts.output,
	}
	if err := application.Batch(batch, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runInteractive opens the terminal editor.
func runInteractive(opts *cliOptions, stderr io.Writer) int {
	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	// Ensure cleanup on all exit paths
	defer application.Shutdown()

	term, err := backend.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}
	if err := application.SetBackend(term); err != nil {
		fmt.Fprintf(stderr, "Error: failed to set backend: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		select {
		case <-signals:
			application.Shutdown()
		case <-application.Done():
		}
	}()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// parseFlags parses args into options. It returns nil on a parse error,
// which fs has already reported.
func parseFlags(fs *flag.FlagSet, args []string) *cliOptions {
	opts := &cliOptions{}

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&opts.app.ReadOnly, "readonly", false, "Open the file in read-only mode")
	fs.BoolVar(&opts.app.ReadOnly, "R", false, "Open the file in read-only mode (shorthand)")
	fs.StringVar(&opts.at, "at", "", "Batch mode: run one action at LINE:COL (1-based)")
	fs.StringVar(&opts.action, "action", "", "Batch mode action: navigate (default), expand or a plugin command")
	fs.BoolVar(&opts.write, "w", false, "Batch mode: write the result back to the file")
	fs.StringVar(&opts.output, "o", "", "Batch mode: write the result to this file")
	fs.BoolVar(&opts.version, "version", false, "Show version information")
	fs.BoolVar(&opts.version, "v", false, "Show version information (shorthand)")
	fs.BoolVar(&opts.help, "help", false, "Show help message")
	fs.BoolVar(&opts.help, "h", false, "Show help message (shorthand)")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "orgmode - checkbox outline editor\n\n")
		fmt.Fprintf(out, "Usage: orgmode [options] [file]\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  orgmode todo.org                  Edit a file\n")
		fmt.Fprintf(out, "  orgmode -R todo.org               Open read-only\n")
		fmt.Fprintf(out, "  orgmode -at 3:7 todo.org          Print the result of navigate at line 3, column 7\n")
		fmt.Fprintf(out, "  orgmode -at 1:8 -w todo.org       Update the summary on line 1 in place\n")
		fmt.Fprintf(out, "  orgmode -at 2:6 -o done.org todo.org  Toggle line 2 into a new file\n")
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return &cliOptions{help: true}
		}
		return nil
	}
	return opts
}
