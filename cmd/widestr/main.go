package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/widestring/transcoder"
	"github.com/wippyai/widestring/wide"
)

func main() {
	var (
		verbose     = flag.Bool("v", false, "Enable debug logging to stderr")
		interactive = flag.Bool("i", false, "Interactive inspector with TUI")
		plain       = flag.Bool("plain", false, "Disable styled output")
	)
	flag.Usage = usage
	flag.Parse()

	logger := newLogger(*verbose)
	defer func() { _ = logger.Sync() }()
	wide.SetLogger(logger)
	transcoder.SetLogger(logger)

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	st := newStyler(!*plain && term.IsTerminal(int(os.Stdout.Fd())))
	if err := run(context.Background(), os.Stdout, st, args[0], args[1:]); err != nil {
		logger.Debug("command failed", zap.String("command", args[0]), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: widestr [-v] [-plain] <command> [args...]")
	fmt.Fprintln(os.Stderr, "       widestr -i  (interactive mode)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  encode [-raw] [-path] TEXT...  show the UTF-16 units of each argument")
	fmt.Fprintln(os.Stderr, "  decode UNIT...                 decode hex units (space or comma separated)")
	fmt.Fprintln(os.Stderr, "  quote PROGRAM [ARG...]         print the quoted command line")
	fmt.Fprintln(os.Stderr, "  env KEY=VALUE...               print the environment block units")
	fmt.Fprintln(os.Stderr, "  lower TEXT...                  lower into sandbox memory and lift back")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
