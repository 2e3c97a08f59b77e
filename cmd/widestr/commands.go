package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"go.bytecodealliance.org/wit"

	"github.com/wippyai/widestring/cmdline"
	"github.com/wippyai/widestring/errors"
	"github.com/wippyai/widestring/internal/memory"
	"github.com/wippyai/widestring/transcoder"
	"github.com/wippyai/widestring/wide"
)

func run(ctx context.Context, w io.Writer, st styler, cmd string, args []string) error {
	switch cmd {
	case "encode":
		return runEncode(w, st, args)
	case "decode":
		return runDecode(w, st, args)
	case "quote":
		return runQuote(w, args)
	case "env":
		return runEnv(w, st, args)
	case "lower":
		return runLower(ctx, w, st, args)
	default:
		return errors.InvalidInput(errors.PhaseValidate, fmt.Sprintf("unknown command %q", cmd))
	}
}

func runEncode(w io.Writer, st styler, args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	raw := fs.Bool("raw", false, "Print only the units")
	path := fs.Bool("path", false, "Treat arguments as WTF-8 paths")
	if err := fs.Parse(args); err != nil {
		return errors.Wrap(errors.PhaseValidate, errors.KindInvalidInput, err, "encode flags")
	}

	for _, arg := range fs.Args() {
		ws := wide.New(arg)
		if *path {
			ws = wide.FromPath(arg)
		}
		if *raw {
			fmt.Fprintln(w, formatUnits(ws.Slice()))
			continue
		}
		r := describe(&ws)
		fmt.Fprintf(w, "%s %q\n", st.label("text: "), arg)
		fmt.Fprintf(w, "%s %s\n", st.label("units:"), formatUnits(ws.Slice()))
		fmt.Fprintf(w, "%s %d (%s)\n", st.label("len:  "), r.Len, r.Variant)
	}
	return nil
}

func runDecode(w io.Writer, st styler, args []string) error {
	units, err := parseUnits(strings.Join(args, " "))
	if err != nil {
		return err
	}
	s, err := wide.Decode(units)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %q\n", st.label("text:"), s)
	return nil
}

func runQuote(w io.Writer, args []string) error {
	if len(args) == 0 {
		return errors.InvalidInput(errors.PhaseValidate, "quote needs a program")
	}
	fmt.Fprintln(w, cmdline.Join(args[0], args[1:]...))
	return nil
}

func runEnv(w io.Writer, st styler, args []string) error {
	env, err := parseEnv(args)
	if err != nil {
		return err
	}
	block := cmdline.EnvBlock(env)
	fmt.Fprintf(w, "%s %s\n", st.label("block:"), formatUnits(block))
	fmt.Fprintf(w, "%s %d units\n", st.label("size: "), len(block))
	return nil
}

func runLower(ctx context.Context, w io.Writer, st styler, args []string) error {
	scratch, err := memory.NewScratch(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = scratch.Close(ctx) }()

	enc := transcoder.NewEncoder()
	dec := transcoder.NewDecoder()
	pool := wide.NewPool()
	allocList := transcoder.NewAllocationList()
	defer allocList.FreeAndRelease(scratch)

	for _, arg := range args {
		h := pool.Get(arg)
		flat, err := enc.Lower(wit.String{}, &h, scratch, scratch, allocList)
		pool.Put(&h)
		if err != nil {
			return err
		}

		ptr, n := uint32(flat[0]), uint32(flat[1])
		data, err := scratch.Read(ptr, (n+1)*2)
		if err != nil {
			return err
		}
		lifted, err := dec.LiftStringZ(scratch, ptr)
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "%s 0x%x len=%d\n", st.label("ptr:   "), ptr, n)
		fmt.Fprintf(w, "%s % x\n", st.label("bytes: "), data)
		fmt.Fprintf(w, "%s %q\n", st.label("lifted:"), lifted)
	}
	return nil
}
