// Command flatten reads structured records and writes each one as a single
// flat row.
//
//	flatten -i yaml -o table records.yaml
//	cat events.jsonl | flatten -p npm_ --suffix on
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"os/signal"

	"github.com/bjaus/flatmap"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	separator string
	prefix    string
	suffix    string
	input     string
	output    string
	indent    string
	title     string
	verbose   bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "flatten [file...]",
		Short: "Flatten structured records into single-level rows",
		Long: "flatten reads JSON, YAML or msgpack records from the given files " +
			"(or stdin when none or \"-\" is given) and writes every record as one " +
			"row whose keys are the joined paths to each scalar leaf.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args, stdin, stdout, stderr)
		},
	}
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	fs := cmd.Flags()
	fs.StringVarP(&f.separator, "separator", "s", "_", "string inserted between path segments")
	fs.StringVarP(&f.prefix, "prefix", "p", "", "prefix applied to the first path segment")
	fs.StringVar(&f.suffix, "suffix", flatmap.SuffixOff.String(), "append a scalar kind token to leaf keys (off|on)")
	fs.StringVarP(&f.input, "input", "i", flatmap.EncodingJSON.String(), "input encoding (json|yaml|msgpack)")
	fs.StringVarP(&f.output, "output", "o", flatmap.JSONL.String(), "output format, or go-template=<template>")
	fs.StringVar(&f.indent, "indent", "", "indentation for json and yaml output")
	fs.StringVar(&f.title, "title", "", "title for table and html output")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log debug information to stderr")
	return cmd
}

func run(ctx context.Context, f flags, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	mode, err := flatmap.ParseSuffixMode(f.suffix)
	if err != nil {
		return err
	}
	enc, err := flatmap.ParseEncoding(f.input)
	if err != nil {
		return err
	}
	format, err := flatmap.ParseFormat(f.output)
	if err != nil {
		return err
	}

	log := zap.NewNop()
	if f.verbose {
		log = newLogger(stderr)
		prev := flatmap.Logger()
		flatmap.SetLogger(log)
		defer flatmap.SetLogger(prev)
		defer func() { _ = log.Sync() }()
	}

	fl := flatmap.New(f.separator,
		flatmap.WithPrefix(f.prefix),
		flatmap.WithSuffix(mode),
		flatmap.WithLogger(log),
	)

	if len(args) == 0 {
		args = []string{"-"}
	}

	var rowErr error
	rows := records(ctx, fl, enc, args, stdin, &rowErr)
	err = flatmap.WriteIter(stdout, format, rows,
		flatmap.WithIndent(f.indent),
		flatmap.WithTitle(f.title),
	)
	if rowErr != nil {
		return rowErr
	}
	return err
}

// records yields the flattened records of every source in order. The first
// failure is stored in errp and ends the sequence.
func records(ctx context.Context, fl *flatmap.Flattener, enc flatmap.Encoding, sources []string, stdin io.Reader, errp *error) iter.Seq[flatmap.FlatMap] {
	return func(yield func(flatmap.FlatMap) bool) {
		for _, src := range sources {
			ok, err := flattenSource(ctx, fl, enc, src, stdin, yield)
			if err != nil {
				*errp = err
				return
			}
			if !ok {
				return
			}
		}
	}
}

func flattenSource(ctx context.Context, fl *flatmap.Flattener, enc flatmap.Encoding, src string, stdin io.Reader, yield func(flatmap.FlatMap) bool) (bool, error) {
	r := stdin
	if src != "-" {
		file, err := os.Open(src)
		if err != nil {
			return false, err
		}
		defer file.Close()
		r = file
	}

	dec, err := flatmap.NewDecoder(r, enc)
	if err != nil {
		return false, err
	}
	for n := 0; ; n++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		v, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("%s: %w", src, err)
		}
		row, err := fl.FlattenValue(v)
		if err != nil {
			return false, fmt.Errorf("%s: record %d: %w", src, n, err)
		}
		if !yield(row) {
			return false, nil
		}
	}
}

func newLogger(w io.Writer) *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zap.DebugLevel,
	)
	return zap.New(core)
}
