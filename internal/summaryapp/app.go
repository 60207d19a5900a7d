// internal/summaryapp/app.go
package summaryapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sketchlca-core/record"
	"sketchlca-core/summary"
	"sketchlca/internal/output"
	"sketchlca/internal/parquetio"
	"sketchlca/internal/summarycli"
	"sketchlca/internal/writers"
)

// RunContext drives the rank summary tool: read each merged table as one
// source, summarize, and write the rows in the requested format.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := summarycli.NewFlagSet("sketchlca-summary")
	fs.SetOutput(io.Discard)

	opts, err := summarycli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(stdout)
			fs.Usage()
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.SetOutput(stderr)
		fs.Usage()
		return 2
	}

	if err := parquetio.CheckInputPaths(opts.Inputs); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	tables := make(map[string][]record.SketchRecord, len(opts.Inputs))
	for _, path := range opts.Inputs {
		select {
		case <-parent.Done():
			return 130
		default:
		}
		rows, err := parquetio.ReadTable(path)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		tables[filepath.Base(path)] = rows
	}

	rows := summary.Summarize(tables)

	var dst io.Writer = stdout
	if opts.Output != "" {
		fh, err := os.Create(opts.Output)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		defer func() { _ = fh.Close() }()
		dst = fh
	}
	outw := bufio.NewWriter(dst)
	if err := output.WriteSummary(outw, opts.Format, rows); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := outw.Flush(); writers.IsBrokenPipe(err) {
		return 0
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
