// internal/mergeapp/app.go
package mergeapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"sketchlca-core/merge"
	"sketchlca/internal/mergecli"
	"sketchlca/internal/parquetio"
)

// RunContext drives the duplicate-merge tool over one exported table.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := mergecli.NewFlagSet("sketchlca-merge")
	fs.SetOutput(io.Discard)

	opts, err := mergecli.ParseArgs(fs, argv)
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

	records, err := parquetio.ReadTable(opts.Input)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	select {
	case <-parent.Done():
		return 130
	default:
	}

	merged := merge.Duplicates(records)
	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "merged %d row(s) into %d unique (hash, ksize) row(s)\n",
			len(records), len(merged))
	}

	if err := parquetio.WriteTable(opts.Output, merged); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
