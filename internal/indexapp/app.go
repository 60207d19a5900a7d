// internal/indexapp/app.go
package indexapp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"sketchlca-core/fasta"
	"sketchlca-core/sketch"
	"sketchlca/internal/cmdutil"
	"sketchlca/internal/index"
	"sketchlca/internal/indexcli"
)

// RunContext drives the index tool: sketch every FASTA record and store the
// per-dataset hash sets in a new sketch database.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := indexcli.NewFlagSet("sketchlca-index")
	fs.SetOutput(io.Discard)

	opts, err := indexcli.ParseArgs(fs, argv)
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

	db, err := index.Create(opts.Output, opts.Ksize, opts.Scaled)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() { _ = db.Close() }()

	datasets := 0
	for _, path := range opts.SeqFiles {
		err := fasta.ForEachPathCtx(parent, path, func(rec fasta.Record) error {
			s, err := sketch.New(opts.Ksize, opts.Scaled)
			if err != nil {
				return err
			}
			if err := s.Add(rec.Seq); err != nil {
				return fmt.Errorf("sketch %q: %w", rec.Name, err)
			}
			hashes := s.Hashes()
			if len(hashes) == 0 {
				cmdutil.Warnf(stderr, opts.Quiet, "no hashes retained for %q", rec.Name)
			}
			datasets++
			return db.AddSketch(rec.Name, hashes)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return 130
			}
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
	}

	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "indexed %d dataset(s) into %q (k=%d, scaled=%d)\n",
			datasets, opts.Output, opts.Ksize, opts.Scaled)
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
