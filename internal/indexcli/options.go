// internal/indexcli/options.go
package indexcli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"sketchlca/internal/cliutil"
	"sketchlca/internal/version"
)

// Options holds all CLI flags for the index tool.
type Options struct {
	SeqFiles []string
	Output   string
	Ksize    int
	Scaled   int
	Quiet    bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: sketch FASTA files into a k-mer sketch database

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var seq stringSlice
	fs.Var(&seq, "sequences", "FASTA file(s) (repeatable, positional, or '-') [*]")
	fs.StringVar(&opt.Output, "output", "", "output sketch database file [*]")
	fs.IntVar(&opt.Ksize, "ksize", 31, "k-mer length [31]")
	fs.IntVar(&opt.Scaled, "scaled", 1000, "scaled subsampling denominator [1000]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress on stderr [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	pos, err := cliutil.ExpandPositionals(posArgs)
	if err != nil {
		return opt, err
	}
	opt.SeqFiles = append([]string(seq), pos...)

	if len(opt.SeqFiles) == 0 {
		return opt, errors.New("at least one --sequences file is required")
	}
	if opt.Output == "" {
		return opt, errors.New("--output is required")
	}
	if opt.Ksize <= 0 {
		return opt, errors.New("--ksize must be > 0")
	}
	if opt.Scaled <= 0 {
		return opt, errors.New("--scaled must be > 0")
	}
	return opt, nil
}

type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
