// internal/summarycli/options.go
package summarycli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"sketchlca/internal/cliutil"
	"sketchlca/internal/version"
)

// Options holds all CLI flags for the rank summary tool.
type Options struct {
	Inputs []string // merged parquet tables, one source each
	Output string   // summary file; "" = stdout
	Format string   // csv | tsv | text
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: rank distribution summary of merged sketch tables

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

	var inputs stringSlice
	fs.Var(&inputs, "input", "merged parquet file (repeatable or positional) [*]")
	fs.StringVar(&opt.Output, "output", "", "summary output file (default: stdout)")
	fs.StringVar(&opt.Format, "format", "csv", "summary format: csv | tsv | text [csv]")
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
	opt.Inputs = append([]string(inputs), pos...)

	if len(opt.Inputs) == 0 {
		return opt, errors.New("at least one --input file is required")
	}
	if opt.Format != "csv" && opt.Format != "tsv" && opt.Format != "text" {
		return opt, fmt.Errorf("invalid --format %q", opt.Format)
	}
	return opt, nil
}

type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
