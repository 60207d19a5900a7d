// internal/mergecli/options.go
package mergecli

import (
	"errors"
	"flag"
	"fmt"

	"sketchlca/internal/version"
)

// Options holds all CLI flags for the duplicate-merge tool.
type Options struct {
	Input  string
	Output string
	Quiet  bool
}

func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: merge duplicated (hash, ksize) rows of an exported table

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

	fs.StringVar(&opt.Input, "input", "", "input parquet file [*]")
	fs.StringVar(&opt.Output, "output", "", "output parquet file [*]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress merge counts on stderr [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Input == "" {
		return opt, errors.New("--input is required")
	}
	if opt.Output == "" {
		return opt, errors.New("--output is required")
	}
	return opt, nil
}
