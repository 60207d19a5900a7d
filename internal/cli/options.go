// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"sketchlca/internal/version"
)

// Options holds all CLI flags for the export tool.
type Options struct {
	DBs      []string // sketch databases to export
	Output   string   // parquet path; "" = derive from first database name
	Taxonomy string   // lineage CSV; "" = export without taxonomy columns
	LCAInfo  string   // rank summary CSV path; "" = skip

	Minimal bool // write only hash + dataset_names columns
	Quiet   bool
	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: export k-mer sketch databases to a columnar table

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	var dbs stringSlice
	fs.Var(&dbs, "db", "sketch database file (repeatable) [*]")
	fs.StringVar(&opt.Output, "output", "", "output parquet file (default: <database>.parquet)")
	fs.StringVar(&opt.Taxonomy, "taxonomy", "", "taxonomy CSV file (optional)")
	fs.StringVar(&opt.LCAInfo, "lca-info", "", "write per-source rank summary CSV (requires --taxonomy)")
	fs.BoolVar(&opt.Minimal, "minimal", false, "write only hash and dataset_names columns [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress progress and summary on stderr [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.DBs = dbs

	if len(opt.DBs) == 0 {
		return opt, errors.New("at least one --db file is required")
	}
	if opt.LCAInfo != "" && opt.Taxonomy == "" {
		return opt, errors.New("--lca-info requires --taxonomy")
	}
	if opt.Minimal && opt.Taxonomy != "" {
		return opt, errors.New("--minimal conflicts with --taxonomy")
	}
	return opt, nil
}

// stringSlice allows repeatable string flags.
type stringSlice []string

func (s *stringSlice) String() string     { return strings.Join(*s, ",") }
func (s *stringSlice) Set(v string) error { *s = append(*s, v); return nil }
