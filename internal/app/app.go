// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"sketchlca-core/lca"
	"sketchlca-core/lineage"
	"sketchlca-core/record"
	"sketchlca-core/summary"
	"sketchlca/internal/cli"
	"sketchlca/internal/cmdutil"
	"sketchlca/internal/index"
	"sketchlca/internal/output"
	"sketchlca/internal/parquetio"
	"sketchlca/internal/taxonomy"
	"sketchlca/internal/version"
)

// RunContext drives the export tool: scan each sketch database, join the
// optional taxonomy, compute per-row LCAs, and write the columnar table.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("sketchlca-export")
	fs.SetOutput(io.Discard)

	opts, err := cli.ParseArgs(fs, argv)
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
	if opts.Version {
		_, _ = fmt.Fprintf(stdout, "sketchlca-export version %s\n", version.Version)
		return 0
	}

	var taxMap map[string]string
	if opts.Taxonomy != "" {
		taxMap, err = taxonomy.LoadCSV(opts.Taxonomy)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
	}

	warn := func(msg string) { cmdutil.Warnf(stderr, opts.Quiet, "%s", msg) }

	var table []record.SketchRecord
	tables := make(map[string][]record.SketchRecord, len(opts.DBs))
	for _, dbPath := range opts.DBs {
		select {
		case <-parent.Done():
			return 130
		default:
		}
		rows, err := exportDB(dbPath, taxMap, warn)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		src := filepath.Base(dbPath)
		tables[src] = rows
		table = append(table, rows...)
		if !opts.Quiet {
			_, _ = fmt.Fprintf(stderr, "collected %d hashes from %q\n", len(rows), dbPath)
		}
	}

	out := opts.Output
	if out == "" {
		out = filepath.Base(opts.DBs[0]) + ".parquet"
		warn(fmt.Sprintf("no output file specified, using default: %q", out))
	}

	if opts.Minimal {
		err = parquetio.WriteHashTable(out, table)
	} else {
		err = parquetio.WriteTable(out, table)
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if !opts.Quiet {
		_, _ = fmt.Fprintf(stderr, "exported %d rows to %q\n", len(table), out)
	}

	if opts.Taxonomy != "" {
		if !opts.Quiet {
			printSummary(stderr, table)
		}
		if opts.LCAInfo != "" {
			if err := writeLCAInfo(opts.LCAInfo, tables); err != nil {
				_, _ = fmt.Fprintln(stderr, err)
				return 3
			}
		}
	}
	return 0
}

// exportDB turns one sketch database into per-hash records. With a taxonomy
// map, each dataset whose accession resolves contributes one lineage, and
// the LCA of those lineages is attached to the row.
func exportDB(path string, taxMap map[string]string, warn func(string)) ([]record.SketchRecord, error) {
	db, err := index.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	src := filepath.Base(path)
	var rows []record.SketchRecord
	err = db.ForEachHash(warn, func(hash uint64, names []string) error {
		r := record.SketchRecord{
			Hash:         hash,
			Ksize:        db.Ksize(),
			Scaled:       db.Scaled(),
			DatasetNames: names,
			Source:       src,
		}
		if taxMap != nil {
			var lineages []string
			for _, name := range names {
				if lin, ok := taxMap[taxonomy.Accession(name)]; ok {
					lineages = append(lineages, lin)
				}
			}
			r.TaxonomyList = lineages
			r.LCALineage, r.LCARank = lca.Compute(lineages)
		}
		rows = append(rows, r)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func printSummary(stderr io.Writer, table []record.SketchRecord) {
	rankCounts := make(map[string]int)
	none := 0
	for _, r := range table {
		if name := lineage.RankName(r.LCARank); name != "" {
			rankCounts[name]++
		} else {
			none++
		}
	}
	output.PrintLCASummary(stderr, rankCounts, none, len(table))
}

func writeLCAInfo(path string, tables map[string][]record.SketchRecord) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()
	return output.WriteSummary(fh, "csv", summary.Summarize(tables))
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
