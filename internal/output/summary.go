// internal/output/summary.go
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"sketchlca-core/lineage"
	"sketchlca-core/summary"
)

// WriteSummary dispatches on format: csv | tsv | text.
func WriteSummary(w io.Writer, format string, rows []summary.RankSummaryRow) error {
	switch format {
	case "csv":
		return writeSep(w, rows, ',')
	case "tsv":
		return writeSep(w, rows, '\t')
	case "text":
		return WriteText(w, rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedOutputFormat, format)
	}
}

func writeSep(w io.Writer, rows []summary.RankSummaryRow, comma rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = comma
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Source,
			r.Rank,
			strconv.Itoa(r.Count),
			strconv.FormatFloat(r.Percent, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteText prints one aligned line per row, grouped by source.
func WriteText(w io.Writer, rows []summary.RankSummaryRow) error {
	prev := ""
	for _, r := range rows {
		if r.Source != prev {
			if prev != "" {
				if _, err := fmt.Fprintln(w); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", r.Source); err != nil {
				return err
			}
			prev = r.Source
		}
		if _, err := fmt.Fprintf(w, "  %-13s %9d (%.2f%%)\n", r.Rank, r.Count, r.Percent); err != nil {
			return err
		}
	}
	return nil
}

// PrintLCASummary writes the human rank distribution of one table to w
// (normally stderr), in rank order with unclassified last.
func PrintLCASummary(w io.Writer, rankCounts map[string]int, noneCount, total int) {
	fmt.Fprintln(w, "--- LCA summary ---")
	for _, rank := range lineage.RankNames {
		count, ok := rankCounts[rank]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", rank, count, 100*float64(count)/float64(total))
	}
	if noneCount > 0 {
		fmt.Fprintf(w, "%s: %d (%.1f%%)\n", summary.Unclassified, noneCount,
			100*float64(noneCount)/float64(total))
	}
	fmt.Fprintf(w, "total hashes: %d\n-------------------\n", total)
}
