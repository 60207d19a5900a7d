// internal/taxonomy/taxonomy.go

// Package taxonomy loads lineage CSV files keyed by dataset accession. Rows
// carry one column per rank with values already rank-prefixed
// ("d__Bacteria", "p__Proteobacteria", ...); a lineage is their ";"-join in
// rank order. "superkingdom" is accepted as a header alias for "domain".
package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var rankColumns = []string{"domain", "phylum", "class", "order", "family", "genus", "species"}

// ErrMissingIdent marks a taxonomy file whose header has no ident column.
var ErrMissingIdent = errors.New("missing field `ident`")

// LoadCSV reads a taxonomy CSV into an accession → lineage map. An empty or
// unparseable file is an error; rows with a blank ident are skipped.
func LoadCSV(path string) (map[string]string, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()

	rdr := csv.NewReader(fh)
	rdr.FieldsPerRecord = -1
	rdr.TrimLeadingSpace = true

	header, err := rdr.Read()
	if err != nil {
		return nil, fmt.Errorf("taxonomy file %q is empty or failed to parse", path)
	}

	identCol := -1
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "superkingdom" {
			h = "domain"
		}
		if h == "ident" {
			identCol = i
		}
		cols[h] = i
	}
	if identCol < 0 {
		return nil, fmt.Errorf("taxonomy file %q: %w", path, ErrMissingIdent)
	}

	taxMap := make(map[string]string)
	line := 1
	for {
		row, err := rdr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %v", path, line, err)
		}
		if identCol >= len(row) {
			return nil, fmt.Errorf("%s:%d: %w", path, line, ErrMissingIdent)
		}
		ident := strings.TrimSpace(row[identCol])
		if ident == "" {
			continue
		}
		var tokens []string
		for _, rank := range rankColumns {
			i, ok := cols[rank]
			if !ok || i >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[i]); v != "" {
				tokens = append(tokens, v)
			}
		}
		taxMap[ident] = strings.Join(tokens, ";")
	}

	if len(taxMap) == 0 {
		return nil, fmt.Errorf("taxonomy file %q is empty or failed to parse", path)
	}
	return taxMap, nil
}

// Accession extracts the lookup key from a dataset name: its first
// whitespace-separated token.
func Accession(datasetName string) string {
	if i := strings.IndexAny(datasetName, " \t"); i >= 0 {
		return datasetName[:i]
	}
	return datasetName
}
