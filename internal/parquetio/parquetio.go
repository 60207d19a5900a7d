// internal/parquetio/parquetio.go

// Package parquetio reads and writes the columnar SketchRecord tables.
// The full schema has 8 columns (hash, ksize, scaled, dataset_names,
// taxonomy_list, lca_lineage, lca_rank, source); exports that opt out of
// taxonomy write a minimal 2-column table (hash, dataset_names).
package parquetio

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"sketchlca-core/record"
)

// Input-shape error kinds, matchable with errors.Is.
var (
	ErrMixedInputFormats = errors.New("input files mix formats")
	ErrNoValidInputFiles = errors.New("no valid input files")
)

type tableRow struct {
	Hash         uint64   `parquet:"hash"`
	Ksize        int32    `parquet:"ksize"`
	Scaled       *int64   `parquet:"scaled,optional"`
	DatasetNames []string `parquet:"dataset_names,list"`
	TaxonomyList []string `parquet:"taxonomy_list,list"`
	LCALineage   *string  `parquet:"lca_lineage,optional"`
	LCARank      *string  `parquet:"lca_rank,optional"`
	Source       string   `parquet:"source"`
}

type hashRow struct {
	Hash         uint64   `parquet:"hash"`
	DatasetNames []string `parquet:"dataset_names,list"`
}

// WriteTable writes records as a full 8-column parquet table.
func WriteTable(path string, records []record.SketchRecord) error {
	rows := make([]tableRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, toRow(r))
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// WriteHashTable writes the 2-column (hash, dataset_names) form used when
// the caller opted out of taxonomy.
func WriteHashTable(path string, records []record.SketchRecord) error {
	rows := make([]hashRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, hashRow{Hash: r.Hash, DatasetNames: r.DatasetNames})
	}
	if err := parquet.WriteFile(path, rows); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// ReadTable reads a full table back into SketchRecords.
func ReadTable(path string) ([]record.SketchRecord, error) {
	rows, err := parquet.ReadFile[tableRow](path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	out := make([]record.SketchRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromRow(r))
	}
	return out, nil
}

// CheckInputPaths validates that paths is non-empty and uniformly parquet.
// A uniform non-parquet set is unsupported; a mixed set is its own error so
// the caller can report accidentally globbed files distinctly.
func CheckInputPaths(paths []string) error {
	if len(paths) == 0 {
		return ErrNoValidInputFiles
	}
	exts := make(map[string]struct{})
	for _, p := range paths {
		exts[strings.ToLower(filepath.Ext(p))] = struct{}{}
	}
	if len(exts) > 1 {
		return fmt.Errorf("%w: %s", ErrMixedInputFormats, strings.Join(paths, ", "))
	}
	for ext := range exts {
		if ext != ".parquet" {
			return fmt.Errorf("unsupported input format %q (want .parquet)", ext)
		}
	}
	return nil
}

func toRow(r record.SketchRecord) tableRow {
	row := tableRow{
		Hash:         r.Hash,
		Ksize:        int32(r.Ksize),
		DatasetNames: r.DatasetNames,
		TaxonomyList: r.TaxonomyList,
		Source:       r.Source,
	}
	if r.Scaled != 0 {
		s := int64(r.Scaled)
		row.Scaled = &s
	}
	if r.LCALineage != "" {
		v := r.LCALineage
		row.LCALineage = &v
	}
	if r.LCARank != "" {
		v := r.LCARank
		row.LCARank = &v
	}
	return row
}

func fromRow(row tableRow) record.SketchRecord {
	r := record.SketchRecord{
		Hash:         row.Hash,
		Ksize:        int(row.Ksize),
		DatasetNames: row.DatasetNames,
		Source:       row.Source,
	}
	if len(row.TaxonomyList) > 0 {
		r.TaxonomyList = row.TaxonomyList
	}
	if row.Scaled != nil {
		r.Scaled = int(*row.Scaled)
	}
	if row.LCALineage != nil {
		r.LCALineage = *row.LCALineage
	}
	if row.LCARank != nil {
		r.LCARank = *row.LCARank
	}
	return r
}
