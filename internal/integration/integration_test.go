package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sketchlca-core/record"
	"sketchlca/internal/app"
	"sketchlca/internal/index"
	"sketchlca/internal/indexapp"
	"sketchlca/internal/mergeapp"
	"sketchlca/internal/parquetio"
	"sketchlca/internal/summaryapp"
)

const shewLineage = "d__Bacteria;p__Proteobacteria;c__Gammaproteobacteria;o__Enterobacterales;f__Shewanellaceae;g__Shewanella;s__Shewanella baltica"

func writeFile(t *testing.T, path, data string) string {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return path
}

// makeIndex builds a small sketch database with two datasets sharing hash 20.
func makeIndex(t *testing.T, path string) {
	t.Helper()
	db, err := index.Create(path, 31, 1000)
	require.NoError(t, err)
	require.NoError(t, db.AddSketch("GCF_000017325.1 Shewanella baltica OS185", []uint64{10, 20}))
	require.NoError(t, db.AddSketch("GCF_000021665.1 Shewanella baltica OS223", []uint64{20, 30}))
	require.NoError(t, db.Close())
}

func taxonomyCSV(t *testing.T, dir string) string {
	t.Helper()
	toks := strings.Split(shewLineage, ";")
	row := func(ident string) string {
		return ident + "," + strings.Join(toks, ",") + "\n"
	}
	return writeFile(t, filepath.Join(dir, "tax.csv"),
		"ident,domain,phylum,class,order,family,genus,species\n"+
			row("GCF_000017325.1")+row("GCF_000021665.1"))
}

func TestExportWithTaxonomy(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "test6.sketchdb")
	makeIndex(t, dbPath)
	tax := taxonomyCSV(t, dir)
	outParquet := filepath.Join(dir, "test6.parquet")
	outLCA := filepath.Join(dir, "test6.lca.csv")

	var out, errBuf bytes.Buffer
	code := app.Run([]string{
		"--db", dbPath,
		"--taxonomy", tax,
		"--output", outParquet,
		"--lca-info", outLCA,
	}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())
	require.Contains(t, errBuf.String(), "LCA summary")

	rows, err := parquetio.ReadTable(outParquet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byHash := map[uint64]record.SketchRecord{}
	for _, r := range rows {
		byHash[r.Hash] = r
	}
	shared := byHash[20]
	require.Equal(t, []string{
		"GCF_000017325.1 Shewanella baltica OS185",
		"GCF_000021665.1 Shewanella baltica OS223",
	}, shared.DatasetNames)
	require.Equal(t, []string{shewLineage, shewLineage}, shared.TaxonomyList)
	require.Equal(t, shewLineage, shared.LCALineage)
	require.Equal(t, "s", shared.LCARank)
	require.Equal(t, 31, shared.Ksize)
	require.Equal(t, 1000, shared.Scaled)
	require.Equal(t, "test6.sketchdb", shared.Source)

	lca, err := os.ReadFile(outLCA)
	require.NoError(t, err)
	require.Contains(t, string(lca), "source,rank,count,percent")
	require.Contains(t, string(lca), "test6.sketchdb,species,3,100.00")
	require.Contains(t, string(lca), "combined,species,3,100.00")
}

func TestExportDefaultOutputName(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "podar.sketchdb")
	makeIndex(t, dbPath)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(wd) }()

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"--db", dbPath}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())

	rows, err := parquetio.ReadTable(filepath.Join(dir, "podar.sketchdb.parquet"))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		// No taxonomy supplied: LCA columns stay null.
		require.Empty(t, r.TaxonomyList)
		require.Empty(t, r.LCALineage)
		require.Empty(t, r.LCARank)
	}
}

func TestMergeAcrossSources(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "both.parquet")
	merged := filepath.Join(dir, "merged.parquet")

	require.NoError(t, parquetio.WriteTable(in, []record.SketchRecord{
		{Hash: 20, Ksize: 31, Scaled: 1000,
			DatasetNames: []string{"A"}, TaxonomyList: []string{shewLineage},
			LCALineage: shewLineage, LCARank: "s", Source: "db1.sketchdb"},
		{Hash: 20, Ksize: 31, Scaled: 100000,
			DatasetNames: []string{"B"}, TaxonomyList: []string{shewLineage},
			LCALineage: shewLineage, LCARank: "s", Source: "db2.sketchdb"},
		{Hash: 30, Ksize: 31, Scaled: 1000,
			DatasetNames: []string{"C"}, Source: "db1.sketchdb"},
	}))

	var out, errBuf bytes.Buffer
	code := mergeapp.Run([]string{"--input", in, "--output", merged}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())
	require.Contains(t, errBuf.String(), "merged 3 row(s) into 2")

	rows, err := parquetio.ReadTable(merged)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		if r.Hash != 20 {
			continue
		}
		require.Equal(t, []string{"A", "B"}, r.DatasetNames)
		require.Equal(t, "db1.sketchdb;db2.sketchdb", r.Source)
		require.Equal(t, "s", r.LCARank)
		require.Zero(t, r.Scaled, "conflicting scaled must come back null")
	}
}

func TestSummaryTool(t *testing.T) {
	dir := t.TempDir()
	t1 := filepath.Join(dir, "db1.parquet")
	t2 := filepath.Join(dir, "db2.parquet")
	outCSV := filepath.Join(dir, "summary.csv")

	require.NoError(t, parquetio.WriteTable(t1, []record.SketchRecord{
		{Hash: 1, Ksize: 31, DatasetNames: []string{"a"}, LCARank: "s", Source: "db1"},
		{Hash: 2, Ksize: 31, DatasetNames: []string{"b"}, LCARank: "s", Source: "db1"},
		{Hash: 3, Ksize: 31, DatasetNames: []string{"c"}, LCARank: "f", Source: "db1"},
	}))
	require.NoError(t, parquetio.WriteTable(t2, []record.SketchRecord{
		{Hash: 9, Ksize: 31, DatasetNames: []string{"z"}, Source: "db2"},
	}))

	var out, errBuf bytes.Buffer
	code := summaryapp.Run([]string{
		"--input", t1, "--input", t2, "--output", outCSV,
	}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())

	data, err := os.ReadFile(outCSV)
	require.NoError(t, err)
	got := string(data)
	require.Contains(t, got, "db1.parquet,family,1,33.33")
	require.Contains(t, got, "db1.parquet,species,2,66.67")
	require.Contains(t, got, "db2.parquet,unclassified,1,100.00")
	require.Contains(t, got, "combined,species,2,50.00")
	require.Contains(t, got, "combined,unclassified,1,25.00")
}

func TestSummaryRejectsMixedInputs(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := summaryapp.Run([]string{
		"--input", "a.parquet", "--input", "b.csv",
	}, &out, &errBuf)
	require.Equal(t, 2, code)
	require.Contains(t, errBuf.String(), "mix formats")
}

func TestIndexExportPipeline(t *testing.T) {
	dir := t.TempDir()
	// Two datasets with identical sequences sketch to identical hash sets,
	// so every exported row lists both names.
	seq := strings.Repeat("ACGTTGCAGGCATCATCGATCGTAGCTAGCTAACGGTTACCAT", 3)
	fa := writeFile(t, filepath.Join(dir, "in.fa"),
		">GCF_1 genome one\n"+seq+"\n>GCF_2 genome two\n"+seq+"\n")
	dbPath := filepath.Join(dir, "pipe.sketchdb")
	outParquet := filepath.Join(dir, "pipe.parquet")

	var out, errBuf bytes.Buffer
	code := indexapp.Run([]string{
		"--sequences", fa, "--output", dbPath, "--ksize", "21", "--scaled", "1",
	}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())

	out.Reset()
	errBuf.Reset()
	code = app.Run([]string{"--db", dbPath, "--output", outParquet}, &out, &errBuf)
	require.Equal(t, 0, code, "stderr: %s", errBuf.String())

	rows, err := parquetio.ReadTable(outParquet)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	for _, r := range rows {
		require.Equal(t, []string{"GCF_1 genome one", "GCF_2 genome two"}, r.DatasetNames)
		require.Equal(t, 21, r.Ksize)
		require.Equal(t, 1, r.Scaled)
	}
}
