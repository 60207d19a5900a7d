package taxonomy

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, data string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

const header = "ident,domain,phylum,class,order,family,genus,species\n"
const shewRow = "GCF_000017325.1,d__Bacteria,p__Proteobacteria,c__Gammaproteobacteria,o__Enterobacterales,f__Shewanellaceae,g__Shewanella,s__Shewanella baltica\n"

func TestLoadCSV(t *testing.T) {
	p := write(t, "tax.csv", header+shewRow)
	m, err := LoadCSV(p)
	require.NoError(t, err)
	require.Equal(t,
		"d__Bacteria;p__Proteobacteria;c__Gammaproteobacteria;o__Enterobacterales;f__Shewanellaceae;g__Shewanella;s__Shewanella baltica",
		m["GCF_000017325.1"])
}

func TestLoadCSVSuperkingdomAlias(t *testing.T) {
	p := write(t, "tax.csv",
		"ident,superkingdom,phylum\nGCF_1,d__Bacteria,p__Firmicutes\n")
	m, err := LoadCSV(p)
	require.NoError(t, err)
	require.Equal(t, "d__Bacteria;p__Firmicutes", m["GCF_1"])
}

func TestLoadCSVPartialLineage(t *testing.T) {
	// A lineage need not reach species; empty rank cells are dropped.
	p := write(t, "tax.csv", "ident,domain,phylum,class\nGCF_2,d__Bacteria,p__Firmicutes,\n")
	m, err := LoadCSV(p)
	require.NoError(t, err)
	require.Equal(t, "d__Bacteria;p__Firmicutes", m["GCF_2"])
}

func TestLoadCSVMissingIdent(t *testing.T) {
	p := write(t, "tax.csv", "name,domain\nfoo,d__Bacteria\n")
	_, err := LoadCSV(p)
	require.ErrorIs(t, err, ErrMissingIdent)
}

func TestLoadCSVEmptyFile(t *testing.T) {
	p := write(t, "tax.csv", "")
	_, err := LoadCSV(p)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty or failed to parse")
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	p := write(t, "tax.csv", header)
	_, err := LoadCSV(p)
	require.Error(t, err)
}

func TestLoadCSVMissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestAccession(t *testing.T) {
	require.Equal(t, "GCF_000021665.1", Accession("GCF_000021665.1 Shewanella baltica OS223"))
	require.Equal(t, "plain", Accession("plain"))
}
