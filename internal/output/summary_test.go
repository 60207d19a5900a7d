package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"sketchlca-core/summary"
)

var rows = []summary.RankSummaryRow{
	{Source: "test6.sketchdb", Rank: "family", Count: 8, Percent: 0.03},
	{Source: "test6.sketchdb", Rank: "species", Count: 23901, Percent: 99.96},
	{Source: "combined", Rank: "unclassified", Count: 84, Percent: 0.35},
}

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, "csv", rows))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Equal(t, "source,rank,count,percent", lines[0])
	require.Equal(t, "test6.sketchdb,family,8,0.03", lines[1])
	require.Equal(t, "test6.sketchdb,species,23901,99.96", lines[2])
	require.Equal(t, "combined,unclassified,84,0.35", lines[3])
}

func TestWriteSummaryTSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, "tsv", rows))
	require.True(t, strings.HasPrefix(buf.String(), "source\trank\tcount\tpercent\n"))
	require.Contains(t, buf.String(), "test6.sketchdb\tfamily\t8\t0.03\n")
}

func TestWriteSummaryText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, "text", rows))
	out := buf.String()
	require.Contains(t, out, "test6.sketchdb:\n")
	require.Contains(t, out, "combined:\n")
	require.Contains(t, out, "species")
	require.Contains(t, out, "(99.96%)")
}

func TestWriteSummaryUnsupported(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSummary(&buf, "parquet", rows)
	require.ErrorIs(t, err, ErrUnsupportedOutputFormat)
}

func TestPrintLCASummary(t *testing.T) {
	var buf bytes.Buffer
	PrintLCASummary(&buf, map[string]int{"species": 3, "phylum": 1}, 1, 5)
	out := buf.String()
	// Ranks appear domain-first, unclassified last.
	require.Less(t, strings.Index(out, "phylum"), strings.Index(out, "species"))
	require.Less(t, strings.Index(out, "species"), strings.Index(out, "unclassified"))
	require.Contains(t, out, "total hashes: 5")
}
