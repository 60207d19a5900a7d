// core/summary/summary.go
package summary

import (
	"math"
	"sort"

	"sketchlca-core/lineage"
	"sketchlca-core/record"
)

// Combined is the synthetic source label for the union of all input tables.
const Combined = "combined"

// Unclassified is the bucket for rows without an LCA rank, whether no
// taxonomy was supplied at all or the contributing lineages disagree at
// domain level.
const Unclassified = "unclassified"

// RankSummaryRow is one (source, rank) bucket of a rank distribution.
type RankSummaryRow struct {
	Source  string
	Rank    string
	Count   int
	Percent float64 // percent of the source's rows, 2 decimals
}

// Summarize buckets each source table by LCA rank and emits count/percent
// rows per source plus rows for the union of all tables under the "combined"
// label. Tables are assumed already merged; duplicate hashes across sources
// contribute independently. Empty buckets are omitted.
func Summarize(tables map[string][]record.SketchRecord) []RankSummaryRow {
	sources := make([]string, 0, len(tables))
	for s := range tables {
		sources = append(sources, s)
	}
	sort.Strings(sources)

	var out []RankSummaryRow
	combined := make(map[string]int)
	combinedTotal := 0

	for _, src := range sources {
		counts := make(map[string]int)
		for _, r := range tables[src] {
			rank := lineage.RankName(r.LCARank)
			if rank == "" {
				rank = Unclassified
			}
			counts[rank]++
			combined[rank]++
		}
		total := len(tables[src])
		combinedTotal += total
		out = append(out, rows(src, counts, total)...)
	}

	if len(sources) > 0 {
		out = append(out, rows(Combined, combined, combinedTotal)...)
	}
	return out
}

func rows(source string, counts map[string]int, total int) []RankSummaryRow {
	ranks := make([]string, 0, len(counts))
	for r := range counts {
		ranks = append(ranks, r)
	}
	sort.Slice(ranks, func(i, j int) bool {
		return lineage.RankIndex(ranks[i]) < lineage.RankIndex(ranks[j])
	})

	out := make([]RankSummaryRow, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, RankSummaryRow{
			Source:  source,
			Rank:    r,
			Count:   counts[r],
			Percent: pct(counts[r], total),
		})
	}
	return out
}

func pct(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(100*float64(count)/float64(total)*100) / 100
}
