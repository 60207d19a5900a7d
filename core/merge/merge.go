// core/merge/merge.go
package merge

import (
	"sort"
	"strings"

	"sketchlca-core/lca"
	"sketchlca-core/record"
)

// group accumulates everything contributed to one duplicated (hash, ksize)
// key: set union for names and sources, multiset concatenation for lineages.
type group struct {
	key        record.Key
	names      map[string]struct{}
	sources    map[string]struct{}
	taxonomies []string
	scaled     int
	scaledOK   bool // false once members disagree
	seen       bool // scaled observed at least once
}

// Duplicates collapses all records sharing a (hash, ksize) key into one
// record and passes non-duplicated records through untouched. The output has
// exactly one row per distinct key: unique rows first in input order, then
// merged groups in first-seen key order. It is total over any input and a
// no-op on already-merged tables.
func Duplicates(records []record.SketchRecord) []record.SketchRecord {
	counts := make(map[record.Key]int, len(records))
	for _, r := range records {
		counts[r.Key()]++
	}

	var out []record.SketchRecord
	groups := make(map[record.Key]*group)
	var order []record.Key

	for _, r := range records {
		k := r.Key()
		if counts[k] == 1 {
			out = append(out, r)
			continue
		}
		g, ok := groups[k]
		if !ok {
			g = &group{
				key:     k,
				names:   make(map[string]struct{}),
				sources: make(map[string]struct{}),
			}
			groups[k] = g
			order = append(order, k)
		}
		g.absorb(r)
	}

	for _, k := range order {
		out = append(out, groups[k].merged())
	}
	return out
}

func (g *group) absorb(r record.SketchRecord) {
	for _, n := range r.DatasetNames {
		g.names[n] = struct{}{}
	}
	if r.Source != "" {
		// A record may itself carry a merged ";"-joined source.
		for _, s := range strings.Split(r.Source, ";") {
			g.sources[s] = struct{}{}
		}
	}
	g.taxonomies = append(g.taxonomies, r.TaxonomyList...)

	if r.Scaled != 0 {
		switch {
		case !g.seen:
			g.scaled = r.Scaled
			g.scaledOK = true
			g.seen = true
		case g.scaled != r.Scaled:
			g.scaledOK = false
		}
	} else if g.seen {
		// A member with unknown scaled conflicts with a known one.
		g.scaledOK = false
	} else {
		g.seen = true
	}
}

func (g *group) merged() record.SketchRecord {
	r := record.SketchRecord{
		Hash:         g.key.Hash,
		Ksize:        g.key.Ksize,
		DatasetNames: sortedKeys(g.names),
		Source:       strings.Join(sortedKeys(g.sources), ";"),
	}
	if g.scaledOK {
		r.Scaled = g.scaled
	}
	if len(g.taxonomies) > 0 {
		r.TaxonomyList = g.taxonomies
		r.LCALineage, r.LCARank = lca.Compute(g.taxonomies)
	}
	return r
}

func sortedKeys(set map[string]struct{}) []string {
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
