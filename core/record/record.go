// core/record/record.go
package record

// SketchRecord is one (hash, ksize) observation from one source database.
// Before merging the same key may appear in several records; after merging
// the key is unique within a table.
type SketchRecord struct {
	Hash   uint64
	Ksize  int
	Scaled int // subsampling denominator; 0 = unknown or conflicting

	DatasetNames []string // datasets containing this k-mer, sorted set
	TaxonomyList []string // one lineage per classified dataset; nil = none
	Source       string   // originating database(s); ";"-joined when merged

	// Derived by the LCA resolver; empty when TaxonomyList is empty or the
	// contributing lineages disagree at domain level.
	LCALineage string
	LCARank    string // single-letter rank code
}

// Key identifies a record group for merging.
type Key struct {
	Hash  uint64
	Ksize int
}

// Key returns the (hash, ksize) grouping key.
func (r SketchRecord) Key() Key { return Key{Hash: r.Hash, Ksize: r.Ksize} }
