// core/sketch/sketch.go

// Package sketch builds scaled-MinHash sketches of nucleotide sequences
// using the ntHash rolling hash. A sketch keeps every canonical k-mer hash
// at or below 2^64/scaled, so two sketches with the same parameters are
// directly comparable subsamples of their genomes' k-mer content.
package sketch

import (
	"errors"
	"math"
	"sort"

	"github.com/will-rowe/nthash"
)

// CANONICAL makes ntHash inspect both strands and hash the lexicographically
// smaller k-mer, so a sequence and its reverse complement sketch identically.
const CANONICAL = true

// Sketch accumulates the retained hashes for one dataset.
type Sketch struct {
	ksize     int
	scaled    int
	threshold uint64
	mins      map[uint64]struct{}
}

// New returns an empty sketch for the given k-mer length and scaled
// subsampling denominator.
func New(ksize, scaled int) (*Sketch, error) {
	if ksize <= 0 {
		return nil, errors.New("ksize must be > 0")
	}
	if scaled <= 0 {
		return nil, errors.New("scaled must be > 0")
	}
	return &Sketch{
		ksize:     ksize,
		scaled:    scaled,
		threshold: math.MaxUint64 / uint64(scaled),
		mins:      make(map[uint64]struct{}),
	}, nil
}

func (s *Sketch) Ksize() int  { return s.ksize }
func (s *Sketch) Scaled() int { return s.scaled }

// Add hashes every k-mer of sequence and retains those under the scaled
// threshold. Sequences shorter than k are skipped without error.
func (s *Sketch) Add(sequence []byte) error {
	if len(sequence) < s.ksize {
		return nil
	}
	hasher, err := nthash.NewHasher(&sequence, uint(s.ksize))
	if err != nil {
		return err
	}
	for hv := range hasher.Hash(CANONICAL) {
		if hv <= s.threshold {
			s.mins[hv] = struct{}{}
		}
	}
	return nil
}

// Hashes returns the retained hash values, sorted ascending.
func (s *Sketch) Hashes() []uint64 {
	out := make([]uint64, 0, len(s.mins))
	for hv := range s.mins {
		out = append(out, hv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
