// internal/index/index.go

// Package index stores sketches in a bbolt file, keyed the way the hashes
// are consumed on export: one entry per hash value listing the datasets that
// contain it.
//
// Layout:
//
//	meta     "ksize" | "scaled" → little-endian u64
//	datasets uvarint id         → dataset name
//	hashes   little-endian u64  → uvarint dataset-id list
package index

import (
	"encoding/binary"
	"fmt"
	"os"

	bolt "go.etcd.io/bbolt"
)

var (
	metaBucket     = []byte("meta")
	datasetsBucket = []byte("datasets")
	hashesBucket   = []byte("hashes")

	ksizeKey  = []byte("ksize")
	scaledKey = []byte("scaled")
)

// DB is an open sketch database.
type DB struct {
	db     *bolt.DB
	ksize  int
	scaled int
}

// Create makes a new sketch database at path with fixed sketch parameters.
// An existing file at path is an error.
func Create(path string, ksize, scaled int) (*DB, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("index %q already exists", path)
	}
	db, err := bolt.Open(path, 0o644, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot create index %q: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucket(metaBucket)
		if err != nil {
			return err
		}
		if err := meta.Put(ksizeKey, u64le(uint64(ksize))); err != nil {
			return err
		}
		if err := meta.Put(scaledKey, u64le(uint64(scaled))); err != nil {
			return err
		}
		if _, err := tx.CreateBucket(datasetsBucket); err != nil {
			return err
		}
		_, err = tx.CreateBucket(hashesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db, ksize: ksize, scaled: scaled}, nil
}

// Open opens an existing sketch database read-only.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("cannot open index %q: %w", path, err)
	}
	db, err := bolt.Open(path, 0o644, &bolt.Options{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("cannot open index %q: %w", path, err)
	}
	d := &DB{db: db}
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(metaBucket)
		if meta == nil {
			return fmt.Errorf("index %q has no meta bucket; not a sketch index", path)
		}
		d.ksize = int(binary.LittleEndian.Uint64(meta.Get(ksizeKey)))
		d.scaled = int(binary.LittleEndian.Uint64(meta.Get(scaledKey)))
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return d, nil
}

func (d *DB) Close() error { return d.db.Close() }

func (d *DB) Ksize() int  { return d.ksize }
func (d *DB) Scaled() int { return d.scaled }

// AddSketch registers a dataset name and appends its id to every hash entry.
func (d *DB) AddSketch(name string, hashes []uint64) error {
	return d.db.Update(func(tx *bolt.Tx) error {
		ds := tx.Bucket(datasetsBucket)
		id, err := ds.NextSequence()
		if err != nil {
			return err
		}
		if err := ds.Put(uvarint(id), []byte(name)); err != nil {
			return err
		}

		hb := tx.Bucket(hashesBucket)
		for _, hv := range hashes {
			key := u64le(hv)
			val := append(append([]byte(nil), hb.Get(key)...), uvarint(id)...)
			if err := hb.Put(key, val); err != nil {
				return err
			}
		}
		return nil
	})
}

// ForEachHash walks every hash entry in key order, resolving dataset ids to
// names. Ids without a dataset entry are skipped with a warning via warn
// (nil to ignore), matching the tolerant scan of damaged databases.
func (d *DB) ForEachHash(warn func(string), emit func(hash uint64, names []string) error) error {
	return d.db.View(func(tx *bolt.Tx) error {
		ds := tx.Bucket(datasetsBucket)
		hb := tx.Bucket(hashesBucket)
		return hb.ForEach(func(k, v []byte) error {
			if len(k) != 8 {
				return nil
			}
			hash := binary.LittleEndian.Uint64(k)
			var names []string
			for len(v) > 0 {
				id, n := binary.Uvarint(v)
				if n <= 0 {
					if warn != nil {
						warn("could not parse dataset list")
					}
					break
				}
				v = v[n:]
				name := ds.Get(uvarint(id))
				if name == nil {
					if warn != nil {
						warn(fmt.Sprintf("skipping invalid dataset id %d", id))
					}
					continue
				}
				names = append(names, string(name))
			}
			return emit(hash, names)
		})
	})
}

func u64le(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func uvarint(v uint64) []byte {
	var b [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(b[:], v)
	return b[:n]
}
