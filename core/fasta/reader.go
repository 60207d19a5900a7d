// core/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
)

// Record is one parsed FASTA entry. Name is the full header line (minus the
// leading '>'), e.g. "GCF_000017325.1 Shewanella baltica OS185" — sketch
// databases key taxonomy lookups on the accession prefix but store the whole
// description, so the header is kept verbatim.
type Record struct {
	Name string
	Seq  []byte
}

// ForEachPathCtx opens path (plain, gzip, or "-" for stdin), scans FASTA,
// and calls emit once per complete record. Cancellation via ctx is honored
// between lines. emit may return an error to stop early.
func ForEachPathCtx(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	sc := bufio.NewScanner(rc)
	const maxLine = 64 * 1024 * 1024 // allow very long single-line sequences (64 MiB)
	buf := make([]byte, 64*1024)
	sc.Buffer(buf, maxLine)

	var (
		name string
		seq  = make([]byte, 0, 1<<20)
	)

	flush := func() error {
		if name == "" && len(seq) == 0 {
			return nil
		}
		return emit(Record{Name: name, Seq: append([]byte(nil), seq...)})
	}

	for sc.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		if line[0] == '>' {
			if name != "" || len(seq) > 0 {
				if err := flush(); err != nil {
					return err
				}
				seq = seq[:0]
			}
			name = string(bytes.TrimSpace(line[1:]))
			continue
		}
		seq = append(seq, bytes.TrimSpace(line)...)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// ForEachPath is the background-context convenience wrapper.
func ForEachPath(path string, emit func(Record) error) error {
	return ForEachPathCtx(context.Background(), path, emit)
}
