// core/fasta/open.go
package fasta

import (
	"compress/gzip"
	"io"
	"os"
)

// gzReadCloser closes the gzip layer and the underlying file.
type gzReadCloser struct {
	*gzip.Reader
	file *os.File
}

func (g *gzReadCloser) Close() error {
	gerr := g.Reader.Close()
	ferr := g.file.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}

// openReader opens path for FASTA scanning. "-" means stdin; gzip input is
// detected by the 1F 8B magic bytes regardless of file extension.
func openReader(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	if _, err := fh.Seek(0, io.SeekStart); err != nil {
		_ = fh.Close()
		return nil, err
	}
	if n == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &gzReadCloser{Reader: gr, file: fh}, nil
	}
	return fh, nil
}
