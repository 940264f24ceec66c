package fileio

import (
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// ArchiveZstd writes a zstd-compressed copy of src to dst and returns the
// number of uncompressed bytes. src is left as it was.
func ArchiveZstd(src, dst string) (n int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, openErr(src, err)
	}
	defer in.Close()

	if err := ensureDir(dst); err != nil {
		return 0, err
	}
	out, err := os.Create(dst)
	if err != nil {
		return 0, openErr(dst, err)
	}
	defer closeWith(out, &err)

	enc, err := zstd.NewWriter(out)
	if err != nil {
		return 0, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	n, err = io.Copy(enc, in)
	if err != nil {
		enc.Close()
		return 0, fmt.Errorf("failed to compress %s: %w", src, err)
	}
	if err := enc.Close(); err != nil {
		return 0, fmt.Errorf("failed to finish %s: %w", dst, err)
	}
	return n, nil
}
