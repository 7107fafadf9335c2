package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/klauspost/pgzip"
)

const bufSize = 64 << 10

// Compression is picked from the output file suffix.
type Compression int

const (
	None Compression = iota
	Zstd
	Gzip
)

// CompressionFor returns the compression implied by path: ".zst" or ".gz".
func CompressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	default:
		return None
	}
}

type fileWriter struct {
	io.Writer
	comp io.WriteCloser // nil when uncompressed
	buf  *bufio.Writer
	f    *os.File
}

// Close finishes the compressed stream, flushes and closes the file.
func (w *fileWriter) Close() error {
	var errs []error
	if w.comp != nil {
		if err := w.comp.Close(); err != nil {
			errs = append(errs, fmt.Errorf("compressed writer close failed: %w", err))
		}
	}
	if err := w.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("buffer flush failed: %w", err))
	}
	if err := w.f.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Create opens path for writing a report, compressing according to its
// suffix. The caller must Close the writer.
func Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	w := &fileWriter{f: f, buf: bufio.NewWriterSize(f, bufSize)}

	switch CompressionFor(path) {
	case Zstd:
		zw, err := zstd.NewWriter(w.buf, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create zstd writer: %w", err)
		}
		w.comp, w.Writer = zw, zw
	case Gzip:
		gw, err := pgzip.NewWriterLevel(w.buf, pgzip.DefaultCompression)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to create gzip writer: %w", err)
		}
		w.comp, w.Writer = gw, gw
	default:
		w.Writer = w.buf
	}
	return w, nil
}
