package publigo

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

// zipBuilder assembles the response archive incrementally: artifacts are
// appended one at a time and the archive is finalized once, so large
// batches never require a second in-memory copy of every artifact.
type zipBuilder struct {
	buf bytes.Buffer
	zw  *zip.Writer
}

// newZipBuilder creates a builder compressing at maximum deflate level.
func newZipBuilder() *zipBuilder {
	b := &zipBuilder{}
	b.zw = zip.NewWriter(&b.buf)
	b.zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestCompression)
	})
	return b
}

// Append adds one artifact under its filename.
func (b *zipBuilder) Append(name string, content []byte) error {
	w, err := b.zw.Create(name)
	if err != nil {
		return fmt.Errorf("%w: adding %s: %v", ErrArchive, name, err)
	}
	if _, err := w.Write(content); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrArchive, name, err)
	}
	return nil
}

// Finalize closes the archive and returns its bytes. The builder must
// not be used afterwards.
func (b *zipBuilder) Finalize() ([]byte, error) {
	if err := b.zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArchive, err)
	}
	return b.buf.Bytes(), nil
}
