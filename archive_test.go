package publigo

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"
)

func TestZipBuilder(t *testing.T) {
	entries := []struct {
		name    string
		content []byte
	}{
		{"01_Alice.pdf", []byte("%PDF-1.4 alice")},
		{"02_Bob.pdf", []byte("%PDF-1.4 bob")},
		{"03_NoName.pdf", bytes.Repeat([]byte("compressible "), 200)},
	}

	b := newZipBuilder()
	for _, e := range entries {
		if err := b.Append(e.name, e.content); err != nil {
			t.Fatalf("Append(%s) error = %v", e.name, err)
		}
	}
	archive, err := b.Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if got := len(zr.File); got != len(entries) {
		t.Fatalf("entries = %d, want %d", got, len(entries))
	}

	// Entry order and content must round-trip byte-identical.
	for i, e := range entries {
		f := zr.File[i]
		if f.Name != e.name {
			t.Errorf("entry %d name = %q, want %q", i, f.Name, e.name)
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("opening %s: %v", f.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("reading %s: %v", f.Name, err)
		}
		if !bytes.Equal(content, e.content) {
			t.Errorf("entry %s content differs after round-trip", f.Name)
		}
	}
}

func TestZipBuilderEmpty(t *testing.T) {
	archive, err := newZipBuilder().Finalize()
	if err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		t.Fatalf("reading archive: %v", err)
	}
	if len(zr.File) != 0 {
		t.Errorf("entries = %d, want 0", len(zr.File))
	}
}
