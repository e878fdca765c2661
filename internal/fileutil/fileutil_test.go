package fileutil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestStageDir(t *testing.T) {
	dir, cleanup, err := StageDir("publigo-test-")
	if err != nil {
		t.Fatalf("StageDir() error = %v", err)
	}

	inner := filepath.Join(dir, "input.docx")
	if err := os.WriteFile(inner, []byte("x"), 0o600); err != nil {
		t.Fatalf("writing staged file: %v", err)
	}

	cleanup()

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Errorf("staging dir %s still exists after cleanup", dir)
	}
}

func TestValidateExtension(t *testing.T) {
	tests := []struct {
		name      string
		extension string
		wantErr   error
	}{
		{"valid docx", "docx", nil},
		{"valid pptx", "pptx", nil},
		{"empty", "", ErrExtensionEmpty},
		{"path separator", "a/b", ErrExtensionPathTraversal},
		{"backslash", `a\b`, ErrExtensionPathTraversal},
		{"null byte", "a\x00b", ErrExtensionPathTraversal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExtension(tt.extension)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExtension(%q) error = %v, wantErr %v", tt.extension, err, tt.wantErr)
			}
		})
	}
}

func TestFileExists(t *testing.T) {
	file := filepath.Join(t.TempDir(), "f")
	if FileExists(file) {
		t.Error("FileExists() = true for missing file")
	}
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) {
		t.Error("FileExists() = false for existing file")
	}
	if FileExists(filepath.Dir(file)) {
		t.Error("FileExists() = true for directory")
	}
}
