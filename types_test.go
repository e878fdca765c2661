package publigo

import "testing"

func TestNormalizeOutputType(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pdf", KindPDF},
		{"PDF", KindPDF},
		{"docx", KindDocx},
		{"Pptx", KindPptx},
		{"png", KindPNG},
		{"jpg", KindJPG},
		{"", KindPDF},
		{"jpeg", KindPDF}, // unrecognized silently defaults
		{"exe", KindPDF},
	}

	for _, tt := range tests {
		if got := NormalizeOutputType(tt.in); got != tt.want {
			t.Errorf("NormalizeOutputType(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMimeType(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{KindPDF, "application/pdf"},
		{KindPNG, "image/png"},
		{KindJPG, "image/jpeg"},
		{KindDocx, "application/octet-stream"},
		{KindPptx, "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := MimeType(tt.kind); got != tt.want {
			t.Errorf("MimeType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestWithTimeoutPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) did not panic")
		}
	}()
	WithTimeout(0)
}

func TestTablePrimary(t *testing.T) {
	table := &Table{Header: []string{"name", "email"}}
	if got := table.Primary(Row{"name": "  Alice  "}); got != "Alice" {
		t.Errorf("Primary() = %q, want Alice", got)
	}

	empty := &Table{}
	if got := empty.Primary(Row{}); got != "" {
		t.Errorf("Primary() = %q, want empty", got)
	}
}
