package publigo

import "testing"

func TestArtifactName(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		primary   string
		kind      string
		page      int
		pageCount int
		want      string
	}{
		{
			name:    "plain value",
			index:   0,
			primary: "Alice",
			kind:    KindPDF,
			want:    "01_Alice.pdf",
		},
		{
			name:    "index is zero padded and 1-based",
			index:   8,
			primary: "Bob",
			kind:    KindDocx,
			want:    "09_Bob.docx",
		},
		{
			name:    "two digit index",
			index:   11,
			primary: "Bob",
			kind:    KindDocx,
			want:    "12_Bob.docx",
		},
		{
			name:    "unsafe characters stripped",
			index:   0,
			primary: `A/li*ce?<>.`,
			kind:    KindPDF,
			want:    "01_Alice.pdf",
		},
		{
			name:    "spaces and hyphens kept",
			index:   0,
			primary: "Mary-Jane Watson",
			kind:    KindPDF,
			want:    "01_Mary-Jane Watson.pdf",
		},
		{
			name:    "thai script kept",
			index:   0,
			primary: "สมชาย",
			kind:    KindPDF,
			want:    "01_สมชาย.pdf",
		},
		{
			name:    "empty value falls back",
			index:   0,
			primary: "",
			kind:    KindPDF,
			want:    "01_NoName.pdf",
		},
		{
			name:    "value sanitized to nothing falls back",
			index:   0,
			primary: "!!!",
			kind:    KindPDF,
			want:    "01_NoName.pdf",
		},
		{
			name:      "single page has no suffix",
			index:     0,
			primary:   "Alice",
			kind:      KindPNG,
			page:      0,
			pageCount: 1,
			want:      "01_Alice.png",
		},
		{
			name:      "multi page gets 1-based suffix",
			index:     0,
			primary:   "Alice",
			kind:      KindPNG,
			page:      1,
			pageCount: 3,
			want:      "01_Alice_2.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pageCount := tt.pageCount
			if pageCount == 0 {
				pageCount = 1
			}
			got := artifactName(tt.index, tt.primary, tt.kind, tt.page, pageCount)
			if got != tt.want {
				t.Errorf("artifactName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArtifactNameUniqueness(t *testing.T) {
	// Same primary value on every row: index and page must still keep
	// filenames distinct.
	seen := map[string]bool{}
	for row := 0; row < 12; row++ {
		for page := 0; page < 3; page++ {
			name := artifactName(row, "Same", KindJPG, page, 3)
			if seen[name] {
				t.Fatalf("duplicate filename %q", name)
			}
			seen[name] = true
		}
	}
}
