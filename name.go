package publigo

import "fmt"

// fallbackName replaces primary-field values that sanitize to nothing.
const fallbackName = "NoName"

// artifactName derives the deterministic output filename for one
// artifact: `{index+1 zero-padded to 2}_{sanitized primary value}`, a
// 1-based `_{page}` suffix only when the document produced more than one
// page, then the kind as extension. Within one merge, (row index, page
// index) uniquely determines the filename.
func artifactName(index int, primary, kind string, page, pageCount int) string {
	safe := sanitizeName(primary)
	if safe == "" {
		safe = fallbackName
	}
	base := fmt.Sprintf("%02d_%s", index+1, safe)
	if pageCount > 1 {
		base = fmt.Sprintf("%s_%d", base, page+1)
	}
	return base + "." + kind
}

// sanitizeName strips every rune outside ASCII alphanumerics, Thai
// script, space, and hyphen, keeping filenames filesystem-safe.
func sanitizeName(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'ก' && r <= '๙': // Thai letters, vowels, digits
			out = append(out, r)
		case r == ' ' || r == '-':
			out = append(out, r)
		}
	}
	return string(out)
}
