package publigo

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Placeholder delimiters inside template XML parts.
const (
	placeholderOpen  = "{{"
	placeholderClose = "}}"
)

// templateRenderer abstracts placeholder substitution so the engine can
// be swapped (or mocked) without touching the orchestrator.
type templateRenderer interface {
	Render(template []byte, row Row) ([]byte, error)
}

// ooxmlRenderer substitutes {{field}} placeholders inside an OOXML
// container (docx or pptx). The container is a zip; XML parts under
// word/ and ppt/ are rewritten, every other entry is copied verbatim.
// The shared template bytes are never mutated: each call produces an
// independent rendered copy.
type ooxmlRenderer struct{}

// Compile-time interface check
var _ templateRenderer = (*ooxmlRenderer)(nil)

func (o *ooxmlRenderer) Render(template []byte, row Row) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(template), int64(len(template)))
	if err != nil {
		return nil, fmt.Errorf("%w: opening template container: %v", ErrRender, err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, entry := range zr.File {
		rc, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: opening part %s: %v", ErrRender, entry.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: reading part %s: %v", ErrRender, entry.Name, err)
		}

		if isContentPart(entry.Name) {
			rendered, err := substitute(string(content), row)
			if err != nil {
				return nil, fmt.Errorf("part %s: %w", entry.Name, err)
			}
			content = []byte(rendered)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("%w: writing part %s: %v", ErrRender, entry.Name, err)
		}
		if _, err := w.Write(content); err != nil {
			return nil, fmt.Errorf("%w: writing part %s: %v", ErrRender, entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: closing container: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// isContentPart reports whether a container entry may carry placeholders.
// Covers the document body, headers, footers, slides, and notes of both
// container kinds; substitution in other XML parts is a harmless no-op.
func isContentPart(name string) bool {
	if !strings.HasSuffix(name, ".xml") {
		return false
	}
	return strings.HasPrefix(name, "word/") || strings.HasPrefix(name, "ppt/")
}

// substitute replaces every {{field}} occurrence with the row's value,
// XML-escaped. Unknown fields and unterminated markers fail the row.
func substitute(content string, row Row) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	for {
		open := strings.Index(content, placeholderOpen)
		if open < 0 {
			out.WriteString(content)
			return out.String(), nil
		}
		out.WriteString(content[:open])
		rest := content[open+len(placeholderOpen):]

		end := strings.Index(rest, placeholderClose)
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated placeholder", ErrRender)
		}

		field := strings.TrimSpace(rest[:end])
		value, ok := row[field]
		if !ok {
			return "", fmt.Errorf("%w: unknown field %q", ErrRender, field)
		}

		out.WriteString(escapeXML(value))
		content = rest[end+len(placeholderClose):]
	}
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
