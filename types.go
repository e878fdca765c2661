package publigo

import (
	"log/slog"
	"strings"
	"time"
)

// Supported output kinds. Docx and pptx pass the rendered template
// through unchanged; pdf runs the converter; png and jpg run the
// converter and then rasterize each page.
const (
	KindPDF  = "pdf"
	KindDocx = "docx"
	KindPptx = "pptx"
	KindPNG  = "png"
	KindJPG  = "jpg"
)

// NormalizeOutputType lowercases the requested kind and falls back to
// pdf for empty or unrecognized values.
func NormalizeOutputType(s string) string {
	switch kind := strings.ToLower(s); kind {
	case KindPDF, KindDocx, KindPptx, KindPNG, KindJPG:
		return kind
	}
	return KindPDF
}

// MimeType returns the MIME type for an artifact kind.
func MimeType(kind string) string {
	switch kind {
	case KindPDF:
		return "application/pdf"
	case KindPNG:
		return "image/png"
	case KindJPG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// Row is one parsed line of tabular input: field name to raw string
// value. All rows of a table share the same field set.
type Row map[string]string

// Table holds parsed tabular data. Header preserves the column order of
// the source; Header[0] names the primary field used for output naming.
type Table struct {
	Header []string
	Rows   []Row
}

// Primary returns the trimmed primary-field value of a row, or "" when
// the table has no columns.
func (t *Table) Primary(row Row) string {
	if len(t.Header) == 0 {
		return ""
	}
	return strings.TrimSpace(row[t.Header[0]])
}

// Input carries one merge request.
type Input struct {
	TemplateName string // uploaded template filename, decides the container kind
	Template     []byte
	DataName     string // uploaded data filename, decides the loader (csv or xlsx)
	Data         []byte
	OutputType   string // pdf, docx, pptx, png, jpg; unknown defaults to pdf
}

// Artifact is one final deliverable file.
type Artifact struct {
	Filename string
	Content  []byte
	Kind     string
}

// Result is the outcome of a successful merge. Artifacts are ordered by
// row, then by page within a row, and the archive contains the same
// entries in the same order. Skipped counts rows dropped by per-row
// render failures.
type Result struct {
	Label     string
	Artifacts []Artifact
	Archive   []byte
	Skipped   int
}

// Option configures a Service.
type Option func(*Service)

// serviceConfig holds internal configuration for Service.
type serviceConfig struct {
	timeout time.Duration
	logger  *slog.Logger
}

// defaultTimeout bounds a single external conversion call.
const defaultTimeout = 2 * time.Minute

// WithTimeout sets the per-document conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("publigo: WithTimeout duration must be positive")
	}
	return func(s *Service) {
		s.cfg.timeout = d
	}
}

// WithLogger sets the logger used for skipped-row warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.cfg.logger = l
	}
}
