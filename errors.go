package publigo

import "errors"

// Sentinel errors for merge operations.
var (
	// Request validation errors (HTTP 400 equivalents).
	ErrMissingFiles     = errors.New("template and data files are required")
	ErrInvalidTemplate  = errors.New("template must be a .docx or .pptx file")
	ErrTemplateMismatch = errors.New("output type does not match template type")
	ErrDataEmpty        = errors.New("data file contains no records")

	// Per-row rendering errors. Rows that fail to render are skipped;
	// the merge continues with the remaining rows.
	ErrRender = errors.New("template rendering failed")

	// Pipeline-fatal errors (HTTP 500 equivalents).
	ErrConversion        = errors.New("document conversion failed")
	ErrConversionTimeout = errors.New("document conversion timed out")
	ErrImageConversion   = errors.New("image conversion failed")
	ErrArchive           = errors.New("archive construction failed")

	// Startup errors.
	ErrEngineNotFound = errors.New("LibreOffice binary not found")

	// Data loading errors.
	ErrDataFormat = errors.New("unreadable data file")
)

// ErrorCode maps request-fatal validation and data errors to the fixed
// code strings exposed to API clients. The second return is false for
// errors without a fixed code (conversion, archive, runtime failures),
// which are surfaced with a wrapped message instead.
func ErrorCode(err error) (string, bool) {
	switch {
	case errors.Is(err, ErrMissingFiles):
		return "ERR_MISSING_FILES", true
	case errors.Is(err, ErrInvalidTemplate):
		return "ERR_INVALID_TEMPLATE", true
	case errors.Is(err, ErrTemplateMismatch):
		return "ERR_TEMPLATE_MISMATCH", true
	case errors.Is(err, ErrDataEmpty):
		return "ERR_CSV_EMPTY", true
	}
	return "", false
}
