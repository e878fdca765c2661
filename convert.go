package publigo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/publigo-project/publigo/internal/fileutil"
)

// ConversionEngine converts a rendered document to PDF. Implementations
// hide the mechanics (external process, staging files) behind this
// contract so tests can substitute a fake.
type ConversionEngine interface {
	Convert(ctx context.Context, doc []byte, sourceExt string) ([]byte, error)
}

// CommandRunner abstracts command execution to enable testing without
// real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return "", "", fmt.Errorf("creating stderr pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return "", "", fmt.Errorf("starting command: %w", err)
	}

	stderrContent, err := io.ReadAll(stderrPipe)
	if err != nil {
		return "", "", fmt.Errorf("reading stderr: %w", err)
	}

	err = cmd.Wait()
	// CommandContext kills the process on deadline but Wait reports the
	// kill, not the cause; surface the context error for callers.
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return stdout.String(), string(stderrContent), err
}

// sofficeCandidates lists platform-standard LibreOffice install paths,
// tried in order when SOFFICE_PATH is not set.
func sofficeCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Program Files\LibreOffice\program\soffice.exe`,
			`C:\Program Files (x86)\LibreOffice\program\soffice.exe`,
		}
	case "darwin":
		return []string{
			"/Applications/LibreOffice.app/Contents/MacOS/soffice",
			"/usr/local/bin/soffice",
		}
	}
	return []string{
		"/usr/bin/soffice",
		"/usr/local/bin/soffice",
		"/opt/libreoffice/program/soffice",
	}
}

// ResolveSofficePath locates the LibreOffice binary: the SOFFICE_PATH
// environment override first, then the platform candidate list. Called
// once at process startup; a miss is a fatal startup condition, not a
// per-request error.
func ResolveSofficePath() (string, error) {
	if p := os.Getenv("SOFFICE_PATH"); p != "" {
		if fileutil.FileExists(p) {
			return p, nil
		}
		return "", fmt.Errorf("%w: SOFFICE_PATH=%s does not exist", ErrEngineNotFound, p)
	}
	for _, p := range sofficeCandidates() {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", ErrEngineNotFound
}

// SofficeEngine converts documents by invoking LibreOffice in headless
// batch mode. Each call stages its input in a fresh temporary directory
// that is removed on every exit path. Slots, when non-nil, bounds the
// number of concurrent LibreOffice processes.
type SofficeEngine struct {
	Path   string
	Runner CommandRunner
	Slots  *ConvertSlots
}

// Compile-time interface check
var _ ConversionEngine = (*SofficeEngine)(nil)

// NewSofficeEngine creates an engine for the binary at path, verifying
// the binary exists. A nil slots leaves concurrency unbounded.
func NewSofficeEngine(path string, slots *ConvertSlots) (*SofficeEngine, error) {
	if !fileutil.FileExists(path) {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, path)
	}
	return &SofficeEngine{Path: path, Runner: &ExecRunner{}, Slots: slots}, nil
}

// Convert writes doc to an isolated staging directory, runs
// `soffice --headless --convert-to pdf`, and reads back the produced
// PDF. The staging directory is removed regardless of outcome.
func (e *SofficeEngine) Convert(ctx context.Context, doc []byte, sourceExt string) ([]byte, error) {
	if err := fileutil.ValidateExtension(sourceExt); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}

	if e.Slots != nil {
		if err := e.Slots.Acquire(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting for converter slot: %v", ErrConversionTimeout, err)
		}
		defer e.Slots.Release()
	}

	dir, cleanup, err := fileutil.StageDir("publigo-lo-")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, err)
	}
	defer cleanup()

	inputPath := filepath.Join(dir, "input."+sourceExt)
	if err := os.WriteFile(inputPath, doc, 0o600); err != nil {
		return nil, fmt.Errorf("%w: staging input: %v", ErrConversion, err)
	}

	_, stderr, err := e.Runner.Run(ctx, e.Path,
		"--headless", "--convert-to", "pdf", "--outdir", dir, inputPath)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrConversionTimeout, err)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConversion, stderr, err)
	}

	pdf, err := os.ReadFile(filepath.Join(dir, "input.pdf")) // #nosec G304 -- path built from our own staging dir
	if err != nil {
		return nil, fmt.Errorf("%w: expected output missing: %v", ErrConversion, err)
	}
	return pdf, nil
}
