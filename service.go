package publigo

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// Service orchestrates the mail-merge pipeline: validation, data
// parsing, per-row rendering and conversion, and archive assembly.
// A Service is safe for concurrent use; each Merge call is independent.
type Service struct {
	cfg        serviceConfig
	loader     tableLoader
	renderer   templateRenderer
	engine     ConversionEngine
	rasterizer Rasterizer
}

// New creates a Service around a conversion engine.
// Use options to customize behavior (e.g., WithTimeout, WithLogger).
func New(engine ConversionEngine, opts ...Option) *Service {
	s := &Service{
		cfg:        serviceConfig{timeout: defaultTimeout, logger: slog.Default()},
		loader:     &dataLoader{},
		renderer:   &ooxmlRenderer{},
		engine:     engine,
		rasterizer: &fitzRasterizer{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Merge runs the full pipeline for one request.
//
// Per-row render failures skip only that row; the response still
// succeeds with the remaining rows. Conversion, rasterization, and
// archive failures abort the whole request. Rows are processed strictly
// in input order because naming and page suffixing depend on row index
// and emission order.
func (s *Service) Merge(ctx context.Context, input Input) (*Result, error) {
	templateExt, outputType, err := s.validateInput(input)
	if err != nil {
		return nil, err
	}

	table, err := s.loader.Load(input.Data, input.DataName)
	if err != nil {
		return nil, err
	}

	result := &Result{Label: strings.ToUpper(outputType)}
	for i, row := range table.Rows {
		rendered, err := s.renderer.Render(input.Template, row)
		if err != nil {
			s.cfg.logger.Warn("skipping row: render failed",
				"row", i+1, "error", err)
			result.Skipped++
			continue
		}

		artifacts, err := s.processRow(ctx, i, table.Primary(row), rendered, templateExt, outputType)
		if err != nil {
			return nil, err
		}
		result.Artifacts = append(result.Artifacts, artifacts...)
	}

	archive, err := s.buildArchive(result.Artifacts)
	if err != nil {
		return nil, err
	}
	result.Archive = archive

	return result, nil
}

// processRow turns one rendered document into its output artifacts,
// branching on the requested kind.
func (s *Service) processRow(ctx context.Context, index int, primary string, rendered []byte, templateExt, outputType string) ([]Artifact, error) {
	switch outputType {
	case KindDocx, KindPptx:
		// The rendered container already is the deliverable.
		name := artifactName(index, primary, outputType, 0, 1)
		return []Artifact{{Filename: name, Content: rendered, Kind: outputType}}, nil

	case KindPDF:
		pdf, err := s.convert(ctx, rendered, templateExt)
		if err != nil {
			return nil, err
		}
		name := artifactName(index, primary, KindPDF, 0, 1)
		return []Artifact{{Filename: name, Content: pdf, Kind: KindPDF}}, nil
	}

	// png / jpg: convert to PDF, then one artifact per page.
	pdf, err := s.convert(ctx, rendered, templateExt)
	if err != nil {
		return nil, err
	}
	pages, err := s.rasterizer.Rasterize(pdf, outputType)
	if err != nil {
		return nil, fmt.Errorf("row %d: %w", index+1, err)
	}

	artifacts := make([]Artifact, 0, len(pages))
	for p, content := range pages {
		name := artifactName(index, primary, outputType, p, len(pages))
		artifacts = append(artifacts, Artifact{Filename: name, Content: content, Kind: outputType})
	}
	return artifacts, nil
}

// convert runs the external conversion engine under the configured
// per-document timeout.
func (s *Service) convert(ctx context.Context, doc []byte, sourceExt string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.timeout)
	defer cancel()
	return s.engine.Convert(ctx, doc, sourceExt)
}

// buildArchive streams every artifact into a single zip buffer.
func (s *Service) buildArchive(artifacts []Artifact) ([]byte, error) {
	b := newZipBuilder()
	for _, a := range artifacts {
		if err := b.Append(a.Filename, a.Content); err != nil {
			return nil, err
		}
	}
	return b.Finalize()
}

// validateInput checks file presence, template kind, and output-kind
// compatibility. Returns the template extension and the normalized
// output type.
func (s *Service) validateInput(input Input) (templateExt, outputType string, err error) {
	if len(input.Template) == 0 || len(input.Data) == 0 {
		return "", "", ErrMissingFiles
	}

	templateExt = strings.ToLower(strings.TrimPrefix(filepath.Ext(input.TemplateName), "."))
	if templateExt != KindDocx && templateExt != KindPptx {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidTemplate, templateExt)
	}

	outputType = NormalizeOutputType(input.OutputType)
	if (outputType == KindDocx || outputType == KindPptx) && outputType != templateExt {
		return "", "", fmt.Errorf("%w: %s template, %s output", ErrTemplateMismatch, templateExt, outputType)
	}

	return templateExt, outputType, nil
}
