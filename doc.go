// Package publigo implements templated document mail-merge: one DOCX or
// PPTX template plus one tabular data file produce one rendered document
// per data row, optionally converted to PDF or rasterized to PNG/JPG
// pages, packaged into a zip archive alongside an inline manifest.
//
// The pipeline is orchestrated by Service:
//
//	engine, err := publigo.NewSofficeEngine(path, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svc := publigo.New(engine)
//	result, err := svc.Merge(ctx, publigo.Input{
//	    TemplateName: "letter.docx",
//	    Template:     templateBytes,
//	    DataName:     "people.csv",
//	    Data:         csvBytes,
//	    OutputType:   publigo.KindPDF,
//	})
//
// Format conversion delegates to a headless LibreOffice process resolved
// once at startup; rasterization uses MuPDF via go-fitz. Both sit behind
// narrow interfaces so they can be mocked in tests.
package publigo
