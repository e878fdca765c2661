package publigo

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/gen2brain/go-fitz"
)

// Rasterization constants.
const (
	// rasterDPI renders pages at 2.0x the PDF's native 72 DPI.
	rasterDPI = 144

	// jpegQuality applies when the requested raster kind is lossy.
	jpegQuality = 90
)

// Rasterizer turns a PDF into one raster image per page.
type Rasterizer interface {
	Rasterize(pdf []byte, kind string) ([][]byte, error)
}

// fitzRasterizer renders PDF pages through MuPDF.
type fitzRasterizer struct{}

// Compile-time interface check
var _ Rasterizer = (*fitzRasterizer)(nil)

// Rasterize loads the PDF and renders every page in order into an
// offscreen image, encoding to the requested kind. Each page's image is
// created, encoded, and dropped before the next page renders so peak
// memory stays bounded by one page. Any page failure discards the whole
// document's pages (all-or-nothing per document).
func (f *fitzRasterizer) Rasterize(pdf []byte, kind string) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: loading PDF: %v", ErrImageConversion, err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		img, err := doc.ImageDPI(i, rasterDPI)
		if err != nil {
			return nil, fmt.Errorf("%w: rendering page %d: %v", ErrImageConversion, i+1, err)
		}

		var buf bytes.Buffer
		switch kind {
		case KindJPG:
			err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality})
		default:
			err = png.Encode(&buf, img)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: encoding page %d: %v", ErrImageConversion, i+1, err)
		}

		pages = append(pages, buf.Bytes())
	}
	return pages, nil
}
