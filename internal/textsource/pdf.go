package textsource

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"freightdocs/internal/domain"
)

// PDFText reads the text layer of a PDF, one OCR page per PDF page. Scanned
// PDFs without a text layer yield pages with empty text.
func PDFText(data []byte) (res domain.OCRResult, err error) {
	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			res, err = domain.OCRResult{}, fmt.Errorf("%w: malformed pdf: %v", domain.ErrUnsupportedInput, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return domain.OCRResult{}, fmt.Errorf("%w: %v", domain.ErrUnsupportedInput, err)
	}

	total := r.NumPage()
	pages := make([]domain.OCRPage, 0, total)
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return domain.OCRResult{}, fmt.Errorf("page %d: %w", i, err)
		}
		var b strings.Builder
		for _, row := range rows {
			for _, word := range row.Content {
				b.WriteString(word.S)
			}
			b.WriteString("\n")
		}
		pages = append(pages, domain.OCRPage{Number: i, Text: b.String()})
	}
	return domain.OCRResult{Pages: pages}, nil
}
