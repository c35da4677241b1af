// Package textsource loads document text from files: plain text, OCR
// provider results in JSON, and PDFs with a text layer.
package textsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"freightdocs/internal/domain"
)

// DefaultMaxBytes caps the size of an input file.
const DefaultMaxBytes = 32 << 20

// FileSource reads documents from the local file system. The file extension
// selects the decoder.
type FileSource struct {
	maxBytes int64
	log      *slog.Logger
}

// NewFileSource creates a FileSource. A non-positive maxBytes uses
// DefaultMaxBytes.
func NewFileSource(maxBytes int64, logger *slog.Logger) *FileSource {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSource{maxBytes: maxBytes, log: logger}
}

// Load reads path and converts it to an OCR result.
func (s *FileSource) Load(ctx context.Context, path string) (domain.OCRResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.OCRResult{}, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".txt", ".text", ".json", ".pdf":
	default:
		return domain.OCRResult{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedInput, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return domain.OCRResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() > s.maxBytes {
		return domain.OCRResult{}, fmt.Errorf("%w: %s is %d bytes, limit %d", domain.ErrUnsupportedInput, path, info.Size(), s.maxBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.OCRResult{}, fmt.Errorf("read %s: %w", path, err)
	}
	s.log.Debug("textsource.FileSource: loaded file", "path", path, "bytes", len(data))

	switch ext {
	case ".json":
		res, err := DecodeOCRResult(data)
		if err != nil {
			return domain.OCRResult{}, fmt.Errorf("%s: %w", path, err)
		}
		return res, nil
	case ".pdf":
		res, err := PDFText(data)
		if err != nil {
			return domain.OCRResult{}, fmt.Errorf("%s: %w", path, err)
		}
		s.log.Debug("textsource.FileSource: extracted pdf text", "path", path, "pages", len(res.Pages))
		return res, nil
	default:
		return domain.OCRResult{FullText: string(data)}, nil
	}
}
