package textsource

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"freightdocs/internal/domain"
)

// ocrResultSchema accepts provider output carrying full text, pages, or both.
// Unknown provider fields are allowed.
const ocrResultSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "full_text": {"type": "string"},
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "page_number": {"type": "integer", "minimum": 1},
          "text": {"type": "string"}
        },
        "required": ["text"]
      }
    }
  },
  "anyOf": [
    {"required": ["full_text"]},
    {"required": ["pages"]}
  ]
}`

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("ocr_result.json", bytes.NewReader([]byte(ocrResultSchema))); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("ocr_result.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// DecodeOCRResult validates data against the OCR result schema and decodes it.
func DecodeOCRResult(data []byte) (domain.OCRResult, error) {
	schema, err := compileSchema()
	if err != nil {
		return domain.OCRResult{}, err
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return domain.OCRResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidOCRResult, err)
	}
	if err := schema.Validate(v); err != nil {
		return domain.OCRResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidOCRResult, err)
	}

	var res domain.OCRResult
	if err := json.Unmarshal(data, &res); err != nil {
		return domain.OCRResult{}, fmt.Errorf("%w: %v", domain.ErrInvalidOCRResult, err)
	}
	return res, nil
}
