package textsource_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/textsource"
)

func TestDecodeOCRResult(t *testing.T) {
	res, err := textsource.DecodeOCRResult([]byte(`{"full_text": "Invoice #: A-100"}`))

	require.NoError(t, err)
	assert.Equal(t, "Invoice #: A-100", res.FullText)
}

func TestDecodeOCRResult_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"full_text": `},
		{"not an object", `["full_text"]`},
		{"no text fields", `{"provider": "textract"}`},
		{"full text not a string", `{"full_text": 42}`},
		{"page without text", `{"pages": [{"page_number": 1}]}`},
		{"page number zero", `{"pages": [{"page_number": 0, "text": "x"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := textsource.DecodeOCRResult([]byte(tt.data))
			assert.ErrorIs(t, err, domain.ErrInvalidOCRResult)
		})
	}
}
