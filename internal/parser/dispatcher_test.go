package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/parser"
	"freightdocs/mocks"
)

func TestDispatcher_RoutesByType(t *testing.T) {
	coi := new(mocks.MockDocumentParser)
	coi.On("Type").Return(domain.DocumentTypeCOI)
	want := &domain.ParsingResult{Type: domain.DocumentTypeCOI, Confidence: 0.95}
	coi.On("Parse", "Policy Number: ABC-123").Return(want)

	d := parser.NewDispatcher(coi)

	got, err := d.Parse(domain.DocumentTypeCOI, "Policy Number: ABC-123")
	require.NoError(t, err)
	assert.Same(t, want, got)
	coi.AssertExpectations(t)
}

func TestDispatcher_ParseOCRResult(t *testing.T) {
	pod := new(mocks.MockDocumentParser)
	pod.On("Type").Return(domain.DocumentTypePOD)
	ocr := domain.OCRResult{FullText: "Delivery confirmed"}
	want := &domain.ParsingResult{Type: domain.DocumentTypePOD}
	pod.On("ParseOCRResult", ocr).Return(want)

	d := parser.NewDispatcher(pod)

	got, err := d.ParseOCRResult(domain.DocumentTypePOD, ocr)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestDispatcher_UnknownType(t *testing.T) {
	d := parser.NewDispatcher()

	got, err := d.Parse(domain.DocumentType("BOL"), "text")

	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
	assert.Contains(t, err.Error(), "BOL")

	_, err = d.ParseOCRResult(domain.DocumentTypeCDL, domain.OCRResult{})
	assert.ErrorIs(t, err, domain.ErrUnknownDocumentType)
}

func TestDispatcher_RegisterReplacesAndLists(t *testing.T) {
	first := new(mocks.MockDocumentParser)
	first.On("Type").Return(domain.DocumentTypeInvoice)
	second := new(mocks.MockDocumentParser)
	second.On("Type").Return(domain.DocumentTypeInvoice)
	cdl := new(mocks.MockDocumentParser)
	cdl.On("Type").Return(domain.DocumentTypeCDL)

	d := parser.NewDispatcher(first, cdl)
	d.Register(second)

	p, err := d.Parser(domain.DocumentTypeInvoice)
	require.NoError(t, err)
	assert.Same(t, second, p)
	assert.Equal(t, []domain.DocumentType{domain.DocumentTypeCDL, domain.DocumentTypeInvoice}, d.Types())
}
