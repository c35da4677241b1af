package mocks

import (
	"github.com/stretchr/testify/mock"

	"freightdocs/internal/domain"
)

// MockDocumentParser is a mock implementation of port.DocumentParser.
type MockDocumentParser struct {
	mock.Mock
}

func (m *MockDocumentParser) Type() domain.DocumentType {
	args := m.Called()
	return args.Get(0).(domain.DocumentType)
}

func (m *MockDocumentParser) Parse(text string) *domain.ParsingResult {
	args := m.Called(text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ParsingResult)
}

func (m *MockDocumentParser) ParseOCRResult(result domain.OCRResult) *domain.ParsingResult {
	args := m.Called(result)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.ParsingResult)
}
