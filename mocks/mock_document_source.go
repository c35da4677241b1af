package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"freightdocs/internal/domain"
)

// MockDocumentSource is a mock implementation of port.DocumentSource.
type MockDocumentSource struct {
	mock.Mock
}

func (m *MockDocumentSource) Load(ctx context.Context, location string) (domain.OCRResult, error) {
	args := m.Called(ctx, location)
	return args.Get(0).(domain.OCRResult), args.Error(1)
}
