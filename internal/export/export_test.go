package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"freightdocs/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func sampleItems() []domain.BatchItem {
	zero := 0
	invoiceDate := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)
	return []domain.BatchItem{
		{
			ID:     uuid.MustParse("6f1c2b0e-9a53-4c1e-8a77-2d3c4b5a6f70"),
			Source: "invoices/inv-42.txt",
			Type:   domain.DocumentTypeInvoice,
			Result: &domain.ParsingResult{
				Type: domain.DocumentTypeInvoice,
				Record: &domain.InvoiceRecord{
					InvoiceNumber: ptr("INV-2026-0042"),
					VendorName:    ptr("Swift Freight Llc"),
					TotalCents:    ptr(int64(230050)),
					InvoiceDate:   &invoiceDate,
				},
				Confidence: 0.8725,
				Verified:   true,
				Details: domain.ExtractionDetails{
					"invoice_number": domain.FieldMatch{Pattern: &zero, Raw: "Invoice #: INV-2026-0042", Confidence: 0.9},
					"due_date":       domain.FieldMatch{},
					"customer_name":  domain.FieldMatch{},
				},
			},
		},
		{
			ID:     uuid.MustParse("0b7d8e2f-1c3a-4f5e-9d6c-7a8b9c0d1e2f"),
			Source: "invoices/missing.pdf",
			Type:   domain.DocumentTypeInvoice,
			Error:  "loading document: no such file",
		},
		{
			ID:     uuid.MustParse("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d"),
			Source: "pods/blank.json",
			Type:   domain.DocumentTypePOD,
			Result: &domain.ParsingResult{
				Type:    domain.DocumentTypePOD,
				Record:  &domain.PODRecord{},
				Details: domain.ExtractionDetails{domain.DetailError: domain.NoTextMarker},
			},
		},
	}
}

func readCSV(t *testing.T, buf *bytes.Buffer) [][]string {
	t.Helper()
	rows, err := csv.NewReader(buf).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader())
	w.Flush()
	require.NoError(t, w.Error())

	rows := readCSV(t, &buf)
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 11)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Missing Fields", rows[0][9])
	assert.Equal(t, "Error", rows[0][10])
}

func TestWriteItems_Parsed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteItems(sampleItems()[:1]))
	w.Flush()
	require.NoError(t, w.Error())

	row := readCSV(t, &buf)[0]
	assert.Equal(t, "6f1c2b0e-9a53-4c1e-8a77-2d3c4b5a6f70", row[0])
	assert.Equal(t, "invoices/inv-42.txt", row[1])
	assert.Equal(t, "INVOICE", row[2])
	assert.Equal(t, "0.87", row[3])
	assert.Equal(t, "Yes", row[4])
	assert.Equal(t, "INV-2026-0042", row[5])
	assert.Equal(t, "Swift Freight Llc", row[6])
	assert.Equal(t, "2300.50", row[7])
	assert.Equal(t, "2026-05-20", row[8])
	assert.Equal(t, "customer_name; due_date", row[9])
	assert.Empty(t, row[10])
}

func TestWriteItems_Failed(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteItems(sampleItems()[1:2]))
	w.Flush()

	row := readCSV(t, &buf)[0]
	assert.Equal(t, "invoices/missing.pdf", row[1])
	for i := 3; i <= 9; i++ {
		assert.Empty(t, row[i], "column %d should be empty for a failed item", i)
	}
	assert.Equal(t, "loading document: no such file", row[10])
}

func TestWriteItems_NoTextResult(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteItems(sampleItems()[2:]))
	w.Flush()

	row := readCSV(t, &buf)[0]
	assert.Equal(t, "POD", row[2])
	assert.Equal(t, "0.00", row[3])
	assert.Equal(t, "No", row[4])
	assert.Empty(t, row[6])
	assert.Equal(t, domain.NoTextMarker, row[10])
}

func TestWrite_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ReportFormatCSV, sampleItems()))

	rows := readCSV(t, &buf)
	assert.Len(t, rows, 4)
}

func TestWrite_XLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, domain.ReportFormatXLSX, sampleItems()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, columns, rows[0])
	assert.Equal(t, "INV-2026-0042", rows[1][5])
	assert.Equal(t, "2300.50", rows[1][7])

	confidence, err := f.GetCellValue(SheetName, "D2")
	require.NoError(t, err)
	assert.Equal(t, "0.8725", confidence)

	errCell, err := f.GetCellValue(SheetName, "K3")
	require.NoError(t, err)
	assert.Equal(t, "loading document: no such file", errCell)
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, domain.ReportFormat("pdf"), nil)

	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lower-cased", "Weekly POD Batch", "weekly_pod_batch"},
		{"punctuation runs", "Carrier / Q3 (Oct–Dec)", "carrier_q3_oct_dec"},
		{"hyphens kept", "rate-cons_2026", "rate-cons_2026"},
		{"underscore runs collapsed", "test___batch", "test_batch"},
		{"separators trimmed", "--  Hello  --", "hello"},
		{
			"capped at 64 bytes",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghij",
		},
		{"cap does not leave a separator", strings.Repeat("a", 63) + " b", strings.Repeat("a", 63)},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	now := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "weekly_pods_2026-06-01.xlsx", BuildFilename("Weekly PODs", domain.ReportFormatXLSX, now))
	assert.Equal(t, "report_2026-06-01.csv", BuildFilename("***", domain.ReportFormatCSV, now))
}
