package cdl_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/parser"
	"freightdocs/internal/parser/cdl"
)

var testNow = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func newParser() *cdl.Parser {
	return cdl.New(cdl.Options{Options: parser.Options{
		Now:    func() time.Time { return testNow },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}})
}

func parse(t *testing.T, text string) (*domain.ParsingResult, *domain.LicenseRecord) {
	t.Helper()
	res := newParser().Parse(text)
	rec, ok := res.Record.(*domain.LicenseRecord)
	require.True(t, ok)
	return res, rec
}

func TestParse_FullLicense(t *testing.T) {
	text := "COMMERCIAL DRIVER LICENSE\n" +
		"STATE: TX\n" +
		"NAME: JOHN SMITH\n" +
		"LICENSE: D1234567\n" +
		"CLASS: A\n" +
		"ADDRESS: 123 MAIN ST DALLAS TX 75201\n" +
		"DOB: 01/15/1985 EXP: 01/15/2028\n"

	res, rec := parse(t, text)

	require.NotNil(t, rec.DriverName)
	assert.Equal(t, "John Smith", *rec.DriverName)
	require.NotNil(t, rec.LicenseNumber)
	assert.Equal(t, "D1234567", *rec.LicenseNumber)
	require.NotNil(t, rec.ExpirationDate)
	assert.Equal(t, time.Date(2028, 1, 15, 0, 0, 0, 0, time.UTC), *rec.ExpirationDate)
	require.NotNil(t, rec.LicenseClass)
	assert.Equal(t, "A", *rec.LicenseClass)
	require.NotNil(t, rec.Address)
	assert.Equal(t, "123 MAIN ST DALLAS TX 75201", *rec.Address)
	require.NotNil(t, rec.State)
	assert.Equal(t, "TX", *rec.State)

	assert.InDelta(t, 1.0, res.Confidence, 1e-9)
	assert.True(t, res.Verified)

	m, ok := res.Details.Match(cdl.FieldName)
	require.True(t, ok)
	assert.Equal(t, 0, *m.Pattern)
}

func TestParse_LastFirstName(t *testing.T) {
	res, rec := parse(t, "SMITH, JOHN\nEXP: 12/31/2027")

	require.NotNil(t, rec.DriverName)
	assert.Equal(t, "John Smith", *rec.DriverName)
	assert.Equal(t, 0.95, res.Confidence)
	assert.True(t, res.Verified)
}

func TestParse_FirstLastLabels(t *testing.T) {
	res, rec := parse(t, "First: Jane\nMiddle: Q\nLast: Doe\nExpires: 03/01/2027")

	require.NotNil(t, rec.DriverName)
	assert.Equal(t, "Jane Doe", *rec.DriverName)
	m, _ := res.Details.Match(cdl.FieldName)
	assert.Equal(t, 2, *m.Pattern)
	assert.Equal(t, 0.95, res.Confidence)
}

func TestParse_NameOnly(t *testing.T) {
	res, rec := parse(t, "NAME: John Smith")

	require.NotNil(t, rec.DriverName)
	assert.InDelta(t, 0.35, res.Confidence, 1e-9)
	assert.False(t, res.Verified)
}

func TestParse_NameAndClassFloor(t *testing.T) {
	res, rec := parse(t, "NAME: John Smith\nCLASS: B")

	require.NotNil(t, rec.LicenseClass)
	assert.Equal(t, "B", *rec.LicenseClass)
	assert.Equal(t, "John Smith", *rec.DriverName)
	assert.InDelta(t, 0.70, res.Confidence, 1e-9)
}

func TestParse_ExpiredLicense(t *testing.T) {
	res, rec := parse(t, "NAME: John Smith\nEXP: 01/01/2020")

	assert.Nil(t, rec.ExpirationDate)
	assert.InDelta(t, 0.35, res.Confidence, 1e-9)
	assert.False(t, res.Verified)
}

func TestParse_ExpiringSoon(t *testing.T) {
	res, rec := parse(t, "NAME: John Smith\nEXP: 06/20/2026")

	require.NotNil(t, rec.ExpirationDate)
	assert.Equal(t, 0.95, res.Confidence)
	assert.False(t, res.Verified)
}

func TestLicenseNumber(t *testing.T) {
	_, rec := parse(t, "LIC# A1234567")
	require.NotNil(t, rec.LicenseNumber)
	assert.Equal(t, "A1234567", *rec.LicenseNumber)

	_, rec = parse(t, "dl: a1234567")
	require.NotNil(t, rec.LicenseNumber)
	assert.Equal(t, "A1234567", *rec.LicenseNumber)

	_, rec = parse(t, "LICENSE: COMMERCIAL")
	assert.Nil(t, rec.LicenseNumber)
}

func TestAddress_StreetOnly(t *testing.T) {
	_, rec := parse(t, "4521 Elm Dr")

	require.NotNil(t, rec.Address)
	assert.Equal(t, "4521 Elm Dr", *rec.Address)
}

func TestParse_EmptyText(t *testing.T) {
	res, rec := parse(t, "")

	assert.Equal(t, &domain.LicenseRecord{}, rec)
	assert.Zero(t, res.Confidence)
	assert.False(t, res.Verified)
	assert.Equal(t, domain.NoTextMarker, res.Details[domain.DetailError])
}
