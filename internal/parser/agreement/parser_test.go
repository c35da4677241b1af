package agreement_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/parser"
	"freightdocs/internal/parser/agreement"
)

func parse(t *testing.T, text string) (*domain.ParsingResult, *domain.AgreementRecord) {
	t.Helper()
	p := agreement.New(agreement.Options{Options: parser.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}})
	res := p.Parse(text)
	rec, ok := res.Record.(*domain.AgreementRecord)
	require.True(t, ok)
	return res, rec
}

func TestParse_SignedContractorAgreement(t *testing.T) {
	text := "INDEPENDENT CONTRACTOR AGREEMENT\n" +
		"Payment rate is $2.00 per mile for each load.\n" +
		"Either party may terminate with 30 days notice.\n" +
		"Driver Signature: John Smith\n" +
		"Date Signed: 01/15/2026\n"

	res, rec := parse(t, text)

	assert.True(t, rec.SignatureDetected)
	assert.Equal(t, 3, rec.SignatureIndicators)
	require.NotNil(t, rec.AgreementType)
	assert.Equal(t, "Independent Contractor Agreement", *rec.AgreementType)
	require.NotNil(t, rec.SigningDate)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), *rec.SigningDate)
	assert.Equal(t, []string{
		"Payment rate is $2.00 per mile for each load",
		"terminate with 30 days notice",
	}, rec.KeyTerms)

	assert.Equal(t, 1.0, res.Confidence)
	assert.True(t, res.Verified)
	assert.Equal(t, 3, res.Details[agreement.DetailSignatureIndicators])
	assert.Equal(t, 2, res.Details[agreement.DetailKeyTermsFound])

	evidence, ok := res.Details[agreement.DetailSignatureEvidence].([]agreement.SignatureEvidence)
	require.True(t, ok)
	types := make([]string, 0, len(evidence))
	for _, e := range evidence {
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{agreement.SigDriverLine, agreement.SigLine, agreement.SigSignedDate}, types)
}

func TestParse_WeakSignedByIsNotASignature(t *testing.T) {
	res, rec := parse(t, "Signed by: Al")

	assert.False(t, rec.SignatureDetected)
	assert.Equal(t, 1, rec.SignatureIndicators)
	assert.Equal(t, 0.20, res.Confidence)
	assert.False(t, res.Verified)
}

func TestParse_NamedSignedByAlone(t *testing.T) {
	res, rec := parse(t, "Signed by: Robert Jones")

	assert.True(t, rec.SignatureDetected)
	assert.Equal(t, 0.70, res.Confidence)
	assert.False(t, res.Verified)
}

func TestParse_TypeAndTermsWithoutSignature(t *testing.T) {
	res, rec := parse(t, "CARRIER AGREEMENT\nCarrier must meet all equipment requirements.")

	assert.False(t, rec.SignatureDetected)
	require.NotNil(t, rec.AgreementType)
	assert.Equal(t, "Carrier Agreement", *rec.AgreementType)
	assert.Equal(t, []string{"equipment requirement"}, rec.KeyTerms)
	assert.Equal(t, 0.60, res.Confidence)
}

func TestParse_TermsOnly(t *testing.T) {
	res, rec := parse(t, "Termination requires 30 days notice.")

	assert.Equal(t, []string{"Termination requires 30 days notice"}, rec.KeyTerms)
	assert.Equal(t, 0.40, res.Confidence)
}

func TestParse_NothingMeaningful(t *testing.T) {
	res, rec := parse(t, "hello world")

	assert.False(t, rec.SignatureDetected)
	assert.Nil(t, rec.KeyTerms)
	assert.Equal(t, 0.20, res.Confidence)
	assert.False(t, res.Verified)
}

func TestParse_SignatureBoostReachesSignedThreshold(t *testing.T) {
	res, rec := parse(t, "Carrier Agreement\nSignature: ______")

	assert.Equal(t, 2, rec.SignatureIndicators)
	assert.Equal(t, 0.90, res.Confidence)
	assert.True(t, res.Verified)
}

func TestParse_ElectronicSignatureEvidence(t *testing.T) {
	text := "DRIVER AGREEMENT\n" +
		"Electronically Signed by: Jane Roe\n" +
		"I agree to the terms of this contract.\n" +
		"____________\n" +
		"Signed on: 02/01/2026\n"

	res, rec := parse(t, text)

	assert.Equal(t, 5, rec.SignatureIndicators)
	require.NotNil(t, rec.AgreementType)
	assert.Equal(t, "Driver Agreement", *rec.AgreementType)
	require.NotNil(t, rec.SigningDate)
	assert.Equal(t, 1.0, res.Confidence)
	assert.True(t, res.Verified)
}

func TestParse_AgreementTypeSmallWords(t *testing.T) {
	_, rec := parse(t, "TERMS AND CONDITIONS\nGoverning law applies.")

	require.NotNil(t, rec.AgreementType)
	assert.Equal(t, "Terms and Conditions", *rec.AgreementType)

	_, rec = parse(t, "This NON-DISCLOSURE AGREEMENT binds both parties.")
	require.NotNil(t, rec.AgreementType)
	assert.Equal(t, "Non-disclosure Agreement", *rec.AgreementType)
}

func TestParse_EmptyText(t *testing.T) {
	res, rec := parse(t, "")

	assert.Equal(t, &domain.AgreementRecord{}, rec)
	assert.Zero(t, res.Confidence)
	assert.Equal(t, domain.NoTextMarker, res.Details[domain.DetailError])
}
