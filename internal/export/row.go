// Package export writes batch run results as CSV or XLSX reports.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"freightdocs/internal/domain"
	"freightdocs/internal/validator"
)

// columns defines the report header row.
var columns = []string{
	"ID",
	"Source",
	"Type",
	"Confidence",
	"Verified",
	"Identifier",
	"Party",
	"Amount",
	"Date",
	"Missing Fields",
	"Error",
}

const (
	colConfidence = 3
	colVerified   = 4
)

// Write encodes items in the given format.
func Write(w io.Writer, format domain.ReportFormat, items []domain.BatchItem) error {
	switch format {
	case domain.ReportFormatCSV:
		cw := NewWriter(w)
		if err := cw.WriteHeader(); err != nil {
			return err
		}
		if err := cw.WriteItems(items); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case domain.ReportFormatXLSX:
		return WriteXLSX(w, items)
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
}

// itemToRow converts a batch item to a report row. Items that failed before
// producing a result only carry their metadata and the error.
func itemToRow(item *domain.BatchItem) []string {
	row := make([]string, len(columns))

	row[0] = item.ID.String()
	row[1] = item.Source
	row[2] = string(item.Type)
	row[10] = item.Error

	res := item.Result
	if res == nil {
		return row
	}
	row[colConfidence] = strconv.FormatFloat(res.Confidence, 'f', 2, 64)
	row[colVerified] = formatBool(res.Verified)
	row[9] = strings.Join(validator.MissingFields(validator.ComputeFieldStatuses(res.Details, res.Confidence)), "; ")
	if msg, ok := res.Details[domain.DetailError].(string); ok && row[10] == "" {
		row[10] = msg
	}

	if res.Record == nil {
		return row
	}
	s := res.Record.Summary()
	row[5] = s.Identifier
	row[6] = s.Party
	if s.AmountCents != nil {
		row[7] = formatMoney(*s.AmountCents)
	}
	if s.Date != nil {
		row[8] = s.Date.Format("2006-01-02")
	}
	return row
}

func formatMoney(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
