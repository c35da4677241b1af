package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"freightdocs/internal/domain"
	"freightdocs/internal/validator"
)

// parseOutput is what `parse` prints for one document.
type parseOutput struct {
	Source        string                            `json:"source" yaml:"source"`
	Result        *domain.ParsingResult             `json:"result" yaml:"result"`
	FieldStatuses map[string]*validator.FieldStatus `json:"field_statuses" yaml:"field_statuses"`
}

func newParseCmd(a *app) *cobra.Command {
	var (
		docType string
		output  string
	)
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one document and print the extracted record",
		Long: `Parse reads a .txt, .json (OCR result) or .pdf file, runs the parser for
the given document type and prints the result with per-field statuses.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseDocumentType(docType)
			if err != nil {
				return err
			}
			ocr, err := a.source.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			res, err := a.dispatcher.ParseOCRResult(t, ocr)
			if err != nil {
				return err
			}
			out := parseOutput{
				Source:        args[0],
				Result:        res,
				FieldStatuses: validator.ComputeFieldStatuses(res.Details, res.Confidence),
			}
			return writeOutput(cmd.OutOrStdout(), output, out)
		},
	}

	cmd.Flags().StringVarP(&docType, "type", "t", "", "document type: COI, CDL, AGREEMENT, RATE_CON, POD or INVOICE")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
