package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"freightdocs/internal/domain"
	"freightdocs/internal/export"
	"freightdocs/internal/service"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		docType     string
		out         string
		format      string
		concurrency int
		timeout     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "batch <files...>",
		Short: "Parse many documents of one type and write a report",
		Long: `Batch parses every file with a bounded worker pool and writes one report
row per file. The report format follows --format, else the --out extension,
else the configured report.format.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseDocumentType(docType)
			if err != nil {
				return err
			}

			rf := reportFormat(format, out, a.cfg.Report.Format)
			if rf != domain.ReportFormatCSV && rf != domain.ReportFormatXLSX {
				return fmt.Errorf("unsupported report format %q", rf)
			}
			if out == "" {
				out = export.BuildFilename("freightdocs_"+strings.ToLower(string(t)), rf, time.Now())
			}

			bc := service.BatchConfig{Concurrency: a.cfg.Batch.Concurrency, Timeout: a.cfg.Batch.Timeout()}
			if concurrency > 0 {
				bc.Concurrency = concurrency
			}
			if timeout > 0 {
				bc.Timeout = timeout
			}

			worker := service.NewBatchWorker(a.source, a.dispatcher, bc, a.logger)
			items := worker.Run(cmd.Context(), t, args)

			if err := writeReport(out, rf, items); err != nil {
				return err
			}

			verified, failed := 0, 0
			for _, it := range items {
				switch {
				case it.Failed():
					failed++
				case it.Result != nil && it.Result.Verified:
					verified++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "processed %d documents: %d verified, %d failed; report written to %s\n",
				len(items), verified, failed, out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&docType, "type", "t", "", "document type: COI, CDL, AGREEMENT, RATE_CON, POD or INVOICE")
	cmd.Flags().StringVar(&out, "out", "", "report path (default: freightdocs_<type>_<date>.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "report format: csv or xlsx")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "documents parsed in parallel (default from config)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "per-document timeout (default from config)")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// reportFormat resolves the report format from the flag, the output file
// extension, then the configured default.
func reportFormat(flag, out, configured string) domain.ReportFormat {
	if flag != "" {
		return domain.ReportFormat(strings.ToLower(flag))
	}
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		return domain.ReportFormatCSV
	case ".xlsx":
		return domain.ReportFormatXLSX
	}
	return domain.ReportFormat(configured)
}

func writeReport(path string, format domain.ReportFormat, items []domain.BatchItem) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	if format == domain.ReportFormatCSV {
		if _, err := f.Write(export.BOM); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
	}
	if err := export.Write(f, format, items); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
