package cli

import (
	"fmt"

	"github.com/GabrielNunesIT/openapi-matchers/internal/adapters/reports"
	"github.com/GabrielNunesIT/openapi-matchers/internal/adapters/responses"
	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/GabrielNunesIT/openapi-matchers/pkg/apispec"
	"github.com/spf13/cobra"
)

func (c *CLI) validateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate EXCHANGE_FILE...",
		Short: "Validate captured HTTP exchanges and write a contract report",
		Long: "Validates every exchange in the given YAML or JSON files against the specification.\n" +
			"Each file holds a top-level \"exchanges\" list of {name, method, path, status, headers, body}.",
		Args: cobra.MinimumNArgs(1),
		RunE: c.runValidate,
	}

	cmd.Flags().StringVarP(&c.format, "format", "f", "text", "Report format: confluence, docx, pdf, text")
	cmd.Flags().StringVarP(&c.outputFile, "output", "o", "-", "Path for the report file (- for standard output)")
	cmd.Flags().StringVar(&c.title, "title", "", "Report title (default: the API title)")

	return cmd
}

func (c *CLI) runValidate(cmd *cobra.Command, args []string) error {
	writer, err := reports.NewWriter(c.cfg.Format)
	if err != nil {
		return err
	}

	spec, err := c.loadSpec()
	if err != nil {
		return err
	}

	report := &domain.Report{
		Title: c.title,
		Spec:  c.cfg.Spec,
	}
	if report.Title == "" {
		report.Title = spec.Title() + " contract report"
	}

	for _, path := range args {
		exchanges, err := responses.LoadExchanges(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		c.log.Infof("Validating %d exchanges from: %s", len(exchanges), path)

		for i := range exchanges {
			exchange := &exchanges[i]
			v := spec.ValidateResponse(exchange)

			entry := domain.ReportEntry{Name: exchange.Label(), Verdict: v}
			if !v.OK() {
				entry.Message = apispec.FormatVerdict(v, apispec.ResponseContext(exchange))
			}
			report.Entries = append(report.Entries, entry)
		}
	}

	c.log.Infof("Writing %s report...", writer.Format())

	output, closeOutput, err := c.openOutput(cmd)
	if err != nil {
		return err
	}

	if err := writer.Write(report, output); err != nil {
		_ = closeOutput()
		return fmt.Errorf("report failed: %w", err)
	}
	if err := closeOutput(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%w: %d of %d exchanges failed", ErrContractViolation, failed, len(report.Entries))
	}

	c.log.Infof("All %d exchanges satisfy the API spec", len(report.Entries))

	return nil
}
