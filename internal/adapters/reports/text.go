package reports

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
)

const textFormat = "text"

// TextWriter renders reports as plain text for terminals and CI logs.
type TextWriter struct{}

// NewTextWriter creates a new text writer.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Format returns the output format name.
func (w *TextWriter) Format() string {
	return textFormat
}

// Write renders one line per entry, followed by the diagnostic of each failure.
func (w *TextWriter) Write(report *domain.Report, output io.Writer) error {
	out := bufio.NewWriter(output)

	fmt.Fprintln(out, reportTitle(report))
	if report.Spec != "" {
		fmt.Fprintf(out, "Spec: %s\n", report.Spec)
	}
	fmt.Fprintln(out)

	for _, entry := range report.Entries {
		fmt.Fprintf(out, "[%s] %s (%s)\n", statusLabel(entry), entryTitle(entry), entry.Verdict.Kind)

		if !entry.Verdict.OK() && entry.Message != "" {
			for _, line := range strings.Split(entry.Message, "\n") {
				if line == "" {
					fmt.Fprintln(out)
					continue
				}
				fmt.Fprintf(out, "    %s\n", line)
			}
			fmt.Fprintln(out)
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, summaryLine(report))

	if err := out.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
