// Package reports provides renderers for contract reports in various formats.
package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
)

const (
	passLabel = "PASS"
	failLabel = "FAIL"
)

// NewWriter returns the report writer for a format name.
func NewWriter(format string) (domain.ReportWriter, error) {
	switch strings.ToLower(format) {
	case textFormat, "":
		return NewTextWriter(), nil
	case pdfFormat:
		return NewPDFWriter(), nil
	case docxFormat:
		return NewDocxWriter(), nil
	case adfFormat:
		return NewADFWriter(), nil
	}

	return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats(), ", "))
}

// Formats lists the supported format names.
func Formats() []string {
	formats := []string{textFormat, pdfFormat, docxFormat, adfFormat}
	sort.Strings(formats)
	return formats
}

// statusLabel returns PASS or FAIL for an entry.
func statusLabel(entry domain.ReportEntry) string {
	if entry.Verdict.OK() {
		return passLabel
	}
	return failLabel
}

// summaryLine returns the one-line pass/fail tally.
func summaryLine(report *domain.Report) string {
	return fmt.Sprintf("%d exchanges: %d passed, %d failed", len(report.Entries), report.Passed(), report.Failed())
}

// entryTitle returns the heading for an entry.
func entryTitle(entry domain.ReportEntry) string {
	if entry.Name != "" {
		return entry.Name
	}
	return entry.Verdict.Endpoint()
}

// reportTitle falls back to a generic title.
func reportTitle(report *domain.Report) string {
	if report.Title != "" {
		return report.Title
	}
	return "API Contract Report"
}
