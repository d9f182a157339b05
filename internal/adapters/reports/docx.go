package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const docxFormat = "docx"

// DocxWriter renders reports in Word (DOCX) format.
type DocxWriter struct{}

// NewDocxWriter creates a new DOCX writer.
func NewDocxWriter() *DocxWriter {
	return &DocxWriter{}
}

// Format returns the output format name.
func (w *DocxWriter) Format() string {
	return docxFormat
}

// Write renders the report to DOCX.
func (w *DocxWriter) Write(report *domain.Report, output io.Writer) error {
	document, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	w.addTitle(document, report)
	w.addSummary(document, report)
	w.addFailures(document, report)

	if err := document.Write(output); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}

	return nil
}

func (w *DocxWriter) addTitle(document *docx.RootDoc, report *domain.Report) {
	_, _ = document.AddHeading(reportTitle(report), 0) // Level 0 = Title style
	if report.Spec != "" {
		document.AddParagraph(fmt.Sprintf("Spec: %s", report.Spec))
	}
	document.AddParagraph(summaryLine(report))
	document.AddEmptyParagraph()
}

func (w *DocxWriter) addSummary(document *docx.RootDoc, report *domain.Report) {
	if len(report.Entries) == 0 {
		return
	}

	_, _ = document.AddHeading("Exchanges", 1)

	for _, entry := range report.Entries {
		document.AddParagraph(fmt.Sprintf("• [%s] %s (%s)", statusLabel(entry), entryTitle(entry), entry.Verdict.Kind))
	}

	document.AddEmptyParagraph()
}

func (w *DocxWriter) addFailures(document *docx.RootDoc, report *domain.Report) {
	if report.Failed() == 0 {
		return
	}

	_, _ = document.AddHeading("Failures", 1)

	for _, entry := range report.Entries {
		if entry.Verdict.OK() {
			continue
		}

		_, _ = document.AddHeading(entryTitle(entry), 2)

		for _, line := range strings.Split(entry.Message, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			document.AddParagraph(line)
		}

		document.AddEmptyParagraph()
	}
}
