package reports

import (
	"io"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfFormat      = "pdf"
	pdfPageWidth   = 190.0
	pdfMarginLeft  = 10.0
	pdfMarginTop   = 10.0
	pdfMarginRight = 10.0
	pdfLineHeight  = 5.0
)

// PDFWriter renders reports in PDF format.
type PDFWriter struct {
	pdf        *gofpdf.Fpdf
	tr         func(string) string
	tocItems   []tocItem
	entryLinks map[int]int // entry index to link ID
}

type tocItem struct {
	title  string
	level  int
	linkID int
}

// NewPDFWriter creates a new PDF writer.
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{}
}

// Format returns the output format name.
func (w *PDFWriter) Format() string {
	return pdfFormat
}

// Write renders the report to PDF.
func (w *PDFWriter) Write(report *domain.Report, output io.Writer) error {
	w.pdf = gofpdf.New("P", "mm", "A4", "")
	w.pdf.SetMargins(pdfMarginLeft, pdfMarginTop, pdfMarginRight)
	w.pdf.SetDrawColor(180, 180, 180) // Light gray for all borders
	w.tr = w.pdf.UnicodeTranslatorFromDescriptor("")
	w.tocItems = nil
	w.entryLinks = make(map[int]int)

	w.collectTOC(report)
	w.addTitlePage(report)
	w.addTableOfContents()
	w.addContent(report)

	return w.pdf.Output(output)
}

func (w *PDFWriter) collectTOC(report *domain.Report) {
	w.tocItems = append(w.tocItems, tocItem{title: "Summary", level: 1, linkID: w.pdf.AddLink()})

	if report.Failed() == 0 {
		return
	}

	w.tocItems = append(w.tocItems, tocItem{title: "Failures", level: 1, linkID: w.pdf.AddLink()})

	for i, entry := range report.Entries {
		if entry.Verdict.OK() {
			continue
		}

		linkID := w.pdf.AddLink()
		w.entryLinks[i] = linkID
		w.tocItems = append(w.tocItems, tocItem{title: entryTitle(entry), level: 2, linkID: linkID})
	}
}

func (w *PDFWriter) addTitlePage(report *domain.Report) {
	w.pdf.AddPage()

	w.pdf.SetFont("Arial", "B", 28)
	w.pdf.Ln(40)
	w.pdf.CellFormat(pdfPageWidth, 15, w.tr(reportTitle(report)), "", 1, "C", false, 0, "")
	w.pdf.Ln(5)

	w.pdf.SetFont("Arial", "", 14)
	w.pdf.SetTextColor(100, 100, 100)
	w.pdf.CellFormat(pdfPageWidth, 8, summaryLine(report), "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.Ln(20)

	if report.Spec != "" {
		w.pdf.SetFont("Arial", "", 11)
		w.pdf.MultiCell(pdfPageWidth, 6, w.tr(report.Spec), "", "C", false)
	}

	w.pdf.Ln(30)

	w.pdf.SetFont("Arial", "", 10)
	w.pdf.SetTextColor(128, 128, 128)
	w.pdf.CellFormat(pdfPageWidth, 6, "API Contract Report", "", 1, "C", false, 0, "")
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *PDFWriter) addTableOfContents() {
	w.pdf.AddPage()

	w.pdf.SetFont("Arial", "B", 20)
	w.pdf.CellFormat(pdfPageWidth, 10, "Table of Contents", "", 1, "", false, 0, "")
	w.pdf.Ln(8)

	for _, item := range w.tocItems {
		indent := float64(item.level-1) * 8

		if item.level == 1 {
			w.pdf.SetFont("Arial", "B", 12)
		} else {
			w.pdf.SetFont("Arial", "", 9)
		}

		w.pdf.SetX(pdfMarginLeft + indent)
		w.pdf.CellFormat(pdfPageWidth-indent, pdfLineHeight, w.tr(truncate(item.title, 60)), "", 1, "", false, item.linkID, "")
	}
}

func (w *PDFWriter) addContent(report *domain.Report) {
	w.pdf.AddPage()
	w.setLinkDest(0)
	w.addSectionHeader("Summary")
	w.addSummaryTable(report)

	if report.Failed() == 0 {
		return
	}

	w.pdf.AddPage()
	w.setLinkDest(1)
	w.addSectionHeader("Failures")

	for i, entry := range report.Entries {
		if entry.Verdict.OK() {
			continue
		}

		w.checkPageBreak(50)
		w.pdf.SetLink(w.entryLinks[i], -1, -1)
		w.addFailure(entry)
	}
}

func (w *PDFWriter) setLinkDest(tocIndex int) {
	if tocIndex < len(w.tocItems) {
		w.pdf.SetLink(w.tocItems[tocIndex].linkID, -1, -1)
	}
}

func (w *PDFWriter) addSectionHeader(title string) {
	w.pdf.SetFont("Arial", "B", 18)
	w.pdf.CellFormat(pdfPageWidth, 10, title, "", 1, "", false, 0, "")
	w.pdf.Ln(4)
}

func (w *PDFWriter) addSummaryTable(report *domain.Report) {
	w.pdf.SetFont("Arial", "B", 9)
	w.pdf.SetFillColor(245, 245, 245)

	colWidths := []float64{15, 120, 55}
	headers := []string{"Result", "Exchange", "Verdict"}

	for i, header := range headers {
		w.pdf.CellFormat(colWidths[i], 6, header, "1", 0, "", true, 0, "")
	}
	w.pdf.Ln(-1)

	w.pdf.SetFont("Arial", "", 9)
	for i, entry := range report.Entries {
		linkID := w.entryLinks[i]
		contents := []string{statusLabel(entry), entryTitle(entry), entry.Verdict.Kind.String()}
		aligns := []string{"C", "L", "L"}
		linkIDs := []int{0, linkID, linkID}

		w.addTableRow(colWidths, contents, aligns, linkIDs)
	}

	w.pdf.Ln(4)
	w.pdf.SetFont("Arial", "B", 10)
	w.pdf.CellFormat(pdfPageWidth, 6, summaryLine(report), "", 1, "", false, 0, "")
}

func (w *PDFWriter) addFailure(entry domain.ReportEntry) {
	w.pdf.SetFont("Arial", "B", 10)

	kind := entry.Verdict.Kind.String()
	color := kindColors[entry.Verdict.Kind]
	if color == [3]int{} {
		color = [3]int{128, 128, 128}
	}

	w.pdf.SetFillColor(color[0], color[1], color[2])
	w.pdf.SetTextColor(255, 255, 255)
	badgeWidth := float64(len(kind)*2) + 8
	w.pdf.CellFormat(badgeWidth, 7, kind, "", 0, "C", true, 0, "")

	w.pdf.SetTextColor(0, 0, 0)
	w.pdf.SetFont("Arial", "B", 11)
	w.pdf.CellFormat(pdfPageWidth-badgeWidth, 7, " "+w.tr(truncate(entryTitle(entry), 90)), "", 1, "", false, 0, "")
	w.pdf.Ln(2)

	w.pdf.SetFont("Courier", "", 8)
	w.pdf.SetFillColor(250, 250, 250)

	lines := strings.Split(entry.Message, "\n")
	w.checkPageBreak(float64(len(lines))*4.0 + 2)
	w.pdf.MultiCell(pdfPageWidth, 4, w.tr(entry.Message), "1", "", true)
	w.pdf.Ln(6)
}

var kindColors = map[domain.VerdictKind][3]int{
	domain.NoMatchingPath:        {249, 62, 62},  // Red
	domain.AmbiguousPath:         {144, 97, 249}, // Purple
	domain.NoMatchingStatus:      {252, 161, 48}, // Orange
	domain.NoMatchingContentType: {80, 180, 194}, // Teal
	domain.NoSuchSchema:          {128, 128, 128},
	domain.SchemaViolation:       {97, 140, 254}, // Blue
}

func (w *PDFWriter) checkPageBreak(height float64) {
	_, pageHeight := w.pdf.GetPageSize()
	_, _, _, bottomMargin := w.pdf.GetMargins()

	if w.pdf.GetY()+height > pageHeight-bottomMargin-10 {
		w.pdf.AddPage()
	}
}

func (w *PDFWriter) addTableRow(colWidths []float64, contents []string, aligns []string, linkIDs []int) {
	maxLines := 1
	for i, content := range contents {
		lines := w.pdf.SplitLines([]byte(w.tr(content)), colWidths[i])
		if len(lines) > maxLines {
			maxLines = len(lines)
		}
	}

	rowHeight := float64(maxLines) * pdfLineHeight

	w.checkPageBreak(rowHeight)

	startX := w.pdf.GetX()
	startY := w.pdf.GetY()

	for i, content := range contents {
		width := colWidths[i]

		linkID := 0
		if len(linkIDs) > i {
			linkID = linkIDs[i]
		}

		if linkID > 0 {
			w.pdf.SetTextColor(0, 102, 204)
		}

		w.pdf.SetXY(startX, startY)
		w.pdf.MultiCell(width, pdfLineHeight, w.tr(content), "0", aligns[i], false)
		if linkID > 0 {
			w.pdf.Link(startX, startY, width, rowHeight, linkID)
			w.pdf.SetTextColor(0, 0, 0)
		}

		w.pdf.Rect(startX, startY, width, rowHeight, "D")
		startX += width
	}

	w.pdf.SetXY(pdfMarginLeft, startY+rowHeight)
}

func truncate(s string, limit int) string {
	if len(s) > limit {
		return s[:limit-3] + "..."
	}
	return s
}
