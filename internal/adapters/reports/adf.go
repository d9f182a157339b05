package reports

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
)

const adfFormat = "confluence"

// ADFWriter renders reports in Atlassian Document Format (ADF) for Confluence.
type ADFWriter struct{}

// NewADFWriter creates a new ADF writer.
func NewADFWriter() *ADFWriter {
	return &ADFWriter{}
}

// Format returns the output format name.
func (w *ADFWriter) Format() string {
	return adfFormat
}

// ADF node types.
type adfDocument struct {
	Version int       `json:"version"`
	Type    string    `json:"type"`
	Content []adfNode `json:"content"`
}

type adfNode struct {
	Type    string    `json:"type"`
	Attrs   *adfAttrs `json:"attrs,omitempty"`
	Content []adfNode `json:"content,omitempty"`
	Text    string    `json:"text,omitempty"`
	Marks   []adfMark `json:"marks,omitempty"`
}

type adfAttrs struct {
	Level    int    `json:"level,omitempty"`
	Language string `json:"language,omitempty"`
	Color    string `json:"color,omitempty"`
	Text     string `json:"text,omitempty"`
}

type adfMark struct {
	Type string `json:"type"`
}

// Write renders the report as ADF JSON.
func (w *ADFWriter) Write(report *domain.Report, output io.Writer) error {
	adf := &adfDocument{
		Version: 1,
		Type:    "doc",
		Content: []adfNode{},
	}

	adf.Content = append(adf.Content, w.heading(reportTitle(report), 1))
	if report.Spec != "" {
		adf.Content = append(adf.Content, w.paragraph(w.text("Spec: "), w.codeText(report.Spec)))
	}
	adf.Content = append(adf.Content, w.paragraph(w.boldText(summaryLine(report))))

	if len(report.Entries) > 0 {
		adf.Content = append(adf.Content, w.heading("Exchanges", 2))
		adf.Content = append(adf.Content, w.entryList(report.Entries))
	}

	if report.Failed() > 0 {
		adf.Content = append(adf.Content, w.heading("Failures", 2))

		for _, entry := range report.Entries {
			if entry.Verdict.OK() {
				continue
			}

			adf.Content = append(adf.Content,
				w.heading(entryTitle(entry), 3),
				w.codeBlock(entry.Message),
				adfNode{Type: "rule"},
			)
		}
	}

	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(adf); err != nil {
		return fmt.Errorf("failed to encode ADF: %w", err)
	}

	return nil
}

func (w *ADFWriter) heading(text string, level int) adfNode {
	return adfNode{
		Type:    "heading",
		Attrs:   &adfAttrs{Level: level},
		Content: []adfNode{w.text(text)},
	}
}

func (w *ADFWriter) paragraph(content ...adfNode) adfNode {
	return adfNode{Type: "paragraph", Content: content}
}

func (w *ADFWriter) text(text string) adfNode {
	return adfNode{Type: "text", Text: text}
}

func (w *ADFWriter) boldText(text string) adfNode {
	return adfNode{Type: "text", Text: text, Marks: []adfMark{{Type: "strong"}}}
}

func (w *ADFWriter) codeText(text string) adfNode {
	return adfNode{Type: "text", Text: text, Marks: []adfMark{{Type: "code"}}}
}

func (w *ADFWriter) status(entry domain.ReportEntry) adfNode {
	color := "green"
	if !entry.Verdict.OK() {
		color = "red"
	}
	return adfNode{Type: "status", Attrs: &adfAttrs{Text: statusLabel(entry), Color: color}}
}

func (w *ADFWriter) codeBlock(text string) adfNode {
	node := adfNode{Type: "codeBlock", Attrs: &adfAttrs{Language: "text"}}
	if text != "" {
		node.Content = []adfNode{w.text(text)}
	}
	return node
}

func (w *ADFWriter) entryList(entries []domain.ReportEntry) adfNode {
	items := make([]adfNode, 0, len(entries))

	for _, entry := range entries {
		items = append(items, adfNode{
			Type: "listItem",
			Content: []adfNode{
				w.paragraph(
					w.status(entry),
					w.text(" "),
					w.codeText(entryTitle(entry)),
					w.text(fmt.Sprintf(": %s", entry.Verdict.Kind)),
				),
			},
		})
	}

	return adfNode{
		Type:    "bulletList",
		Content: items,
	}
}
