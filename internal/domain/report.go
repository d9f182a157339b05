package domain

import "io"

// ReportEntry is one validated exchange in a contract report.
type ReportEntry struct {
	Name    string
	Verdict Verdict
	Message string
}

// Report groups the verdicts produced for a batch of captured exchanges.
type Report struct {
	Title   string
	Spec    string
	Entries []ReportEntry
}

// Passed returns the number of entries with a Valid verdict.
func (r *Report) Passed() int {
	n := 0
	for _, e := range r.Entries {
		if e.Verdict.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of entries with a non-Valid verdict.
func (r *Report) Failed() int {
	return len(r.Entries) - r.Passed()
}

// ReportWriter defines the interface for contract report renderers.
type ReportWriter interface {
	// Write renders the report to the output.
	Write(report *Report, output io.Writer) error

	// Format returns the output format name (e.g., "pdf", "docx").
	Format() string
}
