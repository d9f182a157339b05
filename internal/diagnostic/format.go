// Package diagnostic renders verdicts as deterministic, multi-line messages.
package diagnostic

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
)

const (
	responseSubject = "response"
	valueSubject    = "value"
	noneLabel       = "(none)"
)

// Context carries what was validated, for rendering alongside the verdict.
type Context struct {
	// Value is true for named-schema validation of a plain value.
	Value bool

	Status      int
	Body        any
	BodyPresent bool
}

// ResponseContext captures the status and body of resp.
func ResponseContext(resp domain.Response) Context {
	body, present := resp.BodyForValidation()
	return Context{Status: resp.Status(), Body: body, BodyPresent: present}
}

// ValueContext captures a value checked against a named schema.
func ValueContext(value any) Context {
	return Context{Value: true, Body: value, BodyPresent: true}
}

// Format renders a failed verdict. A Valid verdict renders a one-line
// confirmation.
func Format(v domain.Verdict, ctx Context) string {
	var b strings.Builder

	if v.Kind == domain.Valid {
		b.WriteString(satisfiedLine(v, ctx))
		return b.String()
	}

	b.WriteString(expectationLine(v, ctx, false))
	b.WriteString("\n\n")

	switch v.Kind {
	case domain.NoMatchingPath:
		writeNoMatchingPath(&b, v)
	case domain.AmbiguousPath:
		fmt.Fprintf(&b, "%s had request path '%s', which matches more than one path in the API spec equally well",
			responseSubject, v.RequestPath)
		writeList(&b, "Equally specific paths in the API spec", v.Candidates)
	case domain.NoMatchingStatus:
		fmt.Fprintf(&b, "%s had status '%d', but the API spec defines no response for it (exact status, status range or 'default') for endpoint '%s'",
			responseSubject, v.Status, v.Endpoint())
		writeList(&b, fmt.Sprintf("Response statuses found for endpoint '%s' in the API spec", v.Endpoint()), v.Candidates)
	case domain.NoMatchingContentType:
		fmt.Fprintf(&b, "%s had content type '%s', but the '%s' response defined for endpoint '%s' in the API spec declares no matching media type",
			responseSubject, orNone(v.ContentType), v.ResponseKey, v.Endpoint())
		writeList(&b, "Media types found for that response in the API spec", v.Candidates)
	case domain.NoSuchSchema:
		fmt.Fprintf(&b, "The schema name argument '%s' must match a schema in the API spec", v.SchemaName)
		writeList(&b, "Schemas found in the API spec", v.Candidates)
	case domain.SchemaViolation:
		writeViolations(&b, v, ctx)
	default:
		fmt.Fprintf(&b, "unknown verdict %s", v.Kind)
	}

	return b.String()
}

// FormatNegated renders the failure message for a negated assertion, which
// fails when the verdict is Valid. Non-Valid verdicts render as Format does.
func FormatNegated(v domain.Verdict, ctx Context) string {
	if v.Kind != domain.Valid {
		return Format(v, ctx)
	}

	var b strings.Builder
	b.WriteString(expectationLine(v, ctx, true))
	b.WriteString("\n\n")
	b.WriteString(satisfiedLine(v, ctx))
	b.WriteString("\n\n")
	writeActual(&b, ctx)

	return b.String()
}

func expectationLine(v domain.Verdict, ctx Context, negated bool) string {
	not := ""
	if negated {
		not = "not "
	}

	if ctx.Value || v.SchemaName != "" {
		return fmt.Sprintf("expected %s %sto satisfy the '%s' schema defined in the API spec", valueSubject, not, v.SchemaName)
	}
	return fmt.Sprintf("expected %s %sto satisfy the API spec", responseSubject, not)
}

func satisfiedLine(v domain.Verdict, ctx Context) string {
	if ctx.Value || v.SchemaName != "" {
		return fmt.Sprintf("%s satisfied the '%s' schema defined in the API spec", valueSubject, v.SchemaName)
	}
	return fmt.Sprintf("%s satisfied the '%s' response defined for endpoint '%s' in the API spec",
		responseSubject, v.ResponseKey, v.Endpoint())
}

func writeNoMatchingPath(b *strings.Builder, v domain.Verdict) {
	if v.Template != "" {
		fmt.Fprintf(b, "%s had request method '%s' and path '%s', but the API spec declares no %s operation for path '%s'",
			responseSubject, strings.ToUpper(v.Method), v.RequestPath, strings.ToUpper(v.Method), v.Template)
		writeList(b, fmt.Sprintf("Methods declared for path '%s' in the API spec", v.Template), v.AllowedMethods)
		return
	}

	fmt.Fprintf(b, "%s had request path '%s', but the API spec has no matching path", responseSubject, v.RequestPath)
	writeList(b, "Paths found in the API spec", v.Candidates)
}

func writeViolations(b *strings.Builder, v domain.Verdict, ctx Context) {
	root := responseSubject + ".body"
	if ctx.Value || v.SchemaName != "" {
		root = valueSubject
		fmt.Fprintf(b, "%s did not satisfy the '%s' schema because:\n", valueSubject, v.SchemaName)
	} else {
		fmt.Fprintf(b, "%s did not satisfy the '%s' response defined for endpoint '%s' because:\n",
			responseSubject, v.ResponseKey, v.Endpoint())
	}

	for _, violation := range v.Violations {
		fmt.Fprintf(b, "  - %s: %s\n", violation.Location(root), violation.Message)
	}
	b.WriteString("\n")
	writeActual(b, ctx)

	if v.Expected != "" {
		b.WriteString("\n\n")
		if ctx.Value || v.SchemaName != "" {
			fmt.Fprintf(b, "The '%s' schema in the API spec: %s", v.SchemaName, v.Expected)
		} else {
			fmt.Fprintf(b, "The '%s' response defined for endpoint '%s' in the API spec expects: %s",
				v.ResponseKey, v.Endpoint(), v.Expected)
		}
	}
}

func writeActual(b *strings.Builder, ctx Context) {
	if ctx.Value {
		fmt.Fprintf(b, "%s was: %s", valueSubject, renderBody(ctx.Body, ctx.BodyPresent))
		return
	}
	fmt.Fprintf(b, "%s contained: { status: %d, body: %s }", responseSubject, ctx.Status, renderBody(ctx.Body, ctx.BodyPresent))
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n\n%s: %s", title, strings.Join(items, ", "))
}

// renderBody renders a body as compact JSON, falling back to Go syntax for
// values JSON cannot encode.
func renderBody(body any, present bool) string {
	if !present {
		return "<empty>"
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Sprintf("%#v", body)
	}

	return string(data)
}

func orNone(s string) string {
	if s == "" {
		return noneLabel
	}
	return s
}
