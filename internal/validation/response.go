// Package validation decides whether responses and values conform to an
// indexed OpenAPI document.
//
// Checks run in a fixed order (path, status, content type, body) and stop at
// the first failure so the verdict names the most specific problem.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/GabrielNunesIT/openapi-matchers/internal/schemacheck"
	"github.com/GabrielNunesIT/openapi-matchers/internal/specindex"
	"github.com/getkin/kin-openapi/openapi3"
)

// ValidateResponse checks resp against the operation idx declares for it.
func ValidateResponse(resp domain.Response, idx *specindex.Index) domain.Verdict {
	verdict := domain.Verdict{
		Method:      resp.RequestMethod(),
		RequestPath: resp.RequestPath(),
		Status:      resp.Status(),
		ContentType: resp.ContentType(),
	}

	op, miss := idx.ResolveOperation(verdict.Method, verdict.RequestPath)
	if !miss.Found() {
		return fromMiss(verdict, miss)
	}
	verdict.Method = op.Method
	verdict.Template = op.Template

	exp, miss := idx.ResolveResponseSchema(op, verdict.Status, verdict.ContentType)
	if exp != nil {
		verdict.ResponseKey = exp.ResponseKey
		verdict.MediaType = exp.MediaType
	}
	if !miss.Found() {
		return fromMiss(verdict, miss)
	}

	body, present := resp.BodyForValidation()

	if exp.NoContent {
		if !present {
			verdict.Kind = domain.Valid
			return verdict
		}
		verdict.Kind = domain.SchemaViolation
		verdict.Violations = []domain.Violation{{
			Message: fmt.Sprintf("response has a body but the %q response declares no content", exp.ResponseKey),
		}}
		return verdict
	}

	return checkBody(verdict, body, exp.Schema)
}

// checkBody runs structural validation and completes the verdict.
func checkBody(verdict domain.Verdict, body any, schema *openapi3.Schema) domain.Verdict {
	verdict.Expected = renderSchema(schema)
	verdict.Violations = schemacheck.Validate(body, schema)

	if len(verdict.Violations) == 0 {
		verdict.Kind = domain.Valid
		verdict.Violations = nil
	} else {
		verdict.Kind = domain.SchemaViolation
	}

	return verdict
}

func fromMiss(verdict domain.Verdict, miss specindex.Miss) domain.Verdict {
	verdict.Kind = miss.Kind
	verdict.Candidates = miss.Candidates
	if miss.Template != "" {
		verdict.Template = miss.Template
		verdict.AllowedMethods = miss.AllowedMethods
	}
	return verdict
}

func renderSchema(schema *openapi3.Schema) string {
	if schema == nil {
		return ""
	}

	data, err := json.Marshal(schema)
	if err != nil {
		return ""
	}

	return string(data)
}
