// Package gomegaapi provides Gomega matchers that check HTTP responses and
// values against an OpenAPI document.
//
//	Expect(resp).To(gomegaapi.SatisfyAPISpec(spec))
//	Expect(user).To(gomegaapi.SatisfySchemaInAPISpec(spec, "User"))
package gomegaapi

import (
	"errors"

	"github.com/GabrielNunesIT/openapi-matchers/pkg/apispec"
	"github.com/onsi/gomega/types"
)

var errNilSpec = errors.New("gomegaapi: nil spec")

// SatisfyAPISpec succeeds when actual (an *http.Response or an
// apispec.Response) satisfies the response declared for its request.
func SatisfyAPISpec(spec *apispec.Spec) types.GomegaMatcher {
	return &responseMatcher{spec: spec}
}

// SatisfySchemaInAPISpec succeeds when actual satisfies the named component
// schema. An unknown schema name is an error, so the matcher fails whether
// or not it is negated.
func SatisfySchemaInAPISpec(spec *apispec.Spec, schemaName string) types.GomegaMatcher {
	return &schemaMatcher{spec: spec, name: schemaName}
}

type responseMatcher struct {
	spec    *apispec.Spec
	verdict apispec.Verdict
	ctx     apispec.Context
}

func (m *responseMatcher) Match(actual any) (bool, error) {
	if m.spec == nil {
		return false, errNilSpec
	}

	v, ctx, err := m.spec.Check(actual)
	if err != nil {
		return false, err
	}

	m.verdict, m.ctx = v, ctx

	return v.OK(), nil
}

func (m *responseMatcher) FailureMessage(_ any) string {
	return apispec.FormatVerdict(m.verdict, m.ctx)
}

func (m *responseMatcher) NegatedFailureMessage(_ any) string {
	return apispec.FormatNegatedVerdict(m.verdict, m.ctx)
}

type schemaMatcher struct {
	spec    *apispec.Spec
	name    string
	verdict apispec.Verdict
	ctx     apispec.Context
}

func (m *schemaMatcher) Match(actual any) (bool, error) {
	if m.spec == nil {
		return false, errNilSpec
	}

	m.verdict = m.spec.ValidateAgainstSchema(actual, m.name)
	m.ctx = apispec.ValueContext(actual)

	if m.verdict.Kind == apispec.NoSuchSchema {
		return false, errors.New(apispec.FormatVerdict(m.verdict, m.ctx))
	}

	return m.verdict.OK(), nil
}

func (m *schemaMatcher) FailureMessage(_ any) string {
	return apispec.FormatVerdict(m.verdict, m.ctx)
}

func (m *schemaMatcher) NegatedFailureMessage(_ any) string {
	return apispec.FormatNegatedVerdict(m.verdict, m.ctx)
}
