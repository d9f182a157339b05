// Package assertapi provides testify-style assertions that check HTTP
// responses and values against an OpenAPI document.
//
//	spec := apispec.MustLoad("openapi.yaml")
//	resp, err := http.Get(server.URL + "/users/1")
//	require.NoError(t, err)
//	assertapi.SatisfiesAPISpec(t, spec, resp)
package assertapi

import (
	"github.com/GabrielNunesIT/openapi-matchers/pkg/apispec"
	"github.com/stretchr/testify/assert"
)

type tHelper interface {
	Helper()
}

// SatisfiesAPISpec asserts that actual (an *http.Response or an
// apispec.Response) satisfies the response declared for its request.
func SatisfiesAPISpec(t assert.TestingT, spec *apispec.Spec, actual any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	v, ctx, err := spec.Check(actual)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	if v.OK() {
		return true
	}

	return assert.Fail(t, apispec.FormatVerdict(v, ctx), msgAndArgs...)
}

// NotSatisfiesAPISpec asserts that actual does not satisfy the API spec.
func NotSatisfiesAPISpec(t assert.TestingT, spec *apispec.Spec, actual any, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	v, ctx, err := spec.Check(actual)
	if err != nil {
		return assert.Fail(t, err.Error(), msgAndArgs...)
	}

	if !v.OK() {
		return true
	}

	return assert.Fail(t, apispec.FormatNegatedVerdict(v, ctx), msgAndArgs...)
}

// SatisfiesSchemaInAPISpec asserts that value satisfies the named component
// schema.
func SatisfiesSchemaInAPISpec(t assert.TestingT, spec *apispec.Spec, value any, schemaName string, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	v := spec.ValidateAgainstSchema(value, schemaName)
	if v.OK() {
		return true
	}

	return assert.Fail(t, apispec.FormatVerdict(v, apispec.ValueContext(value)), msgAndArgs...)
}

// NotSatisfiesSchemaInAPISpec asserts that value does not satisfy the named
// schema. An unknown schema name fails the assertion.
func NotSatisfiesSchemaInAPISpec(t assert.TestingT, spec *apispec.Spec, value any, schemaName string, msgAndArgs ...any) bool {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}

	v := spec.ValidateAgainstSchema(value, schemaName)
	switch v.Kind {
	case apispec.Valid:
		return assert.Fail(t, apispec.FormatNegatedVerdict(v, apispec.ValueContext(value)), msgAndArgs...)
	case apispec.NoSuchSchema:
		return assert.Fail(t, apispec.FormatVerdict(v, apispec.ValueContext(value)), msgAndArgs...)
	}

	return true
}

// Assertions binds a test and a spec, in the manner of assert.New.
type Assertions struct {
	t    assert.TestingT
	spec *apispec.Spec
}

// New returns Assertions for t against spec.
func New(t assert.TestingT, spec *apispec.Spec) *Assertions {
	if spec == nil {
		panic("assertapi: nil spec")
	}
	return &Assertions{t: t, spec: spec}
}

// SatisfiesAPISpec is the bound form of the package function.
func (a *Assertions) SatisfiesAPISpec(actual any, msgAndArgs ...any) bool {
	if h, ok := a.t.(tHelper); ok {
		h.Helper()
	}
	return SatisfiesAPISpec(a.t, a.spec, actual, msgAndArgs...)
}

// NotSatisfiesAPISpec is the bound form of the package function.
func (a *Assertions) NotSatisfiesAPISpec(actual any, msgAndArgs ...any) bool {
	if h, ok := a.t.(tHelper); ok {
		h.Helper()
	}
	return NotSatisfiesAPISpec(a.t, a.spec, actual, msgAndArgs...)
}

// SatisfiesSchemaInAPISpec is the bound form of the package function.
func (a *Assertions) SatisfiesSchemaInAPISpec(value any, schemaName string, msgAndArgs ...any) bool {
	if h, ok := a.t.(tHelper); ok {
		h.Helper()
	}
	return SatisfiesSchemaInAPISpec(a.t, a.spec, value, schemaName, msgAndArgs...)
}

// NotSatisfiesSchemaInAPISpec is the bound form of the package function.
func (a *Assertions) NotSatisfiesSchemaInAPISpec(value any, schemaName string, msgAndArgs ...any) bool {
	if h, ok := a.t.(tHelper); ok {
		h.Helper()
	}
	return NotSatisfiesSchemaInAPISpec(a.t, a.spec, value, schemaName, msgAndArgs...)
}
