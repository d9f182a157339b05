// Package apispec loads an OpenAPI 2 or 3 document and validates HTTP
// responses and plain values against it.
//
// A Spec is built once, typically in TestMain or a package variable, and is
// safe for concurrent use by any number of tests:
//
//	var spec = apispec.MustLoad("testdata/openapi.yaml")
//
//	func TestGetUser(t *testing.T) {
//		resp, _ := http.Get(server.URL + "/users/1")
//		v := spec.ValidateResponse(apispec.MustAdapt(resp))
//		...
//	}
//
// The assertapi and gomegaapi packages wrap this API as assertions.
package apispec

import (
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/GabrielNunesIT/openapi-matchers/internal/adapters/responses"
	"github.com/GabrielNunesIT/openapi-matchers/internal/diagnostic"
	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/GabrielNunesIT/openapi-matchers/internal/specindex"
	"github.com/GabrielNunesIT/openapi-matchers/internal/specload"
	"github.com/GabrielNunesIT/openapi-matchers/internal/validation"
	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi3"
)

type (
	// Response is the canonical response validated against a Spec.
	Response = domain.Response
	// Verdict is the result of one validation.
	Verdict = domain.Verdict
	// VerdictKind identifies the outcome of a validation.
	VerdictKind = domain.VerdictKind
	// Violation is a single structural error in a body.
	Violation = domain.Violation
	// Context describes what was validated, for diagnostics.
	Context = diagnostic.Context
	// Option configures loading.
	Option = specload.Option
)

// Verdict kinds.
const (
	Valid                 = domain.Valid
	NoMatchingPath        = domain.NoMatchingPath
	AmbiguousPath         = domain.AmbiguousPath
	NoMatchingStatus      = domain.NoMatchingStatus
	NoMatchingContentType = domain.NoMatchingContentType
	NoSuchSchema          = domain.NoSuchSchema
	SchemaViolation       = domain.SchemaViolation
)

var (
	// ErrUnsupportedVersion is returned for documents that are neither
	// Swagger 2.0 nor OpenAPI 3.x.
	ErrUnsupportedVersion = specload.ErrUnsupportedVersion

	// ErrUnsupportedResponse is returned by Adapt for values it cannot wrap.
	ErrUnsupportedResponse = responses.ErrUnsupportedResponse
)

// WithValidation rejects documents that are not valid OpenAPI.
func WithValidation() Option {
	return specload.WithValidation()
}

// Spec is a loaded OpenAPI document ready for validation.
type Spec struct {
	location string
	idx      *specindex.Index
}

// Load reads and indexes the document at path.
func Load(path string, opts ...Option) (*Spec, error) {
	doc, err := specload.LoadFile(path, opts...)
	if err != nil {
		return nil, err
	}

	return fromDocument(doc)
}

// LoadData indexes an in-memory YAML or JSON document.
func LoadData(data []byte, opts ...Option) (*Spec, error) {
	doc, err := specload.LoadData(data, opts...)
	if err != nil {
		return nil, err
	}

	return fromDocument(doc)
}

// MustLoad is like Load but panics on error.
func MustLoad(path string, opts ...Option) *Spec {
	spec, err := Load(path, opts...)
	if err != nil {
		panic(fmt.Sprintf("apispec: %v", err))
	}

	return spec
}

// FromOpenAPI3 indexes an already loaded OpenAPI 3 document. References
// must be resolved.
func FromOpenAPI3(doc *openapi3.T) (*Spec, error) {
	return fromDocument(specload.FromV3(doc))
}

// FromSwagger2 indexes an already loaded Swagger 2.0 document.
func FromSwagger2(doc *openapi2.T) (*Spec, error) {
	converted, err := specload.FromV2(doc)
	if err != nil {
		return nil, err
	}

	return fromDocument(converted)
}

func fromDocument(doc *specload.Document) (*Spec, error) {
	idx, err := specindex.Build(doc)
	if err != nil {
		return nil, err
	}

	return &Spec{location: doc.Location, idx: idx}, nil
}

// Location returns the file the spec was loaded from, or "" for in-memory
// documents.
func (s *Spec) Location() string { return s.location }

// Title returns the document title.
func (s *Spec) Title() string { return s.idx.Title() }

// Version returns the API version declared in info.version.
func (s *Spec) Version() string { return s.idx.Version() }

// ValidateResponse checks a response against the operation it was served for.
func (s *Spec) ValidateResponse(resp Response) Verdict {
	return validation.ValidateResponse(resp, s.idx)
}

// ValidateAgainstSchema checks value against the named component schema.
func (s *Spec) ValidateAgainstSchema(value any, name string) Verdict {
	return validation.ValidateAgainstNamedSchema(value, name, s.idx)
}

// Check adapts actual to a Response and validates it, returning the context
// needed to format the verdict.
func (s *Spec) Check(actual any) (Verdict, Context, error) {
	resp, err := Adapt(actual)
	if err != nil {
		return Verdict{}, Context{}, err
	}

	return s.ValidateResponse(resp), diagnostic.ResponseContext(resp), nil
}

// Adapt wraps *http.Response values; values that already implement
// Response are returned unchanged.
func Adapt(actual any) (Response, error) {
	return responses.Adapt(actual)
}

// MustAdapt is like Adapt but panics on error.
func MustAdapt(actual any) Response {
	resp, err := Adapt(actual)
	if err != nil {
		panic(fmt.Sprintf("apispec: %v", err))
	}

	return resp
}

// FromRecorder wraps a recorder and the request that was served into it.
func FromRecorder(rec *httptest.ResponseRecorder, req *http.Request) Response {
	return responses.FromRecorder(rec, req)
}

// ResponseContext captures what FormatVerdict shows about a response.
func ResponseContext(resp Response) Context {
	return diagnostic.ResponseContext(resp)
}

// ValueContext captures what FormatVerdict shows about a plain value.
func ValueContext(value any) Context {
	return diagnostic.ValueContext(value)
}

// FormatVerdict renders a verdict as a multi-line diagnostic.
func FormatVerdict(v Verdict, ctx Context) string {
	return diagnostic.Format(v, ctx)
}

// FormatNegatedVerdict renders the failure of a negated assertion.
func FormatNegatedVerdict(v Verdict, ctx Context) string {
	return diagnostic.FormatNegated(v, ctx)
}
