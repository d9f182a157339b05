package domain

import "strings"

// VerdictKind identifies the outcome of one validation pass.
type VerdictKind int

// Verdict kinds, in the order checks are performed.
const (
	Valid VerdictKind = iota
	NoMatchingPath
	AmbiguousPath
	NoMatchingStatus
	NoMatchingContentType
	NoSuchSchema
	SchemaViolation
)

var verdictKindNames = map[VerdictKind]string{
	Valid:                 "Valid",
	NoMatchingPath:        "NoMatchingPath",
	AmbiguousPath:         "AmbiguousPath",
	NoMatchingStatus:      "NoMatchingStatus",
	NoMatchingContentType: "NoMatchingContentType",
	NoSuchSchema:          "NoSuchSchema",
	SchemaViolation:       "SchemaViolation",
}

// String returns the kind name.
func (k VerdictKind) String() string {
	if name, ok := verdictKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Violation is a single structural error found in a body.
type Violation struct {
	// Path is the JSON pointer of the offending value within the body
	// ("" for the body root, "/items/0/name" otherwise).
	Path string

	// Message describes why the value does not satisfy the schema.
	Message string
}

// Location renders the violation path prefixed with root, e.g. "body/items/0".
func (v Violation) Location(root string) string {
	if v.Path == "" {
		return root
	}
	return root + v.Path
}

// Verdict is the terminal result of one validation pass.
type Verdict struct {
	Kind VerdictKind

	// Method and RequestPath describe the request under validation.
	Method      string
	RequestPath string

	// Template is the matched path template, when one was found. For
	// NoMatchingPath it names a template that matched the path but does not
	// declare the method; AllowedMethods then lists the methods it does declare.
	Template       string
	AllowedMethods []string

	// Status is the response status code; ResponseKey is the declared
	// response entry that matched it ("200", "2XX", "default").
	Status      int
	ResponseKey string

	// ContentType is the response content type; MediaType is the declared
	// media type that matched it.
	ContentType string
	MediaType   string

	// SchemaName is set by named-schema validation.
	SchemaName string

	// Candidates lists what the spec does declare at the level that failed:
	// path templates, allowed methods, response keys, media types or schema
	// names. Sorted.
	Candidates []string

	// Expected is a JSON rendering of the schema the body was checked against.
	Expected string

	Violations []Violation
}

// OK reports whether the verdict is Valid.
func (v Verdict) OK() bool {
	return v.Kind == Valid
}

// Endpoint renders "METHOD /template", falling back to the request path.
func (v Verdict) Endpoint() string {
	path := v.Template
	if path == "" {
		path = v.RequestPath
	}
	return strings.ToUpper(v.Method) + " " + path
}
