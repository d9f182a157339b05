// Package domain provides core models and ports for the OpenAPI response matchers.
package domain

// Response is the canonical view of an HTTP response, independent of the
// client library that produced it.
type Response interface {
	// Status returns the HTTP status code.
	Status() int

	// RequestMethod returns the method of the request that produced the response.
	RequestMethod() string

	// RequestPath returns the concrete request path (e.g., "/users/123").
	RequestPath() string

	// Header returns the first value of the named response header.
	Header(name string) string

	// ContentType returns the Content-Type header, or "" when absent.
	ContentType() string

	// BodyForValidation returns the decoded body. The second result is false
	// when the transport body was empty or absent; a body that decodes to the
	// JSON literal null is returned as (nil, true).
	BodyForValidation() (any, bool)
}
