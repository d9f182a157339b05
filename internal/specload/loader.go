// Package specload loads OpenAPI 2.0 and 3.x documents from disk or memory.
//
// Loading covers reading, YAML/JSON decoding and $ref dereferencing.
// Swagger 2.0 documents are also converted to the OpenAPI 3 shape here,
// with references resolved relative to the file they were read from.
package specload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/oasdiff/yaml"
)

// ErrUnsupportedVersion is returned for documents that declare neither
// "swagger: 2.0" nor "openapi: 3.x".
var ErrUnsupportedVersion = errors.New("unsupported OpenAPI version")

// Document is a loaded, dereferenced OpenAPI document. V3 is always set;
// for Swagger 2.0 documents it is the converted form and V2 holds the
// original.
type Document struct {
	// Location is the absolute file path, or "" for in-memory documents.
	Location string

	// Version is the declared format version ("2.0", "3.0.3", ...), not the
	// API version; see InfoVersion.
	Version string

	V2 *openapi2.T
	V3 *openapi3.T
}

// IsV2 reports whether the document is a Swagger 2.0 document.
func (d *Document) IsV2() bool {
	return d.V2 != nil
}

// Title returns the document's info.title.
func (d *Document) Title() string {
	switch {
	case d.V3 != nil && d.V3.Info != nil:
		return d.V3.Info.Title
	case d.V2 != nil:
		return d.V2.Info.Title
	}
	return ""
}

// InfoVersion returns the document's info.version.
func (d *Document) InfoVersion() string {
	switch {
	case d.V3 != nil && d.V3.Info != nil:
		return d.V3.Info.Version
	case d.V2 != nil:
		return d.V2.Info.Version
	}
	return ""
}

type options struct {
	validate bool
}

// Option configures loading.
type Option func(*options)

// WithValidation makes the loader reject documents that do not comply
// with the OpenAPI specification itself.
func WithValidation() Option {
	return func(o *options) { o.validate = true }
}

type versionProbe struct {
	Swagger string `json:"swagger"`
	OpenAPI string `json:"openapi"`
}

// LoadFile reads and dereferences the document at path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}

	return load(data, absPath, opts)
}

// LoadData decodes and dereferences an in-memory document. External
// file references are not followed.
func LoadData(data []byte, opts ...Option) (*Document, error) {
	return load(data, "", opts)
}

func load(data []byte, location string, opts []Option) (*Document, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	var probe versionProbe
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	switch {
	case probe.Swagger != "":
		if !strings.HasPrefix(probe.Swagger, "2.") {
			return nil, fmt.Errorf("%w: swagger %q", ErrUnsupportedVersion, probe.Swagger)
		}
		return loadV2(data, location, probe.Swagger, o)
	case probe.OpenAPI != "":
		if !strings.HasPrefix(probe.OpenAPI, "3.") {
			return nil, fmt.Errorf("%w: openapi %q", ErrUnsupportedVersion, probe.OpenAPI)
		}
		return loadV3(data, location, probe.OpenAPI, o)
	default:
		return nil, fmt.Errorf("%w: document declares neither swagger nor openapi", ErrUnsupportedVersion)
	}
}

func loadV2(data []byte, location, version string, o *options) (*Document, error) {
	var doc openapi2.T
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse Swagger 2.0 document: %w", err)
	}

	converted, err := convertV2(&doc, location)
	if err != nil {
		return nil, err
	}

	if o.validate {
		if err := converted.Validate(context.Background()); err != nil {
			return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
		}
	}

	return &Document{Location: location, Version: version, V2: &doc, V3: converted}, nil
}

// convertV2 converts doc to the OpenAPI 3 shape, resolving references
// relative to location when it is set.
func convertV2(doc *openapi2.T, location string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	var base *url.URL
	if location != "" {
		loader.IsExternalRefsAllowed = true
		base = &url.URL{Path: filepath.ToSlash(location)}
	}

	converted, err := openapi2conv.ToV3WithLoader(inheritProduces(doc), loader, base)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize Swagger 2.0 document: %w", err)
	}

	return converted, nil
}

// inheritProduces returns a shallow copy of doc in which every operation
// without its own "produces" list carries the document-level one. The
// converter only looks at operation-level lists.
func inheritProduces(doc *openapi2.T) *openapi2.T {
	if len(doc.Produces) == 0 {
		return doc
	}

	clone := *doc
	clone.Paths = make(map[string]*openapi2.PathItem, len(doc.Paths))

	for path, item := range doc.Paths {
		if item == nil {
			continue
		}

		itemCopy := *item
		for method, op := range item.Operations() {
			if len(op.Produces) > 0 {
				continue
			}
			opCopy := *op
			opCopy.Produces = doc.Produces
			itemCopy.SetOperation(method, &opCopy)
		}
		clone.Paths[path] = &itemCopy
	}

	return &clone
}

func loadV3(data []byte, location, version string, o *options) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = location != ""

	var (
		doc *openapi3.T
		err error
	)
	if location != "" {
		doc, err = loader.LoadFromFile(location)
	} else {
		doc, err = loader.LoadFromData(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI file: %w", err)
	}

	if o.validate {
		if err := doc.Validate(context.Background()); err != nil {
			return nil, fmt.Errorf("invalid OpenAPI document: %w", err)
		}
	}

	return &Document{Location: location, Version: version, V3: doc}, nil
}

// FromV3 wraps an already loaded 3.x document.
func FromV3(doc *openapi3.T) *Document {
	return &Document{Version: doc.OpenAPI, V3: doc}
}

// FromV2 converts an already decoded Swagger 2.0 document. External
// references are not followed.
func FromV2(doc *openapi2.T) (*Document, error) {
	converted, err := convertV2(doc, "")
	if err != nil {
		return nil, err
	}

	return &Document{Version: doc.Swagger, V2: doc, V3: converted}, nil
}
