// Package specindex builds lookup structures over a loaded OpenAPI document:
// a path-template matcher, per-operation response resolution and a named
// schema index.
//
// Swagger 2.0 documents arrive already converted to the OpenAPI 3 shape
// (definitions become component schemas); Build adds their basePath as a
// server base path so callers never branch on version.
// An Index is immutable after Build and safe for concurrent use.
package specindex

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/GabrielNunesIT/openapi-matchers/internal/specload"
	"github.com/getkin/kin-openapi/openapi3"
)

// Index is the read-only lookup view of one OpenAPI document.
type Index struct {
	title       string
	version     string
	basePaths   []string
	templates   []*pathTemplate
	schemas     map[string]*openapi3.Schema
	schemaNames []string
}

// Operation is a resolved (method, path template) pair.
type Operation struct {
	Method   string
	Template string

	// Params holds the path parameter values bound from the request path.
	Params map[string]string

	def *operationDef
}

// Statuses returns the declared response keys, sorted.
func (op *Operation) Statuses() []string {
	return append([]string(nil), op.def.keys...)
}

// Miss describes a failed lookup. Kind is domain.Valid when the lookup
// succeeded.
type Miss struct {
	Kind domain.VerdictKind

	// Template and AllowedMethods are set when a template matched the path
	// but does not declare the requested method.
	Template       string
	AllowedMethods []string

	// Candidates lists what is declared at the level that failed, sorted.
	Candidates []string
}

// Found reports whether the lookup succeeded.
func (m Miss) Found() bool {
	return m.Kind == domain.Valid
}

type operationDef struct {
	responses map[string]*responseDef
	keys      []string
}

type responseDef struct {
	key         string
	description string
	media       map[string]*openapi3.Schema
	mediaTypes  []string
}

// Build indexes doc through its OpenAPI 3 form. A Swagger 2.0 basePath is
// kept as a server base path.
func Build(doc *specload.Document) (*Index, error) {
	if doc == nil {
		return nil, errors.New("nil OpenAPI document")
	}

	if doc.V3 == nil {
		return nil, errors.New("OpenAPI document has no content")
	}

	spec := doc.V3
	basePaths := serverBasePaths(spec.Servers)
	if doc.V2 != nil {
		basePaths = append(basePaths, doc.V2.BasePath)
	}

	idx := &Index{
		title:     doc.Title(),
		version:   doc.InfoVersion(),
		basePaths: normalizeBasePaths(basePaths),
		schemas:   make(map[string]*openapi3.Schema),
	}

	if spec.Paths != nil {
		for template, item := range spec.Paths.Map() {
			if item == nil {
				continue
			}

			pt, err := parseTemplate(template)
			if err != nil {
				return nil, err
			}
			pt.operations = indexOperations(item)
			idx.templates = append(idx.templates, pt)
		}
	}
	sort.Slice(idx.templates, func(i, j int) bool {
		return idx.templates[i].template < idx.templates[j].template
	})

	if spec.Components != nil {
		for name, ref := range spec.Components.Schemas {
			if ref == nil || ref.Value == nil {
				continue
			}
			idx.schemas[name] = ref.Value
			idx.schemaNames = append(idx.schemaNames, name)
		}
	}
	sort.Strings(idx.schemaNames)

	return idx, nil
}

func indexOperations(item *openapi3.PathItem) map[string]*operationDef {
	ops := make(map[string]*operationDef)

	for method, op := range item.Operations() {
		def := &operationDef{responses: make(map[string]*responseDef)}

		if op.Responses != nil {
			for key, ref := range op.Responses.Map() {
				if ref == nil || ref.Value == nil {
					continue
				}
				def.responses[key] = indexResponse(key, ref.Value)
				def.keys = append(def.keys, key)
			}
		}
		sort.Strings(def.keys)

		ops[method] = def
	}

	return ops
}

func indexResponse(key string, resp *openapi3.Response) *responseDef {
	rd := &responseDef{
		key:   key,
		media: make(map[string]*openapi3.Schema),
	}
	if resp.Description != nil {
		rd.description = *resp.Description
	}

	for mediaType, mt := range resp.Content {
		name := normalizeMediaType(mediaType)
		var schema *openapi3.Schema
		if mt != nil && mt.Schema != nil {
			schema = mt.Schema.Value
		}
		rd.media[name] = schema
		rd.mediaTypes = append(rd.mediaTypes, name)
	}
	sort.Strings(rd.mediaTypes)

	return rd
}

func serverBasePaths(servers openapi3.Servers) []string {
	var paths []string
	for _, server := range servers {
		bp, err := server.BasePath()
		if err != nil {
			continue
		}
		paths = append(paths, bp)
	}
	return paths
}

// normalizeBasePaths drops root and duplicate entries and orders the rest
// longest first.
func normalizeBasePaths(paths []string) []string {
	seen := make(map[string]struct{})
	var out []string

	for _, p := range paths {
		p = strings.TrimRight(p, "/")
		if p == "" {
			continue
		}
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return out[i] < out[j]
	})

	return out
}

// Title returns the document title.
func (idx *Index) Title() string {
	return idx.title
}

// Version returns the document's info.version.
func (idx *Index) Version() string {
	return idx.version
}

// BasePaths returns the server base paths stripped from request paths.
func (idx *Index) BasePaths() []string {
	return append([]string(nil), idx.basePaths...)
}

// Templates returns every path template, sorted.
func (idx *Index) Templates() []string {
	out := make([]string, len(idx.templates))
	for i, pt := range idx.templates {
		out[i] = pt.template
	}
	return out
}

// SchemaNames returns the named schema components, sorted.
func (idx *Index) SchemaNames() []string {
	return append([]string(nil), idx.schemaNames...)
}

// ResolveNamedSchema looks up a schema component by exact, case-sensitive name.
func (idx *Index) ResolveNamedSchema(name string) (*openapi3.Schema, bool) {
	schema, ok := idx.schemas[name]
	return schema, ok
}

// ResolveOperation finds the operation serving method on requestPath.
//
// Server base paths are stripped first (longest first), then the raw path
// is tried. Only templates with the same segment count that declare the
// method are considered; among matches the template with the fewest
// parameterized segments wins, then the one with more literal characters.
// Any remaining tie is reported as domain.AmbiguousPath.
func (idx *Index) ResolveOperation(method, requestPath string) (*Operation, Miss) {
	method = strings.ToUpper(method)
	if method == "" {
		method = http.MethodGet
	}

	var methodMiss *pathTemplate

	for _, candidate := range idx.candidatePaths(requestPath) {
		parts := splitPath(candidate)

		var (
			best   []*pathTemplate
			params map[string]string
		)
		for _, pt := range idx.templates {
			bound, ok := pt.match(parts)
			if !ok {
				continue
			}
			if _, declared := pt.operations[method]; !declared {
				if methodMiss == nil {
					methodMiss = pt
				}
				continue
			}

			switch {
			case len(best) == 0 || pt.moreSpecific(best[0]):
				best = []*pathTemplate{pt}
				params = bound
			case pt.sameSpecificity(best[0]):
				best = append(best, pt)
			}
		}

		switch len(best) {
		case 0:
			continue
		case 1:
			return &Operation{
				Method:   method,
				Template: best[0].template,
				Params:   params,
				def:      best[0].operations[method],
			}, Miss{}
		default:
			tied := make([]string, len(best))
			for i, pt := range best {
				tied[i] = pt.template
			}
			sort.Strings(tied)
			return nil, Miss{Kind: domain.AmbiguousPath, Candidates: tied}
		}
	}

	miss := Miss{Kind: domain.NoMatchingPath, Candidates: idx.Templates()}
	if methodMiss != nil {
		miss.Template = methodMiss.template
		miss.AllowedMethods = methodMiss.methods()
	}
	return nil, miss
}

// candidatePaths returns requestPath with each matching base path removed,
// followed by requestPath itself.
func (idx *Index) candidatePaths(requestPath string) []string {
	if i := strings.IndexAny(requestPath, "?#"); i >= 0 {
		requestPath = requestPath[:i]
	}
	if requestPath == "" {
		requestPath = "/"
	}

	var out []string
	for _, bp := range idx.basePaths {
		switch {
		case requestPath == bp:
			out = append(out, "/")
		case strings.HasPrefix(requestPath, bp+"/"):
			out = append(out, requestPath[len(bp):])
		}
	}

	return append(out, requestPath)
}
