package specindex

import (
	"strconv"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

const (
	defaultResponseKey = "default"
	jsonMediaType      = "application/json"
	anyMediaType       = "*/*"
)

// Expectation is the declared response a concrete response is checked against.
type Expectation struct {
	// ResponseKey is the declared status key that matched ("200", "2XX", "default").
	ResponseKey string
	Description string

	// NoContent is true when the response declares no content at all.
	NoContent bool

	// MediaType is the declared media type that matched.
	MediaType string

	// Schema is nil when the media type declares no schema.
	Schema *openapi3.Schema
}

// ResolveResponseSchema selects the declared response for status and
// contentType.
//
// Status lookup tries the exact code, then the "NXX" range, then "default".
// Media type lookup ignores parameters and case and tries the exact type,
// then "type/*", then "*/*". When the response carries no content type, a
// sole declared media type (or application/json when declared) matches
// implicitly. A response declared without content matches any content type.
// On a content type miss the returned Expectation still names the response.
func (idx *Index) ResolveResponseSchema(op *Operation, status int, contentType string) (*Expectation, Miss) {
	resp := op.def.response(status)
	if resp == nil {
		return nil, Miss{Kind: domain.NoMatchingStatus, Candidates: op.Statuses()}
	}

	exp := &Expectation{
		ResponseKey: resp.key,
		Description: resp.description,
	}

	if len(resp.media) == 0 {
		exp.NoContent = true
		return exp, Miss{}
	}

	mediaType, ok := resp.mediaType(contentType)
	if !ok {
		return exp, Miss{
			Kind:       domain.NoMatchingContentType,
			Candidates: append([]string(nil), resp.mediaTypes...),
		}
	}

	exp.MediaType = mediaType
	exp.Schema = resp.media[mediaType]

	return exp, Miss{}
}

func (def *operationDef) response(status int) *responseDef {
	code := strconv.Itoa(status)
	if resp, ok := def.responses[code]; ok {
		return resp
	}

	if status >= 100 && status < 600 {
		rangeKey := code[:1] + "XX"
		if resp, ok := def.responses[rangeKey]; ok {
			return resp
		}
		if resp, ok := def.responses[strings.ToLower(rangeKey)]; ok {
			return resp
		}
	}

	if resp, ok := def.responses[defaultResponseKey]; ok {
		return resp
	}

	return nil
}

func (rd *responseDef) mediaType(contentType string) (string, bool) {
	ct := normalizeMediaType(contentType)

	if ct == "" {
		switch {
		case len(rd.mediaTypes) == 1:
			return rd.mediaTypes[0], true
		case rd.has(jsonMediaType):
			return jsonMediaType, true
		case rd.has(anyMediaType):
			return anyMediaType, true
		}
		return "", false
	}

	if rd.has(ct) {
		return ct, true
	}

	if slash := strings.IndexByte(ct, '/'); slash > 0 {
		if wildcard := ct[:slash] + "/*"; rd.has(wildcard) {
			return wildcard, true
		}
	}

	if rd.has(anyMediaType) {
		return anyMediaType, true
	}

	return "", false
}

func (rd *responseDef) has(mediaType string) bool {
	_, ok := rd.media[mediaType]
	return ok
}

// normalizeMediaType lowercases a media type and strips its parameters.
func normalizeMediaType(mediaType string) string {
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
