// Package schemacheck runs structural JSON-Schema validation of decoded
// values and flattens the results into body-relative violations.
package schemacheck

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/getkin/kin-openapi/openapi3"
)

// Validate checks value against schema and returns every violation, in the
// order the schema engine reports them. A nil schema accepts any value.
func Validate(value any, schema *openapi3.Schema) []domain.Violation {
	if schema == nil {
		return nil
	}

	normalized, err := Normalize(value)
	if err != nil {
		return []domain.Violation{{Message: err.Error()}}
	}

	err = schema.VisitJSON(normalized, openapi3.MultiErrors(), openapi3.VisitAsResponse())
	if err == nil {
		return nil
	}

	return flatten(err, nil)
}

// Normalize converts value into the plain JSON shapes the schema engine
// understands (map[string]any, []any, float64, string, bool, nil). Values
// already in that shape are returned unchanged.
func Normalize(value any) (any, error) {
	if isPlainJSON(value) {
		return value, nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("value cannot be represented as JSON: %w", err)
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("value cannot be represented as JSON: %w", err)
	}

	return out, nil
}

func isPlainJSON(value any) bool {
	switch v := value.(type) {
	case nil, string, bool, float64, json.Number:
		return true
	case []any:
		for _, item := range v {
			if !isPlainJSON(item) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, item := range v {
			if !isPlainJSON(item) {
				return false
			}
		}
		return true
	}
	return false
}

func flatten(err error, out []domain.Violation) []domain.Violation {
	// Concrete types only: errors.As would see through to member and origin errors.
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, member := range e {
			out = flatten(member, out)
		}
		return out
	case *openapi3.SchemaError:
		return append(out, domain.Violation{
			Path:    pointer(e.JSONPointer()),
			Message: reason(e),
		})
	}

	return append(out, domain.Violation{Message: err.Error()})
}

func reason(err *openapi3.SchemaError) string {
	if err.Reason != "" {
		return err.Reason
	}
	if err.Origin != nil {
		return err.Origin.Error()
	}
	return fmt.Sprintf("doesn't match schema %q", err.SchemaField)
}

// pointer renders a JSON pointer from its tokens; the body root is "".
func pointer(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	escaped := make([]string, len(tokens))
	for i, tok := range tokens {
		tok = strings.ReplaceAll(tok, "~", "~0")
		escaped[i] = strings.ReplaceAll(tok, "/", "~1")
	}

	return "/" + strings.Join(escaped, "/")
}
