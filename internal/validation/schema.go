package validation

import (
	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/GabrielNunesIT/openapi-matchers/internal/specindex"
)

// ValidateAgainstNamedSchema checks value against the schema component name.
// It returns a NoSuchSchema verdict listing the declared schema names when
// name is unknown.
func ValidateAgainstNamedSchema(value any, name string, idx *specindex.Index) domain.Verdict {
	verdict := domain.Verdict{SchemaName: name}

	schema, ok := idx.ResolveNamedSchema(name)
	if !ok {
		verdict.Kind = domain.NoSuchSchema
		verdict.Candidates = idx.SchemaNames()
		return verdict
	}

	return checkBody(verdict, value, schema)
}
