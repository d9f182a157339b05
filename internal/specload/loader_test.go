package specload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielNunesIT/openapi-matchers/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadData(t *testing.T) {
	t.Run("loads an OpenAPI 3 document", func(t *testing.T) {
		doc, err := LoadData([]byte(testutil.UsersV3))
		require.NoError(t, err)
		require.NotNil(t, doc.V3)
		assert.Nil(t, doc.V2)
		assert.False(t, doc.IsV2())
		assert.Equal(t, "3.0.3", doc.Version)
		assert.Equal(t, "1.0.0", doc.InfoVersion())
		assert.Equal(t, "Users API", doc.Title())

		user := doc.V3.Paths.Value("/users/{id}").Get.Responses.Status(200).Value.Content["application/json"].Schema
		require.NotNil(t, user.Value, "refs must be dereferenced")
		assert.Contains(t, user.Value.Properties, "name")
	})

	t.Run("loads a Swagger 2.0 document", func(t *testing.T) {
		doc, err := LoadData([]byte(testutil.UsersV2))
		require.NoError(t, err)
		require.NotNil(t, doc.V2)
		assert.True(t, doc.IsV2())
		assert.Equal(t, "2.0", doc.Version)
		assert.Equal(t, "1.0.0", doc.InfoVersion())
		assert.Equal(t, "/v2", doc.V2.BasePath)
		assert.Contains(t, doc.V2.Definitions, "User")

		require.NotNil(t, doc.V3, "Swagger 2.0 is converted on load")
		assert.Contains(t, doc.V3.Components.Schemas, "User")
	})

	t.Run("loads JSON documents", func(t *testing.T) {
		doc, err := LoadData([]byte(`{"openapi":"3.0.0","info":{"title":"j","version":"1"},"paths":{}}`))
		require.NoError(t, err)
		assert.Equal(t, "j", doc.Title())
	})

	t.Run("rejects unknown versions", func(t *testing.T) {
		_, err := LoadData([]byte("openapi: 4.0.0\ninfo: {title: x, version: '1'}\npaths: {}\n"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)

		_, err = LoadData([]byte("swagger: '1.2'\n"))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)

		_, err = LoadData([]byte("info: {title: x}\n"))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := LoadData([]byte("openapi: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})

	t.Run("reports unresolved references", func(t *testing.T) {
		broken := `openapi: 3.0.3
info: {title: x, version: "1"}
paths:
  /a:
    get:
      responses:
        "200":
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Missing'
`
		_, err := LoadData([]byte(broken))
		assert.Error(t, err)
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("loads from disk", func(t *testing.T) {
		path := testutil.WriteSpec(t, "openapi.yaml", testutil.UsersV3)

		doc, err := LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, path, doc.Location)
		assert.NotNil(t, doc.V3)
	})

	t.Run("errors on a missing file", func(t *testing.T) {
		_, err := LoadFile("does-not-exist.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read OpenAPI file")
	})

	t.Run("validation rejects non-compliant documents", func(t *testing.T) {
		invalid := `openapi: 3.0.3
info:
  version: "1"
paths: {}
`
		path := testutil.WriteSpec(t, "invalid.yaml", invalid)

		_, err := LoadFile(path)
		require.NoError(t, err, "validation is opt-in")

		_, err = LoadFile(path, WithValidation())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid OpenAPI document")
	})

	t.Run("validation accepts compliant documents", func(t *testing.T) {
		valid := `openapi: 3.0.3
info:
  title: ok
  version: "1"
paths:
  /ping:
    get:
      responses:
        "200":
          description: pong
`
		path := testutil.WriteSpec(t, "valid.yaml", valid)

		_, err := LoadFile(path, WithValidation())
		assert.NoError(t, err)
	})
}

const swaggerWithExternalRef = `swagger: "2.0"
info: {title: split, version: "1"}
paths:
  /users/{id}:
    get:
      produces: [application/json]
      parameters:
        - {name: id, in: path, required: true, type: string}
      responses:
        "200":
          description: one user
          schema:
            $ref: 'defs.yaml#/User'
`

const swaggerDefs = `User:
  type: object
  required: [id]
  properties:
    id: {type: integer}
    name: {type: string}
`

func TestLoadFileSwagger2(t *testing.T) {
	t.Run("follows references to sibling files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "swagger.yaml")
		require.NoError(t, os.WriteFile(path, []byte(swaggerWithExternalRef), 0o600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "defs.yaml"), []byte(swaggerDefs), 0o600))

		doc, err := LoadFile(path)
		require.NoError(t, err)
		require.True(t, doc.IsV2())

		schema := doc.V3.Paths.Value("/users/{id}").Get.Responses.Status(200).Value.Content["application/json"].Schema
		require.NotNil(t, schema.Value)
		assert.Contains(t, schema.Value.Properties, "name")
		assert.Equal(t, []string{"id"}, schema.Value.Required)
	})

	t.Run("in-memory documents do not follow external references", func(t *testing.T) {
		_, err := LoadData([]byte(swaggerWithExternalRef))
		assert.Error(t, err)
	})

	t.Run("validation rejects non-compliant documents", func(t *testing.T) {
		invalid := `swagger: "2.0"
info: {title: broken, version: "1"}
paths:
  /a:
    get:
      produces: [application/json]
      responses:
        "200":
          schema:
            type: nonsense
`
		path := testutil.WriteSpec(t, "swagger.yaml", invalid)

		_, err := LoadFile(path)
		require.NoError(t, err, "validation is opt-in")

		_, err = LoadFile(path, WithValidation())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid OpenAPI document")
	})
}

func TestFromV2(t *testing.T) {
	decoded, err := LoadData([]byte(testutil.UsersV2))
	require.NoError(t, err)

	doc, err := FromV2(decoded.V2)
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc.Version)
	assert.Empty(t, doc.Location)
	assert.Same(t, decoded.V2, doc.V2)
	assert.Contains(t, doc.V3.Components.Schemas, "User")
}
