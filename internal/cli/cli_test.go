package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GabrielNunesIT/go-libs/logger"
	"github.com/GabrielNunesIT/openapi-matchers/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passingExchanges = `exchanges:
  - name: get user
    method: GET
    path: /users/1
    status: 200
    headers:
      Content-Type: application/json
    body: {id: 1, name: Ada}
  - method: DELETE
    path: /users/1
    status: 204
`

const failingExchanges = `exchanges:
  - name: bad user
    method: GET
    path: /users/1
    status: 200
    headers:
      Content-Type: application/json
    body: {id: 0}
  - name: unknown path
    method: GET
    path: /nowhere
    status: 200
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	app := New(logger.NewConsoleLogger(os.Stdout))
	app.SetOutput(&out)

	err := app.Run(args)

	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	spec := testutil.WriteSpec(t, "users.yaml", testutil.UsersV3)

	t.Run("passing exchanges", func(t *testing.T) {
		exchanges := writeFile(t, dir, "pass.yaml", passingExchanges)

		out, err := run(t, "validate", "--spec", spec, exchanges)
		require.NoError(t, err)
		assert.Contains(t, out, "Users API contract report")
		assert.Contains(t, out, "[PASS] get user (Valid)")
		assert.Contains(t, out, "[PASS] DELETE /users/1 -> 204 (Valid)")
		assert.Contains(t, out, "2 exchanges: 2 passed, 0 failed")
	})

	t.Run("failing exchanges", func(t *testing.T) {
		exchanges := writeFile(t, dir, "fail.yaml", failingExchanges)

		out, err := run(t, "validate", "-s", spec, "--title", "Nightly", exchanges)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrContractViolation))
		assert.Contains(t, err.Error(), "2 of 2 exchanges failed")

		assert.Contains(t, out, "Nightly")
		assert.Contains(t, out, "[FAIL] bad user (SchemaViolation)")
		assert.Contains(t, out, "[FAIL] unknown path (NoMatchingPath)")
		assert.Contains(t, out, "response.body/id")
	})

	t.Run("confluence report to a file", func(t *testing.T) {
		exchanges := writeFile(t, dir, "pass2.yaml", passingExchanges)
		output := filepath.Join(dir, "report.json")

		_, err := run(t, "validate", "--spec", spec, "-f", "confluence", "-o", output, exchanges)
		require.NoError(t, err)

		data, err := os.ReadFile(output)
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "doc", doc["type"])
	})

	t.Run("unsupported format", func(t *testing.T) {
		exchanges := writeFile(t, dir, "pass3.yaml", passingExchanges)

		_, err := run(t, "validate", "--spec", spec, "-f", "html", exchanges)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported format")
	})

	t.Run("missing spec", func(t *testing.T) {
		exchanges := writeFile(t, dir, "pass4.yaml", passingExchanges)

		_, err := run(t, "validate", exchanges)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no OpenAPI specification given")
	})

	t.Run("missing exchange file", func(t *testing.T) {
		_, err := run(t, "validate", "--spec", spec, filepath.Join(dir, "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read exchange file")
	})

	t.Run("requires an exchange file", func(t *testing.T) {
		_, err := run(t, "validate", "--spec", spec)
		assert.Error(t, err)
	})
}

func TestSchemaCommand(t *testing.T) {
	dir := t.TempDir()
	spec := testutil.WriteSpec(t, "users.yaml", testutil.UsersV3)

	t.Run("valid value", func(t *testing.T) {
		value := writeFile(t, dir, "user.yaml", "id: 3\nname: Grace\n")

		out, err := run(t, "schema", "--spec", spec, "User", value)
		require.NoError(t, err)
		assert.Contains(t, out, "value satisfied the 'User' schema defined in the API spec")
	})

	t.Run("invalid value", func(t *testing.T) {
		value := writeFile(t, dir, "bad.json", `{"id": "three"}`)

		out, err := run(t, "schema", "--spec", spec, "User", value)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrContractViolation))
		assert.Contains(t, out, "value/id")
	})

	t.Run("unknown schema", func(t *testing.T) {
		value := writeFile(t, dir, "any.json", `{}`)

		out, err := run(t, "schema", "--spec", spec, "NonExistentSchema", value)
		require.Error(t, err)
		assert.Contains(t, out, "Schemas found in the API spec: Error, User")
	})
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	spec := testutil.WriteSpec(t, "users.yaml", testutil.UsersV3)
	exchanges := writeFile(t, dir, "pass.yaml", passingExchanges)
	output := filepath.Join(dir, "report.txt")
	cfg := writeFile(t, dir, "matchers.yaml", "spec: "+spec+"\noutput: "+output+"\n")

	out, err := run(t, "validate", "--config", cfg, exchanges)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2 passed, 0 failed")
}
