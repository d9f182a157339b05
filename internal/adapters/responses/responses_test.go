package responses

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBody(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		contentType string
		want        any
		present     bool
	}{
		{name: "empty body is absent", raw: "", contentType: "application/json", want: nil, present: false},
		{name: "null literal is present", raw: "null", contentType: "application/json", want: nil, present: true},
		{name: "json object", raw: `{"id":1}`, contentType: "application/json; charset=utf-8", want: map[string]any{"id": 1.0}, present: true},
		{name: "json string", raw: `"hello"`, contentType: "application/json", want: "hello", present: true},
		{name: "vendor json", raw: `[1,2]`, contentType: "application/problem+json", want: []any{1.0, 2.0}, present: true},
		{name: "missing content type is attempted", raw: `{"a":true}`, contentType: "", want: map[string]any{"a": true}, present: true},
		{name: "invalid json falls back to text", raw: `not json`, contentType: "application/json", want: "not json", present: true},
		{name: "trailing data falls back to text", raw: `{} {}`, contentType: "application/json", want: "{} {}", present: true},
		{name: "text is kept raw", raw: `{"id":1}`, contentType: "text/plain", want: `{"id":1}`, present: true},
		{name: "xml is kept raw", raw: `<a/>`, contentType: "application/xml", want: `<a/>`, present: true},
		{name: "unknown type is attempted", raw: `42`, contentType: "application/x-custom", want: 42.0, present: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, present := DecodeBody([]byte(tt.raw), tt.contentType)
			assert.Equal(t, tt.present, present)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Trace", "abc")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":7}`)
	}))
	defer server.Close()

	resp, err := http.Post(server.URL+"/users?x=1", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	adapted, err := FromHTTP(resp)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, adapted.Status())
	assert.Equal(t, http.MethodPost, adapted.RequestMethod())
	assert.Equal(t, "/users", adapted.RequestPath())
	assert.Equal(t, "abc", adapted.Header("x-trace"))
	assert.Equal(t, "application/json", adapted.ContentType())

	body, present := adapted.BodyForValidation()
	assert.True(t, present)
	assert.Equal(t, map[string]any{"id": 7.0}, body)

	t.Run("body remains readable", func(t *testing.T) {
		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, `{"id":7}`, string(data))
	})
}

func TestFromHTTPWithoutBody(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusNoContent,
		Header:     http.Header{},
		Body:       http.NoBody,
	}

	adapted, err := FromHTTP(resp)
	require.NoError(t, err)

	body, present := adapted.BodyForValidation()
	assert.False(t, present)
	assert.Nil(t, body)
	assert.Empty(t, adapted.RequestMethod())
	assert.Empty(t, adapted.RequestPath())
}

func TestFromRecorder(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = io.WriteString(w, "pong")
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	adapted := FromRecorder(rec, req)
	assert.Equal(t, http.StatusOK, adapted.Status())
	assert.Equal(t, http.MethodGet, adapted.RequestMethod())
	assert.Equal(t, "/ping", adapted.RequestPath())
	assert.Equal(t, "text/plain", adapted.ContentType())

	body, present := adapted.BodyForValidation()
	assert.True(t, present)
	assert.Equal(t, "pong", body)
}

const exchangesYAML = `
exchanges:
  - name: get user
    method: GET
    path: /users/1
    status: 200
    headers:
      content-type: application/json
    body:
      id: 1
      name: Ada
  - method: DELETE
    path: /users/1
    status: 204
  - method: GET
    path: /text
    status: 200
    headers:
      Content-Type: application/json
    body: '{"raw": true}'
  - path: /nullable
    status: 200
    body: null
`

func TestParseExchanges(t *testing.T) {
	exchanges, err := ParseExchanges([]byte(exchangesYAML))
	require.NoError(t, err)
	require.Len(t, exchanges, 4)

	t.Run("structured body", func(t *testing.T) {
		e := exchanges[0]
		assert.Equal(t, "get user", e.Label())
		assert.Equal(t, 200, e.Status())
		assert.Equal(t, "application/json", e.ContentType())

		body, present := e.BodyForValidation()
		assert.True(t, present)
		assert.Equal(t, map[string]any{"id": 1.0, "name": "Ada"}, body)
	})

	t.Run("omitted body is absent", func(t *testing.T) {
		e := exchanges[1]
		assert.Equal(t, "DELETE /users/1 -> 204", e.Label())

		body, present := e.BodyForValidation()
		assert.False(t, present)
		assert.Nil(t, body)
	})

	t.Run("string body is decoded by content type", func(t *testing.T) {
		body, present := exchanges[2].BodyForValidation()
		assert.True(t, present)
		assert.Equal(t, map[string]any{"raw": true}, body)
	})

	t.Run("null body is present", func(t *testing.T) {
		e := exchanges[3]
		assert.Equal(t, http.MethodGet, e.RequestMethod())

		body, present := e.BodyForValidation()
		assert.True(t, present)
		assert.Nil(t, body)
	})
}

func TestParseExchangesErrors(t *testing.T) {
	_, err := ParseExchanges([]byte("exchanges: ["))
	assert.Error(t, err)

	_, err = ParseExchanges([]byte("exchanges:\n  - method: GET\n    path: /x\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has no status")
}

func TestLoadExchanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exchanges.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exchangesYAML), 0o600))

	exchanges, err := LoadExchanges(path)
	require.NoError(t, err)
	assert.Len(t, exchanges, 4)

	_, err = LoadExchanges(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestAdapt(t *testing.T) {
	t.Run("http response", func(t *testing.T) {
		resp := &http.Response{StatusCode: 200, Header: http.Header{}, Body: io.NopCloser(strings.NewReader("1"))}
		adapted, err := Adapt(resp)
		require.NoError(t, err)
		assert.IsType(t, &HTTP{}, adapted)
	})

	t.Run("exchange value", func(t *testing.T) {
		adapted, err := Adapt(Exchange{Method: "GET", Path: "/x", StatusCode: 200})
		require.NoError(t, err)
		assert.Equal(t, "/x", adapted.RequestPath())
	})

	t.Run("existing adapter passes through", func(t *testing.T) {
		rec := FromRecorder(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		adapted, err := Adapt(rec)
		require.NoError(t, err)
		assert.Same(t, rec, adapted.(*Recorder))
	})

	t.Run("unsupported values", func(t *testing.T) {
		for _, actual := range []any{nil, "text", 42, httptest.NewRecorder()} {
			_, err := Adapt(actual)
			assert.True(t, errors.Is(err, ErrUnsupportedResponse), "%T", actual)
		}
	})

	t.Run("nil http response yields a nil interface", func(t *testing.T) {
		adapted, err := Adapt((*http.Response)(nil))
		require.ErrorIs(t, err, ErrUnsupportedResponse)
		assert.True(t, adapted == nil, "got %#v", adapted)
	})

	var _ domain.Response = (*Exchange)(nil)
}
