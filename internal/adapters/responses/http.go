package responses

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/GabrielNunesIT/openapi-matchers/internal/domain"
)

// ErrUnsupportedResponse is returned by Adapt for values it cannot wrap.
var ErrUnsupportedResponse = errors.New("unsupported response type")

// HTTP adapts a net/http client response.
type HTTP struct {
	resp    *http.Response
	body    any
	hasBody bool
}

// FromHTTP reads and buffers the response body, then restores it so the
// caller can read it again.
func FromHTTP(resp *http.Response) (*HTTP, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil *http.Response", ErrUnsupportedResponse)
	}

	var raw []byte
	if resp.Body != nil && resp.Body != http.NoBody {
		data, err := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response body: %w", err)
		}
		raw = data
		resp.Body = io.NopCloser(bytes.NewReader(raw))
	}

	body, ok := DecodeBody(raw, resp.Header.Get("Content-Type"))

	return &HTTP{resp: resp, body: body, hasBody: ok}, nil
}

func (h *HTTP) Status() int { return h.resp.StatusCode }

func (h *HTTP) RequestMethod() string {
	if h.resp.Request == nil {
		return ""
	}
	return h.resp.Request.Method
}

func (h *HTTP) RequestPath() string {
	if h.resp.Request == nil || h.resp.Request.URL == nil {
		return ""
	}
	return h.resp.Request.URL.Path
}

func (h *HTTP) Header(name string) string { return h.resp.Header.Get(name) }

func (h *HTTP) ContentType() string { return h.Header("Content-Type") }

func (h *HTTP) BodyForValidation() (any, bool) { return h.body, h.hasBody }

// Recorder adapts an httptest.ResponseRecorder together with the request
// that was served into it.
type Recorder struct {
	rec     *httptest.ResponseRecorder
	req     *http.Request
	body    any
	hasBody bool
}

// FromRecorder wraps a recorder after the handler has finished writing.
func FromRecorder(rec *httptest.ResponseRecorder, req *http.Request) *Recorder {
	var raw []byte
	if rec.Body != nil {
		raw = rec.Body.Bytes()
	}

	body, ok := DecodeBody(raw, rec.Header().Get("Content-Type"))

	return &Recorder{rec: rec, req: req, body: body, hasBody: ok}
}

func (r *Recorder) Status() int { return r.rec.Code }

func (r *Recorder) RequestMethod() string {
	if r.req == nil {
		return ""
	}
	return r.req.Method
}

func (r *Recorder) RequestPath() string {
	if r.req == nil || r.req.URL == nil {
		return ""
	}
	return r.req.URL.Path
}

func (r *Recorder) Header(name string) string { return r.rec.Header().Get(name) }

func (r *Recorder) ContentType() string { return r.Header("Content-Type") }

func (r *Recorder) BodyForValidation() (any, bool) { return r.body, r.hasBody }

// Adapt picks the adapter for actual. Values that already implement
// domain.Response are returned unchanged.
func Adapt(actual any) (domain.Response, error) {
	switch resp := actual.(type) {
	case nil:
		return nil, fmt.Errorf("%w: <nil>", ErrUnsupportedResponse)
	case *http.Response:
		adapted, err := FromHTTP(resp)
		if err != nil {
			return nil, err
		}
		return adapted, nil
	case Exchange:
		return &resp, nil
	case *httptest.ResponseRecorder:
		return nil, fmt.Errorf("%w: %T carries no request, wrap it with FromRecorder", ErrUnsupportedResponse, actual)
	case domain.Response:
		return resp, nil
	}

	return nil, fmt.Errorf("%w: %T", ErrUnsupportedResponse, actual)
}
