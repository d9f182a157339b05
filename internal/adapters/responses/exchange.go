package responses

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/oasdiff/yaml"
)

// Exchange is a captured request/response pair, as stored in exchange files.
// Body holds either the raw body text as a string or the body as a
// structured YAML/JSON value; an omitted body means the response had none.
type Exchange struct {
	Name       string            `json:"name,omitempty"`
	Method     string            `json:"method"`
	Path       string            `json:"path"`
	StatusCode int               `json:"status"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       json.RawMessage   `json:"body,omitempty"`
}

type exchangeFile struct {
	Exchanges []Exchange `json:"exchanges"`
}

// LoadExchanges reads captured exchanges from a YAML or JSON file.
func LoadExchanges(path string) ([]Exchange, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read exchange file: %w", err)
	}

	return ParseExchanges(data)
}

// ParseExchanges decodes a document with a top-level "exchanges" list.
func ParseExchanges(data []byte) ([]Exchange, error) {
	var file exchangeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse exchange file: %w", err)
	}

	for i := range file.Exchanges {
		if file.Exchanges[i].StatusCode == 0 {
			return nil, fmt.Errorf("exchange %d (%s %s) has no status", i, file.Exchanges[i].Method, file.Exchanges[i].Path)
		}
	}

	return file.Exchanges, nil
}

// Label names the exchange in reports.
func (e *Exchange) Label() string {
	if e.Name != "" {
		return e.Name
	}
	return fmt.Sprintf("%s %s -> %d", e.RequestMethod(), e.Path, e.StatusCode)
}

func (e *Exchange) Status() int { return e.StatusCode }

func (e *Exchange) RequestMethod() string {
	if e.Method == "" {
		return http.MethodGet
	}
	return e.Method
}

func (e *Exchange) RequestPath() string { return e.Path }

// Header looks the name up case-insensitively.
func (e *Exchange) Header(name string) string {
	if value, ok := e.Headers[name]; ok {
		return value
	}

	canonical := http.CanonicalHeaderKey(name)
	for key, value := range e.Headers {
		if http.CanonicalHeaderKey(key) == canonical {
			return value
		}
	}

	return ""
}

func (e *Exchange) ContentType() string { return e.Header("Content-Type") }

// BodyForValidation decodes a string body by content type and returns a
// structured body as is.
func (e *Exchange) BodyForValidation() (any, bool) {
	if len(e.Body) == 0 {
		return nil, false
	}

	var value any
	if err := json.Unmarshal(e.Body, &value); err != nil {
		return DecodeBody(e.Body, e.ContentType())
	}

	if text, ok := value.(string); ok {
		return DecodeBody([]byte(text), e.ContentType())
	}

	return value, true
}
