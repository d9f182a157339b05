// Package responses adapts HTTP responses from different client shapes to
// the canonical domain.Response.
package responses

import (
	"bytes"
	"encoding/json"
	"mime"
	"strings"
)

// DecodeBody decodes a raw transport body for validation. An empty body
// yields (nil, false). JSON-like and unknown content types are decoded as
// JSON, falling back to the raw text when the body is not valid JSON; any
// other content type yields the raw text.
func DecodeBody(raw []byte, contentType string) (any, bool) {
	if len(raw) == 0 {
		return nil, false
	}

	if !isJSONLike(contentType) {
		return string(raw), true
	}

	var value any
	decoder := json.NewDecoder(bytes.NewReader(raw))
	if err := decoder.Decode(&value); err != nil || decoder.More() {
		return string(raw), true
	}

	return value, true
}

// isJSONLike reports whether a body of the given content type should be
// decoded as JSON. Missing and unrecognized types are attempted.
func isJSONLike(contentType string) bool {
	if strings.TrimSpace(contentType) == "" {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	}

	if mediaType == "application/json" || strings.HasSuffix(mediaType, "+json") {
		return true
	}

	for _, prefix := range textualPrefixes {
		if strings.HasPrefix(mediaType, prefix) {
			return false
		}
	}

	return !strings.HasSuffix(mediaType, "/xml") && !strings.HasSuffix(mediaType, "+xml")
}

var textualPrefixes = []string{"text/", "image/", "audio/", "video/", "multipart/"}
