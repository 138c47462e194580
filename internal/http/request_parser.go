// Package http provides HTTP server and handler implementations.
//
// This file implements parsing of request bodies that may arrive either as
// JSON objects or as form-encoded data.

package http

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const maxBodyBytes = 1 << 20

// ErrMalformedBody reports a body that is neither a JSON object nor form data.
var ErrMalformedBody = errors.New("malformed request body")

// RequestBodyParser handles different content types for request body parsing.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]any
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser reads the body once, capped at 1 MiB.
func NewRequestBodyParser(w http.ResponseWriter, r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	if r.Body == nil {
		return p
	}
	p.body, p.err = io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return p
}

// Parse decodes the body as JSON when declared or when it looks like an
// object, and as form data otherwise.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := strings.TrimSpace(string(p.body))
	if trimmed == "" {
		p.formData = url.Values{}
		return nil
	}

	if p.declaresJSON() || trimmed[0] == '{' || trimmed[0] == '[' {
		p.jsonData = make(map[string]any)
		if err := json.Unmarshal([]byte(trimmed), &p.jsonData); err != nil {
			p.jsonData = nil
			p.err = errors.Join(ErrMalformedBody, err)
			return p.err
		}
		if p.jsonData == nil {
			// literal null
			p.jsonData = make(map[string]any)
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(trimmed)
	if p.err != nil {
		p.err = errors.Join(ErrMalformedBody, p.err)
	}
	return p.err
}

func (p *RequestBodyParser) declaresJSON() bool {
	mediaType, _, err := mime.ParseMediaType(p.contentType)
	return err == nil && mediaType == "application/json"
}

// String returns a trimmed text field. Missing fields and JSON values that
// are not strings yield "".
func (p *RequestBodyParser) String(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key].(string); ok {
			return sanitizeInput(val)
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// Number returns a numeric field. JSON requires a number literal; form data
// accepts a decimal string.
func (p *RequestBodyParser) Number(key string) (float64, bool) {
	if p.jsonData != nil {
		val, ok := p.jsonData[key].(float64)
		return val, ok
	}
	if p.formData != nil {
		raw := strings.TrimSpace(p.formData.Get(key))
		if raw == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *JSONResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// RequireGET is a convenience function for read-only handlers.
func RequireGET(r *http.Request) *JSONResponseBuilder {
	return RequireMethod(r, http.MethodGet, http.MethodHead)
}
