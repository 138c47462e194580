// Package http provides HTTP server and handler implementations.
//
// This file implements a builder for the JSON envelope every API route
// answers with: {"status": "success"|"error", ...}.

package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

const (
	envelopeSuccess = "success"
	envelopeError   = "error"
)

// JSONResponseBuilder provides a fluent API for building enveloped JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	fields     map[string]any
	headers    map[string]string
}

// NewJSONResponse creates a success envelope with a 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		fields:     map[string]any{"status": envelopeSuccess},
		headers:    make(map[string]string),
	}
}

// Status sets the HTTP status code for the response.
func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

// Field adds a top-level payload field.
func (b *JSONResponseBuilder) Field(key string, value any) *JSONResponseBuilder {
	b.fields[key] = value
	return b
}

// Message sets the human-readable message.
func (b *JSONResponseBuilder) Message(msg string) *JSONResponseBuilder {
	return b.Field("message", msg)
}

// Header adds a custom response header.
func (b *JSONResponseBuilder) Header(key, value string) *JSONResponseBuilder {
	b.headers[key] = value
	return b
}

// Failed marks the envelope as an error.
func (b *JSONResponseBuilder) Failed() *JSONResponseBuilder {
	b.fields["status"] = envelopeError
	return b
}

// StatusCode returns the status the response will be written with.
func (b *JSONResponseBuilder) StatusCode() int {
	return b.statusCode
}

// Write sends the response to the client.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	body, err := json.Marshal(b.fields)
	if err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		body = []byte(`{"status":"error","message":"internal error"}`)
		b.statusCode = http.StatusInternalServerError
	}

	for key, value := range b.headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(body)
}

// Created returns a 201 envelope carrying a message and the new record's id.
func Created(msg string, id int64) *JSONResponseBuilder {
	return NewJSONResponse().Status(http.StatusCreated).Message(msg).Field("id", id)
}

// ErrorResponse returns an error envelope with the given status.
func ErrorResponse(code int, msg string) *JSONResponseBuilder {
	return NewJSONResponse().Failed().Status(code).Message(msg)
}

// BadRequestError returns a 400 error envelope.
func BadRequestError(msg string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, msg)
}

// InternalError returns a 500 error envelope.
func InternalError(msg string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, msg)
}

// MethodNotAllowedError returns a 405 envelope with the Allow header set.
func MethodNotAllowedError(allowed string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusMethodNotAllowed, msgMethodNotAllowed).Header("Allow", allowed)
}

// TooManyRequestsError returns a 429 envelope with Retry-After.
func TooManyRequestsError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusTooManyRequests, msgRateLimited).Header("Retry-After", "60")
}

// NotFoundError returns a 404 envelope.
func NotFoundError() *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, msgNotFound)
}
