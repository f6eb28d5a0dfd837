// internal/app/system/httpjson/httpjson.go

// Package httpjson writes the API's JSON envelopes. Every response body
// carries a success flag and a human-readable message; error helpers
// encode the taxonomy (not-found, forbidden, conflict, incompatible
// match, invalid state, unauthorized, internal) as HTTP statuses in one
// place so handlers never pick numbers ad hoc.
package httpjson

import (
	"encoding/json"
	"net/http"
)

// Envelope is the error/plain-message response body.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Write encodes v as JSON with the given status. v is expected to embed
// or include the success/message fields the API promises.
func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes a 200 envelope with just a message.
func OK(w http.ResponseWriter, message string) {
	Write(w, http.StatusOK, Envelope{Success: true, Message: message})
}

// Fail writes an error envelope with an explicit status.
func Fail(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Success: false, Message: message})
}

// BadRequest reports a malformed or invalid request (400).
func BadRequest(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// Unauthorized reports a missing or invalid credential (401).
func Unauthorized(w http.ResponseWriter, message string) {
	Fail(w, http.StatusUnauthorized, message)
}

// Forbidden reports a role or ownership violation (403).
func Forbidden(w http.ResponseWriter, message string) {
	Fail(w, http.StatusForbidden, message)
}

// NotFound reports an absent referenced entity (404).
func NotFound(w http.ResponseWriter, message string) {
	Fail(w, http.StatusNotFound, message)
}

// Conflict reports a duplicate (409), e.g. a second match for the same
// user/opportunity pair.
func Conflict(w http.ResponseWriter, message string) {
	Fail(w, http.StatusConflict, message)
}

// TooManyRequests reports a rate-limited request (429).
func TooManyRequests(w http.ResponseWriter, message string) {
	Fail(w, http.StatusTooManyRequests, message)
}

// IncompatibleMatch reports the business-rule mismatch between a user's
// client type and an opportunity's industry. Reported as a 400-class
// error.
func IncompatibleMatch(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// InvalidState reports a notification state-machine violation (400).
func InvalidState(w http.ResponseWriter, message string) {
	Fail(w, http.StatusBadRequest, message)
}

// Internal reports a storage or unexpected failure (500) without
// leaking internals beyond the message.
func Internal(w http.ResponseWriter, message string) {
	Fail(w, http.StatusInternalServerError, message)
}
