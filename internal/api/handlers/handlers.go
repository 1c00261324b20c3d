// Package handlers holds the helpers shared by the per-operation HTTP
// handler packages: JSON decoding and the {code, message} error envelope.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Stable error codes clients switch on.
const (
	CodeBadRequest            = "BAD_REQUEST"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeNotFound              = "NOT_FOUND"
	CodeNotFoundTicket        = "NOT_FOUND_TICKET"
	CodeAlreadyExists         = "ALREADY_EXISTS"
	CodeInvalidReservedAt     = "INVALID_RESERVED_AT"
	CodeInvalidAttendanceTime = "INVALID_ATTENDANCE_TIME"
	CodeInvalidEndAt          = "INVALID_END_AT"
	CodeLimitExceeded         = "LIMIT_EXCEEDED"
	CodeConflict              = "CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// ErrorResponse is the error envelope every endpoint returns.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// maxBodySize caps request bodies at 1 MiB; the CSV import overrides this.
const maxBodySize = 1 << 20

// DecodeJSON decodes a JSON request body, rejecting unknown fields and
// trailing garbage.
func DecodeJSON(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}

	if decoder.More() {
		return errors.New("decode body: unexpected trailing data")
	}

	return nil
}

// RespondJSON writes a JSON response.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError writes the error envelope.
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// RespondBadRequest writes a 400 with the generic bad-request code.
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeBadRequest, message)
}

// RespondNotFound writes a 404.
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondConflict writes a 409.
func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

// RespondInternalError writes a 500 without leaking details.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, "internal server error")
}

// RespondNoContent writes a 204.
func RespondNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
