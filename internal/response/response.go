// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package response writes the JSON envelopes used by the API. User routes
// wrap payloads in {statusCode, success, data, message}; errors always use
// {statusCode, success:false, message}. News routes reply with bare JSON
// via Raw.
package response

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"newsdesk/internal/apierr"
)

// Envelope is the success body for user routes.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
}

// errorBody is the failure body for every route.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Success    bool   `json:"success"`
	Message    string `json:"message"`
}

// OK writes a success envelope with the given status, payload, and message.
func OK(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, Envelope{
		StatusCode: status,
		Success:    true,
		Data:       data,
		Message:    message,
	})
}

// Raw writes a bare JSON body, used by news routes that mirror the
// shapes of the public feed rather than the user envelope.
func Raw(w http.ResponseWriter, status int, body any) {
	writeJSON(w, status, body)
}

// Err is the central error responder. Tagged errors map to their status
// code; anything else is logged and becomes a generic 500.
func Err(w http.ResponseWriter, err error) {
	ae := apierr.From(err)
	if ae == nil {
		slog.Error("unhandled error", "error", err)
		ae = apierr.Internal("Internal Server Error")
	}
	status := ae.Status()
	writeJSON(w, status, errorBody{
		StatusCode: status,
		Success:    false,
		Message:    ae.Message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
