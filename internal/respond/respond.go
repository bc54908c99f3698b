// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package respond writes the JSON envelopes shared by every handler.
// Success bodies are handler-shaped; error bodies always carry an error
// kind and a human-readable message.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkpress/internal/apperr"
)

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// Raw writes a pre-encoded JSON payload, such as a cached response body.
func Raw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		slog.Error("write response", "error", err)
	}
}

// Error maps err onto the {error, message} envelope, deriving the
// status code from the error's kind. Errors without a kind are treated
// as internal server errors and logged, wrapped cause included.
func Error(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindStore {
		slog.Error("request failed", "error", appErr)
	}
	JSON(w, appErr.Kind.Status(), map[string]string{
		"error":   string(appErr.Kind),
		"message": appErr.Message,
	})
}
