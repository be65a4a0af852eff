// Package httputil centralizes JSON response writing so every handler emits
// the same envelope.
package httputil

import (
	"encoding/json"
	"net/http"

	dErrors "bankpanel/pkg/domain-errors"
)

// WriteJSON writes v as a JSON body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the standard error envelope.
// Internal errors omit the description so infrastructure details never leak
// to callers; everything else carries the human-readable message through.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeInternal
	description := ""
	field := ""
	if de, ok := err.(*dErrors.Error); ok {
		code = de.Code
		if code != dErrors.CodeInternal {
			description = de.Description
			field = de.Field
		}
	}

	body := map[string]string{"error": string(code)}
	if description != "" {
		body["error_description"] = description
	}
	if field != "" {
		body["field"] = field
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), body)
}
