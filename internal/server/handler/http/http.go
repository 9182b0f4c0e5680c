// Package http provides HTTP handlers for the todo API: signup, login,
// logout, and per-user todo management.
package http

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// message is the generic confirmation payload.
type message struct {
	Message string `json:"message"`
}
