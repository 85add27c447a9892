package handler

import (
	"encoding/json"
	"net/http"
)

// envelope is the response wrapper for write operations and all errors:
// {success, data} on success, {success, error} on failure. Reads return the
// document directly, without the wrapper.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// writeJSON serializes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a {success:false, error} body with the given status.
// The message is the user-facing text; internal error detail goes to the
// request log, never to the client.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}
