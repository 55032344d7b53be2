// Package respond writes the API's JSON response bodies.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// messageBody is the {"message": ...} envelope used for errors and most
// mutations.
type messageBody struct {
	Message string `json:"message"`
}

// JSON writes v as JSON with the given status code. Encoding failures are
// logged; the status line has already been sent by then.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("encode response failed", "status", status, "error", err)
	}
}

// Message writes {"message": msg}.
func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, messageBody{Message: msg})
}
