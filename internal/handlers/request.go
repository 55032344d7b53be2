package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"funews/internal/middleware"
	"funews/internal/models"
	"funews/internal/service"
)

const (
	// maxBodyBytes caps JSON request bodies.
	maxBodyBytes = 1 << 20

	msgInvalidToken    = "Invalid token"
	msgSearchRequired  = "Search term is required"
	msgInvalidDates    = "startDate and endDate must be valid dates (YYYY-MM-DD or RFC 3339)"
	msgInvalidID       = "Invalid id."
	msgInvalidJSONBody = "Request body must be valid JSON."
)

// decodeJSON decodes a single JSON object from the body, rejecting unknown
// fields and trailing data. The returned string is a client-facing message.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) string {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, io.EOF):
			return "Request body is required."
		case errors.As(err, &maxErr):
			return "Request body is too large."
		case errors.As(err, &typeErr):
			return fmt.Sprintf("Field %q has the wrong type.", typeErr.Field)
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			return fmt.Sprintf("Unknown field %s.", strings.TrimPrefix(err.Error(), "json: unknown field "))
		default:
			return msgInvalidJSONBody
		}
	}
	if dec.More() {
		return msgInvalidJSONBody
	}
	return ""
}

// pathID parses a positive integer URL parameter.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// searchTerm returns the trimmed searchTerm query parameter.
func searchTerm(r *http.Request) (string, bool) {
	term := strings.TrimSpace(r.URL.Query().Get("searchTerm"))
	return term, term != ""
}

// dateLayouts are tried in order for date query parameters. Values without
// a zone are read as UTC, so a bare date means midnight UTC of that day.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// dateRange reads the startDate and endDate query parameters.
func dateRange(r *http.Request) (from, to time.Time, ok bool) {
	q := r.URL.Query()
	from, okFrom := parseDate(strings.TrimSpace(q.Get("startDate")))
	to, okTo := parseDate(strings.TrimSpace(q.Get("endDate")))
	return from, to, okFrom && okTo
}

// caller builds the service caller from the request's token claims.
func caller(r *http.Request) (service.Caller, bool) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil {
		return service.Caller{}, false
	}
	id, err := claims.AccountID()
	if err != nil {
		return service.Caller{}, false
	}
	return service.Caller{ID: id, Role: models.Role(claims.Role)}, true
}
