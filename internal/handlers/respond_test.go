package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"funews/internal/service"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		kind service.Kind
		want int
	}{
		{service.KindNotFound, http.StatusNotFound},
		{service.KindConflict, http.StatusBadRequest},
		{service.KindValidation, http.StatusBadRequest},
		{service.KindForbidden, http.StatusForbidden},
		{service.KindUnauthorized, http.StatusUnauthorized},
		{service.Kind(0), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.kind); got != tt.want {
			t.Errorf("statusFor(%v): got %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestWriteError(t *testing.T) {
	t.Run("business error keeps its message", func(t *testing.T) {
		rr := httptest.NewRecorder()
		err := fmt.Errorf("wrapped: %w", &service.Error{Kind: service.KindConflict, Message: "Email already exists."})
		writeError(rr, httptest.NewRequest(http.MethodPost, "/api/account", nil), err, "creating account")
		expect(t, rr, http.StatusBadRequest, "Email already exists.")
	})

	t.Run("internal error hides the cause", func(t *testing.T) {
		rr := httptest.NewRecorder()
		writeError(rr, httptest.NewRequest(http.MethodGet, "/api/tag", nil), errors.New("pq: connection refused"), "getting tags")
		expect(t, rr, http.StatusInternalServerError, "An error occurred while getting tags")
	})
}
