// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Services are replaced by stubs so each test drives one handler.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"funews/internal/auth"
	"funews/internal/middleware"
	"funews/internal/models"
)

// withChiURLParam adds chi URL parameters to a request, as the router would.
func withChiURLParam(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withCaller attaches claims for the given account to the request.
func withCaller(r *http.Request, id int64, role models.Role) *http.Request {
	claims := &auth.Claims{
		Email: "caller@funews.local",
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:      "jti-" + strconv.FormatInt(id, 10),
			Subject: strconv.FormatInt(id, 10),
		},
	}
	return r.WithContext(middleware.WithClaims(r.Context(), claims))
}

// newRequest builds a request with an optional JSON body.
func newRequest(method, target, body string) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

// serve runs h and returns the recorder.
func serve(h http.HandlerFunc, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

// messageResponse mirrors the {"message": ...} body.
type messageResponse struct {
	Message string `json:"message"`
}

// messageOf decodes a {"message": ...} body.
func messageOf(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body messageResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rr.Body.String(), err)
	}
	return body.Message
}

// expect checks the status and, when msg is non-empty, the message.
func expect(t *testing.T, rr *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("status: got %d, want %d (body %s)", rr.Code, status, rr.Body.String())
	}
	if msg != "" {
		if got := messageOf(t, rr); got != msg {
			t.Errorf("message: got %q, want %q", got, msg)
		}
	}
}
