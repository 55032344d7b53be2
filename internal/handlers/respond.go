// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API. Handlers validate input,
// call the services and map typed service errors to status codes.
package handlers

import (
	"log/slog"
	"net/http"

	"funews/internal/middleware"
	"funews/internal/respond"
	"funews/internal/service"
)

// createdResponse is returned with 201 after a create.
type createdResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// canDeleteResponse answers the can-delete probes.
type canDeleteResponse struct {
	CanDelete bool `json:"canDelete"`
}

// statusFor maps a service error kind to an HTTP status. Business rule
// conflicts are reported as 400.
func statusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict, service.KindValidation:
		return http.StatusBadRequest
	case service.KindForbidden:
		return http.StatusForbidden
	case service.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports err to the client. Typed service errors carry their own
// message; anything else is logged and reported as "An error occurred
// while <action>".
func writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	if se, ok := service.AsError(err); ok {
		respond.Message(w, statusFor(se.Kind), se.Message)
		return
	}
	slog.Error("request failed",
		"error", err,
		"action", action,
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.RequestIDFromCtx(r.Context()),
	)
	respond.Message(w, http.StatusInternalServerError, "An error occurred while "+action)
}
