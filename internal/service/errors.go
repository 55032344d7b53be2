// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service holds the business rules for accounts, categories, tags,
// news articles and reports. Services run every multi-step write through a
// store.UnitOfWork and report rule violations as *Error values.
package service

import (
	"errors"

	"funews/internal/store"
)

// Kind classifies a business error for the transport layer.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindConflict
	KindValidation
	KindForbidden
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindForbidden:
		return "forbidden"
	case KindUnauthorized:
		return "unauthorized"
	}
	return "unknown"
}

// Error is a business rule violation. Message is safe to show to clients.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches any *Error of the same kind when target has no message, so
// errors.Is(err, ErrNotFound) works for every not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
)

func notFound(msg string) error     { return &Error{Kind: KindNotFound, Message: msg} }
func conflict(msg string) error     { return &Error{Kind: KindConflict, Message: msg} }
func invalid(msg string) error      { return &Error{Kind: KindValidation, Message: msg} }
func forbidden(msg string) error    { return &Error{Kind: KindForbidden, Message: msg} }
func unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

// AsError extracts the business error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// duplicateAs turns a unique-index violation into a conflict carrying msg.
// Any other error is returned unchanged.
func duplicateAs(err error, msg string) error {
	if errors.Is(err, store.ErrDuplicate) {
		return conflict(msg)
	}
	return err
}

// missingAs turns a store.ErrNotFound from a mutation into a not-found
// business error carrying msg.
func missingAs(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(msg)
	}
	return err
}
