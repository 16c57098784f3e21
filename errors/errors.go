// Package errors provides error handling for godot-typegen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints surfaced to operators on fatal exits
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := doSomething(); err != nil {
//	    return errors.Wrap(err, "failed to do something")
//	}
//
//	// Add hints for users
//	return errors.WithHint(err, "pass --api-file to reuse an existing dump")
//
//	// Check errors
//	if errors.Is(err, errors.ErrSchemaMissing) {
//	    // handle missing schema
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Mark          = crdb.Mark
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	GetAllDetails = crdb.GetAllDetails
	FlattenHints  = crdb.FlattenHints
)

// Assertions
var (
	AssertionFailedf = crdb.AssertionFailedf
)

// Sentinel errors for the generation pipeline.
// Use these with errors.Is() for type-safe error checking.
// Wrap these with errors.Wrap() to add context while preserving the type.
var (
	// ErrSchemaMissing indicates the extension API dump does not exist
	ErrSchemaMissing = New("extension API schema missing")

	// ErrSchemaMalformed indicates the extension API dump could not be decoded
	ErrSchemaMalformed = New("extension API schema malformed")

	// ErrEngineUnavailable indicates no Godot binary could produce a dump
	ErrEngineUnavailable = New("godot engine unavailable")

	// ErrConsumerMissing indicates an expected consumer source file is absent
	ErrConsumerMissing = New("consumer file missing")

	// ErrStale indicates generated artifacts differ from a fresh render
	ErrStale = New("generated artifacts out of date")
)

// IsSchemaError reports whether err is a schema load or decode failure.
func IsSchemaError(err error) bool {
	return err != nil && IsAny(err, ErrSchemaMissing, ErrSchemaMalformed)
}

// IsEngineUnavailableError reports whether err is or wraps ErrEngineUnavailable.
func IsEngineUnavailableError(err error) bool {
	return err != nil && Is(err, ErrEngineUnavailable)
}

// NewSchemaMalformedError creates a malformed-schema error with a formatted message.
func NewSchemaMalformedError(format string, args ...interface{}) error {
	return Wrap(ErrSchemaMalformed, Newf(format, args...).Error())
}
