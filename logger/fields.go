package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across the
// generator. Use these constants instead of raw strings to ensure
// consistency.
const (
	// Components
	FieldComponent = "component"

	// Pipeline subjects
	FieldClass    = "class"
	FieldCategory = "category"
	FieldArtifact = "artifact"
	FieldEngine   = "engine"
	FieldGate     = "gate"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"

	// Files and processes
	FieldFile   = "file"
	FieldPath   = "path"
	FieldBinary = "binary"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Pipeline struct {
//	    log *zap.SugaredLogger
//	}
//
//	func NewPipeline() *Pipeline {
//	    return &Pipeline{
//	        log: logger.ComponentLogger("pipeline"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	emitLogger := logger.ChildLogger(baseLogger, "artifact", path)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
