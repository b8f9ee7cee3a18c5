package model

import (
	"errors"
	"fmt"
)

// FailureKind classifies pipeline failures for callers and tests
type FailureKind string

const (
	FailureConfig          FailureKind = "config"               // Missing or invalid credentials/settings
	FailureFetch           FailureKind = "fetch"                // Article could not be fetched or parsed
	FailureFetchMarker     FailureKind = "fetch_failure_marker" // Fetched text carried a failure keyword
	FailureClaimExtraction FailureKind = "claim_extraction"     // Language model call failed
	FailureNoClaims        FailureKind = "no_claims"            // Extractor returned nothing usable
	FailureSearch          FailureKind = "search"               // Search stage could not run
	FailureCancelled       FailureKind = "cancelled"            // Caller abandoned the request
)

// ConfigError reports a fatal configuration problem detected at startup
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %s", e.Field, e.Message)
}

// StageError wraps an error with the stage and failure kind it belongs to
type StageError struct {
	Kind  FailureKind
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a StageError
func NewStageError(kind FailureKind, stage Stage, err error) *StageError {
	return &StageError{Kind: kind, Stage: stage, Err: err}
}

// KindOf extracts the failure kind from an error chain.
// Configuration errors map to FailureConfig; unknown errors return "".
func KindOf(err error) FailureKind {
	var stageErr *StageError
	if errors.As(err, &stageErr) {
		return stageErr.Kind
	}
	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		return FailureConfig
	}
	return ""
}
