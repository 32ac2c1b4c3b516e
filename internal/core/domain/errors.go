package domain

import "errors"

// Domain errors represent pipeline-level failures.
// These are distinct from transport errors raised by catalog sources.
var (
	// ErrUnknownSurvey indicates a survey key outside the supported set.
	// Raised during upfront validation, before any combination executes.
	ErrUnknownSurvey = errors.New("unknown survey")

	// ErrUnknownCatalog indicates a catalog key outside the supported set.
	// Raised during upfront validation, before any combination executes.
	ErrUnknownCatalog = errors.New("unknown catalog")

	// ErrUnknownFootprintType indicates a footprint with an unrecognised
	// type tag reached the membership engine. Unreachable with a
	// well-formed registry; fatal if it occurs.
	ErrUnknownFootprintType = errors.New("unknown footprint type")

	// ErrMaskRead indicates a malformed or unreadable HEALPix mask file.
	// Fatal to the run: a requested mask applies to every combination.
	ErrMaskRead = errors.New("mask read failed")

	// ErrMaskSupportUnavailable indicates HEALPix mask support was
	// compiled out (nohealpix build tag) but a mask operation was
	// requested.
	ErrMaskSupportUnavailable = errors.New("HEALPix mask support unavailable")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")
)
