package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// Extraction Errors.

	// ErrMissingInput indicates the form-definition blob is absent or
	// could not be obtained. No partial output is produced.
	ErrMissingInput = errors.New("form data not found")

	// ErrStructureNotFound indicates the question list could not be located
	// inside the blob. No partial output is produced.
	ErrStructureNotFound = errors.New("question list not found in form data")

	// Plan Errors.

	// ErrInvalidPlan indicates a response plan failed validation.
	ErrInvalidPlan = errors.New("invalid plan")
)
