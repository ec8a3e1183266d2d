package wizard

import "errors"

var (
	// ErrLoad covers a failed or malformed requirements fetch. The wizard
	// must never start from a partial or empty list.
	ErrLoad = errors.New("requirements load failed")

	// ErrValidation means one or more contact fields failed format checks.
	// The wrapped multierror names each failing field.
	ErrValidation = errors.New("contact validation failed")

	// ErrSubmission is a network or non-2xx failure on the final POST.
	// Recoverable: the session returns to submission-ready with all
	// answers intact.
	ErrSubmission = errors.New("submission failed")

	// ErrSequence marks an operation attempted outside the state machine's
	// preconditions, e.g. answering a question on a step whose
	// applicability is still undetermined.
	ErrSequence = errors.New("operation not allowed in current wizard state")

	// ErrNotFound is returned by stores for unknown session ids.
	ErrNotFound = errors.New("session not found")
)
