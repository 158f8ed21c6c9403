package application

import "errors"

var (
	// ErrInvalidTransition indicates a disallowed status change.
	ErrInvalidTransition = errors.New("invalid application status transition")
	// ErrInvalidInput indicates a submission missing its target or submitter.
	ErrInvalidInput = errors.New("invalid application input")
)
