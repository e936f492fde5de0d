package form

import "errors"

var (
	ErrUnknownKind      = errors.New("unknown form kind")
	ErrUnknownField     = errors.New("unknown form field")
	ErrSubmitInProgress = errors.New("submission already in progress")
)
