package tasks

import "errors"

// Validation errors. The collection is left untouched when any of these is
// returned.
var (
	ErrBlankText          = errors.New("task text cannot be empty")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrTooManyAttachments = errors.New("too many attachments")
	ErrIndexOutOfRange    = errors.New("index out of range")
)
