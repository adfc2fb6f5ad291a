package service

import "errors"

// Error taxonomy of the detection pipeline. Adapters wrap these with %w so the
// transport layer can map them with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrConfiguration  = errors.New("configuration error")
	ErrUpstream       = errors.New("upstream error")
	ErrAuthentication = errors.New("authentication error")
	ErrPersistence    = errors.New("persistence error")
	ErrNotFound       = errors.New("not found")
)
