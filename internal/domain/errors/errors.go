package errors

import "errors"

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidAPIKey    = errors.New("invalid apiKey")
	ErrTemplateMismatch = errors.New("templateId mismatch")
	ErrBindingExists    = errors.New("api key already exists for this user")
	ErrBindingNotFound  = errors.New("api config not found")
	ErrProjectNotFound  = errors.New("project not found")
	ErrProgressNotFound = errors.New("project progress not found")
)
