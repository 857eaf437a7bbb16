package service

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes in one place (handler.mapServiceError).
var (
	ErrInternal           = errors.New("internal error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrMissingFields      = errors.New("missing required fields")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrUnknownContentType = errors.New("unknown content type")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrModeratorNotFound  = errors.New("moderator not found")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrSearchUnavailable  = errors.New("search is not enabled")
)
