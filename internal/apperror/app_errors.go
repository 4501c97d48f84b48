package apperror

import "errors"

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidMove          = errors.New("invalid move")
	ErrSessionNotFound      = errors.New("session not found")
)
