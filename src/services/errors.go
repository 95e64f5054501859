package services

import "errors"

var (
	ErrCatalogUnavailable = errors.New("calculator catalog unavailable")
	ErrSessionNotFound    = errors.New("calculator session not found")
	ErrInvalidTransition  = errors.New("invalid calculator state transition")
	ErrInvalidInput       = errors.New("invalid calculator input")
)
