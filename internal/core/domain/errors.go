package domain

import "errors"

// Определяем переменные-ошибки, которые могут быть возвращены из Use Cases и адаптеров.
var (
	ErrUnknownListingType = errors.New("unknown listing type")
	ErrRouteMismatch      = errors.New("path does not belong to listing type")
	ErrSessionNotFound    = errors.New("session not found")
	ErrLoginRequired      = errors.New("login required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoadSuperseded     = errors.New("listing load superseded by a newer one")
)
