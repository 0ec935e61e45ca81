package services

import "errors"

var (
	ErrInvalidToken        = errors.New("invalid identity token")
	ErrTokenNotFound       = errors.New("token not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrProviderNotFound    = errors.New("provider not found")
	ErrAlreadyProvider     = errors.New("user is already a provider")
	ErrAlreadyLinked       = errors.New("provider already has a calendar link")
	ErrMissingCalendarLink = errors.New("calendar link is required")
	ErrTokenConflict       = errors.New("token is bound to another user")
	ErrConflict            = errors.New("concurrent update conflict")
	ErrStore               = errors.New("store failure")
)
