package lobby

import "errors"

var (
	ErrValidation    = errors.New("invalid request")
	ErrForbidden     = errors.New("invalid password")
	ErrNotFound      = errors.New("not found")
	ErrNotAllReady   = errors.New("not all team players are ready")
	ErrSessionActive = errors.New("game session already active")
	ErrPersistence   = errors.New("persistence failure")
)
