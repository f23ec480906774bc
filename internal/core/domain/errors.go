package domain

import "errors"

var ErrNotAuthenticated = errors.New("authentication required")
var ErrForbidden = errors.New("access forbidden")
var ErrGuildNotFound = errors.New("guild not found")
var ErrUserNotFound = errors.New("user not found")
var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidConfig = errors.New("invalid config")
var ErrInvalidState = errors.New("invalid oauth state")
