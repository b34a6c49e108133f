package core

import (
	"errors"
)

var (
	ErrNotInitialized    = errors.New("subsystem not initialized")
	ErrAlreadyRunning    = errors.New("engine already running")
	ErrWindowUnavailable = errors.New("window not available")
	ErrUnknown           = errors.New("unknown")
)
