package viewer

import "errors"

var (
	ErrUnknownShape   = errors.New("unknown shape")
	ErrUnknownVariant = errors.New("unknown interaction variant")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrFontLoad       = errors.New("failed to load font")
)
