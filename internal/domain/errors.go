package domain

import "errors"

// Domain errors.
var (
	ErrEmptyCommand    = errors.New("no command to launch")
	ErrUnknownStrategy = errors.New("unknown strategy")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrRunNotFound     = errors.New("run not found")
	ErrNoCaptureLog    = errors.New("run has no capture log")
	ErrCaptureWithExec = errors.New("capture cannot be combined with exec")
	ErrConfigExists    = errors.New("config file already exists")
	ErrHomeNotFound    = errors.New("cannot determine home directory")
)
