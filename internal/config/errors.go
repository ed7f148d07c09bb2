package config

import "errors"

var (
	ErrRemoteBaseURLRequired = errors.New("remote base URL is required")
	ErrRemoteAnonKeyRequired = errors.New("remote anon key is required")
)
