package config

import "errors"

var (
	ErrReadFile     = errors.New("config: failed to read config file")
	ErrParseEnv     = errors.New("config: failed to parse environment overrides")
	ErrInvalidValue = errors.New("config: invalid value")
)
