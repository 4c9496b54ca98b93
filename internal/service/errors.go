package service

import "errors"

var (
	ErrInvalidRequest    = errors.New("invalid request")
	ErrSourceUnavailable = errors.New("question source unavailable")
)
