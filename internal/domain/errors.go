package domain

import "errors"

var (
	ErrNoActiveMedia     = errors.New("no active media")
	ErrInvalidSample     = errors.New("invalid sample")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrMalformedResponse = errors.New("malformed response")
)
