package models

import "errors"

// Error taxonomy shared by the pipeline, the data sources and the API.
// All of them are unrecoverable for the computation that raised them.
var (
	// ErrDataIntegrity reports duplicate dates carrying different closes.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrInvalidPrice reports a zero or negative price where a positive one is required.
	ErrInvalidPrice = errors.New("invalid price")

	// ErrInvalidParameter reports a user parameter outside its allowed bounds.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrDataUnavailable reports an unknown symbol or an unreachable provider.
	ErrDataUnavailable = errors.New("data unavailable")
)
