package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrPokemonNotFound indicates the requested catalog entry does not exist
	ErrPokemonNotFound = errors.New("pokemon not found")

	// ErrServerOffline indicates the catalog API is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrRateLimited indicates the catalog API refused the request for rate limiting
	ErrRateLimited = errors.New("catalog server rate limit exceeded")
)
