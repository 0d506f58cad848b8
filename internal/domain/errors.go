package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoPriceRecords is returned when no price records exist for a canonical code
	ErrNoPriceRecords = errors.New("no price records for canonical code")

	// ErrPriceFeedFailure is returned when the external price feed request fails
	ErrPriceFeedFailure = errors.New("price feed request failed")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
