package types

import "errors"

var (
	ErrValidation                = errors.New("invalid itinerary request")
	ErrUpstream                  = errors.New("completion backend request failed")
	ErrMalformedUpstreamResponse = errors.New("completion backend returned a malformed itinerary")
	ErrRateLimited               = errors.New("too many requests")
)
