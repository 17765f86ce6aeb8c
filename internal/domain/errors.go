package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoResults is returned when the search engine finds no products
	ErrNoResults = errors.New("no products found")

	// ErrNoMessages is returned when the requested time window holds no messages
	ErrNoMessages = errors.New("no messages in window")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrSearchUnavailable is returned when the search endpoint request fails.
	// Distinct from ErrNoResults: a failed call is never reported as an empty search.
	ErrSearchUnavailable = errors.New("search endpoint request failed")

	// ErrSummaryUnavailable is returned when the completion endpoint request fails
	ErrSummaryUnavailable = errors.New("completion endpoint request failed")

	// ErrGatewayFailure is returned when a chat gateway request fails
	ErrGatewayFailure = errors.New("chat gateway request failed")

	// ErrSessionExpired is returned when a navigation event arrives after the
	// pagination session's idle timeout
	ErrSessionExpired = errors.New("pagination session expired")

	// ErrNotSessionOwner is returned when a user other than the requester
	// sends a navigation event
	ErrNotSessionOwner = errors.New("navigation not permitted for this user")
)

// UnsupportedVendorError reports a vendor identifier missing from the registry,
// carrying the supported identifiers so the user sees what is available.
type UnsupportedVendorError struct {
	Vendor    string
	Supported []string
}

func (e *UnsupportedVendorError) Error() string {
	return fmt.Sprintf("unsupported vendor %q (supported: %s)", e.Vendor, strings.Join(e.Supported, ", "))
}
