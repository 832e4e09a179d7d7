package errors

import "errors"

// Domain errors
var (
	// Input errors
	ErrInvalidInput = errors.New("invalid input")

	// Store errors
	ErrNotFound = errors.New("scan not found")

	// Fetch errors. Each one classifies a transport failure against the
	// target site; HTTP status codes returned by the target are never errors.
	ErrUnreachable    = errors.New("connection refused")
	ErrDomainNotFound = errors.New("domain not found")
	ErrTimeout        = errors.New("request timed out")
	ErrTLS            = errors.New("tls handshake failed")
	ErrFetchFailed    = errors.New("fetch failed")
)

// IsFetchFailure reports whether err belongs to the fetch failure taxonomy.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, ErrDomainNotFound) ||
		errors.Is(err, ErrTimeout) ||
		errors.Is(err, ErrTLS) ||
		errors.Is(err, ErrFetchFailed)
}
