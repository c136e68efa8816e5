package sep

import (
	"errors"
	"net/http"

	"github.com/andyetzel/starburst-data-products-client/pkg/apperrors"
)

// Error taxonomy for the client. Every error returned by this package wraps
// one of these sentinels, so callers can branch with errors.Is.
var (
	// ErrConfiguration covers invalid host format, missing credentials and
	// unsupported auth methods. Raised before any network call.
	ErrConfiguration = apperrors.New("invalid client configuration").SetStatusCode(http.StatusBadRequest)

	// ErrValidation covers request parameters rejected client-side.
	ErrValidation = ErrConfiguration.New("invalid request parameters")

	// ErrTransport covers connection, TLS and timeout failures. The
	// underlying cause is always wrapped.
	ErrTransport = apperrors.New("request transport failed")

	// ErrAuthentication covers signer failures and HTTP 401 responses.
	ErrAuthentication = apperrors.New("authentication failed").SetStatusCode(http.StatusUnauthorized)

	// ErrRequest covers any other non-2xx response. The message carries the
	// status code and the raw response body verbatim.
	ErrRequest = apperrors.New("request failed")

	// ErrWorkflowNotFound is the distinct mapping of a 404 from a workflow
	// status read, meaning no publish or delete workflow is active.
	ErrWorkflowNotFound = ErrRequest.New("no active workflow").SetStatusCode(http.StatusNotFound)

	// ErrDecode covers response bodies that could not be parsed into the
	// expected entity shape.
	ErrDecode = apperrors.New("unable to decode response body")
)

// StatusCode returns the HTTP status code attached to err, or 0 when err does
// not carry one.
func StatusCode(err error) int {
	var ae apperrors.Error
	if errors.As(err, &ae) {
		return ae.StatusCode()
	}
	return 0
}

// IsWorkflowNotFound reports whether err means no publish or delete workflow
// is currently tracked for the data product.
func IsWorkflowNotFound(err error) bool {
	return errors.Is(err, ErrWorkflowNotFound)
}
