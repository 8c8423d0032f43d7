package errors

import (
	"errors"
	"fmt"
)

var ErrUnauthorized = errors.New("user is not authorized")
var ErrForbidden = errors.New("operation is forbidden for user")
var ErrNotFound = errors.New("resource not found")

// ErrGatewayNotConfigured means the payment gateway credentials are missing.
var ErrGatewayNotConfigured = errors.New("payment gateway is not configured")

// ErrCapacityExceeded is returned by the inventory reserve when the guarded
// increment matches no row.
var ErrCapacityExceeded = errors.New("ticket capacity exceeded")

// ErrGatewayFailure wraps any upstream payment gateway error. Details are
// logged server-side; callers surface a generic message.
var ErrGatewayFailure = errors.New("payment gateway failure")

// InsufficientCapacityError carries how many tickets remain for the requested
// date so the caller can build an actionable message.
type InsufficientCapacityError struct {
	Remaining int
}

func (e *InsufficientCapacityError) Error() string {
	return fmt.Sprintf("only %d tickets available for this date", e.Remaining)
}

// AsInsufficientCapacity unwraps err into an InsufficientCapacityError if possible.
func AsInsufficientCapacity(err error) (*InsufficientCapacityError, bool) {
	var ice *InsufficientCapacityError
	if errors.As(err, &ice) {
		return ice, true
	}
	return nil, false
}
