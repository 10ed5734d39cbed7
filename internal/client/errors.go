package client

import "fmt"

// TransportError is a failed exchange: the request could not be completed,
// the service answered with a non-2xx status, or the body was unreadable.
type TransportError struct {
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Server error: %d", e.StatusCode)
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ApplicationError is an error payload returned by a service that otherwise
// answered successfully, e.g. division by zero.
type ApplicationError struct {
	Message string
}

func (e *ApplicationError) Error() string {
	return e.Message
}
