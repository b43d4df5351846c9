package apiclient

import "fmt"

// APIError is a non-401 HTTP error the backend answered with. 4xx is the
// caller's to handle; 5xx is additionally pushed to the notification channel
// before it is returned.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

// IsServer reports whether the error came from the 5xx range
func (e *APIError) IsServer() bool {
	return e.StatusCode >= 500
}

// AuthExpiredError means a 401 exhausted its single refresh-and-retry: the
// stored session has been cleared and the user must log in again.
type AuthExpiredError struct {
	Reason string
}

func (e *AuthExpiredError) Error() string {
	if e.Reason != "" {
		return "session expired: " + e.Reason
	}
	return "session expired"
}

// NetworkError means no HTTP response arrived at all. Timeout distinguishes a
// request that ran out the clock from generic unreachability, because the two
// are messaged differently.
type NetworkError struct {
	Timeout bool
	Err     error
}

func (e *NetworkError) Error() string {
	if e.Timeout {
		return "request timed out: " + e.Err.Error()
	}
	return "cannot connect: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ValidationError is a locally detected bad input; it never reaches the wire
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}
