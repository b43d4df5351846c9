package response

import "encoding/json"

// Response is the standard API envelope emitted by the backend and the
// embedded demo server
type Response struct {
	Status     string      `json:"status"`      // "success" or "error"
	StatusCode int         `json:"status_code"` // HTTP status code
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// Raw is the client-side view of the same envelope: Data is kept opaque so
// callers can decode it into their own types after status handling
type Raw struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// IsEnvelope reports whether the decoded body actually used the envelope
// format. Some deployments return bare payloads on success, and bare payloads
// may carry their own "status" field, so the check requires the exact
// success/error discriminator.
func (r Raw) IsEnvelope() bool {
	return r.Status == "success" || r.Status == "error"
}

// Success returns a standard success response wrapping the data
func Success(statusCode int, data interface{}) Response {
	return Response{
		Status:     "success",
		StatusCode: statusCode,
		Data:       data,
	}
}

// Error returns a standard error response wrapping the error message
func Error(statusCode int, err string) Response {
	return Response{
		Status:     "error",
		StatusCode: statusCode,
		Error:      err,
	}
}
