package model

import "fmt"

// ValidationError reports a malformed or missing input parameter, detected
// before any network call is made.
type ValidationError struct {
	// Param is the name of the offending parameter.
	Param string
	// Message describes what is wrong with it.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Param, e.Message)
}

// AuthError reports a failed token exchange: bad credentials, a non-2xx
// response from the token endpoint, or a transport failure during the call.
type AuthError struct {
	// Status is the HTTP status of the token endpoint response, or one of
	// the negative transport sentinels from the httpclient package.
	Status int
	// Message is the server-provided error payload, if any.
	Message string
	// Original is the underlying error, if any.
	Original error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: %d %s", e.Status, e.Message)
}

func (e *AuthError) Unwrap() error {
	return e.Original
}

// APIError represents a failed resource-endpoint call with its status,
// server-supplied detail, and original error info.
type APIError struct {
	// Status is the HTTP status of the error, or a negative transport
	// sentinel when the request never got a response.
	Status int `json:"status"`
	// Message is the error detail sent by the server.
	Message string `json:"message"`
	// Original is the underlying error, if any.
	Original error `json:"-"`
}

// NewAPIError creates a new instance of APIError with given status, message,
// and original error.
func NewAPIError(status int, message string, original error) *APIError {
	return &APIError{
		Status:   status,
		Message:  message,
		Original: original,
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError: %d %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Original
}
