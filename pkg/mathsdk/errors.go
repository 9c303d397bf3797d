package mathsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Fallback display strings for failures that carry no usable server message.
const (
	// GenericServerErrorMessage is shown when the backend returned an error
	// body without a message, or one that could not be parsed.
	GenericServerErrorMessage = "An unknown server error occurred."

	// GenericTransportErrorMessage is shown for failures that never produced
	// a server response (network unreachable, timeout, cancelled context).
	GenericTransportErrorMessage = "An unexpected error occurred."
)

// APIError is the backend's structured error envelope:
// {timestamp, message, status}. It implements the error interface.
type APIError struct {
	// Timestamp is the ISO-8601 time the backend produced the error
	Timestamp string `json:"timestamp"`

	// Msg is the human-readable message intended for display
	Msg string `json:"message"`

	// Status is the HTTP status code of the response
	Status int `json:"status"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Msg)
}

// parseErrorResponse turns a non-success HTTP response into a typed error.
// Malformed or message-less bodies still produce an *APIError so callers get
// a single error shape, with the status preserved.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var apiErr APIError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Msg != "" {
		apiErr.Status = resp.StatusCode
		return &apiErr
	}

	return &APIError{
		Status: resp.StatusCode,
		Msg:    GenericServerErrorMessage,
	}
}

// Message extracts a user-displayable message from any error produced by this
// package. Structured backend errors surface their message verbatim; anything
// else (transport failures, decode failures) maps to a generic string.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Msg != "" {
			return apiErr.Msg
		}
		return GenericServerErrorMessage
	}

	return GenericTransportErrorMessage
}
