// Package errors defines the portal's domain error envelope. Services return
// PortalError values so transport layers can translate them into consistent
// HTTP responses without inspecting error strings.
package errors

import "net/http"

// Code identifies the class of a domain error.
type Code string

const (
	// CodeInvalidInput covers malformed input caught before any external
	// round trip (bad email shape, empty password).
	CodeInvalidInput Code = "invalid_input"

	// CodeInvalidCredentials means the identity provider rejected the pair.
	CodeInvalidCredentials Code = "invalid_credentials"

	// CodeProviderUnavailable means the identity provider could not be
	// reached. The caller may retry.
	CodeProviderUnavailable Code = "provider_unavailable"

	// CodeUnauthorized covers requests without a live session.
	CodeUnauthorized Code = "unauthorized"

	// CodeForbidden covers live sessions reaching a surface of the wrong role.
	CodeForbidden Code = "forbidden"

	CodeNotFound Code = "not_found"
	CodeConflict Code = "conflict"
	CodeInternal Code = "internal_error"
)

// PortalError carries a machine-readable code alongside a human message.
type PortalError struct {
	Code    Code
	Message string
}

func (e PortalError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// New builds a PortalError with the given code and message.
func New(code Code, message string) PortalError {
	return PortalError{Code: code, Message: message}
}

// ToHTTPStatus maps a domain error code to an HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeInvalidCredentials, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeConflict:
		return http.StatusConflict
	case CodeProviderUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
