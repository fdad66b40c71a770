package remote

import (
	"fmt"
	"net/http"
)

// RejectionKind classifies an upload refused by the backend.
type RejectionKind string

const (
	RejectPayloadTooLarge  RejectionKind = "payload_too_large"
	RejectUnsupportedMedia RejectionKind = "unsupported_media"
	RejectMalformedPayload RejectionKind = "malformed_payload"
	RejectSessionExpired   RejectionKind = "session_expired"
	RejectServerFault      RejectionKind = "server_fault"
)

// UploadRejectedError means the request reached the server and was refused.
// Kind drives the user-facing message; SessionExpired additionally triggers a
// redirect to re-authentication in the UI.
type UploadRejectedError struct {
	Kind       RejectionKind
	StatusCode int
	Message    string
}

func (e *UploadRejectedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return rejectionMessages[e.Kind]
}

// NetworkError means the request never reached the server, so no server-side
// classification is available.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "server unreachable: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

var rejectionMessages = map[RejectionKind]string{
	RejectPayloadTooLarge:  "The file is too large for the server to accept.",
	RejectUnsupportedMedia: "The server does not accept this file type.",
	RejectMalformedPayload: "The server could not read the submitted data.",
	RejectSessionExpired:   "Your session has expired, please sign in again.",
	RejectServerFault:      "The server failed while processing the import.",
}

// classifyStatus maps an HTTP status to a rejection kind.
func classifyStatus(status int) RejectionKind {
	switch {
	case status == http.StatusRequestEntityTooLarge:
		return RejectPayloadTooLarge
	case status == http.StatusUnsupportedMediaType:
		return RejectUnsupportedMedia
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return RejectSessionExpired
	case status >= 500:
		return RejectServerFault
	default:
		return RejectMalformedPayload
	}
}

func rejected(status int, message string) *UploadRejectedError {
	kind := classifyStatus(status)
	if message == "" {
		message = rejectionMessages[kind]
	}
	return &UploadRejectedError{Kind: kind, StatusCode: status, Message: message}
}

func unexpectedStatus(status int) error {
	return rejected(status, fmt.Sprintf("unexpected response status %d", status))
}
