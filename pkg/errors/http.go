package errors

import (
	stderrors "errors"
	"net/http"
)

// CodeOf extracts the application code from any error in the chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// MessageOf returns the user-facing message of the nearest AppError.
func MessageOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return "internal server error"
}

func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument, CodeInvalidHandle:
		return http.StatusBadRequest
	case CodeUnauthenticated, CodeSignatureInvalid:
		return http.StatusUnauthorized
	case CodePermissionDenied, CodeUntrustedHost, CodeTrustConflict:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipientNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists, CodeVersionConflict, CodeAlreadyProcessed:
		return http.StatusConflict
	case CodeFailedPrecondition, CodeDiscoveryInvalid:
		return http.StatusUnprocessableEntity
	case CodeRemoteRejected:
		return http.StatusBadGateway
	case CodeRemoteUnreachable, CodeDeadlineExceeded:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
