package errors

type Code string

const (
	CodeUnknown            Code = "UNKNOWN"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodePermissionDenied   Code = "PERMISSION_DENIED"
	CodeUnauthenticated    Code = "UNAUTHENTICATED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeInternal           Code = "INTERNAL"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"

	// Federation trust & transport
	CodeInvalidHandle     Code = "INVALID_HANDLE"
	CodeUntrustedHost     Code = "UNTRUSTED_HOST"
	CodeDiscoveryInvalid  Code = "DISCOVERY_INVALID"
	CodeSignatureInvalid  Code = "SIGNATURE_INVALID"
	CodeTrustConflict     Code = "TRUST_CONFLICT"
	CodeRemoteUnreachable Code = "REMOTE_UNREACHABLE"
	CodeRemoteRejected    Code = "REMOTE_REJECTED"

	// Delivery & vault
	CodeRecipientNotFound Code = "RECIPIENT_NOT_FOUND"
	CodeVersionConflict   Code = "VERSION_CONFLICT"
	CodeAlreadyProcessed  Code = "ALREADY_PROCESSED"
)
