package errors

var (
	// Domain errors — used in usecase/transport/discovery
	ErrInvalidHandle     = New(CodeInvalidHandle, "handle must be 'username' or 'username@host'")
	ErrUntrustedHost     = New(CodeUntrustedHost, "host is not allowed for federation")
	ErrPrivateAddress    = New(CodeUntrustedHost, "host resolves to a private or reserved address")
	ErrDiscoveryInvalid  = New(CodeDiscoveryInvalid, "discovery document is malformed or host-mismatched")
	ErrSignatureInvalid  = New(CodeSignatureInvalid, "signature verification failed")
	ErrTrustConflict     = New(CodeTrustConflict, "remote key changed without an authenticated rotation")
	ErrStrictTrustNoPin  = New(CodeTrustConflict, "strict trust mode forbids first-contact pinning")
	ErrRecipientNotFound = New(CodeRecipientNotFound, "recipient not found on this host")
	ErrVersionConflict   = New(CodeVersionConflict, "version conflict")
	ErrAlreadyProcessed  = New(CodeAlreadyProcessed, "queue item already processed")
)

func ErrRemoteUnreachable(cause error) error {
	return Wrap(CodeRemoteUnreachable, "remote host unreachable", cause)
}

func ErrRemoteRejected(status int) error {
	return New(CodeRemoteRejected, "remote host rejected the request")
}

func ErrDeliveryFailed(cause error) error {
	return Wrap(CodeInternal, "message delivery failed", cause)
}
