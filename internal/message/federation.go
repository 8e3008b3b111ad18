package message

import (
	"context"

	"courier/internal/federation/discovery"
	"courier/internal/federation/transport"
	identitymodels "courier/internal/identity/model"

	"github.com/google/uuid"
)

// Consumer-side seams for the federation stack, narrow enough to mock in
// usecase tests.

type FederationClient interface {
	IsFederationHostAllowed(host string) bool
	SafeRequestJSON(ctx context.Context, method, url string, body []byte, headers map[string]string) transport.Result
}

type EndpointResolver interface {
	ResolveFederationEndpoint(ctx context.Context, host string, kind discovery.EndpointKind) (string, error)
}

type EnvelopeSigner interface {
	Identity() (*identitymodels.SigningIdentity, error)
	Sign(payload []byte) ([]byte, error)
}

// Notifier fans events out to a user's live connections. Delivery is
// best-effort; missed events are picked up by queue drain or delta sync.
type Notifier interface {
	NotifyUser(userID uuid.UUID, event string, payload interface{})
}
