package discovery

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"

	"courier/config"
	models "courier/internal/federation/model"
	"courier/internal/federation/transport"
	"courier/internal/identity/keystore"
	"courier/internal/identity/truststore"
	"courier/internal/metrics"
	"courier/pkg/cache"
	"courier/pkg/canonicaljson"
	"courier/pkg/errors"
	"courier/pkg/logger"
	"courier/pkg/utils"

	"encoding/json"
)

// WellKnownPath is where every courier host publishes its discovery document.
const WellKnownPath = "/.well-known/courier/federation.json"

// EndpointKind selects which federation endpoint to resolve.
type EndpointKind string

const (
	EndpointInbox     EndpointKind = "inbox"
	EndpointDirectory EndpointKind = "directory"
)

// Hardcoded fallbacks for hosts that predate discovery documents.
const (
	fallbackInboxPath     = "/api/federation/incoming"
	fallbackDirectoryPath = "/api/federation/directory"
	legacyKeyPath         = "/api/federation/key"
)

// Resolver fetches, validates and trust-resolves remote discovery
// documents. It is the only writer of the trust store.
type Resolver struct {
	cfg     *config.Config
	client  *transport.Client
	trust   *truststore.TrustStore
	logger  *logger.Logger
	metrics *metrics.Metrics

	docCache *cache.TTL[*models.DiscoveryDocument]
	keyCache *cache.TTL[[]byte]
}

func NewResolver(cfg *config.Config, client *transport.Client, trust *truststore.TrustStore, logger *logger.Logger, m *metrics.Metrics, clock cache.Clock) *Resolver {
	return &Resolver{
		cfg:      cfg,
		client:   client,
		trust:    trust,
		logger:   logger,
		metrics:  m,
		docCache: cache.NewTTL[*models.DiscoveryDocument](cfg.Federation.DiscoveryCacheTTL, clock),
		keyCache: cache.NewTTL[[]byte](cfg.Federation.KeyCacheTTL, clock),
	}
}

// FetchDiscoveryDocument returns the verified document for host, from cache
// when fresh. A document is only trusted as far as the signature made by
// the key already pinned for the host; first contact pins the document's
// active key (rejected outright in strict trust mode).
func (r *Resolver) FetchDiscoveryDocument(ctx context.Context, host string) (*models.DiscoveryDocument, error) {
	host = utils.NormalizeHost(host)

	if doc, ok := r.docCache.Get(host); ok {
		return doc, nil
	}

	res := r.client.SafeRequestJSON(ctx, http.MethodGet, "https://"+host+WellKnownPath, nil, nil)
	if res.Err != nil {
		return nil, res.Err
	}
	if !res.OK || res.JSON == nil {
		return nil, errors.New(errors.CodeDiscoveryInvalid, "host did not serve a discovery document")
	}

	var doc models.DiscoveryDocument
	if err := json.Unmarshal(res.JSON, &doc); err != nil {
		return nil, errors.Wrap(errors.CodeDiscoveryInvalid, "malformed discovery document", err)
	}

	if err := validateDocument(&doc, host); err != nil {
		r.metrics.DiscoveryFetches.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if err := r.resolveTrust(&doc, host); err != nil {
		r.metrics.DiscoveryFetches.WithLabelValues("trust_failed").Inc()
		return nil, err
	}

	r.metrics.DiscoveryFetches.WithLabelValues("ok").Inc()
	r.docCache.Set(host, &doc)
	return &doc, nil
}

// ResolveFederationEndpoint returns the URL for host's inbox or directory,
// falling back to the hardcoded path when the host publishes no document.
func (r *Resolver) ResolveFederationEndpoint(ctx context.Context, host string, kind EndpointKind) (string, error) {
	doc, err := r.FetchDiscoveryDocument(ctx, host)
	if err == nil {
		switch kind {
		case EndpointInbox:
			return doc.InboxURL, nil
		case EndpointDirectory:
			return doc.DirectoryURL, nil
		}
		return "", errors.New(errors.CodeInvalidArgument, "unknown federation endpoint kind")
	}

	// Trust failures are terminal; only unavailability falls back.
	switch errors.CodeOf(err) {
	case errors.CodeSignatureInvalid, errors.CodeTrustConflict, errors.CodeUntrustedHost:
		return "", err
	}

	r.logger.Debug("discovery unavailable, using fallback endpoint", "host", host, "err", err)
	switch kind {
	case EndpointInbox:
		return "https://" + host + fallbackInboxPath, nil
	case EndpointDirectory:
		return "https://" + host + fallbackDirectoryPath, nil
	}
	return "", errors.New(errors.CodeInvalidArgument, "unknown federation endpoint kind")
}

// FetchFederationKey returns host's current signing key. Discovery is
// preferred; the legacy single-key endpoint covers hosts without a
// document. Results obey the same TOFU rules and a separate cache.
func (r *Resolver) FetchFederationKey(ctx context.Context, host string) ([]byte, error) {
	host = utils.NormalizeHost(host)

	if key, ok := r.keyCache.Get(host); ok {
		return key, nil
	}

	doc, err := r.FetchDiscoveryDocument(ctx, host)
	if err == nil {
		active := doc.ActiveKey()
		key, decodeErr := base64.StdEncoding.DecodeString(active.PublicKey)
		if decodeErr != nil {
			return nil, errors.Wrap(errors.CodeDiscoveryInvalid, "active key is not valid base64", decodeErr)
		}
		r.keyCache.Set(host, key)
		return key, nil
	}
	switch errors.CodeOf(err) {
	case errors.CodeSignatureInvalid, errors.CodeTrustConflict, errors.CodeUntrustedHost:
		return nil, err
	}

	res := r.client.SafeRequestJSON(ctx, http.MethodGet, "https://"+host+legacyKeyPath, nil, nil)
	if res.Err != nil {
		return nil, res.Err
	}
	if !res.OK || res.JSON == nil {
		return nil, errors.ErrRemoteRejected(res.Status)
	}

	var resp models.FederationKeyResponse
	if err := json.Unmarshal(res.JSON, &resp); err != nil {
		return nil, errors.Wrap(errors.CodeDiscoveryInvalid, "malformed key response", err)
	}
	key, err := base64.StdEncoding.DecodeString(resp.PublicKey)
	if err != nil || len(key) != ed25519.PublicKeySize {
		return nil, errors.New(errors.CodeDiscoveryInvalid, "legacy key is not a valid ed25519 public key")
	}

	if pin, ok := r.trust.Lookup(host); ok {
		if !bytes.Equal(pin.PublicKey, key) {
			// The legacy endpoint cannot authenticate a rotation.
			return nil, errors.ErrTrustConflict
		}
	} else {
		if r.cfg.Federation.TrustMode == config.TrustModeStrict {
			return nil, errors.ErrStrictTrustNoPin
		}
		r.trust.Record(host, keystore.KeyID(key), key, false)
	}

	r.keyCache.Set(host, key)
	return key, nil
}

func (r *Resolver) resolveTrust(doc *models.DiscoveryDocument, host string) error {
	active := doc.ActiveKey()
	activeKey, err := base64.StdEncoding.DecodeString(active.PublicKey)
	if err != nil || len(activeKey) != ed25519.PublicKeySize {
		return errors.New(errors.CodeDiscoveryInvalid, "active key is not a valid ed25519 public key")
	}

	pin, pinned := r.trust.Lookup(host)
	if !pinned {
		if r.cfg.Federation.TrustMode == config.TrustModeStrict {
			return errors.ErrStrictTrustNoPin
		}
		r.trust.Record(host, active.Kid, activeKey, false)
		r.logger.Info("pinned first-contact federation key", "host", host, "kid", active.Kid)
		return nil
	}

	// Verification always uses the pinned key. A key embedded in the
	// document could be the attacker's own.
	ok, err := VerifyDocumentSignature(doc, pin.PublicKey)
	if err != nil {
		return err
	}
	if !ok {
		r.logger.Warn("discovery document failed verification against pinned key", "host", host, "pinned_kid", pin.Kid, "doc_kid", doc.SignatureKid)
		return errors.ErrTrustConflict
	}

	if !bytes.Equal(pin.PublicKey, activeKey) {
		// Authenticated rotation: the old key vouched for the new one.
		r.trust.Record(host, active.Kid, activeKey, true)
		r.keyCache.Delete(host)
		r.metrics.KeyRotations.Inc()
		r.logger.Info("rotated pinned federation key", "host", host, "old_kid", pin.Kid, "new_kid", active.Kid)
	} else {
		r.trust.Record(host, active.Kid, activeKey, true)
	}
	return nil
}

// VerifyDocumentSignature checks the document's signature over its
// canonical JSON, with the signature fields removed, against key.
func VerifyDocumentSignature(doc *models.DiscoveryDocument, key ed25519.PublicKey) (bool, error) {
	sig, err := base64.StdEncoding.DecodeString(doc.Signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false, errors.New(errors.CodeSignatureInvalid, "discovery signature is not valid base64")
	}

	payload, err := CanonicalDocumentBytes(doc)
	if err != nil {
		return false, err
	}
	return ed25519.Verify(key, payload, sig), nil
}

// CanonicalDocumentBytes is the exact byte string a discovery signature
// covers. Shared by publisher and verifier.
func CanonicalDocumentBytes(doc *models.DiscoveryDocument) ([]byte, error) {
	unsigned := *doc
	unsigned.Signature = ""
	unsigned.SignatureKid = ""

	payload, err := canonicaljson.Marshal(&unsigned)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "canonicalizing discovery document", err)
	}
	return payload, nil
}

func validateDocument(doc *models.DiscoveryDocument, host string) error {
	if utils.NormalizeHost(doc.Host) != host {
		return errors.New(errors.CodeDiscoveryInvalid, "document host does not match queried host")
	}
	if doc.InboxURL == "" || doc.DirectoryURL == "" || doc.GeneratedAt == "" {
		return errors.New(errors.CodeDiscoveryInvalid, "document is missing required fields")
	}
	if doc.ActiveKey() == nil {
		return errors.New(errors.CodeDiscoveryInvalid, "document has no active key")
	}
	if doc.Signature == "" || doc.SignatureKid == "" {
		return errors.New(errors.CodeDiscoveryInvalid, "document is unsigned")
	}
	for _, rawURL := range []string{doc.InboxURL, doc.DirectoryURL} {
		u, err := url.Parse(rawURL)
		if err != nil {
			return errors.Wrap(errors.CodeDiscoveryInvalid, "document endpoint url is malformed", err)
		}
		// Host binding: a compromised document must not be able to point
		// this instance's traffic at a third party.
		if utils.NormalizeHost(u.Hostname()) != hostWithoutPort(host) {
			return errors.New(errors.CodeDiscoveryInvalid,
				fmt.Sprintf("document endpoint %q is not bound to %s", rawURL, host))
		}
	}
	return nil
}

func hostWithoutPort(host string) string {
	if u, err := url.Parse("https://" + host); err == nil {
		return utils.NormalizeHost(u.Hostname())
	}
	return host
}

