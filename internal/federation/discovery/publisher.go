package discovery

import (
	"encoding/base64"
	"time"

	"courier/config"
	models "courier/internal/federation/model"
	"courier/internal/identity/keystore"
	"courier/pkg/errors"
)

// Publisher produces this instance's signed discovery document.
type Publisher struct {
	cfg  *config.Config
	keys *keystore.Keystore
}

func NewPublisher(cfg *config.Config, keys *keystore.Keystore) *Publisher {
	return &Publisher{cfg: cfg, keys: keys}
}

// Document builds and signs the current discovery document. The document
// is regenerated per call; key material only changes on rotation, so
// callers may cache the response at the HTTP layer if they want.
func (p *Publisher) Document() (*models.DiscoveryDocument, error) {
	id, err := p.keys.Identity()
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "loading signing identity", err)
	}

	host := p.cfg.Federation.Host
	doc := &models.DiscoveryDocument{
		Host:         host,
		Version:      1,
		InboxURL:     "https://" + host + "/api/federation/incoming",
		DirectoryURL: "https://" + host + "/api/federation/directory",
		Keys: []models.DiscoveryKey{
			{
				Kid:       id.Kid,
				PublicKey: id.PublicKeyBase64,
				Status:    models.KeyStatusActive,
				CreatedAt: id.CreatedAt.UTC().Format(time.RFC3339),
			},
		},
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	}

	payload, err := CanonicalDocumentBytes(doc)
	if err != nil {
		return nil, err
	}
	sig, err := p.keys.Sign(payload)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "signing discovery document", err)
	}

	doc.Signature = base64.StdEncoding.EncodeToString(sig)
	doc.SignatureKid = id.Kid
	return doc, nil
}
