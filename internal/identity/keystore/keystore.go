package keystore

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"os"
	"sync"
	"time"

	models "courier/internal/identity/model"
	"courier/pkg/logger"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Keystore owns the instance signing identity. The identity is loaded from
// the key file on first use and generated if absent; a corrupt or unreadable
// file degrades to a fresh in-memory identity rather than failing startup.
type Keystore struct {
	path   string
	logger *logger.Logger

	mu       sync.Mutex
	identity *models.SigningIdentity
	priv     ed25519.PrivateKey
}

func NewKeystore(path string, logger *logger.Logger) *Keystore {
	return &Keystore{path: path, logger: logger}
}

// Identity returns the signing identity, creating and persisting it on
// first call.
func (k *Keystore) Identity() (*models.SigningIdentity, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.identity != nil {
		return k.identity, nil
	}

	if id, priv, err := k.load(); err == nil {
		k.identity, k.priv = id, priv
		return id, nil
	} else if !os.IsNotExist(errors.Cause(err)) {
		k.logger.Warn("signing key file unusable, generating in-memory identity", "path", k.path, "err", err)
	}

	id, priv, err := generate()
	if err != nil {
		return nil, err
	}
	k.identity, k.priv = id, priv

	if err := k.persist(id); err != nil {
		// Best effort: federation still works this run, the pin just
		// won't survive a restart.
		k.logger.Warn("failed to persist signing identity", "path", k.path, "err", err)
	}
	return id, nil
}

// Sign signs payload with the instance key.
func (k *Keystore) Sign(payload []byte) ([]byte, error) {
	if _, err := k.Identity(); err != nil {
		return nil, err
	}
	k.mu.Lock()
	defer k.mu.Unlock()
	return ed25519.Sign(k.priv, payload), nil
}

func (k *Keystore) load() (*models.SigningIdentity, ed25519.PrivateKey, error) {
	raw, err := os.ReadFile(k.path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "keystore.load.ReadFile")
	}

	var id models.SigningIdentity
	if err := json.Unmarshal(raw, &id); err != nil {
		return nil, nil, errors.Wrap(err, "keystore.load.Unmarshal")
	}

	privBytes, err := base64.StdEncoding.DecodeString(id.PrivateKeyBase64)
	if err != nil || len(privBytes) != ed25519.PrivateKeySize {
		return nil, nil, errors.New("keystore.load: malformed private key")
	}
	pubBytes, err := base64.StdEncoding.DecodeString(id.PublicKeyBase64)
	if err != nil || len(pubBytes) != ed25519.PublicKeySize {
		return nil, nil, errors.New("keystore.load: malformed public key")
	}

	// Recompute the kid so a hand-edited file cannot desynchronize it.
	id.Kid = KeyID(pubBytes)

	return &id, ed25519.PrivateKey(privBytes), nil
}

func (k *Keystore) persist(id *models.SigningIdentity) error {
	raw, err := json.MarshalIndent(id, "", "  ")
	if err != nil {
		return errors.Wrap(err, "keystore.persist.Marshal")
	}
	return os.WriteFile(k.path, raw, 0o600)
}

func generate() (*models.SigningIdentity, ed25519.PrivateKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, errors.Wrap(err, "keystore.generate")
	}

	id := &models.SigningIdentity{
		Kid:              KeyID(pub),
		PublicKeyBase64:  base64.StdEncoding.EncodeToString(pub),
		PrivateKeyBase64: base64.StdEncoding.EncodeToString(priv),
		CreatedAt:        time.Now().UTC(),
	}
	return id, priv, nil
}

// KeyID derives a stable, registry-free key identifier from the public key
// bytes: base64url(SHA3-256(pub)).
func KeyID(pub []byte) string {
	sum := sha3.Sum256(pub)
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
