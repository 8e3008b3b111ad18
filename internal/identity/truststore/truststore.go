package truststore

import (
	"sync"
	"time"

	models "courier/internal/identity/model"
	"courier/pkg/utils"
)

// TrustStore is the in-memory TOFU pin table, keyed by normalized host.
// Entries are append-or-update only; revocation is a manual operation
// outside this system.
type TrustStore struct {
	mu   sync.RWMutex
	pins map[string]models.TrustEntry
}

func NewTrustStore() *TrustStore {
	return &TrustStore{pins: make(map[string]models.TrustEntry)}
}

func (t *TrustStore) Lookup(host string) (models.TrustEntry, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	e, ok := t.pins[utils.NormalizeHost(host)]
	return e, ok
}

// Record pins key for host. verified marks pins confirmed by a signature
// from an already-pinned key; first-contact pins are unverified.
func (t *TrustStore) Record(host, kid string, publicKey []byte, verified bool) {
	host = utils.NormalizeHost(host)
	now := time.Now().UTC()

	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.pins[host]
	if !ok {
		e = models.TrustEntry{Host: host, PinnedAt: now}
	}
	e.Kid = kid
	e.PublicKey = append([]byte(nil), publicKey...)
	if verified {
		e.VerifiedAt = now
	}
	t.pins[host] = e
}

func (t *TrustStore) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.pins)
}
