package models

import (
	"time"
)

// SigningIdentity is this host's long-lived federation keypair. It is
// persisted to a mode-restricted local file, not the database, so the
// instance keeps its identity across restarts even with an empty schema.
type SigningIdentity struct {
	Kid              string    `json:"kid"`
	PublicKeyBase64  string    `json:"public_key"`
	PrivateKeyBase64 string    `json:"private_key"`
	CreatedAt        time.Time `json:"created_at"`
}

// TrustEntry is a trust-on-first-use pin for a remote host's signing key.
// Entries are only ever created or updated by the discovery resolver;
// nothing deletes them automatically.
type TrustEntry struct {
	Host       string
	Kid        string
	PublicKey  []byte
	PinnedAt   time.Time
	VerifiedAt time.Time
}
