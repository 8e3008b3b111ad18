package models

import (
	"time"

	"github.com/google/uuid"
)

// VaultEntry is the durable, owner-scoped encrypted message log. The blob
// is opaque to this system; the server never holds content keys.
type VaultEntry struct {
	// ID is the caller-supplied message id where available, making vault
	// creation idempotent across a user's devices.
	ID      string    `bun:",pk"`
	OwnerID uuid.UUID `bun:",notnull,type:uuid"`

	PeerHandle           string `bun:",nullzero"`
	OriginalSenderHandle string `bun:",nullzero"`

	EncryptedBlob string `bun:",notnull"`
	IV            string `bun:",nullzero"`

	SenderSignatureVerified bool `bun:",default:false"`

	// Version increments by exactly one per successful update; writers
	// must present the version they read.
	Version int64 `bun:",nullzero,notnull,default:1"`

	CreatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time  `bun:",nullzero,notnull,default:current_timestamp"`
	DeletedAt *time.Time `bun:",nullzero"`
}

// Deleted reports whether the entry carries a tombstone. Tombstones stay
// in place so delta sync can propagate deletions to other devices.
func (e *VaultEntry) Deleted() bool {
	return e.DeletedAt != nil
}
