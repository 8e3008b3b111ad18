package models

import (
	"time"

	"github.com/google/uuid"
)

// IncomingQueueItem is one unit of undelivered work for a local recipient.
// Items are consumed exactly once: "store" moves them into the vault,
// "ack" discards them, and compaction may discard them before delivery.
type IncomingQueueItem struct {
	ID          uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	RecipientID uuid.UUID `bun:",notnull,type:uuid"`

	SenderHandle string    `bun:",notnull"`
	MessageID    string    `bun:",notnull"`
	EventType    EventType `bun:",notnull,default:'message'"`

	ReactionEmoji string `bun:",nullzero"`

	EncryptedBlob string `bun:",notnull"`

	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
