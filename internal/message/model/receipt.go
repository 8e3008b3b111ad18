package models

import (
	"time"

	"github.com/google/uuid"
)

// Receipt is an append-only delivery/read fact. Never updated.
type Receipt struct {
	ID          uuid.UUID `bun:",pk,type:uuid,default:gen_random_uuid()"`
	RecipientID uuid.UUID `bun:",notnull,type:uuid"`
	MessageID   string    `bun:",notnull"`
	Type        string    `bun:",notnull"`
	Timestamp   time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}
