package message

import (
	"time"

	models "courier/internal/message/model"

	"github.com/google/uuid"
)

// NOTE: commands travel from handler to usecase
// Note: DTO travels from usecase to handler

// Input commands
type SendMessageCommand struct {
	SenderID        uuid.UUID
	SenderUsername  string
	RecipientHandle string
	EncryptedBlob   string
	MessageID       string
	EventType       models.EventType
	ReactionEmoji   string

	// Optional copy for the sender's own vault, idempotent by MessageID.
	SenderVaultBlob              string
	SenderVaultIV                string
	SenderVaultSignatureVerified bool
}

type InboundMessageCommand struct {
	SenderHandle    string
	RecipientHandle string
	EncryptedBlob   string
	MessageID       string
	EventType       models.EventType
	ReactionEmoji   string
}

type InboundReceiptCommand struct {
	SenderHandle    string
	RecipientHandle string
	MessageID       string
	Type            string
}

type CreateVaultCommand struct {
	OwnerID                 uuid.UUID
	MessageID               string
	PeerHandle              string
	OriginalSenderHandle    string
	EncryptedBlob           string
	IV                      string
	SenderSignatureVerified bool
}

type UpdateVaultCommand struct {
	ID              string
	OwnerID         uuid.UUID
	EncryptedBlob   string
	IV              string
	ExpectedVersion *int64
	Deleted         *bool
}

type DeltaSyncQuery struct {
	Since  time.Time
	Cursor string
	Limit  int
}

// Output DTOs
type SendResultDTO struct {
	ID                string    `json:"id"`
	Relayed           bool      `json:"relayed"`
	SenderVaultStored bool      `json:"sender_vault_stored"`
	CreatedAt         time.Time `json:"created_at"`
}

type QueueItemDTO struct {
	ID            uuid.UUID        `json:"id"`
	SenderHandle  string           `json:"sender_handle"`
	MessageID     string           `json:"message_id"`
	EventType     models.EventType `json:"event_type"`
	ReactionEmoji string           `json:"reaction_emoji,omitempty"`
	EncryptedBlob string           `json:"encrypted_blob"`
	CreatedAt     time.Time        `json:"created_at"`
}

type VaultEntryDTO struct {
	ID                      string     `json:"id"`
	PeerHandle              string     `json:"peer_handle,omitempty"`
	OriginalSenderHandle    string     `json:"original_sender_handle,omitempty"`
	EncryptedBlob           string     `json:"encrypted_blob"`
	IV                      string     `json:"iv,omitempty"`
	SenderSignatureVerified bool       `json:"sender_signature_verified"`
	Version                 int64      `json:"version"`
	CreatedAt               time.Time  `json:"created_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	DeletedAt               *time.Time `json:"deleted_at,omitempty"`
}

type DeltaSyncDTO struct {
	Entries    []VaultEntryDTO `json:"entries"`
	HasMore    bool            `json:"has_more"`
	NextCursor string          `json:"next_cursor,omitempty"`
}

func VaultEntryToDTO(e *models.VaultEntry) VaultEntryDTO {
	return VaultEntryDTO{
		ID:                      e.ID,
		PeerHandle:              e.PeerHandle,
		OriginalSenderHandle:    e.OriginalSenderHandle,
		EncryptedBlob:           e.EncryptedBlob,
		IV:                      e.IV,
		SenderSignatureVerified: e.SenderSignatureVerified,
		Version:                 e.Version,
		CreatedAt:               e.CreatedAt,
		UpdatedAt:               e.UpdatedAt,
		DeletedAt:               e.DeletedAt,
	}
}

func QueueItemToDTO(i *models.IncomingQueueItem) QueueItemDTO {
	return QueueItemDTO{
		ID:            i.ID,
		SenderHandle:  i.SenderHandle,
		MessageID:     i.MessageID,
		EventType:     i.EventType,
		ReactionEmoji: i.ReactionEmoji,
		EncryptedBlob: i.EncryptedBlob,
		CreatedAt:     i.CreatedAt,
	}
}
