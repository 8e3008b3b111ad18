package message

import (
	"context"

	"github.com/google/uuid"
)

type MessageUsecase interface {
	// SendMessage routes a local user's outgoing message: local delivery
	// goes straight into the recipient's queue with compaction, remote
	// delivery is signed and relayed to the recipient host's inbox.
	SendMessage(ctx context.Context, cmd SendMessageCommand) (*SendResultDTO, error)

	// DeliverInbound handles an already signature-verified federation
	// message for a local recipient.
	DeliverInbound(ctx context.Context, cmd InboundMessageCommand) (*QueueItemDTO, error)
	RecordInboundReceipt(ctx context.Context, cmd InboundReceiptCommand) error

	ListQueue(ctx context.Context, userID uuid.UUID) ([]QueueItemDTO, error)
	StoreQueueItem(ctx context.Context, userID, itemID uuid.UUID) (*VaultEntryDTO, error)
	AckQueueItem(ctx context.Context, userID, itemID uuid.UUID) error

	CreateVaultEntry(ctx context.Context, cmd CreateVaultCommand) (*VaultEntryDTO, error)
	UpdateVaultEntry(ctx context.Context, cmd UpdateVaultCommand) (*VaultEntryDTO, error)
	ListVault(ctx context.Context, ownerID uuid.UUID) ([]VaultEntryDTO, error)
	DeltaSync(ctx context.Context, ownerID uuid.UUID, q DeltaSyncQuery) (*DeltaSyncDTO, error)
	ConversationSummaries(ctx context.Context, ownerID uuid.UUID) ([]VaultEntryDTO, error)
	DeleteChat(ctx context.Context, ownerID uuid.UUID, peerHandle string) error
}
