package message

import (
	"context"
	"time"

	models "courier/internal/message/model"

	"github.com/google/uuid"
)

type MessageRepository interface {
	// EnqueueWithCompaction applies the event-type compaction rules and
	// inserts the new queue item inside one transaction.
	EnqueueWithCompaction(ctx context.Context, item *models.IncomingQueueItem) error
	ListQueue(ctx context.Context, recipientID uuid.UUID) ([]models.IncomingQueueItem, error)
	GetQueueItem(ctx context.Context, id, recipientID uuid.UUID) (*models.IncomingQueueItem, error)
	// AckQueueItem discards a queue item. Zero rows deleted means another
	// consumer got there first.
	AckQueueItem(ctx context.Context, id, recipientID uuid.UUID) error
	// StoreQueueItem atomically deletes the queue item and creates the
	// corresponding vault entry; the delete failing means already processed.
	StoreQueueItem(ctx context.Context, id, recipientID uuid.UUID) (*models.VaultEntry, error)

	// CreateVaultEntry is idempotent per (id, owner): an existing row for
	// the same owner is returned unchanged; for a different owner it is a
	// conflict.
	CreateVaultEntry(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error)
	GetVaultEntry(ctx context.Context, id string, ownerID uuid.UUID) (*models.VaultEntry, error)
	// UpdateVaultEntry enforces optimistic concurrency: a non-nil
	// expectedVersion must match the current row or nothing is written.
	UpdateVaultEntry(ctx context.Context, id string, ownerID uuid.UUID, blob, iv string, expectedVersion *int64, deleted *bool) (*models.VaultEntry, error)
	ListVault(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.VaultEntry, error)
	DeltaSync(ctx context.Context, ownerID uuid.UUID, since time.Time, cursor string, limit int) (entries []models.VaultEntry, hasMore bool, err error)
	// ConversationSummaries returns the latest non-deleted entry per peer.
	ConversationSummaries(ctx context.Context, ownerID uuid.UUID) ([]models.VaultEntry, error)
	DeleteChat(ctx context.Context, ownerID uuid.UUID, peerHandle string) (int64, error)

	CreateReceipt(ctx context.Context, receipt *models.Receipt) error
}
