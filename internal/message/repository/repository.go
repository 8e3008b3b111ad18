package repository

import (
	"context"
	"database/sql"
	"time"

	"courier/internal/message"
	models "courier/internal/message/model"
	"courier/internal/metrics"
	apperrors "courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

const (
	MinSyncLimit = 1
	MaxSyncLimit = 500
)

type MessageRepository struct {
	db      *bun.DB
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewMessageRepository(db *bun.DB, logger logger.Logger, m *metrics.Metrics) *MessageRepository {
	return &MessageRepository{
		db:      db,
		logger:  &logger,
		metrics: m,
	}
}

// EnqueueWithCompaction applies the compaction rule for the item's event
// type, then inserts the item, all in one transaction. Concurrent writers
// for the same (recipient, message, event) key serialize on the row locks
// taken by the deletes.
func (r *MessageRepository) EnqueueWithCompaction(ctx context.Context, item *models.IncomingQueueItem) error {

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		superseded, err := compact(ctx, tx, item)
		if err != nil {
			return err
		}
		if superseded > 0 {
			r.metrics.QueueCompactions.Add(float64(superseded))
		}

		_, err = tx.NewInsert().Model(item).Returning("*").Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.Enqueue.Insert: ")
		}
		return nil
	})
}

// compact is the closed dispatch over event types. A new event type does
// not compile into delivery until it gets a case here.
func compact(ctx context.Context, tx bun.Tx, item *models.IncomingQueueItem) (int64, error) {
	q := tx.NewDelete().Model((*models.IncomingQueueItem)(nil)).
		Where("recipient_id = ?", item.RecipientID)

	switch item.EventType {
	case models.EventDelete:
		// A delete supersedes everything pending for the message.
		q = q.Where("message_id = ?", item.MessageID)

	case models.EventMessage, models.EventEdit:
		// Only the latest body survives until delivered.
		q = q.Where("message_id = ?", item.MessageID).
			Where("event_type IN (?)", bun.In([]models.EventType{models.EventMessage, models.EventEdit}))

	case models.EventReaction:
		// Toggle semantics: same sender, same emoji, same message.
		q = q.Where("message_id = ?", item.MessageID).
			Where("event_type = ?", models.EventReaction).
			Where("sender_handle = ?", item.SenderHandle).
			Where("reaction_emoji = ?", item.ReactionEmoji)

	case models.EventKeyRotation:
		// Only the newest rotation notice from a sender matters.
		q = q.Where("event_type = ?", models.EventKeyRotation).
			Where("sender_handle = ?", item.SenderHandle)

	case models.EventReceipt:
		// Receipts are independent facts; no compaction.
		return 0, nil

	default:
		return 0, apperrors.InvalidArg("unknown event type")
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "messageRepo.compact.Delete: ")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *MessageRepository) ListQueue(ctx context.Context, recipientID uuid.UUID) ([]models.IncomingQueueItem, error) {

	var items []models.IncomingQueueItem
	err := r.db.NewSelect().Model(&items).
		Where("recipient_id = ?", recipientID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListQueue.Scan: ")
	}
	return items, nil
}

func (r *MessageRepository) GetQueueItem(ctx context.Context, id, recipientID uuid.UUID) (*models.IncomingQueueItem, error) {

	item := new(models.IncomingQueueItem)
	err := r.db.NewSelect().Model(item).
		Where("id = ?", id).
		Where("recipient_id = ?", recipientID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("queue item not found")
		}
		return nil, errors.Wrap(err, "messageRepo.GetQueueItem.Scan: ")
	}
	return item, nil
}

func (r *MessageRepository) AckQueueItem(ctx context.Context, id, recipientID uuid.UUID) error {

	res, err := r.db.NewDelete().Model((*models.IncomingQueueItem)(nil)).
		Where("id = ?", id).
		Where("recipient_id = ?", recipientID).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.AckQueueItem.Delete: ")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.ErrAlreadyProcessed
	}
	return nil
}

// StoreQueueItem is delete-then-insert in one transaction: the delete
// affecting zero rows means another consumer already stored or acked the
// item, and the call fails fast without touching the vault.
func (r *MessageRepository) StoreQueueItem(ctx context.Context, id, recipientID uuid.UUID) (*models.VaultEntry, error) {

	var entry *models.VaultEntry

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		item := new(models.IncomingQueueItem)
		err := tx.NewSelect().Model(item).
			Where("id = ?", id).
			Where("recipient_id = ?", recipientID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.ErrAlreadyProcessed
			}
			return errors.Wrap(err, "messageRepo.StoreQueueItem.Select: ")
		}

		res, err := tx.NewDelete().Model((*models.IncomingQueueItem)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.StoreQueueItem.Delete: ")
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return apperrors.ErrAlreadyProcessed
		}

		vaultID := item.MessageID
		if vaultID == "" {
			vaultID = item.ID.String()
		}

		entry = &models.VaultEntry{
			ID:                   vaultID,
			OwnerID:              recipientID,
			PeerHandle:           item.SenderHandle,
			OriginalSenderHandle: item.SenderHandle,
			EncryptedBlob:        item.EncryptedBlob,
		}
		return createVaultEntryTx(ctx, tx, entry, &entry)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *MessageRepository) CreateVaultEntry(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error) {

	var out *models.VaultEntry
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return createVaultEntryTx(ctx, tx, entry, &out)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// createVaultEntryTx implements idempotent create: insert with conflict
// skip, then read back whichever row exists. A row claimed by a different
// owner is a conflict, never silently shared.
func createVaultEntryTx(ctx context.Context, tx bun.Tx, entry *models.VaultEntry, out **models.VaultEntry) error {
	_, err := tx.NewInsert().Model(entry).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateVaultEntry.Insert: ")
	}

	existing := new(models.VaultEntry)
	err = tx.NewSelect().Model(existing).Where("id = ?", entry.ID).Scan(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateVaultEntry.Readback: ")
	}
	if existing.OwnerID != entry.OwnerID {
		return apperrors.AlreadyExists("message id is claimed by another owner")
	}

	*out = existing
	return nil
}

func (r *MessageRepository) GetVaultEntry(ctx context.Context, id string, ownerID uuid.UUID) (*models.VaultEntry, error) {

	entry := new(models.VaultEntry)
	err := r.db.NewSelect().Model(entry).
		Where("id = ?", id).
		Where("owner_id = ?", ownerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("vault entry not found")
		}
		return nil, errors.Wrap(err, "messageRepo.GetVaultEntry.Scan: ")
	}
	return entry, nil
}

// UpdateVaultEntry re-reads the row under lock, checks the expected
// version, and applies blob/iv/tombstone with version+1. A mismatch writes
// nothing; the entire update is one transaction.
func (r *MessageRepository) UpdateVaultEntry(ctx context.Context, id string, ownerID uuid.UUID, blob, iv string, expectedVersion *int64, deleted *bool) (*models.VaultEntry, error) {

	entry := new(models.VaultEntry)

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().Model(entry).
			Where("id = ?", id).
			Where("owner_id = ?", ownerID).
			For("UPDATE").
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("vault entry not found")
			}
			return errors.Wrap(err, "messageRepo.UpdateVaultEntry.Select: ")
		}

		if expectedVersion != nil && *expectedVersion != entry.Version {
			return apperrors.ErrVersionConflict
		}

		now := time.Now().UTC()
		entry.EncryptedBlob = blob
		entry.IV = iv
		entry.Version++
		entry.UpdatedAt = now
		if deleted != nil {
			if *deleted {
				entry.DeletedAt = &now
			} else {
				entry.DeletedAt = nil
			}
		}

		_, err = tx.NewUpdate().Model(entry).
			Column("encrypted_blob", "iv", "version", "updated_at", "deleted_at").
			WherePK().
			Exec(ctx)
		if err != nil {
			return errors.Wrap(err, "messageRepo.UpdateVaultEntry.Update: ")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *MessageRepository) ListVault(ctx context.Context, ownerID uuid.UUID, limit int) ([]models.VaultEntry, error) {

	var entries []models.VaultEntry
	q := r.db.NewSelect().Model(&entries).
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "messageRepo.ListVault.Scan: ")
	}
	return entries, nil
}

// DeltaSync pages entries changed after since, ordered by (updated_at, id)
// so rows sharing a timestamp are never skipped or duplicated between
// pages. cursor is an opaque "updatedAt|id" keyset position.
func (r *MessageRepository) DeltaSync(ctx context.Context, ownerID uuid.UUID, since time.Time, cursor string, limit int) ([]models.VaultEntry, bool, error) {

	if limit < MinSyncLimit {
		limit = MinSyncLimit
	}
	if limit > MaxSyncLimit {
		limit = MaxSyncLimit
	}

	var entries []models.VaultEntry
	q := r.db.NewSelect().Model(&entries).
		Where("owner_id = ?", ownerID).
		Order("updated_at ASC", "id ASC").
		Limit(limit + 1)

	if !since.IsZero() {
		q = q.Where("updated_at > ?", since)
	}
	if cursor != "" {
		cursorAt, cursorID, err := message.DecodeSyncCursor(cursor)
		if err != nil {
			return nil, false, err
		}
		q = q.Where("(updated_at > ?) OR (updated_at = ? AND id > ?)", cursorAt, cursorAt, cursorID)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, false, errors.Wrap(err, "messageRepo.DeltaSync.Scan: ")
	}

	hasMore := len(entries) > limit
	if hasMore {
		entries = entries[:limit]
	}
	return entries, hasMore, nil
}

// ConversationSummaries is the "latest non-deleted row per peer" aggregate,
// done in SQL with a window function so it stays consistent with
// concurrent inserts.
func (r *MessageRepository) ConversationSummaries(ctx context.Context, ownerID uuid.UUID) ([]models.VaultEntry, error) {

	var entries []models.VaultEntry
	err := r.db.NewRaw(`
		SELECT id, owner_id, peer_handle, original_sender_handle, encrypted_blob,
		       iv, sender_signature_verified, version, created_at, updated_at, deleted_at
		FROM (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY COALESCE(NULLIF(peer_handle, ''), original_sender_handle)
				ORDER BY updated_at DESC, id DESC
			) AS rn
			FROM vault_entries
			WHERE owner_id = ? AND deleted_at IS NULL
		) ranked
		WHERE rn = 1
		ORDER BY updated_at DESC
	`, ownerID).Scan(ctx, &entries)
	if err != nil {
		return nil, errors.Wrap(err, "messageRepo.ConversationSummaries.Scan: ")
	}
	return entries, nil
}

// DeleteChat hard-deletes every entry for a peer. Explicit user action,
// not a sync event, so no tombstones.
func (r *MessageRepository) DeleteChat(ctx context.Context, ownerID uuid.UUID, peerHandle string) (int64, error) {

	res, err := r.db.NewDelete().Model((*models.VaultEntry)(nil)).
		Where("owner_id = ?", ownerID).
		Where("COALESCE(NULLIF(peer_handle, ''), original_sender_handle) = ?", peerHandle).
		Exec(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "messageRepo.DeleteChat.Delete: ")
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (r *MessageRepository) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {

	_, err := r.db.NewInsert().Model(receipt).Returning("*").Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "messageRepo.CreateReceipt.Insert: ")
	}
	return nil
}
