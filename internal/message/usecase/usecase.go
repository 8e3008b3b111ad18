package usecase

import (
	"context"
	"encoding/base64"
	"net/http"
	"time"

	"courier/config"
	"courier/internal/federation/discovery"
	fedmodels "courier/internal/federation/model"
	"courier/internal/identity"
	"courier/internal/message"
	"courier/internal/metrics"
	models "courier/internal/message/model"
	"courier/pkg/canonicaljson"
	"courier/pkg/errors"
	"courier/pkg/logger"
	"courier/pkg/utils"

	"github.com/google/uuid"
)

// Header names of the federation signing convention.
const (
	HeaderSenderHost = "X-Courier-Host"
	HeaderSignature  = "X-Courier-Sig"
)

// MessageUsecase is the delivery router plus the vault/sync read side.
type MessageUsecase struct {
	repo     message.MessageRepository
	users    identity.UserRepository
	client   message.FederationClient
	resolver message.EndpointResolver
	signer   message.EnvelopeSigner
	notifier message.Notifier
	cfg      *config.Config
	logger   logger.Logger
	metrics  *metrics.Metrics
}

func NewMessageUsecase(
	repo message.MessageRepository,
	users identity.UserRepository,
	client message.FederationClient,
	resolver message.EndpointResolver,
	signer message.EnvelopeSigner,
	notifier message.Notifier,
	cfg *config.Config,
	logger logger.Logger,
	m *metrics.Metrics,
) *MessageUsecase {
	return &MessageUsecase{
		repo:     repo,
		users:    users,
		client:   client,
		resolver: resolver,
		signer:   signer,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
	}
}

func (uc *MessageUsecase) SendMessage(ctx context.Context, cmd message.SendMessageCommand) (*message.SendResultDTO, error) {
	recipient, err := utils.ParseHandle(cmd.RecipientHandle)
	if err != nil {
		return nil, err
	}
	if cmd.MessageID == "" {
		return nil, errors.InvalidArg("message_id is required")
	}
	eventType := cmd.EventType
	if eventType == "" {
		eventType = models.EventMessage
	}
	if !eventType.Valid() {
		return nil, errors.InvalidArg("unknown event type")
	}
	if eventType == models.EventReaction && cmd.ReactionEmoji == "" {
		return nil, errors.InvalidArg("reaction requires reaction_emoji")
	}

	senderHandle := cmd.SenderUsername + "@" + uc.cfg.Federation.Host

	if recipient.IsLocal(uc.cfg.Federation.Host) {
		return uc.sendLocal(ctx, cmd, recipient, senderHandle, eventType)
	}
	return uc.sendRemote(ctx, cmd, recipient, senderHandle, eventType)
}

func (uc *MessageUsecase) sendLocal(ctx context.Context, cmd message.SendMessageCommand, recipient utils.Handle, senderHandle string, eventType models.EventType) (*message.SendResultDTO, error) {
	user, err := uc.users.GetUserByUsername(ctx, recipient.Username)
	if err != nil || user == nil {
		return nil, errors.ErrRecipientNotFound
	}

	item := &models.IncomingQueueItem{
		RecipientID:   user.ID,
		SenderHandle:  senderHandle,
		MessageID:     cmd.MessageID,
		EventType:     eventType,
		ReactionEmoji: cmd.ReactionEmoji,
		EncryptedBlob: cmd.EncryptedBlob,
	}
	if err := uc.repo.EnqueueWithCompaction(ctx, item); err != nil {
		uc.logger.Error("local enqueue failed", "recipient", recipient.Username, "err", err)
		return nil, errors.ErrDeliveryFailed(err)
	}

	uc.metrics.DeliveriesLocal.Inc()
	uc.notifier.NotifyUser(user.ID, "queue", message.QueueItemToDTO(item))

	stored, err := uc.storeSenderCopy(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &message.SendResultDTO{
		ID:                item.ID.String(),
		Relayed:           false,
		SenderVaultStored: stored,
		CreatedAt:         item.CreatedAt,
	}, nil
}

func (uc *MessageUsecase) sendRemote(ctx context.Context, cmd message.SendMessageCommand, recipient utils.Handle, senderHandle string, eventType models.EventType) (*message.SendResultDTO, error) {
	if !uc.client.IsFederationHostAllowed(recipient.Host) {
		return nil, errors.ErrUntrustedHost
	}

	envelope := fedmodels.Envelope{
		RecipientHandle: recipient.String(),
		SenderHandle:    senderHandle,
		EncryptedBlob:   cmd.EncryptedBlob,
		MessageID:       cmd.MessageID,
		EventType:       string(eventType),
		ReactionEmoji:   cmd.ReactionEmoji,
	}
	body, headers, err := uc.signPayload(envelope)
	if err != nil {
		return nil, err
	}

	inboxURL, err := uc.resolver.ResolveFederationEndpoint(ctx, recipient.Host, discovery.EndpointInbox)
	if err != nil {
		return nil, err
	}

	res := uc.client.SafeRequestJSON(ctx, http.MethodPost, inboxURL, body, headers)
	if res.Err != nil {
		// No automatic retry here; the client owns retry.
		uc.metrics.DeliveriesRemote.WithLabelValues("unreachable").Inc()
		return nil, res.Err
	}
	if !res.OK {
		uc.logger.Warn("remote inbox rejected message", "host", recipient.Host, "status", res.Status)
		uc.metrics.DeliveriesRemote.WithLabelValues("rejected").Inc()
		return nil, errors.ErrRemoteRejected(res.Status)
	}
	uc.metrics.DeliveriesRemote.WithLabelValues("ok").Inc()

	stored, err := uc.storeSenderCopy(ctx, cmd)
	if err != nil {
		return nil, err
	}

	// The remote server accepted custody; tell the sender's devices.
	receipt := &models.Receipt{
		RecipientID: cmd.SenderID,
		MessageID:   cmd.MessageID,
		Type:        "delivered_to_server",
	}
	if err := uc.repo.CreateReceipt(ctx, receipt); err != nil {
		uc.logger.Warn("failed to record server-delivery receipt", "message_id", cmd.MessageID, "err", err)
	}

	return &message.SendResultDTO{
		ID:                cmd.MessageID,
		Relayed:           true,
		SenderVaultStored: stored,
		CreatedAt:         time.Now().UTC(),
	}, nil
}

// storeSenderCopy writes the sender's own encrypted copy into their vault,
// idempotent by message id: duplicate sends from other devices return the
// first row.
func (uc *MessageUsecase) storeSenderCopy(ctx context.Context, cmd message.SendMessageCommand) (bool, error) {
	if cmd.SenderVaultBlob == "" {
		return false, nil
	}

	entry := &models.VaultEntry{
		ID:                      cmd.MessageID,
		OwnerID:                 cmd.SenderID,
		PeerHandle:              cmd.RecipientHandle,
		EncryptedBlob:           cmd.SenderVaultBlob,
		IV:                      cmd.SenderVaultIV,
		SenderSignatureVerified: cmd.SenderVaultSignatureVerified,
	}
	if _, err := uc.repo.CreateVaultEntry(ctx, entry); err != nil {
		return false, err
	}
	return true, nil
}

// signPayload canonicalizes v and returns the body bytes plus the signing
// headers. The verifier recomputes the same canonical bytes, so body and
// signature must come from one serialization.
func (uc *MessageUsecase) signPayload(v interface{}) ([]byte, map[string]string, error) {
	body, err := canonicaljson.Marshal(v)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeInternal, "canonicalizing federation payload", err)
	}
	sig, err := uc.signer.Sign(body)
	if err != nil {
		return nil, nil, errors.Wrap(errors.CodeInternal, "signing federation payload", err)
	}
	headers := map[string]string{
		HeaderSenderHost: uc.cfg.Federation.Host,
		HeaderSignature:  base64.StdEncoding.EncodeToString(sig),
	}
	return body, headers, nil
}

func (uc *MessageUsecase) DeliverInbound(ctx context.Context, cmd message.InboundMessageCommand) (*message.QueueItemDTO, error) {
	recipient, err := utils.ParseHandle(cmd.RecipientHandle)
	if err != nil {
		return nil, err
	}
	if !recipient.IsLocal(uc.cfg.Federation.Host) {
		return nil, errors.InvalidArg("recipient is not local to this host")
	}

	user, err := uc.users.GetUserByUsername(ctx, recipient.Username)
	if err != nil || user == nil {
		return nil, errors.ErrRecipientNotFound
	}

	eventType := cmd.EventType
	if eventType == "" {
		eventType = models.EventMessage
	}
	if !eventType.Valid() {
		return nil, errors.InvalidArg("unknown event type")
	}

	messageID := cmd.MessageID
	if messageID == "" {
		messageID = uuid.NewString()
	}

	item := &models.IncomingQueueItem{
		RecipientID:   user.ID,
		SenderHandle:  cmd.SenderHandle,
		MessageID:     messageID,
		EventType:     eventType,
		ReactionEmoji: cmd.ReactionEmoji,
		EncryptedBlob: cmd.EncryptedBlob,
	}
	if err := uc.repo.EnqueueWithCompaction(ctx, item); err != nil {
		uc.logger.Error("inbound enqueue failed", "recipient", recipient.Username, "err", err)
		return nil, errors.ErrDeliveryFailed(err)
	}

	uc.notifier.NotifyUser(user.ID, "queue", message.QueueItemToDTO(item))

	dto := message.QueueItemToDTO(item)
	return &dto, nil
}

func (uc *MessageUsecase) RecordInboundReceipt(ctx context.Context, cmd message.InboundReceiptCommand) error {
	recipient, err := utils.ParseHandle(cmd.RecipientHandle)
	if err != nil {
		return err
	}
	if !recipient.IsLocal(uc.cfg.Federation.Host) {
		return errors.InvalidArg("recipient is not local to this host")
	}
	if cmd.MessageID == "" || cmd.Type == "" {
		return errors.InvalidArg("message_id and type are required")
	}

	user, err := uc.users.GetUserByUsername(ctx, recipient.Username)
	if err != nil || user == nil {
		return errors.ErrRecipientNotFound
	}

	receipt := &models.Receipt{
		RecipientID: user.ID,
		MessageID:   cmd.MessageID,
		Type:        cmd.Type,
	}
	if err := uc.repo.CreateReceipt(ctx, receipt); err != nil {
		return errors.Internal("failed to record receipt")
	}

	// Receipts also flow through the queue so offline devices see them.
	item := &models.IncomingQueueItem{
		RecipientID:   user.ID,
		SenderHandle:  cmd.SenderHandle,
		MessageID:     cmd.MessageID,
		EventType:     models.EventReceipt,
		EncryptedBlob: cmd.Type,
	}
	if err := uc.repo.EnqueueWithCompaction(ctx, item); err != nil {
		uc.logger.Warn("failed to enqueue receipt", "message_id", cmd.MessageID, "err", err)
	} else {
		uc.notifier.NotifyUser(user.ID, "receipt", message.QueueItemToDTO(item))
	}
	return nil
}

func (uc *MessageUsecase) ListQueue(ctx context.Context, userID uuid.UUID) ([]message.QueueItemDTO, error) {
	items, err := uc.repo.ListQueue(ctx, userID)
	if err != nil {
		uc.logger.Error("queue list failed", "user_id", userID, "err", err)
		return nil, errors.Internal("failed to list queue")
	}
	dtos := make([]message.QueueItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, message.QueueItemToDTO(&items[i]))
	}
	return dtos, nil
}

func (uc *MessageUsecase) StoreQueueItem(ctx context.Context, userID, itemID uuid.UUID) (*message.VaultEntryDTO, error) {
	entry, err := uc.repo.StoreQueueItem(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	uc.notifier.NotifyUser(userID, "vault", message.VaultEntryToDTO(entry))
	dto := message.VaultEntryToDTO(entry)
	return &dto, nil
}

func (uc *MessageUsecase) AckQueueItem(ctx context.Context, userID, itemID uuid.UUID) error {
	return uc.repo.AckQueueItem(ctx, itemID, userID)
}

func (uc *MessageUsecase) CreateVaultEntry(ctx context.Context, cmd message.CreateVaultCommand) (*message.VaultEntryDTO, error) {
	if cmd.EncryptedBlob == "" {
		return nil, errors.InvalidArg("encrypted_blob is required")
	}
	id := cmd.MessageID
	if id == "" {
		id = uuid.NewString()
	}

	entry := &models.VaultEntry{
		ID:                      id,
		OwnerID:                 cmd.OwnerID,
		PeerHandle:              cmd.PeerHandle,
		OriginalSenderHandle:    cmd.OriginalSenderHandle,
		EncryptedBlob:           cmd.EncryptedBlob,
		IV:                      cmd.IV,
		SenderSignatureVerified: cmd.SenderSignatureVerified,
	}
	created, err := uc.repo.CreateVaultEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	dto := message.VaultEntryToDTO(created)
	return &dto, nil
}

func (uc *MessageUsecase) UpdateVaultEntry(ctx context.Context, cmd message.UpdateVaultCommand) (*message.VaultEntryDTO, error) {
	if cmd.EncryptedBlob == "" {
		return nil, errors.InvalidArg("encrypted_blob is required")
	}

	entry, err := uc.repo.UpdateVaultEntry(ctx, cmd.ID, cmd.OwnerID, cmd.EncryptedBlob, cmd.IV, cmd.ExpectedVersion, cmd.Deleted)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeVersionConflict {
			uc.metrics.VaultConflicts.Inc()
		}
		return nil, err
	}

	uc.notifier.NotifyUser(cmd.OwnerID, "vault", message.VaultEntryToDTO(entry))
	dto := message.VaultEntryToDTO(entry)
	return &dto, nil
}

func (uc *MessageUsecase) ListVault(ctx context.Context, ownerID uuid.UUID) ([]message.VaultEntryDTO, error) {
	entries, err := uc.repo.ListVault(ctx, ownerID, 0)
	if err != nil {
		uc.logger.Error("vault list failed", "owner_id", ownerID, "err", err)
		return nil, errors.Internal("failed to list vault")
	}
	return vaultDTOs(entries), nil
}

func (uc *MessageUsecase) DeltaSync(ctx context.Context, ownerID uuid.UUID, q message.DeltaSyncQuery) (*message.DeltaSyncDTO, error) {
	entries, hasMore, err := uc.repo.DeltaSync(ctx, ownerID, q.Since, q.Cursor, q.Limit)
	if err != nil {
		if errors.CodeOf(err) == errors.CodeInvalidArgument {
			return nil, err
		}
		uc.logger.Error("delta sync failed", "owner_id", ownerID, "err", err)
		return nil, errors.Internal("failed to sync vault")
	}

	dto := &message.DeltaSyncDTO{
		Entries: vaultDTOs(entries),
		HasMore: hasMore,
	}
	if hasMore && len(entries) > 0 {
		last := entries[len(entries)-1]
		dto.NextCursor = message.EncodeSyncCursor(last.UpdatedAt, last.ID)
	}
	return dto, nil
}

func (uc *MessageUsecase) ConversationSummaries(ctx context.Context, ownerID uuid.UUID) ([]message.VaultEntryDTO, error) {
	entries, err := uc.repo.ConversationSummaries(ctx, ownerID)
	if err != nil {
		uc.logger.Error("summaries failed", "owner_id", ownerID, "err", err)
		return nil, errors.Internal("failed to load summaries")
	}
	return vaultDTOs(entries), nil
}

func (uc *MessageUsecase) DeleteChat(ctx context.Context, ownerID uuid.UUID, peerHandle string) error {
	if peerHandle == "" {
		return errors.InvalidArg("peer_handle is required")
	}
	if _, err := uc.repo.DeleteChat(ctx, ownerID, peerHandle); err != nil {
		uc.logger.Error("delete chat failed", "owner_id", ownerID, "err", err)
		return errors.Internal("failed to delete chat")
	}
	return nil
}

func vaultDTOs(entries []models.VaultEntry) []message.VaultEntryDTO {
	dtos := make([]message.VaultEntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, message.VaultEntryToDTO(&entries[i]))
	}
	return dtos
}
