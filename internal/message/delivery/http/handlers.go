package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"courier/internal/message"
	models "courier/internal/message/model"
	"courier/internal/notify"
	"courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/google/uuid"
)

// Handlers serves the bearer-authenticated message/sync API.
type Handlers struct {
	usecase message.MessageUsecase
	events  *notify.Hub
	logger  *logger.Logger
}

func NewHandlers(usecase message.MessageUsecase, events *notify.Hub, logger *logger.Logger) *Handlers {
	return &Handlers{usecase: usecase, events: events, logger: logger}
}

type sendRequest struct {
	RecipientHandle string `json:"recipient_handle"`
	EncryptedBlob   string `json:"encrypted_blob"`
	MessageID       string `json:"message_id"`
	EventType       string `json:"event_type"`
	ReactionEmoji   string `json:"reaction_emoji"`

	SenderVaultBlob              string `json:"sender_vault_blob"`
	SenderVaultIV                string `json:"sender_vault_iv"`
	SenderVaultSignatureVerified bool   `json:"sender_vault_signature_verified"`
}

// Send serves POST /messages/send: 201 for local delivery, 202 when the
// message was relayed to a remote host.
func (h *Handlers) Send(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}
	if _, err := uuid.Parse(req.MessageID); err != nil {
		writeError(w, errors.InvalidArg("message_id must be a uuid"))
		return
	}

	result, err := h.usecase.SendMessage(r.Context(), message.SendMessageCommand{
		SenderID:                     user.ID,
		SenderUsername:               user.Username,
		RecipientHandle:              req.RecipientHandle,
		EncryptedBlob:                req.EncryptedBlob,
		MessageID:                    req.MessageID,
		EventType:                    models.EventType(req.EventType),
		ReactionEmoji:                req.ReactionEmoji,
		SenderVaultBlob:              req.SenderVaultBlob,
		SenderVaultIV:                req.SenderVaultIV,
		SenderVaultSignatureVerified: req.SenderVaultSignatureVerified,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Relayed {
		status = http.StatusAccepted
	}
	writeJSON(w, status, result)
}

// Queue serves GET /messages/queue.
func (h *Handlers) Queue(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	items, err := h.usecase.ListQueue(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// StoreQueueItem serves POST /messages/queue/{id}/store.
func (h *Handlers) StoreQueueItem(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, errors.InvalidArg("invalid queue item id"))
		return
	}

	entry, err := h.usecase.StoreQueueItem(r.Context(), user.ID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// AckQueueItem serves POST /messages/queue/{id}/ack.
func (h *Handlers) AckQueueItem(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	itemID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, errors.InvalidArg("invalid queue item id"))
		return
	}

	if err := h.usecase.AckQueueItem(r.Context(), user.ID, itemID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "acked"})
}

type createVaultRequest struct {
	MessageID               string `json:"message_id"`
	PeerHandle              string `json:"peer_handle"`
	OriginalSenderHandle    string `json:"original_sender_handle"`
	EncryptedBlob           string `json:"encrypted_blob"`
	IV                      string `json:"iv"`
	SenderSignatureVerified bool   `json:"sender_signature_verified"`
}

// CreateVaultEntry serves POST /messages/vault.
func (h *Handlers) CreateVaultEntry(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	var req createVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}

	entry, err := h.usecase.CreateVaultEntry(r.Context(), message.CreateVaultCommand{
		OwnerID:                 user.ID,
		MessageID:               req.MessageID,
		PeerHandle:              req.PeerHandle,
		OriginalSenderHandle:    req.OriginalSenderHandle,
		EncryptedBlob:           req.EncryptedBlob,
		IV:                      req.IV,
		SenderSignatureVerified: req.SenderSignatureVerified,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type updateVaultRequest struct {
	EncryptedBlob   string `json:"encrypted_blob"`
	IV              string `json:"iv"`
	ExpectedVersion *int64 `json:"expected_version"`
	Deleted         *bool  `json:"deleted"`
}

// UpdateVaultEntry serves PATCH /messages/vault/{id}; 409 on version
// conflict, row untouched.
func (h *Handlers) UpdateVaultEntry(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	var req updateVaultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}

	entry, err := h.usecase.UpdateVaultEntry(r.Context(), message.UpdateVaultCommand{
		ID:              r.PathValue("id"),
		OwnerID:         user.ID,
		EncryptedBlob:   req.EncryptedBlob,
		IV:              req.IV,
		ExpectedVersion: req.ExpectedVersion,
		Deleted:         req.Deleted,
	})
	if err != nil {
		if errors.CodeOf(err) == errors.CodeVersionConflict {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "Version conflict",
				"code":  string(errors.CodeVersionConflict),
			})
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// Vault serves GET /messages/vault.
func (h *Handlers) Vault(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	entries, err := h.usecase.ListVault(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// Sync serves GET /messages/vault/sync?since&cursor&limit.
func (h *Handlers) Sync(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	q := message.DeltaSyncQuery{Cursor: r.URL.Query().Get("cursor")}

	if raw := r.URL.Query().Get("since"); raw != "" {
		since, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			writeError(w, errors.InvalidArg("since must be an RFC 3339 timestamp"))
			return
		}
		q.Since = since
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, errors.InvalidArg("limit must be an integer"))
			return
		}
		q.Limit = limit
	}

	result, err := h.usecase.DeltaSync(r.Context(), user.ID, q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// Summaries serves GET /messages/vault/summaries.
func (h *Handlers) Summaries(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	summaries, err := h.usecase.ConversationSummaries(r.Context(), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"summaries": summaries})
}

// Events serves GET /messages/events as a server-sent event stream of the
// user's live queue/receipt/vault notifications. Clients that fall behind
// or reconnect recover through queue drain and delta sync.
func (h *Handlers) Events(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, errors.Internal("streaming unsupported"))
		return
	}

	ch, cancel := h.events.Subscribe(user.ID, 16)
	defer cancel()

	// The stream outlives the server's write timeout.
	_ = http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			payload, err := json.Marshal(ev.Payload)
			if err != nil {
				h.logger.Warn("dropping unencodable event", "kind", ev.Kind, "err", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Kind, payload)
			flusher.Flush()
		}
	}
}

type deleteChatRequest struct {
	PeerHandle string `json:"peer_handle"`
}

// DeleteChat serves POST /messages/vault/delete-chat.
func (h *Handlers) DeleteChat(w http.ResponseWriter, r *http.Request) {
	user := AuthenticatedUser(r.Context())

	var req deleteChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}

	if err := h.usecase.DeleteChat(r.Context(), user.ID, req.PeerHandle); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), map[string]string{
		"error": errors.MessageOf(err),
		"code":  string(errors.CodeOf(err)),
	})
}
