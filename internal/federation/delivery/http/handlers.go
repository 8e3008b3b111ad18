package http

import (
	"encoding/json"
	"net/http"

	"courier/internal/federation/discovery"
	"courier/internal/identity"
	"courier/internal/identity/keystore"
	"courier/internal/message"
	models "courier/internal/message/model"
	"courier/pkg/errors"
	"courier/pkg/logger"
	"courier/pkg/utils"
)

// Handlers serves the federation surface: the well-known discovery
// document, the legacy key endpoint, and the signed inbox/receipt/directory
// endpoints.
type Handlers struct {
	publisher *discovery.Publisher
	keys      *keystore.Keystore
	messages  message.MessageUsecase
	users     identity.UserRepository
	host      string
	logger    *logger.Logger
}

func NewHandlers(publisher *discovery.Publisher, keys *keystore.Keystore, messages message.MessageUsecase, users identity.UserRepository, host string, logger *logger.Logger) *Handlers {
	return &Handlers{
		publisher: publisher,
		keys:      keys,
		messages:  messages,
		users:     users,
		host:      host,
		logger:    logger,
	}
}

// WellKnown serves GET /.well-known/courier/federation.json.
func (h *Handlers) WellKnown(w http.ResponseWriter, r *http.Request) {
	doc, err := h.publisher.Document()
	if err != nil {
		h.logger.Error("failed to build discovery document", "err", err)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Key serves GET /api/federation/key, the legacy single-key lookup.
func (h *Handlers) Key(w http.ResponseWriter, r *http.Request) {
	id, err := h.keys.Identity()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"host":      h.host,
		"publicKey": id.PublicKeyBase64,
	})
}

type incomingRequest struct {
	RecipientHandle string `json:"recipient_handle"`
	SenderHandle    string `json:"sender_handle"`
	EncryptedBlob   string `json:"encrypted_blob"`
	MessageID       string `json:"message_id"`
	EventType       string `json:"event_type"`
	ReactionEmoji   string `json:"reaction_emoji"`
}

// Incoming serves POST /api/federation/incoming, behind VerifyInbound.
func (h *Handlers) Incoming(w http.ResponseWriter, r *http.Request) {
	var req incomingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}
	if req.RecipientHandle == "" || req.SenderHandle == "" || req.EncryptedBlob == "" {
		writeError(w, errors.InvalidArg("recipient_handle, sender_handle and encrypted_blob are required"))
		return
	}

	item, err := h.messages.DeliverInbound(r.Context(), message.InboundMessageCommand{
		SenderHandle:    req.SenderHandle,
		RecipientHandle: req.RecipientHandle,
		EncryptedBlob:   req.EncryptedBlob,
		MessageID:       req.MessageID,
		EventType:       models.EventType(req.EventType),
		ReactionEmoji:   req.ReactionEmoji,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":               item.ID,
		"recipient_handle": req.RecipientHandle,
		"created_at":       item.CreatedAt,
	})
}

type receiptRequest struct {
	RecipientHandle string `json:"recipient_handle"`
	SenderHandle    string `json:"sender_handle"`
	MessageID       string `json:"message_id"`
	Type            string `json:"type"`
}

// Receipts serves POST /api/federation/receipts, behind VerifyInbound.
func (h *Handlers) Receipts(w http.ResponseWriter, r *http.Request) {
	var req receiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}

	err := h.messages.RecordInboundReceipt(r.Context(), message.InboundReceiptCommand{
		SenderHandle:    req.SenderHandle,
		RecipientHandle: req.RecipientHandle,
		MessageID:       req.MessageID,
		Type:            req.Type,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "recorded"})
}

type directoryRequest struct {
	SenderHandle string `json:"sender_handle"`
	Handle       string `json:"handle"`
}

// Directory serves POST /api/federation/directory, behind VerifyInbound.
// A signed body is required like every other federation endpoint; a
// body-less GET has no canonical bytes to sign. Remote hosts use it to
// check a recipient exists before relaying; only existence and the
// canonical handle leak.
func (h *Handlers) Directory(w http.ResponseWriter, r *http.Request) {
	var req directoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.InvalidArg("malformed request body"))
		return
	}

	handle, err := utils.ParseHandle(req.Handle)
	if err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), handle.Username)
	if err != nil || user == nil {
		writeError(w, errors.ErrRecipientNotFound)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"handle": user.Username + "@" + h.host,
	})
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
