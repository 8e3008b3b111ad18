package http

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"courier/config"
	"courier/internal/federation/discovery"
	federationmodels "courier/internal/federation/model"
	"courier/internal/identity/keystore"
	identitymocks "courier/internal/identity/mocks"
	identitymodels "courier/internal/identity/model"
	identityrepo "courier/internal/identity/repository"
	"courier/internal/message"
	messagemocks "courier/internal/message/mocks"
	models "courier/internal/message/model"
	"courier/internal/metrics"
	"courier/pkg/canonicaljson"
	appErrors "courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerHarness struct {
	handlers *Handlers
	messages *messagemocks.MockMessageUsecase
	users    *identitymocks.MockUserRepository
	keys     *keystore.Keystore
}

func newHandlerHarness(t *testing.T) *handlerHarness {
	t.Helper()

	ctrl := gomock.NewController(t)
	messages := messagemocks.NewMockMessageUsecase(ctrl)
	users := identitymocks.NewMockUserRepository(ctrl)

	log := &logger.Logger{}
	keys := keystore.NewKeystore(filepath.Join(t.TempDir(), "federation_key.json"), log)

	cfg := &config.Config{}
	cfg.Federation.Host = "local.test"
	publisher := discovery.NewPublisher(cfg, keys)

	return &handlerHarness{
		handlers: NewHandlers(publisher, keys, messages, users, "local.test", log),
		messages: messages,
		users:    users,
		keys:     keys,
	}
}

func Test_WellKnown(t *testing.T) {
	h := newHandlerHarness(t)

	rec := httptest.NewRecorder()
	h.handlers.WellKnown(rec, httptest.NewRequest(http.MethodGet, "/.well-known/courier/federation.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var doc federationmodels.DiscoveryDocument
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, "local.test", doc.Host)
	assert.Equal(t, "https://local.test/api/federation/incoming", doc.InboxURL)
	require.NotNil(t, doc.ActiveKey())

	// The served document must verify against its own key.
	id, err := h.keys.Identity()
	require.NoError(t, err)
	pub, err := base64.StdEncoding.DecodeString(id.PublicKeyBase64)
	require.NoError(t, err)
	ok, err := discovery.VerifyDocumentSignature(&doc, ed25519.PublicKey(pub))
	require.NoError(t, err)
	assert.True(t, ok)
}

func Test_Key(t *testing.T) {
	h := newHandlerHarness(t)

	rec := httptest.NewRecorder()
	h.handlers.Key(rec, httptest.NewRequest(http.MethodGet, "/api/federation/key", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "local.test", resp["host"])

	id, err := h.keys.Identity()
	require.NoError(t, err)
	assert.Equal(t, id.PublicKeyBase64, resp["publicKey"])
}

func Test_Incoming(t *testing.T) {
	h := newHandlerHarness(t)

	t.Run("happy path", func(t *testing.T) {
		itemID := uuid.New()
		h.messages.EXPECT().
			DeliverInbound(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd message.InboundMessageCommand) (*message.QueueItemDTO, error) {
				assert.Equal(t, "bob@remote.test", cmd.SenderHandle)
				assert.Equal(t, "alice@local.test", cmd.RecipientHandle)
				assert.Equal(t, models.EventMessage, cmd.EventType)
				return &message.QueueItemDTO{ID: itemID}, nil
			})

		body := `{"recipient_handle":"alice@local.test","sender_handle":"bob@remote.test","encrypted_blob":"AAEC","message_id":"` + uuid.NewString() + `","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.handlers.Incoming(rec, httptest.NewRequest(http.MethodPost, "/api/federation/incoming", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), itemID.String())
	})

	t.Run("sad path - malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlers.Incoming(rec, httptest.NewRequest(http.MethodPost, "/api/federation/incoming", strings.NewReader("{broken")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sad path - missing required fields", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlers.Incoming(rec, httptest.NewRequest(http.MethodPost, "/api/federation/incoming", strings.NewReader(`{"sender_handle":"bob@remote.test"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sad path - recipient not local", func(t *testing.T) {
		h.messages.EXPECT().
			DeliverInbound(gomock.Any(), gomock.Any()).
			Return(nil, appErrors.ErrRecipientNotFound)

		body := `{"recipient_handle":"ghost@local.test","sender_handle":"bob@remote.test","encrypted_blob":"AAEC","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.handlers.Incoming(rec, httptest.NewRequest(http.MethodPost, "/api/federation/incoming", strings.NewReader(body)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), string(appErrors.CodeRecipientNotFound))
	})
}

func Test_Receipts(t *testing.T) {
	h := newHandlerHarness(t)

	t.Run("happy path", func(t *testing.T) {
		h.messages.EXPECT().
			RecordInboundReceipt(gomock.Any(), message.InboundReceiptCommand{
				SenderHandle:    "bob@remote.test",
				RecipientHandle: "alice@local.test",
				MessageID:       "msg-1",
				Type:            "delivered",
			}).
			Return(nil)

		body := `{"recipient_handle":"alice@local.test","sender_handle":"bob@remote.test","message_id":"msg-1","type":"delivered"}`
		rec := httptest.NewRecorder()
		h.handlers.Receipts(rec, httptest.NewRequest(http.MethodPost, "/api/federation/receipts", strings.NewReader(body)))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), "recorded")
	})

	t.Run("sad path - malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlers.Receipts(rec, httptest.NewRequest(http.MethodPost, "/api/federation/receipts", strings.NewReader("[")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Directory(t *testing.T) {
	h := newHandlerHarness(t)

	t.Run("happy path - existing user", func(t *testing.T) {
		h.users.EXPECT().
			GetUserByUsername(gomock.Any(), "alice").
			Return(&identitymodels.User{ID: uuid.New(), Username: "alice"}, nil)

		body := `{"sender_handle":"bob@remote.test","handle":"alice@local.test"}`
		rec := httptest.NewRecorder()
		h.handlers.Directory(rec, httptest.NewRequest(http.MethodPost, "/api/federation/directory", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice@local.test")
	})

	t.Run("sad path - unknown user", func(t *testing.T) {
		h.users.EXPECT().
			GetUserByUsername(gomock.Any(), "ghost").
			Return(nil, identityrepo.ErrUserNotFound)

		body := `{"handle":"ghost@local.test"}`
		rec := httptest.NewRecorder()
		h.handlers.Directory(rec, httptest.NewRequest(http.MethodPost, "/api/federation/directory", strings.NewReader(body)))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("sad path - invalid handle", func(t *testing.T) {
		body := `{"handle":"not a handle"}`
		rec := httptest.NewRecorder()
		h.handlers.Directory(rec, httptest.NewRequest(http.MethodPost, "/api/federation/directory", strings.NewReader(body)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sad path - malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.handlers.Directory(rec, httptest.NewRequest(http.MethodPost, "/api/federation/directory", strings.NewReader("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

// Directory must be reachable through the signature gate, not just when the
// handler is called directly.
func Test_Directory_SignedRoute(t *testing.T) {
	h := newHandlerHarness(t)

	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	gated := VerifyInbound(staticKeyResolver{key: pub}, &logger.Logger{}, metrics.New(prometheus.NewRegistry()))(
		http.HandlerFunc(h.handlers.Directory))

	body := []byte(`{"sender_handle":"bob@remote.test","handle":"alice@local.test"}`)
	canonical, err := canonicaljson.Canonicalize(body)
	require.NoError(t, err)
	sig := ed25519.Sign(priv, canonical)

	t.Run("happy path - signed lookup passes the gate", func(t *testing.T) {
		h.users.EXPECT().
			GetUserByUsername(gomock.Any(), "alice").
			Return(&identitymodels.User{ID: uuid.New(), Username: "alice"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/federation/directory", bytes.NewReader(body))
		req.Header.Set("X-Courier-Host", "remote.test")
		req.Header.Set("X-Courier-Sig", base64.StdEncoding.EncodeToString(sig))

		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "alice@local.test")
	})

	t.Run("sad path - unsigned lookup is rejected before the handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/federation/directory", bytes.NewReader(body))

		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
