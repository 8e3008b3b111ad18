package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	identitymodels "courier/internal/identity/model"
	"courier/internal/message"
	"courier/internal/message/mocks"
	models "courier/internal/message/model"
	"courier/internal/notify"
	appErrors "courier/pkg/errors"
	"courier/pkg/logger"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	user := &identitymodels.User{ID: userID, Username: "alice", Name: "Alice"}
	return req.WithContext(context.WithValue(req.Context(), userKey, user))
}

func newSendRequest(body string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/messages/send", strings.NewReader(body))
	return withUser(req, userID)
}

func newVaultPatch(body string, userID uuid.UUID, entryID string) *http.Request {
	req := httptest.NewRequest(http.MethodPatch, "/messages/vault/"+entryID, strings.NewReader(body))
	req.SetPathValue("id", entryID)
	return withUser(req, userID)
}

func newAuthedGet(target string, userID uuid.UUID) *http.Request {
	return withUser(httptest.NewRequest(http.MethodGet, target, nil), userID)
}

func Test_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mocks.NewMockMessageUsecase(ctrl)
	h := NewHandlers(usecase, notify.NewHub(), &logger.Logger{})

	userID := uuid.New()
	msgID := uuid.NewString()

	t.Run("happy path - local delivery returns 201", func(t *testing.T) {
		usecase.EXPECT().
			SendMessage(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd message.SendMessageCommand) (*message.SendResultDTO, error) {
				assert.Equal(t, userID, cmd.SenderID)
				assert.Equal(t, "bob@local.test", cmd.RecipientHandle)
				assert.Equal(t, models.EventMessage, cmd.EventType)
				return &message.SendResultDTO{ID: msgID, Relayed: false}, nil
			})

		body := `{"recipient_handle":"bob@local.test","encrypted_blob":"AAEC","message_id":"` + msgID + `","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.Send(rec, newSendRequest(body, userID))

		require.Equal(t, http.StatusCreated, rec.Code)
		var got message.SendResultDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, msgID, got.ID)
	})

	t.Run("happy path - remote relay returns 202", func(t *testing.T) {
		usecase.EXPECT().
			SendMessage(gomock.Any(), gomock.Any()).
			Return(&message.SendResultDTO{ID: msgID, Relayed: true}, nil)

		body := `{"recipient_handle":"bob@remote.test","encrypted_blob":"AAEC","message_id":"` + msgID + `","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.Send(rec, newSendRequest(body, userID))

		assert.Equal(t, http.StatusAccepted, rec.Code)
	})

	t.Run("sad path - malformed body", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Send(rec, newSendRequest("{not json", userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sad path - message_id is not a uuid", func(t *testing.T) {
		body := `{"recipient_handle":"bob@local.test","encrypted_blob":"AAEC","message_id":"msg-1","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.Send(rec, newSendRequest(body, userID))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), string(appErrors.CodeInvalidArgument))
	})

	t.Run("sad path - usecase error maps to status", func(t *testing.T) {
		usecase.EXPECT().
			SendMessage(gomock.Any(), gomock.Any()).
			Return(nil, appErrors.ErrRecipientNotFound)

		body := `{"recipient_handle":"nobody@local.test","encrypted_blob":"AAEC","message_id":"` + msgID + `","event_type":"message"}`
		rec := httptest.NewRecorder()
		h.Send(rec, newSendRequest(body, userID))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func Test_UpdateVaultEntry_Handler(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mocks.NewMockMessageUsecase(ctrl)
	h := NewHandlers(usecase, notify.NewHub(), &logger.Logger{})

	userID := uuid.New()
	entryID := uuid.NewString()

	t.Run("happy path", func(t *testing.T) {
		usecase.EXPECT().
			UpdateVaultEntry(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, cmd message.UpdateVaultCommand) (*message.VaultEntryDTO, error) {
				assert.Equal(t, entryID, cmd.ID)
				require.NotNil(t, cmd.ExpectedVersion)
				assert.Equal(t, int64(3), *cmd.ExpectedVersion)
				return &message.VaultEntryDTO{ID: entryID, Version: 4}, nil
			})

		body := `{"encrypted_blob":"AAEC","iv":"AQID","expected_version":3}`
		req := newVaultPatch(body, userID, entryID)
		rec := httptest.NewRecorder()
		h.UpdateVaultEntry(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got message.VaultEntryDTO
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, int64(4), got.Version)
	})

	t.Run("sad path - version conflict returns 409", func(t *testing.T) {
		usecase.EXPECT().
			UpdateVaultEntry(gomock.Any(), gomock.Any()).
			Return(nil, appErrors.ErrVersionConflict)

		body := `{"encrypted_blob":"AAEC","iv":"AQID","expected_version":1}`
		req := newVaultPatch(body, userID, entryID)
		rec := httptest.NewRecorder()
		h.UpdateVaultEntry(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), string(appErrors.CodeVersionConflict))
	})

	t.Run("sad path - malformed body", func(t *testing.T) {
		req := newVaultPatch("{", userID, entryID)
		rec := httptest.NewRecorder()
		h.UpdateVaultEntry(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Sync_Handler(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mocks.NewMockMessageUsecase(ctrl)
	h := NewHandlers(usecase, notify.NewHub(), &logger.Logger{})

	userID := uuid.New()

	t.Run("happy path - query parameters forwarded", func(t *testing.T) {
		since := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
		usecase.EXPECT().
			DeltaSync(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ uuid.UUID, q message.DeltaSyncQuery) (*message.DeltaSyncDTO, error) {
				assert.True(t, q.Since.Equal(since))
				assert.Equal(t, "abc", q.Cursor)
				assert.Equal(t, 25, q.Limit)
				return &message.DeltaSyncDTO{Entries: []message.VaultEntryDTO{}, HasMore: false}, nil
			})

		target := "/messages/vault/sync?since=" + since.Format(time.RFC3339Nano) + "&cursor=abc&limit=25"
		req := newAuthedGet(target, userID)
		rec := httptest.NewRecorder()
		h.Sync(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("happy path - defaults when no parameters", func(t *testing.T) {
		usecase.EXPECT().
			DeltaSync(gomock.Any(), userID, message.DeltaSyncQuery{}).
			Return(&message.DeltaSyncDTO{}, nil)

		req := newAuthedGet("/messages/vault/sync", userID)
		rec := httptest.NewRecorder()
		h.Sync(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sad path - unparseable since", func(t *testing.T) {
		req := newAuthedGet("/messages/vault/sync?since=yesterday", userID)
		rec := httptest.NewRecorder()
		h.Sync(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("sad path - non-integer limit", func(t *testing.T) {
		req := newAuthedGet("/messages/vault/sync?limit=many", userID)
		rec := httptest.NewRecorder()
		h.Sync(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func Test_Events_Handler(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mocks.NewMockMessageUsecase(ctrl)
	hub := notify.NewHub()
	h := NewHandlers(usecase, hub, &logger.Logger{})

	userID := uuid.New()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.Events(w, withUser(r, userID))
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	// Publish until the subscription inside the handler picks one up.
	stop := make(chan struct{})
	go func() {
		ticker := time.NewTicker(5 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				hub.NotifyUser(userID, "queue", map[string]string{"id": "msg-1"})
			}
		}
	}()
	defer close(stop)

	scanner := bufio.NewScanner(resp.Body)
	var sawEvent, sawData bool
	for scanner.Scan() {
		line := scanner.Text()
		if line == "event: queue" {
			sawEvent = true
		}
		if strings.HasPrefix(line, "data: ") && strings.Contains(line, "msg-1") {
			sawData = true
		}
		if sawEvent && sawData {
			break
		}
	}
	assert.True(t, sawEvent)
	assert.True(t, sawData)
}

func Test_QueueHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	usecase := mocks.NewMockMessageUsecase(ctrl)
	h := NewHandlers(usecase, notify.NewHub(), &logger.Logger{})

	userID := uuid.New()
	itemID := uuid.New()

	t.Run("happy path - list queue", func(t *testing.T) {
		usecase.EXPECT().
			ListQueue(gomock.Any(), userID).
			Return([]message.QueueItemDTO{{ID: itemID, SenderHandle: "bob@remote.test"}}, nil)

		req := newAuthedGet("/messages/queue", userID)
		rec := httptest.NewRecorder()
		h.Queue(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "bob@remote.test")
	})

	t.Run("happy path - store queue item", func(t *testing.T) {
		usecase.EXPECT().
			StoreQueueItem(gomock.Any(), userID, itemID).
			Return(&message.VaultEntryDTO{ID: uuid.NewString(), Version: 1}, nil)

		req := newAuthedGet("/messages/queue/"+itemID.String()+"/store", userID)
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		h.StoreQueueItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sad path - store with invalid id", func(t *testing.T) {
		req := newAuthedGet("/messages/queue/not-a-uuid/store", userID)
		req.SetPathValue("id", "not-a-uuid")
		rec := httptest.NewRecorder()
		h.StoreQueueItem(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("happy path - ack queue item", func(t *testing.T) {
		usecase.EXPECT().
			AckQueueItem(gomock.Any(), userID, itemID).
			Return(nil)

		req := newAuthedGet("/messages/queue/"+itemID.String()+"/ack", userID)
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		h.AckQueueItem(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("sad path - ack already processed", func(t *testing.T) {
		usecase.EXPECT().
			AckQueueItem(gomock.Any(), userID, itemID).
			Return(appErrors.ErrAlreadyProcessed)

		req := newAuthedGet("/messages/queue/"+itemID.String()+"/ack", userID)
		req.SetPathValue("id", itemID.String())
		rec := httptest.NewRecorder()
		h.AckQueueItem(rec, req)

		assert.Equal(t, appErrors.HTTPStatus(appErrors.ErrAlreadyProcessed), rec.Code)
	})
}
