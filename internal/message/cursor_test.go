package message

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SyncCursor(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		at := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)
		cursor := EncodeSyncCursor(at, "msg-123")

		ts, id, err := DecodeSyncCursor(cursor)
		require.NoError(t, err)
		assert.True(t, at.Equal(ts))
		assert.Equal(t, "msg-123", id)
	})

	t.Run("id containing the separator survives", func(t *testing.T) {
		at := time.Now().UTC()
		cursor := EncodeSyncCursor(at, "weird|id|with|pipes")

		_, id, err := DecodeSyncCursor(cursor)
		require.NoError(t, err)
		assert.Equal(t, "weird|id|with|pipes", id)
	})

	t.Run("malformed cursors are rejected", func(t *testing.T) {
		for _, cursor := range []string{
			"not base64 !!",
			"bm8tc2VwYXJhdG9y",       // "no-separator"
			"bm90LWEtdGltZXxtc2ctMQ", // "not-a-time|msg-1"
		} {
			_, _, err := DecodeSyncCursor(cursor)
			assert.Error(t, err, "cursor %q", cursor)
		}
	})
}
