package message

import (
	"encoding/base64"
	"strings"
	"time"

	"courier/pkg/errors"
)

// Sync cursors are opaque to clients: base64("updatedAtRFC3339Nano|id").
// The timestamp half keeps keyset pagination correct across rows that
// share an updated_at.

func EncodeSyncCursor(updatedAt time.Time, id string) string {
	raw := updatedAt.UTC().Format(time.RFC3339Nano) + "|" + id
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeSyncCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", errors.InvalidArg("malformed sync cursor")
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return time.Time{}, "", errors.InvalidArg("malformed sync cursor")
	}
	ts, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", errors.InvalidArg("malformed sync cursor")
	}
	return ts, parts[1], nil
}
