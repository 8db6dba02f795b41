package service

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"
)

// encodeCursor produces the opaque resume token for (created_at, id):
// base64url without padding over "<epochMillis>:<id>". The format is stable
// because callers may persist tokens client-side.
func encodeCursor(createdAt *time.Time, id *int64) string {
	if createdAt == nil || id == nil {
		return ""
	}
	raw := strconv.FormatInt(createdAt.UnixMilli(), 10) + ":" + strconv.FormatInt(*id, 10)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// decodeCursor restores a token. Any malformation degrades to "no cursor"
// rather than failing the request.
func decodeCursor(cursor string) (*time.Time, *int64) {
	if strings.TrimSpace(cursor) == "" {
		return nil, nil
	}

	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(cursor)
		if err != nil {
			return nil, nil
		}
	}

	parts := strings.Split(string(raw), ":")
	if len(parts) != 2 {
		return nil, nil
	}

	millis, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return nil, nil
	}
	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, nil
	}

	createdAt := time.UnixMilli(millis).UTC()
	return &createdAt, &id
}
