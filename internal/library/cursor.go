package library

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

var ErrInvalidCursor = errors.New("invalid cursor")

// CursorData is the position encoded in a page cursor.
type CursorData struct {
	AfterID string `json:"after_id,omitempty"`
}

// EncodeCursor encodes cursor data to a URL-safe string
func EncodeCursor(data CursorData) string {
	if data.AfterID == "" {
		return ""
	}
	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor decodes a cursor string; an empty cursor is the first page.
func DecodeCursor(cursor string) (CursorData, error) {
	if cursor == "" {
		return CursorData{}, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return CursorData{}, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(decoded, &data); err != nil {
		return CursorData{}, ErrInvalidCursor
	}
	return data, nil
}

// Paginate returns up to limit entries after the cursor position and the
// cursor of the following page, empty on the last page. limit 0 returns the
// rest of the list.
func Paginate(entries []Entry, cursor string, limit int) ([]Entry, string, error) {
	data, err := DecodeCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	start := 0
	if data.AfterID != "" {
		start = -1
		for i, e := range entries {
			if e.ID == data.AfterID {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, "", ErrInvalidCursor
		}
	}

	rest := entries[start:]
	if limit <= 0 || limit >= len(rest) {
		return rest, "", nil
	}
	page := rest[:limit]
	return page, EncodeCursor(CursorData{AfterID: page[len(page)-1].ID}), nil
}
