// Package pagination implements cursor-based pagination over
// (created_at, id) ordered listings.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=10"`
}

type Cursor struct {
	ID        string `json:"id,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, err
	}
	return &cursor, nil
}

// Apply constrains stmt to rows strictly after the cursor, in
// (created_at desc, id desc) order, and applies the page size limit.
func Apply(stmt *gorm.DB, page Pagination) (*gorm.DB, error) {
	if page.PageToken != "" {
		cursor, err := DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		createdAt, err := time.Parse(time.RFC3339Nano, cursor.CreatedAt)
		if err != nil {
			return nil, err
		}
		stmt = stmt.Where(
			"created_at < ? OR (created_at = ? AND id < ?)",
			createdAt, createdAt, cursor.ID,
		)
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize)
	}
	return stmt, nil
}

// BuildCursorPageInfo trims the look-ahead row fetched beyond limit and
// reports whether more pages exist.
func BuildCursorPageInfo[T any](data []*T, limit int32, extractCursor func(*T) string) *PageInfo {
	if len(data) == 0 {
		return &PageInfo{HasMore: false}
	}

	hasMore := len(data) > int(limit)
	last := data[len(data)-1]
	if hasMore {
		last = data[int(limit)-1]
	}

	return &PageInfo{
		HasMore:       hasMore,
		NextPageToken: extractCursor(last),
	}
}
