// Package pagination implements opaque cursor pagination over ordered
// queries.
//
// A cursor encodes the ordering-key boundary of an already-returned item
// plus its row ID as a tie breaker, so iteration resumes exactly after (or
// before) that item without re-scanning prior pages. Rows inserted outside
// the already-returned range never shift subsequent pages, unlike offset
// pagination.
package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// ErrInvalidCursor is returned when a cursor string cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Cursor is the decoded pagination position. Key holds the boundary value of
// the listing's ordering column, ID breaks ties between equal keys, and Rev
// marks a cursor that pages backward from the boundary.
type Cursor struct {
	Key string `json:"k"`
	ID  uint   `json:"i"`
	Rev bool   `json:"r,omitempty"`
}

// Encode serializes a cursor into its opaque wire form.
func Encode(c Cursor) string {
	payload, _ := json.Marshal(c)
	return base64.RawURLEncoding.EncodeToString(payload)
}

// Decode parses an opaque cursor. An empty string decodes to nil, meaning
// "start from the beginning".
func Decode(s string) (*Cursor, error) {
	if s == "" {
		return nil, nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidCursor
	}
	var c Cursor
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, ErrInvalidCursor
	}
	return &c, nil
}

// Page is one window of an ordered collection together with the cursors to
// continue in either direction.
type Page[T any] struct {
	Items   []T
	Next    string
	Prev    string
	HasNext bool
	HasPrev bool
}

// Fetch loads up to fetchLimit rows relative to cur: rows strictly after the
// boundary in the listing's canonical order when cur is nil or forward, rows
// strictly before it in reversed order when cur.Rev is set.
type Fetch[T any] func(cur *Cursor, fetchLimit int) ([]T, error)

// Key extracts the ordering-key value and row ID used to anchor cursors.
type Key[T any] func(item T) (key string, id uint)

// Paginate fetches one page of at most limit items. It always requests one
// extra row to learn whether more pages exist in the fetch direction; HasPrev
// on forward pages is derived from "the request carried a cursor" rather
// than a second backward query.
func Paginate[T any](limit int, cursor string, fetch Fetch[T], key Key[T]) (*Page[T], error) {
	cur, err := Decode(cursor)
	if err != nil {
		return nil, err
	}

	rows, err := fetch(cur, limit+1)
	if err != nil {
		return nil, err
	}

	if cur != nil && cur.Rev {
		return backwardPage(rows, limit, cur, key), nil
	}
	return forwardPage(rows, limit, cur != nil, key), nil
}

func forwardPage[T any](rows []T, limit int, hadCursor bool, key Key[T]) *Page[T] {
	page := &Page[T]{HasPrev: hadCursor}

	page.HasNext = len(rows) > limit
	if page.HasNext {
		rows = rows[:limit]
	}
	page.Items = rows

	if len(rows) == 0 {
		return page
	}
	if page.HasNext {
		k, id := key(rows[len(rows)-1])
		page.Next = Encode(Cursor{Key: k, ID: id})
	}
	if page.HasPrev {
		k, id := key(rows[0])
		page.Prev = Encode(Cursor{Key: k, ID: id, Rev: true})
	}
	return page
}

func backwardPage[T any](rows []T, limit int, cur *Cursor, key Key[T]) *Page[T] {
	// Backward fetches run in reversed order with the row nearest the
	// boundary first, so the extra row signals pages before this one.
	page := &Page[T]{HasNext: true}

	page.HasPrev = len(rows) > limit
	if page.HasPrev {
		rows = rows[:limit]
	}
	reverse(rows)
	page.Items = rows

	if len(rows) == 0 {
		// Everything before the boundary is gone. Forward iteration can
		// still resume from the boundary itself.
		page.Next = Encode(Cursor{Key: cur.Key, ID: cur.ID})
		return page
	}
	k, id := key(rows[len(rows)-1])
	page.Next = Encode(Cursor{Key: k, ID: id})
	if page.HasPrev {
		k, id = key(rows[0])
		page.Prev = Encode(Cursor{Key: k, ID: id, Rev: true})
	}
	return page
}

func reverse[T any](rows []T) {
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
}
