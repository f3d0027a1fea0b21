// Package history tracks which words each user has viewed and serves the
// paged history listing.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/dictionary/internal/cache"
	historydb "github.com/mrlokans/dictionary/internal/database/history"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// Store is the history table access the service needs.
type Store interface {
	Touch(userID, wordID uint) error
	Count(userID uint) (int64, error)
	ListPage(userID uint, cur *pagination.Cursor, fetchLimit int) ([]historydb.VisitedWord, error)
}

// Listing is one page of a user's visit history. Next and Prev hold opaque
// cursors for the transport layer to turn into page URLs.
type Listing struct {
	Results   []historydb.VisitedWord `json:"results"`
	TotalDocs int64                   `json:"totalDocs"`
	Next      string                  `json:"next"`
	Prev      string                  `json:"prev"`
	HasNext   bool                    `json:"hasNext"`
	HasPrev   bool                    `json:"hasPrev"`
}

// Service records word visits and lists them newest first. Listings are
// cached under the user's tag; each recorded visit flushes that tag so a
// listing never shows a stale order.
type Service struct {
	store      Store
	cache      cache.Store
	listingTTL time.Duration
}

// NewService creates a new history service.
func NewService(store Store, cacheStore cache.Store, listingTTL time.Duration) *Service {
	return &Service{
		store:      store,
		cache:      cacheStore,
		listingTTL: listingTTL,
	}
}

func userTag(userID uint) string {
	return fmt.Sprintf("history:%d", userID)
}

// Record notes that the user viewed the word. Repeat visits keep a single
// history row and move it to the front of the listing.
func (s *Service) Record(ctx context.Context, userID, wordID uint) error {
	if err := s.store.Touch(userID, wordID); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	if err := s.cache.Flush(ctx, userTag(userID)); err != nil {
		log.Printf("history: failed to flush listings for user %d: %v", userID, err)
	}
	return nil
}

// List returns one page of the user's history, most recently visited first,
// and reports whether it came from the cache.
func (s *Service) List(ctx context.Context, userID uint, limit int, cursor string) (*Listing, bool, error) {
	key := fmt.Sprintf("user_history:%d_%s_%d", userID, cursor, limit)

	if payload, ok := s.cache.TryGet(ctx, key); ok {
		var listing Listing
		if err := json.Unmarshal(payload, &listing); err == nil {
			return &listing, true, nil
		}
		log.Printf("history: discarding undecodable cached listing %q", key)
	}

	page, err := pagination.Paginate(limit, cursor,
		func(cur *pagination.Cursor, fetchLimit int) ([]historydb.VisitedWord, error) {
			return s.store.ListPage(userID, cur, fetchLimit)
		},
		func(v historydb.VisitedWord) (string, uint) {
			return pagination.TimeKey(v.Added), v.HistoryID
		})
	if err != nil {
		return nil, false, err
	}

	total, err := s.store.Count(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count history: %w", err)
	}

	listing := &Listing{
		Results:   page.Items,
		TotalDocs: total,
		Next:      page.Next,
		Prev:      page.Prev,
		HasNext:   page.HasNext,
		HasPrev:   page.HasPrev,
	}
	if listing.Results == nil {
		listing.Results = []historydb.VisitedWord{}
	}

	if payload, err := json.Marshal(listing); err == nil {
		if err := s.cache.Put(ctx, key, payload, []string{userTag(userID)}, s.listingTTL); err != nil {
			log.Printf("history: failed to cache listing %q: %v", key, err)
		}
	}

	return listing, false, nil
}
