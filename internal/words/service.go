// Package words implements dictionary word lookups backed by the upstream
// dictionary API, the local word index, and the result cache.
package words

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/dictionary/internal/cache"
	wordsdb "github.com/mrlokans/dictionary/internal/database/words"
	"github.com/mrlokans/dictionary/internal/dictionary"
	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// Store is the word index the service reads and writes.
type Store interface {
	GetByWord(word string) (*entities.Word, error)
	FirstOrCreate(word string) (*entities.Word, error)
	Count(prefix string) (int64, error)
	ListPage(prefix string, cur *pagination.Cursor, fetchLimit int) ([]entities.Word, error)
}

// HistoryRecorder notes that a user viewed a word.
type HistoryRecorder interface {
	Record(ctx context.Context, userID, wordID uint) error
}

// Listing is one page of the word index. Next and Prev hold opaque cursors;
// turning them into page URLs is the transport layer's job, which keeps
// cached pages host-independent.
type Listing struct {
	Results   []string `json:"results"`
	TotalDocs int64    `json:"totalDocs"`
	Next      string   `json:"next"`
	Prev      string   `json:"prev"`
	HasNext   bool     `json:"hasNext"`
	HasPrev   bool     `json:"hasPrev"`
}

// Config carries the cache TTLs for the two read paths.
type Config struct {
	DetailTTL time.Duration
	ListTTL   time.Duration
}

// Service proxies word lookups: cached upstream payloads for single words,
// cached cursor pages for the index listing. Every successful lookup is
// persisted to the word index before its payload is cached, so a cached
// definition always has a backing row.
type Service struct {
	store   Store
	gateway dictionary.Client
	cache   cache.Store
	history HistoryRecorder
	config  Config
}

// NewService creates a new word lookup service.
func NewService(store Store, gateway dictionary.Client, cacheStore cache.Store, history HistoryRecorder, cfg Config) *Service {
	return &Service{
		store:   store,
		gateway: gateway,
		cache:   cacheStore,
		history: history,
		config:  cfg,
	}
}

func detailKey(word string) string {
	return "word_detail:" + word
}

// Show returns the upstream definition payload for a word and reports whether
// it came from the cache. The viewing user's history is updated on every
// successful lookup, cached or not. dictionary.ErrNotFound and
// *dictionary.UpstreamError pass through untouched.
func (s *Service) Show(ctx context.Context, word string, userID uint) (json.RawMessage, bool, error) {
	normalized := wordsdb.Normalize(word)

	if payload, ok := s.cache.TryGet(ctx, detailKey(normalized)); ok {
		s.recordVisit(ctx, userID, normalized)
		return payload, true, nil
	}

	payload, err := s.gateway.Lookup(ctx, normalized)
	if err != nil {
		return nil, false, err
	}

	// Persist before caching: a cache entry must never outlive a missing row.
	entity, err := s.store.FirstOrCreate(normalized)
	if err != nil {
		return nil, false, fmt.Errorf("failed to persist word %q: %w", normalized, err)
	}

	if err := s.cache.Put(ctx, detailKey(normalized), payload, nil, s.config.DetailTTL); err != nil {
		log.Printf("words: failed to cache %q: %v", normalized, err)
	}

	if err := s.history.Record(ctx, userID, entity.ID); err != nil {
		log.Printf("words: failed to record history for user %d: %v", userID, err)
	}

	return payload, false, nil
}

// Resolve finds a word in the local index, falling back to an upstream
// lookup that persists and caches it on first sight. Used by favorites, so
// a word can be favorited before anyone viewed its definition.
func (s *Service) Resolve(ctx context.Context, word string) (*entities.Word, error) {
	normalized := wordsdb.Normalize(word)

	entity, err := s.store.GetByWord(normalized)
	if err == nil {
		return entity, nil
	}

	payload, err := s.gateway.Lookup(ctx, normalized)
	if err != nil {
		return nil, err
	}

	entity, err = s.store.FirstOrCreate(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to persist word %q: %w", normalized, err)
	}

	if err := s.cache.Put(ctx, detailKey(normalized), payload, nil, s.config.DetailTTL); err != nil {
		log.Printf("words: failed to cache %q: %v", normalized, err)
	}

	return entity, nil
}

// List returns one page of the word index filtered by prefix, most of the
// time straight from the cache. Listing pages are keyed by the full query
// shape and expire on their own; the index only ever grows, so stale pages
// merely lag behind new imports.
func (s *Service) List(ctx context.Context, search string, limit int, cursor string) (*Listing, bool, error) {
	prefix := wordsdb.Normalize(search)
	key := fmt.Sprintf("words:%s_%s_%d", prefix, cursor, limit)

	if payload, ok := s.cache.TryGet(ctx, key); ok {
		var listing Listing
		if err := json.Unmarshal(payload, &listing); err == nil {
			return &listing, true, nil
		}
		log.Printf("words: discarding undecodable cached listing %q", key)
	}

	page, err := pagination.Paginate(limit, cursor,
		func(cur *pagination.Cursor, fetchLimit int) ([]entities.Word, error) {
			return s.store.ListPage(prefix, cur, fetchLimit)
		},
		func(w entities.Word) (string, uint) {
			return w.Word, w.ID
		})
	if err != nil {
		return nil, false, err
	}

	total, err := s.store.Count(prefix)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count words: %w", err)
	}

	results := make([]string, 0, len(page.Items))
	for _, w := range page.Items {
		results = append(results, w.Word)
	}

	listing := &Listing{
		Results:   results,
		TotalDocs: total,
		Next:      page.Next,
		Prev:      page.Prev,
		HasNext:   page.HasNext,
		HasPrev:   page.HasPrev,
	}

	if payload, err := json.Marshal(listing); err == nil {
		if err := s.cache.Put(ctx, key, payload, nil, s.config.ListTTL); err != nil {
			log.Printf("words: failed to cache listing %q: %v", key, err)
		}
	}

	return listing, false, nil
}

// recordVisit resolves the word row backing a cache hit and notes the visit.
func (s *Service) recordVisit(ctx context.Context, userID uint, normalized string) {
	entity, err := s.store.GetByWord(normalized)
	if err != nil {
		log.Printf("words: cached word %q has no index row: %v", normalized, err)
		return
	}
	if err := s.history.Record(ctx, userID, entity.ID); err != nil {
		log.Printf("words: failed to record history for user %d: %v", userID, err)
	}
}
