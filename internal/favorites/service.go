// Package favorites manages each user's favorited words and serves the paged
// favorites listing.
package favorites

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/dictionary/internal/cache"
	favoritesdb "github.com/mrlokans/dictionary/internal/database/favorites"
	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

var (
	// ErrAlreadyFavorited is returned when the user favorites a word twice.
	ErrAlreadyFavorited = errors.New("word already favorited")
	// ErrNotFavorited is returned when removing a word the user never favorited.
	ErrNotFavorited = errors.New("word not favorited")
	// ErrNoFavorites is returned when listing for a user with no favorites.
	ErrNoFavorites = errors.New("no favorite words")
)

// Resolver finds or fetches the word row a favorite points at. Unknown words
// surface dictionary.ErrNotFound through it.
type Resolver interface {
	Resolve(ctx context.Context, word string) (*entities.Word, error)
}

// WordFinder looks a word up in the local index only, without touching the
// upstream API. Removal uses it so unfavoriting never triggers a fetch.
type WordFinder interface {
	GetByWord(word string) (*entities.Word, error)
}

// Store is the favorites table access the service needs.
type Store interface {
	Create(userID, wordID uint) error
	Delete(userID, wordID uint) (bool, error)
	Count(userID uint) (int64, error)
	ListPage(userID uint, cur *pagination.Cursor, fetchLimit int) ([]favoritesdb.FavoriteWord, error)
}

// Listing is one page of a user's favorites. Next and Prev hold opaque
// cursors for the transport layer to turn into page URLs.
type Listing struct {
	Results   []favoritesdb.FavoriteWord `json:"results"`
	TotalDocs int64                      `json:"totalDocs"`
	Next      string                     `json:"next"`
	Prev      string                     `json:"prev"`
	HasNext   bool                       `json:"hasNext"`
	HasPrev   bool                       `json:"hasPrev"`
}

// Service adds, removes and lists favorites. Listings are cached under the
// user's tag; every mutation flushes that tag, so a read after a mutation
// always reflects it.
type Service struct {
	store      Store
	resolver   Resolver
	finder     WordFinder
	cache      cache.Store
	listingTTL time.Duration
}

// NewService creates a new favorites service.
func NewService(store Store, resolver Resolver, finder WordFinder, cacheStore cache.Store, listingTTL time.Duration) *Service {
	return &Service{
		store:      store,
		resolver:   resolver,
		finder:     finder,
		cache:      cacheStore,
		listingTTL: listingTTL,
	}
}

func userTag(userID uint) string {
	return fmt.Sprintf("favorites:%d", userID)
}

// Add favorites a word for the user. The word is resolved through the
// dictionary first, so favoriting an unknown word fails the same way a
// lookup would. Two concurrent adds of the same word race on the unique
// index; the loser gets ErrAlreadyFavorited.
func (s *Service) Add(ctx context.Context, word string, userID uint) error {
	entity, err := s.resolver.Resolve(ctx, word)
	if err != nil {
		return err
	}

	if err := s.store.Create(userID, entity.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to favorite %q: %w", word, err)
	}

	s.flush(ctx, userID)
	return nil
}

// Remove unfavorites a word. A word missing from the index and a word the
// user never favorited both report ErrNotFavorited.
func (s *Service) Remove(ctx context.Context, word string, userID uint) error {
	entity, err := s.finder.GetByWord(word)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFavorited
		}
		return fmt.Errorf("failed to look up %q: %w", word, err)
	}

	removed, err := s.store.Delete(userID, entity.ID)
	if err != nil {
		return fmt.Errorf("failed to unfavorite %q: %w", word, err)
	}
	if !removed {
		return ErrNotFavorited
	}

	s.flush(ctx, userID)
	return nil
}

// List returns one page of the user's favorites, most recently added first,
// and reports whether it came from the cache. A user with no favorites at
// all gets ErrNoFavorites.
func (s *Service) List(ctx context.Context, userID uint, limit int, cursor string) (*Listing, bool, error) {
	key := fmt.Sprintf("user_favorites:%d_%s_%d", userID, cursor, limit)

	if payload, ok := s.cache.TryGet(ctx, key); ok {
		var listing Listing
		if err := json.Unmarshal(payload, &listing); err == nil {
			return &listing, true, nil
		}
		log.Printf("favorites: discarding undecodable cached listing %q", key)
	}

	total, err := s.store.Count(userID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to count favorites: %w", err)
	}
	if total == 0 {
		return nil, false, ErrNoFavorites
	}

	page, err := pagination.Paginate(limit, cursor,
		func(cur *pagination.Cursor, fetchLimit int) ([]favoritesdb.FavoriteWord, error) {
			return s.store.ListPage(userID, cur, fetchLimit)
		},
		func(f favoritesdb.FavoriteWord) (string, uint) {
			return pagination.TimeKey(f.CreatedAt), f.FavoriteID
		})
	if err != nil {
		return nil, false, err
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
		listing.Results = []favoritesdb.FavoriteWord{}
	}

	if payload, err := json.Marshal(listing); err == nil {
		if err := s.cache.Put(ctx, key, payload, []string{userTag(userID)}, s.listingTTL); err != nil {
			log.Printf("favorites: failed to cache listing %q: %v", key, err)
		}
	}

	return listing, false, nil
}

func (s *Service) flush(ctx context.Context, userID uint) {
	if err := s.cache.Flush(ctx, userTag(userID)); err != nil {
		log.Printf("favorites: failed to flush listings for user %d: %v", userID, err)
	}
}
