// Package favorites provides database operations for the user→word favorite
// association. The (user_id, word_id) unique index is the single source of
// truth for duplicate favorites: concurrent inserts race at the database and
// the loser observes gorm.ErrDuplicatedKey.
package favorites

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// FavoriteWord is one row of a user's favorites listing.
type FavoriteWord struct {
	FavoriteID uint      `json:"-"`
	WordID     uint      `json:"-"`
	Word       string    `json:"word"`
	CreatedAt  time.Time `json:"added"`
}

// Repository handles all favorites database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new favorites repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the association. A duplicate (user, word) pair returns
// gorm.ErrDuplicatedKey untouched so callers can translate it to a conflict.
func (r *Repository) Create(userID, wordID uint) error {
	return r.db.Create(&entities.Favorite{UserID: userID, WordID: wordID}).Error
}

// Delete removes the association and reports whether a row existed.
func (r *Repository) Delete(userID, wordID uint) (bool, error) {
	result := r.db.
		Where("user_id = ? AND word_id = ?", userID, wordID).
		Delete(&entities.Favorite{})
	return result.RowsAffected > 0, result.Error
}

// Count returns the user's total number of favorites, independent of any
// cursor window.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Favorite{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListPage fetches one cursor window of the user's favorites, newest first
// (created_at DESC, id DESC). Shaped as a pagination.Fetch.
func (r *Repository) ListPage(userID uint, cur *pagination.Cursor, fetchLimit int) ([]FavoriteWord, error) {
	query := r.db.Table("favorites").
		Select("favorites.id AS favorite_id, words.id AS word_id, words.word, favorites.created_at").
		Joins("JOIN words ON words.id = favorites.word_id").
		Where("favorites.user_id = ?", userID)

	switch {
	case cur == nil:
		query = query.Order("favorites.created_at DESC, favorites.id DESC")
	case cur.Rev:
		boundary, err := pagination.ParseTimeKey(cur.Key)
		if err != nil {
			return nil, err
		}
		query = query.
			Where("favorites.created_at > ? OR (favorites.created_at = ? AND favorites.id > ?)", boundary, boundary, cur.ID).
			Order("favorites.created_at ASC, favorites.id ASC")
	default:
		boundary, err := pagination.ParseTimeKey(cur.Key)
		if err != nil {
			return nil, err
		}
		query = query.
			Where("favorites.created_at < ? OR (favorites.created_at = ? AND favorites.id < ?)", boundary, boundary, cur.ID).
			Order("favorites.created_at DESC, favorites.id DESC")
	}

	var rows []FavoriteWord
	err := query.Limit(fetchLimit).Scan(&rows).Error
	return rows, err
}
