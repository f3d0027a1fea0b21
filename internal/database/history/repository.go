// Package history provides database operations for the user→word visit
// history. At most one row exists per (user, word); repeat visits bump the
// row's updated_at in place via an upsert, so the uniqueness invariant lives
// in the storage layer rather than in check-then-insert application code.
package history

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// VisitedWord is one row of a user's history listing. Added is the moment of
// the most recent visit, which is also the listing's ordering key.
type VisitedWord struct {
	HistoryID uint      `json:"-"`
	WordID    uint      `json:"-"`
	Word      string    `json:"word"`
	Added     time.Time `json:"added"`
}

// Repository handles all history database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Touch records a visit: it inserts the association or, when the row already
// exists, refreshes its updated_at. One statement, race-safe under
// concurrent visits to the same word.
func (r *Repository) Touch(userID, wordID uint) error {
	now := time.Now()
	return r.db.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "word_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"updated_at": now}),
		}).
		Create(&entities.History{
			UserID:    userID,
			WordID:    wordID,
			CreatedAt: now,
			UpdatedAt: now,
		}).Error
}

// Count returns the user's total number of distinct visited words.
func (r *Repository) Count(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.History{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// ListPage fetches one cursor window of the user's history, most recently
// visited first (updated_at DESC, id DESC). Shaped as a pagination.Fetch.
func (r *Repository) ListPage(userID uint, cur *pagination.Cursor, fetchLimit int) ([]VisitedWord, error) {
	query := r.db.Table("histories").
		Select("histories.id AS history_id, words.id AS word_id, words.word, histories.updated_at AS added").
		Joins("JOIN words ON words.id = histories.word_id").
		Where("histories.user_id = ?", userID)

	switch {
	case cur == nil:
		query = query.Order("histories.updated_at DESC, histories.id DESC")
	case cur.Rev:
		boundary, err := pagination.ParseTimeKey(cur.Key)
		if err != nil {
			return nil, err
		}
		query = query.
			Where("histories.updated_at > ? OR (histories.updated_at = ? AND histories.id > ?)", boundary, boundary, cur.ID).
			Order("histories.updated_at ASC, histories.id ASC")
	default:
		boundary, err := pagination.ParseTimeKey(cur.Key)
		if err != nil {
			return nil, err
		}
		query = query.
			Where("histories.updated_at < ? OR (histories.updated_at = ? AND histories.id < ?)", boundary, boundary, cur.ID).
			Order("histories.updated_at DESC, histories.id DESC")
	}

	var rows []VisitedWord
	err := query.Limit(fetchLimit).Scan(&rows).Error
	return rows, err
}
