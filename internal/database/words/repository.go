// Package words provides database operations for the word store: the
// deduplicated set of known words backing listings, favorites and history.
package words

import (
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// Repository handles all word database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Normalize canonicalizes a word the way it is stored: trimmed, lowercase.
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// GetByWord retrieves a word row by its normalized text.
func (r *Repository) GetByWord(word string) (*entities.Word, error) {
	var row entities.Word
	err := r.db.Where("word = ?", Normalize(word)).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FirstOrCreate returns the existing row for word or creates one. Concurrent
// creators race on the unique index; the loser re-reads the winner's row.
func (r *Repository) FirstOrCreate(word string) (*entities.Word, error) {
	row := entities.Word{Word: Normalize(word)}
	err := r.db.Where("word = ?", row.Word).FirstOrCreate(&row).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return r.GetByWord(word)
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Count returns the number of words matching the prefix (all words when the
// prefix is empty). Pagination metadata uses this, computed on the same
// predicate as the page query but without the cursor window.
func (r *Repository) Count(prefix string) (int64, error) {
	var count int64
	err := r.prefixQuery(prefix).Count(&count).Error
	return count, err
}

// ListPage fetches one cursor window of words ordered by word ASC, id ASC.
// It is shaped as a pagination.Fetch: fetchLimit includes the extra
// look-ahead row, and reversed cursors page backward.
func (r *Repository) ListPage(prefix string, cur *pagination.Cursor, fetchLimit int) ([]entities.Word, error) {
	query := r.prefixQuery(prefix)

	switch {
	case cur == nil:
		query = query.Order("word ASC, id ASC")
	case cur.Rev:
		query = query.
			Where("word < ? OR (word = ? AND id < ?)", cur.Key, cur.Key, cur.ID).
			Order("word DESC, id DESC")
	default:
		query = query.
			Where("word > ? OR (word = ? AND id > ?)", cur.Key, cur.Key, cur.ID).
			Order("word ASC, id ASC")
	}

	var rows []entities.Word
	err := query.Limit(fetchLimit).Find(&rows).Error
	return rows, err
}

// BulkInsert inserts words in batches, silently skipping ones already stored.
// Used by the import-words command.
func (r *Repository) BulkInsert(wordTexts []string, batchSize int) (int64, error) {
	rows := make([]entities.Word, 0, len(wordTexts))
	for _, text := range wordTexts {
		rows = append(rows, entities.Word{Word: Normalize(text)})
	}

	result := r.db.
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&rows, batchSize)
	return result.RowsAffected, result.Error
}

func (r *Repository) prefixQuery(prefix string) *gorm.DB {
	query := r.db.Model(&entities.Word{})
	if prefix != "" {
		query = query.Where(`word LIKE ? ESCAPE '\'`, escapeLike(Normalize(prefix))+"%")
	}
	return query
}

// escapeLike neutralizes LIKE metacharacters so a search for "100%" matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
