package history

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/dictionary/internal/entities"
	"github.com/mrlokans/dictionary/internal/pagination"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	t.Helper()
	dbPath := "./test_history_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Word{}, &entities.History{}))

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}
	return db, NewRepository(db), cleanup
}

func createTestWord(t *testing.T, db *gorm.DB, text string) *entities.Word {
	t.Helper()
	word := &entities.Word{Word: text}
	require.NoError(t, db.Create(word).Error)
	return word
}

func TestRepository_Touch(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	word := createTestWord(t, db, "fire")

	require.NoError(t, repo.Touch(1, word.ID))

	var first entities.History
	require.NoError(t, db.Where("user_id = ? AND word_id = ?", 1, word.ID).First(&first).Error)

	// Repeat visit keeps a single row and moves updated_at forward
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, repo.Touch(1, word.ID))

	var count int64
	require.NoError(t, db.Model(&entities.History{}).Where("user_id = ?", 1).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var second entities.History
	require.NoError(t, db.Where("user_id = ? AND word_id = ?", 1, word.ID).First(&second).Error)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))
}

func TestRepository_ListPage(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	fire := createTestWord(t, db, "fire")
	water := createTestWord(t, db, "water")
	earth := createTestWord(t, db, "earth")

	for _, word := range []*entities.Word{fire, water, earth} {
		require.NoError(t, repo.Touch(1, word.ID))
		time.Sleep(5 * time.Millisecond)
	}

	rows, err := repo.ListPage(1, nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Most recent visit first
	assert.Equal(t, "earth", rows[0].Word)
	assert.Equal(t, "water", rows[1].Word)
	assert.Equal(t, "fire", rows[2].Word)

	t.Run("revisiting moves a word to the front", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, repo.Touch(1, fire.ID))

		rows, err := repo.ListPage(1, nil, 10)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "fire", rows[0].Word)
	})

	t.Run("cursor window resumes without overlap", func(t *testing.T) {
		fetch := func(cur *pagination.Cursor, fetchLimit int) ([]VisitedWord, error) {
			return repo.ListPage(1, cur, fetchLimit)
		}
		key := func(v VisitedWord) (string, uint) {
			return pagination.TimeKey(v.Added), v.HistoryID
		}

		seen := []string{}
		cursor := ""
		for {
			page, err := pagination.Paginate(2, cursor, fetch, key)
			require.NoError(t, err)
			for _, item := range page.Items {
				seen = append(seen, item.Word)
			}
			if !page.HasNext {
				break
			}
			cursor = page.Next
		}
		assert.Equal(t, []string{"fire", "earth", "water"}, seen)
	})

	t.Run("scoped to the user", func(t *testing.T) {
		other, err := repo.ListPage(42, nil, 10)
		require.NoError(t, err)
		assert.Empty(t, other)
	})
}

func TestRepository_Count(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	fire := createTestWord(t, db, "fire")
	water := createTestWord(t, db, "water")
	require.NoError(t, repo.Touch(1, fire.ID))
	require.NoError(t, repo.Touch(1, fire.ID))
	require.NoError(t, repo.Touch(1, water.ID))
	require.NoError(t, repo.Touch(2, water.ID))

	count, err := repo.Count(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
