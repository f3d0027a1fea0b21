package history

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/dictionary/internal/cache"
	historydb "github.com/mrlokans/dictionary/internal/database/history"
	"github.com/mrlokans/dictionary/internal/entities"
)

func setupService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	dbPath := "./test_history_svc_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Word{}, &entities.History{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	})

	svc := NewService(historydb.NewRepository(db), cache.NewMemory(), time.Hour)
	return svc, db
}

func createTestWord(t *testing.T, db *gorm.DB, text string) *entities.Word {
	t.Helper()
	word := &entities.Word{Word: text}
	require.NoError(t, db.Create(word).Error)
	return word
}

func TestService_RecordAndList(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	fire := createTestWord(t, db, "fire")
	water := createTestWord(t, db, "water")

	require.NoError(t, svc.Record(ctx, 1, fire.ID))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, svc.Record(ctx, 1, water.ID))

	listing, cached, err := svc.List(ctx, 1, 10, "")
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, listing.Results, 2)
	assert.EqualValues(t, 2, listing.TotalDocs)

	// Most recent visit first
	assert.Equal(t, "water", listing.Results[0].Word)
	assert.Equal(t, "fire", listing.Results[1].Word)

	t.Run("repeat read is served from the cache", func(t *testing.T) {
		_, cached, err := svc.List(ctx, 1, 10, "")
		require.NoError(t, err)
		assert.True(t, cached)
	})

	t.Run("revisit keeps one entry and reorders the listing", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond)
		require.NoError(t, svc.Record(ctx, 1, fire.ID))

		listing, cached, err := svc.List(ctx, 1, 10, "")
		require.NoError(t, err)
		assert.False(t, cached)
		require.Len(t, listing.Results, 2)
		assert.Equal(t, "fire", listing.Results[0].Word)
	})
}

func TestService_List_Empty(t *testing.T) {
	svc, _ := setupService(t)

	listing, cached, err := svc.List(context.Background(), 1, 10, "")
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Empty(t, listing.Results)
	assert.NotNil(t, listing.Results)
	assert.Zero(t, listing.TotalDocs)
}

func TestService_List_Pagination(t *testing.T) {
	svc, db := setupService(t)
	ctx := context.Background()

	for _, text := range []string{"alpha", "bravo", "charlie", "delta", "echo"} {
		word := createTestWord(t, db, text)
		require.NoError(t, svc.Record(ctx, 1, word.ID))
		time.Sleep(5 * time.Millisecond)
	}

	seen := []string{}
	cursor := ""
	for {
		listing, _, err := svc.List(ctx, 1, 2, cursor)
		require.NoError(t, err)
		for _, item := range listing.Results {
			seen = append(seen, item.Word)
		}
		if !listing.HasNext {
			break
		}
		cursor = listing.Next
	}

	// Newest-first walk covers every visit exactly once
	assert.Equal(t, []string{"echo", "delta", "charlie", "bravo", "alpha"}, seen)
}
