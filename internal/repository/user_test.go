package repository

import (
	"context"
	"testing"

	"vidtube/internal/cache"
	"vidtube/internal/database"
	"vidtube/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newCachedTestDB(t *testing.T) (*gorm.DB, *miniredis.Miniredis) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return db, mr
}

func TestUserRepository_GetByID_CacheKeepsCredentials(t *testing.T) {
	db, mr := newCachedTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		FullName:     "Alice Anderson",
		Password:     "$2a$10$not-a-real-hash",
		RefreshToken: "stored-refresh-token",
	}
	require.NoError(t, db.Create(user).Error)

	// First call misses and primes the cache.
	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "stored-refresh-token", got.RefreshToken)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	// Second call is served from Redis. Password and RefreshToken are
	// hidden from API JSON but must survive the cache round trip.
	got, err = repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
	assert.Equal(t, "$2a$10$not-a-real-hash", got.Password)
	assert.Equal(t, "stored-refresh-token", got.RefreshToken)
}
