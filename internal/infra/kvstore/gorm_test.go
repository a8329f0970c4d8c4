package kvstore

import (
	"context"
	"testing"

	"kanap/internal/infra/db"
	repo "kanap/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ repo.KVStoreFactory = (*GormFactory)(nil)

// テスト用のインメモリDB（接続1本で同じDBを使う）
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func TestGormStore_GetMissing(t *testing.T) {
	s := NewGormStore(newTestDB(t), "s1")

	v, ok, err := s.Get(context.Background(), "42-green")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestGormStore_SetOverwrites(t *testing.T) {
	ctx := context.Background()
	s := NewGormStore(newTestDB(t), "s1")

	require.NoError(t, s.Set(ctx, "42-green", `{"id":"42","color":"green","quantity":1}`))
	require.NoError(t, s.Set(ctx, "42-green", `{"id":"42","color":"green","quantity":5}`))

	v, ok, err := s.Get(ctx, "42-green")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"id":"42","color":"green","quantity":5}`, v)

	entries, err := s.Entries(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestGormFactory_NamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	f := NewGormFactory(newTestDB(t))
	a := f.ForNamespace("a")
	b := f.ForNamespace("b")

	require.NoError(t, a.Set(ctx, "k2", "a2"))
	require.NoError(t, a.Set(ctx, "k1", "a1"))
	require.NoError(t, b.Set(ctx, "k1", "b1"))

	entries, err := a.Entries(ctx)
	require.NoError(t, err)
	assert.Equal(t, []repo.KVPair{{Key: "k1", Value: "a1"}, {Key: "k2", Value: "a2"}}, entries)

	v, ok, err := b.Get(ctx, "k1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "b1", v)

	_, ok, err = b.Get(ctx, "k2")
	require.NoError(t, err)
	assert.False(t, ok)
}
