package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/cache"
	"Stock100/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("create test logger: %v", err)
	}
	return log
}

func sampleSnapshot(date string) *models.Snapshot {
	result := models.EmptyResult(date)
	result.BuyLong = []models.ScoredSymbol{{
		Symbol: "AAA", LongBuyScore: 54, ShortBuyScore: 50,
		LongSellScore: 46, ShortSellScore: 50,
		AverageScore: 52, Tag: "Strong Buy", Color: "#0a7f00",
	}}
	return models.NewSnapshot(result)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", "picks.json")
	store := NewFileSnapshotStore(path, testLogger(t))
	ctx := context.Background()

	_, err := store.Get(ctx, "2026-08-28")
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	require.NoError(t, store.Put(ctx, sampleSnapshot("2026-08-28")))

	got, err := store.Get(ctx, "2026-08-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", got.Date)
	assert.Equal(t, "AAA", got.BuyLong[0].Symbol)
	assert.Equal(t, "Strong Buy", got.BuyLong[0].Tag)

	_, err = store.Get(ctx, "2026-08-27")
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound, "wrong date is a miss")

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", latest.Date)
}

func TestFileStoreCorruptFileIsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picks.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileSnapshotStore(path, testLogger(t))
	_, err := store.Latest(context.Background())
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)
}

func TestFileStorePutReplacesPreviousDay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "picks.json")
	store := NewFileSnapshotStore(path, testLogger(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, sampleSnapshot("2026-08-27")))
	require.NoError(t, store.Put(ctx, sampleSnapshot("2026-08-28")))

	_, err := store.Get(ctx, "2026-08-27")
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", latest.Date)
}

func TestCacheStoreRoundTrip(t *testing.T) {
	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	store := NewCacheSnapshotStore(mem)
	ctx := context.Background()

	_, err := store.Latest(ctx)
	assert.ErrorIs(t, err, repository.ErrSnapshotNotFound)

	require.NoError(t, store.Put(ctx, sampleSnapshot("2026-08-27")))
	require.NoError(t, store.Put(ctx, sampleSnapshot("2026-08-28")))

	got, err := store.Get(ctx, "2026-08-27")
	require.NoError(t, err, "dated entries survive newer puts")
	assert.Equal(t, "2026-08-27", got.Date)

	latest, err := store.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", latest.Date)
}
