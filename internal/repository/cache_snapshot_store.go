package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/cache"
)

const (
	snapshotKeyPrefix = "picks"
	snapshotLatestKey = "latest"

	// Dated snapshots age out after a week; the latest pointer never
	// expires so fallback keeps working through long outages.
	snapshotTTL = 7 * 24 * time.Hour
)

// CacheSnapshotStore persists snapshots in a cache.Service backend
// (memory, Redis or layered). Dated entries live under picks:<date>
// with picks:latest always tracking the newest one.
type CacheSnapshotStore struct {
	cache cache.Service
}

func NewCacheSnapshotStore(cacheSvc cache.Service) *CacheSnapshotStore {
	return &CacheSnapshotStore{cache: cacheSvc}
}

func (s *CacheSnapshotStore) Get(ctx context.Context, date string) (*models.Snapshot, error) {
	return s.load(ctx, cache.GenerateKey(snapshotKeyPrefix, date))
}

func (s *CacheSnapshotStore) Latest(ctx context.Context) (*models.Snapshot, error) {
	return s.load(ctx, cache.GenerateKey(snapshotKeyPrefix, snapshotLatestKey))
}

func (s *CacheSnapshotStore) Put(ctx context.Context, snap *models.Snapshot) error {
	key := cache.GenerateKey(snapshotKeyPrefix, snap.Date)
	if err := s.cache.Set(ctx, key, snap, snapshotTTL); err != nil {
		return fmt.Errorf("store snapshot %s: %w", snap.Date, err)
	}
	latest := cache.GenerateKey(snapshotKeyPrefix, snapshotLatestKey)
	if err := s.cache.Set(ctx, latest, snap, 0); err != nil {
		return fmt.Errorf("store latest snapshot: %w", err)
	}
	return nil
}

func (s *CacheSnapshotStore) load(ctx context.Context, key string) (*models.Snapshot, error) {
	var snap models.Snapshot
	if err := s.cache.Get(ctx, key, &snap); err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Version != models.SnapshotVersion || snap.Date == "" {
		return nil, repository.ErrSnapshotNotFound
	}
	return &snap, nil
}
