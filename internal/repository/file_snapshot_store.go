package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/logger"
)

// FileSnapshotStore keeps the latest snapshot in a single JSON file.
// One snapshot at a time is enough: a new day's Put replaces the
// previous one, and Latest reads whatever is there for fallback.
type FileSnapshotStore struct {
	path string
	log  *logger.Logger
	mu   sync.Mutex
}

func NewFileSnapshotStore(path string, log *logger.Logger) *FileSnapshotStore {
	return &FileSnapshotStore{path: path, log: log}
}

func (s *FileSnapshotStore) Get(_ context.Context, date string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.read()
	if err != nil {
		return nil, err
	}
	if snap.Date != date {
		return nil, repository.ErrSnapshotNotFound
	}
	return snap, nil
}

func (s *FileSnapshotStore) Latest(context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileSnapshotStore) Put(_ context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	// Write-then-rename so readers never see a half-written file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// read returns the stored snapshot. A missing, corrupt or wrong-version
// file is a miss, never an error: a bad cache must not break serving.
func (s *FileSnapshotStore) read() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn("discarding corrupt snapshot file",
			logger.String("path", s.path),
			logger.Error(err))
		return nil, repository.ErrSnapshotNotFound
	}
	if snap.Version != models.SnapshotVersion || snap.Date == "" {
		return nil, repository.ErrSnapshotNotFound
	}
	return &snap, nil
}
