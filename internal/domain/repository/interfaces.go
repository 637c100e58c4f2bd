package repository

import (
	"context"
	"errors"

	"Stock100/internal/domain/models"
)

// ErrSnapshotNotFound is returned by SnapshotStore when no snapshot
// matches the requested date.
var ErrSnapshotNotFound = errors.New("snapshot not found")

// MarketData fetches the upstream feeds the scoring pipeline consumes.
// Implementations return an error when the feed is unreachable or the
// payload does not have the expected shape.
type MarketData interface {
	EarningsCalendar(ctx context.Context) ([]models.EarningsRecord, error)
	MostActive(ctx context.Context) ([]models.VolumeRecord, error)
	RSI(ctx context.Context) ([]models.RSIRecord, error)
	MarketCaps(ctx context.Context) ([]models.MarketCapRecord, error)
	PositiveNews(ctx context.Context) ([]models.NewsRecord, error)
	GapUps(ctx context.Context) ([]models.GapRecord, error)
	Gainers(ctx context.Context) ([]models.GainerRecord, error)
}

// SnapshotStore persists the day's computed result for reuse and fallback.
type SnapshotStore interface {
	// Get returns the snapshot for an exact date or ErrSnapshotNotFound.
	Get(ctx context.Context, date string) (*models.Snapshot, error)
	// Latest returns the most recent snapshot regardless of date, or
	// ErrSnapshotNotFound when the store is empty.
	Latest(ctx context.Context) (*models.Snapshot, error)
	// Put stores a snapshot, replacing any previous one for the same date.
	Put(ctx context.Context, snap *models.Snapshot) error
}

// ResultSink receives freshly computed results for downstream consumers.
// Publish failures are logged by the caller and never fail the pipeline.
type ResultSink interface {
	Name() string
	Publish(ctx context.Context, result models.PredictionResult) error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordRun(outcome string)
	RecordSourceError(source string)
	RecordFetchDuration(source string, seconds float64)
	RecordSnapshotOp(op, result string)
	RecordScoredSymbols(n int)
}
