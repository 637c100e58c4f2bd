package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/pkg/util"
)

type fakeMarketData struct {
	mu       sync.Mutex
	calls    int
	earnErr  error
	volErr   error
	rsiErr   error
	capErr   error
	newsErr  error
	gapErr   error
	earnings []models.EarningsRecord
	volume   []models.VolumeRecord
}

func (f *fakeMarketData) bump() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeMarketData) EarningsCalendar(context.Context) ([]models.EarningsRecord, error) {
	f.bump()
	return f.earnings, f.earnErr
}

func (f *fakeMarketData) MostActive(context.Context) ([]models.VolumeRecord, error) {
	f.bump()
	return f.volume, f.volErr
}

func (f *fakeMarketData) RSI(context.Context) ([]models.RSIRecord, error) {
	f.bump()
	return []models.RSIRecord{{Symbol: "AAA", RSI: 20}}, f.rsiErr
}

func (f *fakeMarketData) MarketCaps(context.Context) ([]models.MarketCapRecord, error) {
	f.bump()
	return []models.MarketCapRecord{{Symbol: "AAA", MarketCap: 5e10}}, f.capErr
}

func (f *fakeMarketData) PositiveNews(context.Context) ([]models.NewsRecord, error) {
	f.bump()
	return nil, f.newsErr
}

func (f *fakeMarketData) GapUps(context.Context) ([]models.GapRecord, error) {
	f.bump()
	return nil, f.gapErr
}

func (f *fakeMarketData) Gainers(context.Context) ([]models.GainerRecord, error) {
	f.bump()
	return nil, nil
}

type memStore struct {
	mu    sync.Mutex
	snaps map[string]*models.Snapshot
	fail  bool
}

func newMemStore() *memStore {
	return &memStore{snaps: make(map[string]*models.Snapshot)}
}

func (s *memStore) Get(_ context.Context, date string) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snap, ok := s.snaps[date]; ok {
		return snap, nil
	}
	return nil, repository.ErrSnapshotNotFound
}

func (s *memStore) Latest(context.Context) (*models.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest *models.Snapshot
	for _, snap := range s.snaps {
		if latest == nil || snap.Date > latest.Date {
			latest = snap
		}
	}
	if latest == nil {
		return nil, repository.ErrSnapshotNotFound
	}
	return latest, nil
}

func (s *memStore) Put(_ context.Context, snap *models.Snapshot) error {
	if s.fail {
		return errors.New("store write failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[snap.Date] = snap
	return nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRun(string)                    {}
func (noopMetrics) RecordSourceError(string)            {}
func (noopMetrics) RecordFetchDuration(string, float64) {}
func (noopMetrics) RecordSnapshotOp(string, string)     {}
func (noopMetrics) RecordScoredSymbols(int)             {}

type recordingSink struct {
	mu      sync.Mutex
	results []models.PredictionResult
	err     error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Publish(_ context.Context, result models.PredictionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return s.err
}

func newTestEngine(t *testing.T, source *fakeMarketData, store repository.SnapshotStore, sinks ...repository.ResultSink) *Engine {
	t.Helper()
	cfg := testConfig()
	log := testLogger(t)
	fetcher := NewFetcher(source, noopMetrics{}, log, time.Second)
	return NewEngine(fetcher, NewScorer(cfg), NewRanker(cfg), store, sinks, noopMetrics{}, log)
}

func healthySource() *fakeMarketData {
	return &fakeMarketData{
		earnings: []models.EarningsRecord{{Symbol: "AAA", EPS: 2, EPSEstimated: 1}},
		volume:   []models.VolumeRecord{{Symbol: "AAA", Volume: 4e7}},
	}
}

func TestEngineFreshRunPersistsAndPublishes(t *testing.T) {
	store := newMemStore()
	sink := &recordingSink{}
	e := newTestEngine(t, healthySource(), store, sink)

	result := e.TopPredictions(context.Background())

	require.Len(t, result.BuyLong, 1)
	assert.Equal(t, "AAA", result.BuyLong[0].Symbol)
	assert.Equal(t, "Strong Buy", result.BuyLong[0].Tag)
	assert.Equal(t, util.Today(), result.Date)

	snap, err := store.Get(context.Background(), util.Today())
	require.NoError(t, err)
	assert.Equal(t, models.SnapshotVersion, snap.Version)

	require.Len(t, sink.results, 1)
}

func TestEngineSecondCallServedFromSnapshot(t *testing.T) {
	source := healthySource()
	store := newMemStore()
	e := newTestEngine(t, source, store)

	first := e.TopPredictions(context.Background())
	callsAfterFirst := source.calls
	second := e.TopPredictions(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, source.calls, "cached call must not hit upstream")
}

func TestEngineFallsBackToLatestSnapshot(t *testing.T) {
	store := newMemStore()
	stale := models.NewSnapshot(models.EmptyResult("2026-08-27"))
	stale.BuyLong = []models.ScoredSymbol{{Symbol: "OLD", Tag: "Strong Buy"}}
	require.NoError(t, store.Put(context.Background(), stale))

	source := healthySource()
	source.volErr = errors.New("volume feed down")
	e := newTestEngine(t, source, store)

	result := e.TopPredictions(context.Background())
	require.Len(t, result.BuyLong, 1)
	assert.Equal(t, "OLD", result.BuyLong[0].Symbol)
}

func TestEngineEmptyResultWhenNothingStored(t *testing.T) {
	source := healthySource()
	source.rsiErr = errors.New("rsi feed down")
	e := newTestEngine(t, source, newMemStore())

	result := e.TopPredictions(context.Background())

	assert.Equal(t, util.Today(), result.Date)
	assert.NotNil(t, result.BuyLong)
	assert.Empty(t, result.BuyLong)
	assert.Empty(t, result.Hold)
}

func TestEngineDegradedSourcesStillFresh(t *testing.T) {
	source := healthySource()
	source.earnErr = errors.New("earnings down")
	source.newsErr = errors.New("news down")
	source.gapErr = errors.New("gap down")
	e := newTestEngine(t, source, newMemStore())

	result := e.TopPredictions(context.Background())

	// universe falls back to the actives list, EPS contributes neutrally
	require.Len(t, result.BuyLong, 1)
	assert.Equal(t, "AAA", result.BuyLong[0].Symbol)
}

func TestEngineSnapshotWriteFailureNonFatal(t *testing.T) {
	store := newMemStore()
	store.fail = true
	e := newTestEngine(t, healthySource(), store)

	result := e.TopPredictions(context.Background())
	require.Len(t, result.BuyLong, 1)
}

func TestEngineSinkFailureNonFatal(t *testing.T) {
	sink := &recordingSink{err: errors.New("broker down")}
	e := newTestEngine(t, healthySource(), newMemStore(), sink)

	result := e.TopPredictions(context.Background())
	require.Len(t, result.BuyLong, 1)
}

func TestEngineRefreshBypassesSnapshot(t *testing.T) {
	source := healthySource()
	store := newMemStore()
	e := newTestEngine(t, source, store)

	_ = e.TopPredictions(context.Background())
	callsAfterFirst := source.calls

	_, err := e.Refresh(context.Background())
	require.NoError(t, err)
	assert.Greater(t, source.calls, callsAfterFirst, "refresh must hit upstream")
}

func TestEngineRefreshReportsFailure(t *testing.T) {
	source := healthySource()
	source.capErr = errors.New("cap feed down")
	e := newTestEngine(t, source, newMemStore())

	_, err := e.Refresh(context.Background())
	assert.Error(t, err)
}
