package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Stock100/internal/domain/models"
	"Stock100/internal/domain/repository"
	"Stock100/internal/usecase"
	"Stock100/pkg/cache"
	"Stock100/pkg/config"
	"Stock100/pkg/logger"
)

type stubMarketData struct{}

func (stubMarketData) EarningsCalendar(context.Context) ([]models.EarningsRecord, error) {
	return []models.EarningsRecord{{Symbol: "AAA", EPS: 2, EPSEstimated: 1}}, nil
}

func (stubMarketData) MostActive(context.Context) ([]models.VolumeRecord, error) {
	return []models.VolumeRecord{{Symbol: "AAA", Volume: 4e7}}, nil
}

func (stubMarketData) RSI(context.Context) ([]models.RSIRecord, error) {
	return []models.RSIRecord{{Symbol: "AAA", RSI: 20}}, nil
}

func (stubMarketData) MarketCaps(context.Context) ([]models.MarketCapRecord, error) {
	return []models.MarketCapRecord{{Symbol: "AAA", MarketCap: 5e10}}, nil
}

func (stubMarketData) PositiveNews(context.Context) ([]models.NewsRecord, error) {
	return nil, nil
}

func (stubMarketData) GapUps(context.Context) ([]models.GapRecord, error) {
	return nil, nil
}

func (stubMarketData) Gainers(context.Context) ([]models.GainerRecord, error) {
	return []models.GainerRecord{
		{Symbol: "GGG", Name: "Gamma Inc", ChangesPercentage: 5.5},
	}, nil
}

type stubStore struct{}

func (stubStore) Get(context.Context, string) (*models.Snapshot, error) {
	return nil, repository.ErrSnapshotNotFound
}

func (stubStore) Latest(context.Context) (*models.Snapshot, error) {
	return nil, repository.ErrSnapshotNotFound
}

func (stubStore) Put(context.Context, *models.Snapshot) error { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordRun(string)                    {}
func (stubMetrics) RecordSourceError(string)            {}
func (stubMetrics) RecordFetchDuration(string, float64) {}
func (stubMetrics) RecordSnapshotOp(string, string)     {}
func (stubMetrics) RecordScoredSymbols(int)             {}

func testHandler(t *testing.T) *Handler {
	t.Helper()
	log, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Scoring.EPSWeight, cfg.Scoring.CapWeight, cfg.Scoring.NewsWeight = 0.4, 0.4, 0.2
	cfg.Scoring.VolumeWeight, cfg.Scoring.RSIWeight, cfg.Scoring.GapWeight = 0.3, 0.3, 0.4
	cfg.Scoring.TopN = 10
	cfg.Scoring.HoldLow, cfg.Scoring.HoldHigh, cfg.Scoring.HoldCap = 40, 60, 20

	source := stubMarketData{}
	fetcher := usecase.NewFetcher(source, stubMetrics{}, log, time.Second)
	engine := usecase.NewEngine(fetcher, usecase.NewScorer(cfg), usecase.NewRanker(cfg),
		stubStore{}, nil, stubMetrics{}, log)

	mem := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mem.Close() })
	feeds := usecase.NewFeedService(source, mem, log, time.Minute)

	return NewHandler(engine, feeds, log)
}

func doRequest(t *testing.T, h *Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthRoute(t *testing.T) {
	rec := doRequest(t, testHandler(t), http.MethodGet, "/api/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestPicksRoute(t *testing.T) {
	rec := doRequest(t, testHandler(t), http.MethodGet, "/api/picks")
	require.Equal(t, http.StatusOK, rec.Code)

	body := envelope(t, rec)
	var result models.PredictionResult
	require.NoError(t, json.Unmarshal(body["data"], &result))

	require.Len(t, result.BuyLong, 1)
	assert.Equal(t, "AAA", result.BuyLong[0].Symbol)
	assert.Equal(t, "Strong Buy", result.BuyLong[0].Tag)
	assert.NotNil(t, result.Hold)
}

func TestRefreshRoute(t *testing.T) {
	rec := doRequest(t, testHandler(t), http.MethodPost, "/api/picks/refresh")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"buyLong"`)
}

func TestGainersRoute(t *testing.T) {
	rec := doRequest(t, testHandler(t), http.MethodGet, "/api/gainers?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)

	body := envelope(t, rec)
	var views []models.GainerView
	require.NoError(t, json.Unmarshal(body["data"], &views))
	require.Len(t, views, 1)
	assert.Equal(t, "GGG", views[0].Symbol)
	assert.Equal(t, "5.50%", views[0].ChangePercent)
}

func TestGainersRouteRejectsBadLimit(t *testing.T) {
	rec := doRequest(t, testHandler(t), http.MethodGet, "/api/gainers?limit=9999")
	require.Equal(t, http.StatusOK, rec.Code, "errors use the envelope status")

	var body struct {
		Status int `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusBadRequest, body.Status)
}
