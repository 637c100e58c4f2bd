package fmp

import (
	"context"
	"fmt"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/internal/service/ratelimit"
	"Stock100/pkg/http"
	"Stock100/pkg/logger"
	"Stock100/pkg/util"
)

// Client implements repository.MarketData on top of the Financial
// Modeling Prep REST API. Every call appends the API key and runs
// through the shared rate limiter.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	limiter *ratelimit.Limiter
	log     *logger.Logger
}

type Option func(*Client)

func WithRateLimit(refillPerSec, burst float64) Option {
	return func(c *Client) {
		c.limiter = ratelimit.New(refillPerSec, burst)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = http.NewClient(http.WithTimeout(d))
	}
}

func NewClient(baseURL, apiKey string, log *logger.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    http.NewClient(http.WithTimeout(30 * time.Second)),
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// get fetches an endpoint and decodes the JSON array into dest. FMP
// reports errors as a JSON object, so decoding into a slice fails on
// error payloads and the source is treated as unavailable.
func (c *Client) get(ctx context.Context, path string, params map[string][]string, dest interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	qp := map[string][]string{"apikey": {c.apiKey}}
	for k, v := range params {
		qp[k] = v
	}

	err := c.http.SendAndParse(ctx, &http.RequestOptions{
		URL:         c.baseURL + path,
		QueryParams: qp,
	}, dest)
	if err != nil {
		return fmt.Errorf("fmp %s: %w", path, err)
	}
	return nil
}

// EarningsCalendar returns today's earnings calendar entries.
func (c *Client) EarningsCalendar(ctx context.Context) ([]models.EarningsRecord, error) {
	today := util.Today()
	var out []models.EarningsRecord
	err := c.get(ctx, "/earning_calendar", map[string][]string{
		"from": {today},
		"to":   {today},
	}, &out)
	return out, err
}

// MostActive returns the most actively traded symbols.
func (c *Client) MostActive(ctx context.Context) ([]models.VolumeRecord, error) {
	var out []models.VolumeRecord
	err := c.get(ctx, "/stock_market/actives", nil, &out)
	return out, err
}

// RSI returns 14-period RSI values across the universe.
func (c *Client) RSI(ctx context.Context) ([]models.RSIRecord, error) {
	var out []models.RSIRecord
	err := c.get(ctx, "/technical_indicator/rsi", map[string][]string{
		"period": {"14"},
		"type":   {"stock"},
		"sort":   {"asc"},
	}, &out)
	return out, err
}

// MarketCaps returns market capitalizations across the universe.
func (c *Client) MarketCaps(ctx context.Context) ([]models.MarketCapRecord, error) {
	var out []models.MarketCapRecord
	err := c.get(ctx, "/stock_market/market_cap", nil, &out)
	return out, err
}

// PositiveNews returns recent positive-sentiment news items.
func (c *Client) PositiveNews(ctx context.Context) ([]models.NewsRecord, error) {
	var out []models.NewsRecord
	err := c.get(ctx, "/stock_news", map[string][]string{
		"sentiment": {"positive"},
		"limit":     {"100"},
	}, &out)
	return out, err
}

// GapUps returns symbols that gapped up at the open.
func (c *Client) GapUps(ctx context.Context) ([]models.GapRecord, error) {
	var out []models.GapRecord
	err := c.get(ctx, "/stock_market/gap_up", nil, &out)
	return out, err
}

// Gainers returns the day's top percentage gainers.
func (c *Client) Gainers(ctx context.Context) ([]models.GainerRecord, error) {
	var out []models.GainerRecord
	err := c.get(ctx, "/stock_market/gainers", nil, &out)
	return out, err
}
