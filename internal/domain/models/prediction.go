package models

import "time"

// SnapshotVersion is written into every persisted cache record so the
// on-disk format can evolve.
const SnapshotVersion = 1

// SignalRecord joins the per-feed metrics for one symbol. Rebuilt on every
// scoring run; missing feed entries carry the documented defaults.
type SignalRecord struct {
	Symbol          string
	EPS             float64
	EPSEstimated    float64
	EPSAvailable    bool
	Volume          int64
	RSI             float64
	MarketCap       float64
	HasPositiveNews bool
	HasGapUp        bool
}

// ScoredSymbol carries one symbol's composite scores plus its rank tag.
// Field names are part of the external contract with the presentation layer.
type ScoredSymbol struct {
	Symbol         string  `json:"symbol"`
	LongBuyScore   int     `json:"longBuyScore"`
	ShortBuyScore  int     `json:"shortBuyScore"`
	LongSellScore  int     `json:"longSellScore"`
	ShortSellScore int     `json:"shortSellScore"`
	AverageScore   float64 `json:"averageScore"`
	Tag            string  `json:"tag,omitempty"`
	Color          string  `json:"color,omitempty"`
}

// PredictionResult is the day's ranked picks. Read-only to consumers.
type PredictionResult struct {
	Date      string         `json:"date"`
	BuyLong   []ScoredSymbol `json:"buyLong"`
	BuyShort  []ScoredSymbol `json:"buyShort"`
	SellLong  []ScoredSymbol `json:"sellLong"`
	SellShort []ScoredSymbol `json:"sellShort"`
	Hold      []ScoredSymbol `json:"hold"`
}

// EmptyResult returns a well-shaped result with no picks, so consumers
// only ever need to check list emptiness.
func EmptyResult(date string) PredictionResult {
	return PredictionResult{
		Date:      date,
		BuyLong:   []ScoredSymbol{},
		BuyShort:  []ScoredSymbol{},
		SellLong:  []ScoredSymbol{},
		SellShort: []ScoredSymbol{},
		Hold:      []ScoredSymbol{},
	}
}

// Snapshot is the persisted cache record for a day's PredictionResult.
type Snapshot struct {
	Version    int       `json:"version"`
	ComputedAt time.Time `json:"computedAt"`
	PredictionResult
}

// NewSnapshot wraps a result into a versioned cache record.
func NewSnapshot(result PredictionResult) *Snapshot {
	return &Snapshot{
		Version:          SnapshotVersion,
		ComputedAt:       time.Now(),
		PredictionResult: result,
	}
}
