package models

// Typed records for the six FMP feeds joined by the aggregator, plus the
// gainers feed served raw. Decoding a feed into its record slice is the
// shape check: FMP reports errors as a JSON object, which fails to decode
// into a slice.

type EarningsRecord struct {
	Symbol       string  `json:"symbol"`
	EPS          float64 `json:"eps"`
	EPSEstimated float64 `json:"epsEstimated"`
}

type VolumeRecord struct {
	Symbol string `json:"symbol"`
	Volume int64  `json:"volume"`
}

type RSIRecord struct {
	Symbol string  `json:"symbol"`
	RSI    float64 `json:"rsi"`
}

type MarketCapRecord struct {
	Symbol    string  `json:"symbol"`
	MarketCap float64 `json:"marketCap"`
}

type NewsRecord struct {
	Symbol string `json:"symbol"`
	Title  string `json:"title"`
}

type GapRecord struct {
	Symbol string `json:"symbol"`
}

type GainerRecord struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	CompanyName       string  `json:"companyName"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

// Source names used for metrics labels and per-source error reporting.
const (
	SourceEarnings  = "earnings"
	SourceVolume    = "volume"
	SourceRSI       = "rsi"
	SourceMarketCap = "market_cap"
	SourceNews      = "news"
	SourceGapUp     = "gap_up"
	SourceGainers   = "gainers"
)

// SourceSet is the partial-success result of the concurrent feed fan-out.
// A source that failed has a nil slice and an entry in Errors.
type SourceSet struct {
	Earnings   []EarningsRecord
	Volume     []VolumeRecord
	RSI        []RSIRecord
	MarketCaps []MarketCapRecord
	News       []NewsRecord
	GapUps     []GapRecord

	Errors map[string]error
}

// Failed reports whether the named source errored.
func (s *SourceSet) Failed(source string) bool {
	_, ok := s.Errors[source]
	return ok
}
