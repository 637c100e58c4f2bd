package usecase

import (
	"sort"

	"Stock100/internal/domain/models"
	"Stock100/pkg/config"
)

// Tag text and colors are part of the external contract with the
// presentation layer. Do not change without coordinating downstream.
var (
	buyTags  = [4]string{"Strong Buy", "Recommended Buy", "Suggested Buy", "Watch Buy"}
	sellTags = [4]string{"Strong Sell", "Recommended Sell", "Suggested Sell", "Watch Sell"}

	buyColors  = [4]string{"#0a7f00", "#2e8b57", "#3cb371", "#98fb98"}
	sellColors = [4]string{"#8b0000", "#b22222", "#dc143c", "#ff6347"}

	holdTag   = "Hold"
	holdColor = "#999"
)

// tagBand maps a rank index to the tag/color band: 0 strong, 1-2
// recommended, 3-5 suggested, 6+ watch.
func tagBand(rank int) int {
	switch {
	case rank == 0:
		return 0
	case rank <= 2:
		return 1
	case rank <= 5:
		return 2
	default:
		return 3
	}
}

// Ranker sorts scored symbols into the four ranked lists plus the
// near-neutral hold bucket.
type Ranker struct {
	topN    int
	holdLow int
	holdHi  int
	holdCap int
}

func NewRanker(cfg *config.Config) *Ranker {
	return &Ranker{
		topN:    cfg.Scoring.TopN,
		holdLow: cfg.Scoring.HoldLow,
		holdHi:  cfg.Scoring.HoldHigh,
		holdCap: cfg.Scoring.HoldCap,
	}
}

// Rank builds the day's result from the scored universe. Sorts are
// stable so equal scores keep their collection order.
func (r *Ranker) Rank(date string, scored []models.ScoredSymbol) models.PredictionResult {
	result := models.EmptyResult(date)

	result.BuyLong = r.rankList(scored,
		func(a, b models.ScoredSymbol) bool { return a.LongBuyScore > b.LongBuyScore },
		buyTags, buyColors)
	result.BuyShort = r.rankList(scored,
		func(a, b models.ScoredSymbol) bool { return a.ShortBuyScore > b.ShortBuyScore },
		buyTags, buyColors)
	result.SellLong = r.rankList(scored,
		func(a, b models.ScoredSymbol) bool { return a.LongSellScore < b.LongSellScore },
		sellTags, sellColors)
	result.SellShort = r.rankList(scored,
		func(a, b models.ScoredSymbol) bool { return a.ShortSellScore < b.ShortSellScore },
		sellTags, sellColors)
	result.Hold = r.holdBucket(scored)

	return result
}

func (r *Ranker) rankList(scored []models.ScoredSymbol, less func(a, b models.ScoredSymbol) bool, tags, colors [4]string) []models.ScoredSymbol {
	list := make([]models.ScoredSymbol, len(scored))
	copy(list, scored)
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })

	if len(list) > r.topN {
		list = list[:r.topN]
	}
	for i := range list {
		band := tagBand(i)
		list[i].Tag = tags[band]
		list[i].Color = colors[band]
	}
	return list
}

// holdBucket selects symbols near-neutral on both the fundamental and
// momentum axes, in collection order, capped.
func (r *Ranker) holdBucket(scored []models.ScoredSymbol) []models.ScoredSymbol {
	hold := make([]models.ScoredSymbol, 0, r.holdCap)
	for _, s := range scored {
		if len(hold) >= r.holdCap {
			break
		}
		if s.LongBuyScore >= r.holdLow && s.LongBuyScore <= r.holdHi &&
			s.ShortBuyScore >= r.holdLow && s.ShortBuyScore <= r.holdHi {
			s.Tag = holdTag
			s.Color = holdColor
			hold = append(hold, s)
		}
	}
	return hold
}
