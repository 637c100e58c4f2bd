package repository

import (
	"context"
	"fmt"
	"time"

	"Stock100/internal/domain/models"
	"Stock100/pkg/clickhouse"
)

// ClickHouseSink appends every ranked symbol of a fresh run to a
// history table for offline analysis of how the scores performed.
type ClickHouseSink struct {
	client *clickhouse.Client
	table  string
}

func NewClickHouseSink(client *clickhouse.Client, table string) *ClickHouseSink {
	return &ClickHouseSink{client: client, table: table}
}

// InitSchema creates the history table if it does not exist.
func (s *ClickHouseSink) InitSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date             Date,
			list             LowCardinality(String),
			rank             UInt8,
			symbol           LowCardinality(String),
			long_buy_score   UInt8,
			short_buy_score  UInt8,
			long_sell_score  UInt8,
			short_sell_score UInt8,
			average_score    Float64,
			tag              LowCardinality(String),
			computed_at      DateTime
		) ENGINE = ReplacingMergeTree(computed_at)
		PARTITION BY toYYYYMM(date)
		ORDER BY (date, list, rank)`, s.table)
	return s.client.InitSchema(ctx, []string{stmt})
}

func (s *ClickHouseSink) Name() string { return "clickhouse" }

func (s *ClickHouseSink) Close() error {
	return s.client.Close()
}

func (s *ClickHouseSink) Publish(ctx context.Context, result models.PredictionResult) error {
	tx, err := s.client.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (date, list, rank, symbol, long_buy_score, short_buy_score, long_sell_score, short_sell_score, average_score, tag, computed_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		s.table))
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	lists := []struct {
		name    string
		symbols []models.ScoredSymbol
	}{
		{"buy_long", result.BuyLong},
		{"buy_short", result.BuyShort},
		{"sell_long", result.SellLong},
		{"sell_short", result.SellShort},
		{"hold", result.Hold},
	}
	for _, list := range lists {
		for rank, sym := range list.symbols {
			_, err := stmt.ExecContext(ctx,
				result.Date, list.name, uint8(rank), sym.Symbol,
				uint8(sym.LongBuyScore), uint8(sym.ShortBuyScore),
				uint8(sym.LongSellScore), uint8(sym.ShortSellScore),
				sym.AverageScore, sym.Tag, now)
			if err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("insert %s rank %d: %w", list.name, rank, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	return nil
}
