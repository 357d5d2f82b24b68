package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mholloway/congresswatch/internal/domain"
)

// TradeStore implements domain.TradeStore using PostgreSQL.
type TradeStore struct {
	pool *pgxpool.Pool
}

// NewTradeStore creates a new TradeStore backed by the given connection pool.
func NewTradeStore(pool *pgxpool.Pool) *TradeStore {
	return &TradeStore{pool: pool}
}

// InsertBatch inserts all given trades in one batched round trip.
func (s *TradeStore) InsertBatch(ctx context.Context, trades []domain.Trade) error {
	if len(trades) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, t := range trades {
		batch.Queue(`
			INSERT INTO stock_trades (member_id, disclosure_date, transaction_date, ticker, asset_description, type, amount, comment)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			t.MemberID, t.DisclosureDate, t.TransactionDate, t.Ticker,
			t.AssetDescription, string(t.Type), t.Amount, t.Comment,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range trades {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: insert trades batch: %w", err)
		}
	}
	return nil
}

// ListKeys returns the identity key of every stored trade in one query.
func (s *TradeStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT disclosure_date, ticker, amount, member_id FROM stock_trades`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list trade keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var disclosureDate, ticker, amount string
		var memberID int64
		if err := rows.Scan(&disclosureDate, &ticker, &amount, &memberID); err != nil {
			return nil, fmt.Errorf("postgres: scan trade key: %w", err)
		}
		keys = append(keys, domain.TradeKey(disclosureDate, ticker, amount, memberID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list trade keys rows: %w", err)
	}
	return keys, nil
}

// Count returns the number of stored trades.
func (s *TradeStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM stock_trades`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: count trades: %w", err)
	}
	return count, nil
}

// Compile-time interface check.
var _ domain.TradeStore = (*TradeStore)(nil)
