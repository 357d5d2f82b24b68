package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mholloway/congresswatch/internal/domain"
)

// MemberStore implements domain.MemberStore using PostgreSQL.
type MemberStore struct {
	pool *pgxpool.Pool
}

// NewMemberStore creates a new MemberStore backed by the given connection pool.
func NewMemberStore(pool *pgxpool.Pool) *MemberStore {
	return &MemberStore{pool: pool}
}

// InsertBatch inserts all given members in one batched round trip.
func (s *MemberStore) InsertBatch(ctx context.Context, members []domain.Member) error {
	if len(members) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, m := range members {
		batch.Queue(`
			INSERT INTO congress_members (full_name, state, party, chamber)
			VALUES ($1, $2, $3, $4)`,
			m.FullName, m.State, string(m.Party), string(m.Chamber),
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range members {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("postgres: insert members batch: %w", err)
		}
	}
	return nil
}

// ListKeys returns the identity key of every stored member in one query.
func (s *MemberStore) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT full_name, state FROM congress_members`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list member keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var fullName, state string
		if err := rows.Scan(&fullName, &state); err != nil {
			return nil, fmt.Errorf("postgres: scan member key: %w", err)
		}
		keys = append(keys, domain.MemberKey(fullName, state))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list member keys rows: %w", err)
	}
	return keys, nil
}

// ListNames returns (id, full name) for every stored member in one query.
func (s *MemberStore) ListNames(ctx context.Context) ([]domain.MemberName, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, full_name FROM congress_members`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list member names: %w", err)
	}
	defer rows.Close()

	var names []domain.MemberName
	for rows.Next() {
		var n domain.MemberName
		if err := rows.Scan(&n.ID, &n.FullName); err != nil {
			return nil, fmt.Errorf("postgres: scan member name: %w", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: list member names rows: %w", err)
	}
	return names, nil
}

// Count returns the number of stored members.
func (s *MemberStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM congress_members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("postgres: count members: %w", err)
	}
	return count, nil
}

// Compile-time interface check.
var _ domain.MemberStore = (*MemberStore)(nil)
