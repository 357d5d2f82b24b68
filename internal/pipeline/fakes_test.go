package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/platform/stockwatcher"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeRosterFetcher struct {
	members []domain.Member
	err     error
	delay   time.Duration
	calls   int
}

func (f *fakeRosterFetcher) CurrentRoster(ctx context.Context) ([]domain.Member, []byte, error) {
	f.calls++
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.members, []byte(`{"objects":[]}`), nil
}

type fakeTradeFetcher struct {
	txs   []stockwatcher.APITransaction
	err   error
	calls int
}

func (f *fakeTradeFetcher) AllTransactions(ctx context.Context) ([]stockwatcher.APITransaction, []byte, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.txs, []byte(`[]`), nil
}

// fakeMemberStore keeps members in memory, mimicking the append-only store.
type fakeMemberStore struct {
	members   []domain.Member
	nextID    int64
	insertErr error
	listErr   error
}

func (s *fakeMemberStore) InsertBatch(ctx context.Context, members []domain.Member) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	for _, m := range members {
		s.nextID++
		m.ID = s.nextID
		s.members = append(s.members, m)
	}
	return nil
}

func (s *fakeMemberStore) ListKeys(ctx context.Context) ([]string, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	keys := make([]string, 0, len(s.members))
	for _, m := range s.members {
		keys = append(keys, m.Key())
	}
	return keys, nil
}

func (s *fakeMemberStore) ListNames(ctx context.Context) ([]domain.MemberName, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	names := make([]domain.MemberName, 0, len(s.members))
	for _, m := range s.members {
		names = append(names, domain.MemberName{ID: m.ID, FullName: m.FullName})
	}
	return names, nil
}

func (s *fakeMemberStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.members)), nil
}

// fakeTradeStore keeps trades in memory.
type fakeTradeStore struct {
	trades    []domain.Trade
	insertErr error
}

func (s *fakeTradeStore) InsertBatch(ctx context.Context, trades []domain.Trade) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.trades = append(s.trades, trades...)
	return nil
}

func (s *fakeTradeStore) ListKeys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.trades))
	for _, t := range s.trades {
		keys = append(keys, t.Key())
	}
	return keys, nil
}

func (s *fakeTradeStore) Count(ctx context.Context) (int64, error) {
	return int64(len(s.trades)), nil
}

type fakeArchiver struct {
	sources []string
	err     error
}

func (a *fakeArchiver) ArchiveSnapshot(ctx context.Context, source string, payload []byte) error {
	a.sources = append(a.sources, source)
	return a.err
}

var errUpstream = errors.New("upstream unavailable")
