package pipeline

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/platform/stockwatcher"
)

// insertCap bounds how many trades one run may insert. Overflow beyond the
// cap is discarded in feed order.
// TODO: replace with a persisted watermark so a feed growing faster than the
// cap per run does not perpetually lose tail records.
const insertCap = 1000

// TradeFetcher retrieves the full bulk disclosure feed.
type TradeFetcher interface {
	AllTransactions(ctx context.Context) ([]stockwatcher.APITransaction, []byte, error)
}

// TradeSync brings the stored trade set up to date with the external
// disclosure feed. Records whose filer cannot be resolved to a stored member
// are silently dropped.
type TradeSync struct {
	fetcher  TradeFetcher
	members  domain.MemberStore
	trades   domain.TradeStore
	archiver domain.SnapshotArchiver // optional
	logger   *slog.Logger
}

// NewTradeSync creates a TradeSync. archiver may be nil.
func NewTradeSync(fetcher TradeFetcher, members domain.MemberStore, trades domain.TradeStore, archiver domain.SnapshotArchiver, logger *slog.Logger) *TradeSync {
	return &TradeSync{
		fetcher:  fetcher,
		members:  members,
		trades:   trades,
		archiver: archiver,
		logger:   logger.With(slog.String("component", "trade_sync")),
	}
}

// Run executes one trade sync pass. It never returns an error: upstream and
// store failures are logged and reported as zero deltas.
func (s *TradeSync) Run(ctx context.Context) domain.TradeResult {
	s.logger.InfoContext(ctx, "fetching stock trades")

	incoming, raw, err := s.fetcher.AllTransactions(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "trade fetch failed", slog.String("error", err.Error()))
		return domain.TradeResult{}
	}

	s.archive(ctx, raw)

	names, err := s.members.ListNames(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "could not load member names", slog.String("error", err.Error()))
	}
	nameToID := make(map[string]int64, len(names))
	for _, n := range names {
		nameToID[strings.ToLower(n.FullName)] = n.ID
	}

	existing, err := s.trades.ListKeys(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "could not load existing trade keys", slog.String("error", err.Error()))
	}
	existingSet := make(map[string]struct{}, len(existing))
	for _, k := range existing {
		existingSet[k] = struct{}{}
	}

	var fresh []domain.Trade
	for _, tx := range incoming {
		memberID, ok := nameToID[strings.ToLower(tx.Representative)]
		if !ok {
			continue // filer unknown, cannot attribute
		}
		key := domain.TradeKey(tx.DisclosureDate, tx.Ticker, tx.Amount, memberID)
		if _, seen := existingSet[key]; seen {
			continue
		}
		existingSet[key] = struct{}{}
		fresh = append(fresh, mapTransaction(tx, memberID))
		if len(fresh) == insertCap {
			break
		}
	}

	if len(fresh) > 0 {
		if err := s.trades.InsertBatch(ctx, fresh); err != nil {
			s.logger.ErrorContext(ctx, "trade batch insert failed", slog.String("error", err.Error()))
			return domain.TradeResult{TradesFetched: len(incoming)}
		}
	}

	s.logger.InfoContext(ctx, "trade sync complete",
		slog.Int("fetched", len(incoming)),
		slog.Int("added", len(fresh)),
	)
	return domain.TradeResult{
		TradesFetched: len(incoming),
		TradesAdded:   len(fresh),
	}
}

// mapTransaction maps a feed record onto the domain Trade shape. Any type
// other than "purchase" is a sale; optional fields stay absent when the
// source omits them.
func mapTransaction(tx stockwatcher.APITransaction, memberID int64) domain.Trade {
	tradeType := domain.TradeSale
	if tx.Type == "purchase" {
		tradeType = domain.TradePurchase
	}

	return domain.Trade{
		MemberID:         memberID,
		DisclosureDate:   tx.DisclosureDate,
		TransactionDate:  tx.TransactionDate,
		Ticker:           tx.Ticker,
		AssetDescription: tx.AssetDescription,
		Type:             tradeType,
		Amount:           tx.Amount,
		Comment:          tx.Comment,
	}
}

func (s *TradeSync) archive(ctx context.Context, raw []byte) {
	if s.archiver == nil || len(raw) == 0 {
		return
	}
	if err := s.archiver.ArchiveSnapshot(ctx, "stockwatcher", raw); err != nil {
		s.logger.WarnContext(ctx, "trade snapshot archive failed", slog.String("error", err.Error()))
	}
}
