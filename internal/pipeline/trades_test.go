package pipeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/platform/stockwatcher"
)

func memberStoreWith(names ...string) *fakeMemberStore {
	s := &fakeMemberStore{}
	for i, n := range names {
		s.members = append(s.members, domain.Member{ID: int64(i + 1), FullName: n, State: "CA"})
	}
	s.nextID = int64(len(names))
	return s
}

func tx(rep, date, ticker, amount string) stockwatcher.APITransaction {
	return stockwatcher.APITransaction{
		Representative:  rep,
		DisclosureDate:  date,
		TransactionDate: date,
		Ticker:          ticker,
		Type:            "purchase",
		Amount:          amount,
	}
}

func TestTradeSyncResolvesFilerCaseInsensitively(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("JANE DOE", "2025-11-03", "MSFT", "$1,001 - $15,000"),
	}}
	trades := &fakeTradeStore{}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result.TradesFetched != 1 || result.TradesAdded != 1 {
		t.Fatalf("result = %+v, want fetched=1 added=1", result)
	}
	if got := trades.trades[0].MemberID; got != 1 {
		t.Errorf("MemberID = %d, want 1", got)
	}
}

func TestTradeSyncDropsUnresolvedFilers(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("Nobody Known", "2025-11-03", "MSFT", "$1,001 - $15,000"),
		tx("Jane Doe", "2025-11-03", "AAPL", "$1,001 - $15,000"),
	}}
	trades := &fakeTradeStore{}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result.TradesFetched != 2 || result.TradesAdded != 1 {
		t.Errorf("result = %+v, want fetched=2 added=1", result)
	}
	if len(trades.trades) != 1 || trades.trades[0].Ticker != "AAPL" {
		t.Errorf("stored trades = %+v", trades.trades)
	}
}

func TestTradeSyncIdempotent(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("Jane Doe", "2025-11-03", "MSFT", "$1,001 - $15,000"),
	}}
	trades := &fakeTradeStore{}
	sync := NewTradeSync(fetcher, members, trades, nil, testLogger())

	first := sync.Run(context.Background())
	if first.TradesAdded != 1 {
		t.Fatalf("first run added %d, want 1", first.TradesAdded)
	}

	second := sync.Run(context.Background())
	if second.TradesFetched != 1 || second.TradesAdded != 0 {
		t.Errorf("second run = %+v, want fetched=1 added=0", second)
	}
	if len(trades.trades) != 1 {
		t.Errorf("store has %d trades, want 1", len(trades.trades))
	}
}

func TestTradeSyncDeduplicatesWithinFeed(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("Jane Doe", "2025-11-03", "MSFT", "$1,001 - $15,000"),
		tx("Jane Doe", "2025-11-03", "MSFT", "$1,001 - $15,000"),
	}}
	trades := &fakeTradeStore{}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result.TradesFetched != 2 || result.TradesAdded != 1 {
		t.Errorf("result = %+v, want fetched=2 added=1", result)
	}
}

func TestTradeSyncInsertCap(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	var txs []stockwatcher.APITransaction
	for i := 0; i < insertCap+50; i++ {
		txs = append(txs, tx("Jane Doe", "2025-11-03", fmt.Sprintf("TK%04d", i), "$1,001 - $15,000"))
	}
	fetcher := &fakeTradeFetcher{txs: txs}
	trades := &fakeTradeStore{}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result.TradesFetched != insertCap+50 {
		t.Errorf("TradesFetched = %d, want %d", result.TradesFetched, insertCap+50)
	}
	if result.TradesAdded != insertCap {
		t.Errorf("TradesAdded = %d, want %d", result.TradesAdded, insertCap)
	}
	// Earliest-encountered feed order is preserved.
	if trades.trades[0].Ticker != "TK0000" || trades.trades[insertCap-1].Ticker != fmt.Sprintf("TK%04d", insertCap-1) {
		t.Errorf("cap did not preserve feed order: first=%s last=%s",
			trades.trades[0].Ticker, trades.trades[insertCap-1].Ticker)
	}
}

func TestTradeSyncTypeAndOptionalMapping(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	desc := "Microsoft Corp"
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		{
			Representative: "Jane Doe", DisclosureDate: "2025-11-03", TransactionDate: "2025-10-28",
			Ticker: "MSFT", Type: "purchase", Amount: "$1,001 - $15,000", AssetDescription: &desc,
		},
		{
			Representative: "Jane Doe", DisclosureDate: "2025-11-02", TransactionDate: "2025-10-20",
			Ticker: "AAPL", Type: "sale_partial", Amount: "$15,001 - $50,000",
		},
	}}
	trades := &fakeTradeStore{}

	NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if len(trades.trades) != 2 {
		t.Fatalf("stored %d trades, want 2", len(trades.trades))
	}
	if trades.trades[0].Type != domain.TradePurchase {
		t.Errorf("first type = %q, want purchase", trades.trades[0].Type)
	}
	if trades.trades[0].AssetDescription == nil || *trades.trades[0].AssetDescription != desc {
		t.Errorf("first asset description lost")
	}
	if trades.trades[1].Type != domain.TradeSale {
		t.Errorf("sale_partial should map to sale, got %q", trades.trades[1].Type)
	}
	if trades.trades[1].AssetDescription != nil || trades.trades[1].Comment != nil {
		t.Errorf("absent optionals should stay nil: %+v", trades.trades[1])
	}
}

func TestTradeSyncFetchFailureSoft(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{err: errUpstream}
	trades := &fakeTradeStore{}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result != (domain.TradeResult{}) {
		t.Errorf("result = %+v, want zero delta", result)
	}
}

func TestTradeSyncInsertFailureCountsFetchedOnly(t *testing.T) {
	members := memberStoreWith("Jane Doe")
	fetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("Jane Doe", "2025-11-03", "MSFT", "$1,001 - $15,000"),
	}}
	trades := &fakeTradeStore{insertErr: errUpstream}

	result := NewTradeSync(fetcher, members, trades, nil, testLogger()).Run(context.Background())

	if result.TradesFetched != 1 || result.TradesAdded != 0 {
		t.Errorf("result = %+v, want fetched=1 added=0", result)
	}
}
