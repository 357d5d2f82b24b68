package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/platform/stockwatcher"
)

func newTestOrchestrator(rosterFetcher *fakeRosterFetcher, tradeFetcher *fakeTradeFetcher, memberStore *fakeMemberStore, deadline time.Duration) *Orchestrator {
	roster := NewRosterSync(rosterFetcher, memberStore, nil, testLogger())
	trades := NewTradeSync(tradeFetcher, memberStore, &fakeTradeStore{}, nil, testLogger())
	return NewOrchestrator(roster, trades, deadline, testLogger())
}

func TestOrchestratorSuccess(t *testing.T) {
	rosterFetcher := &fakeRosterFetcher{members: []domain.Member{
		{FullName: "Jane Doe", State: "CA", Party: domain.PartyDemocrat, Chamber: domain.ChamberHouse},
	}}
	tradeFetcher := &fakeTradeFetcher{}
	orch := newTestOrchestrator(rosterFetcher, tradeFetcher, &fakeMemberStore{}, 5*time.Second)

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.Status != "success" {
		t.Errorf("status = %q, want success", report.Status)
	}
	if report.Timestamp.IsZero() {
		t.Error("report should be timestamped")
	}
	if report.Result == nil {
		t.Fatal("success report should carry a result")
	}
	if report.Result.Members.MembersAdded != 1 {
		t.Errorf("members = %+v", report.Result.Members)
	}
}

func TestOrchestratorRunsRosterBeforeTrades(t *testing.T) {
	// The trade sync resolves filers against the roster rows inserted in the
	// same run, so the member inserted by the roster pass must be visible.
	members := &fakeMemberStore{}
	rosterFetcher := &fakeRosterFetcher{members: []domain.Member{
		{FullName: "Jane Doe", State: "CA", Party: domain.PartyDemocrat, Chamber: domain.ChamberHouse},
	}}
	tradeFetcher := &fakeTradeFetcher{txs: []stockwatcher.APITransaction{
		tx("Jane Doe", "2025-11-03", "MSFT", "$1,001 - $15,000"),
	}}
	orch := newTestOrchestrator(rosterFetcher, tradeFetcher, members, 5*time.Second)

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := report.Result.Trades.TradesAdded; got != 1 {
		t.Errorf("TradesAdded = %d, want 1 (roster rows must be visible to trade sync)", got)
	}
}

func TestOrchestratorDeadline(t *testing.T) {
	rosterFetcher := &fakeRosterFetcher{delay: 5 * time.Second}
	orch := newTestOrchestrator(rosterFetcher, &fakeTradeFetcher{}, &fakeMemberStore{}, 30*time.Millisecond)

	report, err := orch.Run(context.Background())
	if !errors.Is(err, ErrDeadline) {
		t.Fatalf("err = %v, want ErrDeadline", err)
	}
	if report.Status != "error" || report.Message != "Timeout" {
		t.Errorf("report = %+v", report)
	}
	if report.Result != nil {
		t.Error("timeout report should carry no result")
	}
}

func TestOrchestratorSubSyncFailuresStaySoft(t *testing.T) {
	rosterFetcher := &fakeRosterFetcher{err: errUpstream}
	tradeFetcher := &fakeTradeFetcher{err: errUpstream}
	orch := newTestOrchestrator(rosterFetcher, tradeFetcher, &fakeMemberStore{}, 5*time.Second)

	report, err := orch.Run(context.Background())
	if err != nil {
		t.Fatalf("sub-sync failures must not abort the orchestrator: %v", err)
	}
	if report.Status != "success" {
		t.Errorf("status = %q, want success", report.Status)
	}
	if r := report.Result; r.Members != (domain.RosterResult{}) || r.Trades != (domain.TradeResult{}) {
		t.Errorf("result = %+v, want zero deltas", r)
	}
}
