package domain

import "time"

// RosterResult is the outcome of one roster sync pass.
type RosterResult struct {
	MembersFetched int `json:"membersFetched"`
	MembersAdded   int `json:"membersAdded"`
}

// TradeResult is the outcome of one trade sync pass.
type TradeResult struct {
	TradesFetched int `json:"tradesFetched"`
	TradesAdded   int `json:"tradesAdded"`
}

// SyncResult bundles the per-sync outcomes of one orchestrator run.
type SyncResult struct {
	Members RosterResult `json:"members"`
	Trades  TradeResult  `json:"trades"`
}

// SyncReport is the timestamped envelope returned to callers of the sync
// trigger. Status is "success" or "error"; Result is present only on success.
type SyncReport struct {
	Status    string      `json:"status"`
	Message   string      `json:"message"`
	Timestamp time.Time   `json:"timestamp"`
	Result    *SyncResult `json:"result,omitempty"`
}

// NewSuccessReport builds a success report stamped with the current UTC time.
func NewSuccessReport(message string, result SyncResult) SyncReport {
	return SyncReport{
		Status:    "success",
		Message:   message,
		Timestamp: time.Now().UTC(),
		Result:    &result,
	}
}

// NewErrorReport builds a failure report stamped with the current UTC time.
func NewErrorReport(message string) SyncReport {
	return SyncReport{
		Status:    "error",
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
}
