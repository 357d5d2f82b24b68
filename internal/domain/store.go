package domain

import "context"

// MemberName pairs a stored member's identifier with its full name. Used to
// resolve disclosure filers against the roster.
type MemberName struct {
	ID       int64
	FullName string
}

// MemberStore persists legislators. The sync only ever selects and
// batch-inserts; rows are never updated or deleted.
type MemberStore interface {
	// InsertBatch inserts all given members in a single batch.
	InsertBatch(ctx context.Context, members []Member) error
	// ListKeys returns the identity keys of every stored member.
	ListKeys(ctx context.Context) ([]string, error)
	// ListNames returns (id, full name) for every stored member.
	ListNames(ctx context.Context) ([]MemberName, error)
	// Count returns the number of stored members.
	Count(ctx context.Context) (int64, error)
}

// TradeStore persists disclosed trades.
type TradeStore interface {
	// InsertBatch inserts all given trades in a single batch.
	InsertBatch(ctx context.Context, trades []Trade) error
	// ListKeys returns the identity keys of every stored trade.
	ListKeys(ctx context.Context) ([]string, error)
	// Count returns the number of stored trades.
	Count(ctx context.Context) (int64, error)
}
