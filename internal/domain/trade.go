package domain

import "fmt"

// TradeType is the disclosed transaction direction. The feed reports several
// sale variants ("sale_full", "sale_partial", ...); everything that is not
// literally "purchase" is treated as a sale.
type TradeType string

const (
	TradePurchase TradeType = "purchase"
	TradeSale     TradeType = "sale"
)

// Trade represents one disclosed stock transaction attributed to a stored
// member. Like members, trades are append-only.
type Trade struct {
	ID               int64
	MemberID         int64
	DisclosureDate   string // as reported by the feed, e.g. "2025-11-03"
	TransactionDate  string
	Ticker           string
	AssetDescription *string
	Type             TradeType
	Amount           string // bracket string, e.g. "$1,001 - $15,000"
	Comment          *string
}

// Key returns the trade's identity key.
func (t Trade) Key() string {
	return TradeKey(t.DisclosureDate, t.Ticker, t.Amount, t.MemberID)
}

// TradeKey builds the (disclosure date, ticker, amount, member) identity key
// used to deduplicate incoming feed records against stored ones.
func TradeKey(disclosureDate, ticker, amount string, memberID int64) string {
	return fmt.Sprintf("%s|%s|%s|%d", disclosureDate, ticker, amount, memberID)
}
