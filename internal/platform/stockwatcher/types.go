package stockwatcher

// APITransaction is one disclosed transaction from the House Stock Watcher
// bulk feed. The feed is loosely typed JSON; optional fields stay pointers so
// absent values are distinguishable from empty strings.
type APITransaction struct {
	Representative   string  `json:"representative"`
	DisclosureDate   string  `json:"disclosure_date"`
	TransactionDate  string  `json:"transaction_date"`
	Ticker           string  `json:"ticker"`
	AssetDescription *string `json:"asset_description"`
	Type             string  `json:"type"`
	Amount           string  `json:"amount"`
	Comment          *string `json:"comment"`
}
