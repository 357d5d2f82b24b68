// Package stockwatcher is the client for the House Stock Watcher bulk
// disclosure feed, a public S3 object holding every disclosed transaction.
package stockwatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mholloway/congresswatch/internal/fetch"
)

// DefaultFeedURL is the public all-transactions object.
const DefaultFeedURL = "https://house-stock-watcher-data.s3-us-west-2.amazonaws.com/data/all_transactions.json"

// Client fetches the bulk transactions feed.
type Client struct {
	feedURL string
	timeout time.Duration
	fetcher *fetch.Client
}

// NewClient creates a feed client. timeout bounds each fetch of the full
// feed; there is no client-side paging.
func NewClient(feedURL string, timeout time.Duration, fetcher *fetch.Client) *Client {
	if feedURL == "" {
		feedURL = DefaultFeedURL
	}
	return &Client{
		feedURL: feedURL,
		timeout: timeout,
		fetcher: fetcher,
	}
}

// AllTransactions returns the full disclosure feed in source order, plus the
// raw payload for archiving.
func (c *Client) AllTransactions(ctx context.Context) ([]APITransaction, []byte, error) {
	body, err := c.fetcher.Get(ctx, c.feedURL, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("stockwatcher: get transactions: %w", err)
	}

	var txs []APITransaction
	if err := json.Unmarshal(body, &txs); err != nil {
		return nil, nil, fmt.Errorf("stockwatcher: decode transactions: %w", err)
	}

	return txs, body, nil
}
