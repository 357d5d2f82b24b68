// Package govtrack is the REST client for the GovTrack API, which provides
// the current congressional roster.
package govtrack

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/mholloway/congresswatch/internal/domain"
	"github.com/mholloway/congresswatch/internal/fetch"
)

// DefaultBaseURL is the public GovTrack API root.
const DefaultBaseURL = "https://www.govtrack.us/api/v2"

// Client fetches the current roster from GovTrack.
type Client struct {
	baseURL string
	limit   int
	timeout time.Duration
	fetcher *fetch.Client
}

// NewClient creates a GovTrack client. limit caps the number of roles fetched
// per call; timeout bounds each request.
func NewClient(baseURL string, limit int, timeout time.Duration, fetcher *fetch.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		limit:   limit,
		timeout: timeout,
		fetcher: fetcher,
	}
}

// CurrentRoster returns every current congressional role mapped to the
// domain Member shape, plus the raw response payload for archiving.
func (c *Client) CurrentRoster(ctx context.Context) ([]domain.Member, []byte, error) {
	params := url.Values{}
	params.Set("current", "true")
	params.Set("limit", strconv.Itoa(c.limit))

	target := c.baseURL + "/role?" + params.Encode()

	body, err := c.fetcher.Get(ctx, target, c.timeout)
	if err != nil {
		return nil, nil, fmt.Errorf("govtrack: get roster: %w", err)
	}

	var resp rolesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("govtrack: decode roster: %w", err)
	}

	members := make([]domain.Member, 0, len(resp.Objects))
	for i := range resp.Objects {
		members = append(members, resp.Objects[i].ToMember())
	}

	return members, body, nil
}
