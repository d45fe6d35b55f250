package oracle

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/pkg/cache"
	"github.com/solpredict/resolver/pkg/types"
)

// FormatDisplayValue renders a quote as a human-readable decimal string
// with 2 places, half-up.
//
// Display only. Settlement math never touches this path: outcomes and
// payouts are computed on integer fixed-point values.
func FormatDisplayValue(quote types.PriceQuote) string {
	return decimal.New(quote.Price, quote.Expo).Round(2).StringFixed(2)
}

// CachedDisplayClient memoizes display quotes with a short TTL so UI-style
// consumers do not hammer the live service. The resolution path must not
// use this wrapper.
type CachedDisplayClient struct {
	client *Client
	cache  cache.Cache
	ttl    time.Duration
}

// NewCachedDisplayClient wraps a Hermes client with a TTL cache.
func NewCachedDisplayClient(client *Client, c cache.Cache, ttl time.Duration) *CachedDisplayClient {
	return &CachedDisplayClient{
		client: client,
		cache:  c,
		ttl:    ttl,
	}
}

// DisplayQuote returns a possibly slightly stale quote for display.
func (c *CachedDisplayClient) DisplayQuote(ctx context.Context, feedID [32]byte) (types.PriceQuote, error) {
	key := "quote:" + feeds.ToHex(feedID)

	if value, found := c.cache.Get(key); found {
		if quote, ok := value.(types.PriceQuote); ok {
			return quote, nil
		}
	}

	quote, err := c.client.LatestQuote(ctx, feedID)
	if err != nil {
		return types.PriceQuote{}, err
	}

	c.cache.Set(key, quote, c.ttl)

	return quote, nil
}
