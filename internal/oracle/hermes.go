// Package oracle fetches price data from the Pyth network over the Hermes
// HTTP API.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/pkg/types"
	"go.uber.org/zap"
)

// DefaultHermesURL is the public Hermes endpoint.
const DefaultHermesURL = "https://hermes.pyth.network"

// Client is an HTTP client for the Hermes price service. It performs no
// caching: every call hits the live service. Callers that only need a
// display value should go through CachedDisplayClient instead.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a new Hermes client.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultHermesURL
	}

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// PriceUpdate is one parsed feed entry plus the attestation blob the ledger
// program can verify on-chain.
type PriceUpdate struct {
	FeedID [32]byte
	Quote  types.PriceQuote

	// Binary is the base64 attestation data for posting on-chain.
	Binary []string
}

// hermesResponse mirrors the /v2/updates/price/latest payload. Price fields
// arrive as decimal strings.
type hermesResponse struct {
	Binary struct {
		Encoding string   `json:"encoding"`
		Data     []string `json:"data"`
	} `json:"binary"`
	Parsed []struct {
		ID    string `json:"id"`
		Price struct {
			Price       string `json:"price"`
			Conf        string `json:"conf"`
			Expo        int32  `json:"expo"`
			PublishTime int64  `json:"publish_time"`
		} `json:"price"`
	} `json:"parsed"`
}

// LatestQuote fetches the latest published quote for a single feed.
// Network and decode failures map to ErrOracleUnavailable; a response that
// does not include the requested feed maps to ErrNoQuoteForFeed.
func (c *Client) LatestQuote(ctx context.Context, feedID [32]byte) (types.PriceQuote, error) {
	update, err := c.LatestUpdate(ctx, feedID)
	if err != nil {
		return types.PriceQuote{}, err
	}

	return update.Quote, nil
}

// LatestUpdate fetches the latest quote together with its attestation blob.
func (c *Client) LatestUpdate(ctx context.Context, feedID [32]byte) (*PriceUpdate, error) {
	start := time.Now()
	defer func() {
		FetchDurationSeconds.Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Add("ids[]", feeds.ToHex(feedID))
	params.Add("encoding", "base64")
	params.Add("parsed", "true")

	requestURL := fmt.Sprintf("%s/v2/updates/price/latest?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		FetchErrorsTotal.WithLabelValues("network").Inc()
		return nil, fmt.Errorf("%w: %v", types.ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	// Hermes answers 404 for feeds it has never published.
	if resp.StatusCode == http.StatusNotFound {
		FetchErrorsTotal.WithLabelValues("no_feed").Inc()
		return nil, fmt.Errorf("%w: %s", types.ErrNoQuoteForFeed, feeds.ToHex(feedID))
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		FetchErrorsTotal.WithLabelValues("status").Inc()
		return nil, fmt.Errorf("%w: unexpected status %d: %s",
			types.ErrOracleUnavailable, resp.StatusCode, string(body))
	}

	var parsed hermesResponse
	err = json.NewDecoder(resp.Body).Decode(&parsed)
	if err != nil {
		FetchErrorsTotal.WithLabelValues("decode").Inc()
		return nil, fmt.Errorf("%w: decode response: %v", types.ErrOracleUnavailable, err)
	}

	wantID := strings.TrimPrefix(feeds.ToHex(feedID), "0x")

	for _, entry := range parsed.Parsed {
		if !strings.EqualFold(strings.TrimPrefix(entry.ID, "0x"), wantID) {
			continue
		}

		quote, err := parseQuote(entry.Price.Price, entry.Price.Conf, entry.Price.Expo, entry.Price.PublishTime)
		if err != nil {
			FetchErrorsTotal.WithLabelValues("decode").Inc()
			return nil, fmt.Errorf("%w: %v", types.ErrOracleUnavailable, err)
		}

		QuotesFetchedTotal.Inc()
		c.logger.Debug("oracle-quote-fetched",
			zap.String("feed-id", feeds.ToHex(feedID)),
			zap.Int64("price", quote.Price),
			zap.Int32("expo", quote.Expo))

		return &PriceUpdate{
			FeedID: feedID,
			Quote:  quote,
			Binary: parsed.Binary.Data,
		}, nil
	}

	FetchErrorsTotal.WithLabelValues("no_feed").Inc()

	return nil, fmt.Errorf("%w: %s", types.ErrNoQuoteForFeed, feeds.ToHex(feedID))
}

func parseQuote(price, conf string, expo int32, publishTime int64) (types.PriceQuote, error) {
	p, err := strconv.ParseInt(price, 10, 64)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("parse price %q: %w", price, err)
	}

	cf, err := strconv.ParseUint(conf, 10, 64)
	if err != nil {
		return types.PriceQuote{}, fmt.Errorf("parse conf %q: %w", conf, err)
	}

	return types.PriceQuote{
		Price:       p,
		Conf:        cf,
		Expo:        expo,
		PublishTime: publishTime,
	}, nil
}
