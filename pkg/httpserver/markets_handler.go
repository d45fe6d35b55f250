package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/solpredict/resolver/pkg/types"
	"go.uber.org/zap"
)

// MarketSource provides the most recently observed markets.
type MarketSource interface {
	Snapshot() []*types.Market
}

// MarketsHandler handles HTTP requests for market state.
type MarketsHandler struct {
	source MarketSource
	logger *zap.Logger
}

// NewMarketsHandler creates a new markets handler.
func NewMarketsHandler(source MarketSource, logger *zap.Logger) *MarketsHandler {
	return &MarketsHandler{
		source: source,
		logger: logger,
	}
}

// MarketView is the JSON representation of one market. Prices are
// formatted as two-decimal strings; the raw fixed-point values stay
// internal.
type MarketView struct {
	Pubkey      string `json:"pubkey"`
	Question    string `json:"question"`
	AssetSymbol string `json:"asset_symbol"`
	State       string `json:"state"`
	TargetPrice string `json:"target_price"`
	StartPrice  string `json:"start_price"`
	EndPrice    string `json:"end_price,omitempty"`
	UpPool      string `json:"up_pool"`
	DownPool    string `json:"down_pool"`
	EndTime     string `json:"end_time"`
	Inverted    bool   `json:"inverted"`
	Resolved    bool   `json:"resolved"`
	Outcome     *bool  `json:"outcome,omitempty"`
}

// MarketsResponse represents the HTTP response for market listings.
type MarketsResponse struct {
	Markets []MarketView `json:"markets"`
	Count   int          `json:"count"`
}

// ErrorResponse represents an HTTP error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	priceDecimals = 8
	poolDecimals  = 9
)

// HandleMarkets handles GET /api/markets?state=<open|expired|resolved> requests.
func (h *MarketsHandler) HandleMarkets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	stateFilter := r.URL.Query().Get("state")
	switch stateFilter {
	case "", string(types.MarketOpen), string(types.MarketExpired), string(types.MarketResolved):
	default:
		h.writeError(w, "invalid state filter: must be open, expired or resolved", http.StatusBadRequest)
		return
	}

	now := time.Now()
	markets := h.source.Snapshot()
	views := make([]MarketView, 0, len(markets))

	for _, m := range markets {
		state := m.State(now)
		if stateFilter != "" && state != types.MarketState(stateFilter) {
			continue
		}
		views = append(views, marketView(m, state))
	}

	h.logger.Debug("markets-request-served",
		zap.String("state-filter", stateFilter),
		zap.Int("count", len(views)))

	response := MarketsResponse{
		Markets: views,
		Count:   len(views),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

func marketView(m *types.Market, state types.MarketState) MarketView {
	view := MarketView{
		Pubkey:      m.Pubkey.String(),
		Question:    m.Question,
		AssetSymbol: m.AssetSymbol,
		State:       string(state),
		TargetPrice: formatFixed(m.TargetPrice, priceDecimals),
		StartPrice:  formatFixed(m.StartPrice, priceDecimals),
		UpPool:      formatFixed(int64(m.TotalUpPool), poolDecimals),
		DownPool:    formatFixed(int64(m.TotalDownPool), poolDecimals),
		EndTime:     time.Unix(m.EndTime, 0).UTC().Format(time.RFC3339),
		Inverted:    m.Inverted,
		Resolved:    m.Resolved,
		Outcome:     m.Outcome,
	}

	if m.Resolved {
		view.EndPrice = formatFixed(m.EndPrice, priceDecimals)
	}

	return view
}

func formatFixed(value int64, decimals int32) string {
	return decimal.New(value, -decimals).Round(2).StringFixed(2)
}

// writeError writes a JSON error response.
func (h *MarketsHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
