package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/solpredict/resolver/internal/feeds"
	"github.com/solpredict/resolver/internal/oracle"
	"github.com/solpredict/resolver/pkg/types"
	"go.uber.org/zap"
)

// QuoteSource provides display quotes for price feeds.
type QuoteSource interface {
	DisplayQuote(ctx context.Context, feedID [32]byte) (types.PriceQuote, error)
}

// PricesHandler handles HTTP requests for display prices.
type PricesHandler struct {
	quotes QuoteSource
	feeds  *feeds.Table
	logger *zap.Logger
}

// NewPricesHandler creates a new prices handler.
func NewPricesHandler(quotes QuoteSource, table *feeds.Table, logger *zap.Logger) *PricesHandler {
	return &PricesHandler{
		quotes: quotes,
		feeds:  table,
		logger: logger,
	}
}

// PriceResponse represents the HTTP response for a display price.
type PriceResponse struct {
	Symbol      string `json:"symbol"`
	Price       string `json:"price"`
	PublishTime string `json:"publish_time"`
}

// HandlePrice handles GET /api/prices?symbol=<asset> requests.
func (h *PricesHandler) HandlePrice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		h.writeError(w, "missing required query parameter: symbol", http.StatusBadRequest)
		return
	}

	feedID, ok := h.feeds.Lookup(symbol)
	if !ok {
		h.writeError(w, "unknown asset symbol", http.StatusNotFound)
		return
	}

	quote, err := h.quotes.DisplayQuote(r.Context(), feedID)
	if err != nil {
		h.logger.Warn("price-fetch-failed",
			zap.String("symbol", symbol),
			zap.Error(err))

		if errors.Is(err, types.ErrNoQuoteForFeed) {
			h.writeError(w, "no quote available for feed", http.StatusNotFound)
			return
		}
		h.writeError(w, "price service unavailable", http.StatusBadGateway)
		return
	}

	response := PriceResponse{
		Symbol:      symbol,
		Price:       oracle.FormatDisplayValue(quote),
		PublishTime: time.Unix(quote.PublishTime, 0).UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-response", zap.Error(err))
	}
}

// writeError writes a JSON error response.
func (h *PricesHandler) writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: message}
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		h.logger.Error("failed-to-encode-error-response", zap.Error(err))
	}
}
