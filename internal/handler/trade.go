package handler

import (
	"encoding/json"
	"net/http"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/service"
)

// TradeHandler handles HTTP requests for trading, the deal history and the
// balance.
type TradeHandler struct {
	trades *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(trades *service.TradeService) *TradeHandler {
	return &TradeHandler{trades: trades}
}

// tradeRequest is the JSON request body for POST /trades and
// POST /trades/quote.
type tradeRequest struct {
	OfferID  string      `json:"offer_id"`
	Quantity json.Number `json:"quantity"`
}

type quoteResponse struct {
	OfferID     string  `json:"offer_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Side        string  `json:"side"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	Balance     float64 `json:"balance"`
	Sufficient  bool    `json:"sufficient"`
}

type balanceResponse struct {
	Balance float64 `json:"balance"`
	Admin   bool    `json:"admin"`
}

func (h *TradeHandler) parseTrade(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	var req tradeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return "", 0, false
	}
	qty, ok := parseWholeNumber(req.Quantity)
	if !ok {
		mapError(w, domain.ErrInvalidQuantity)
		return "", 0, false
	}
	return req.OfferID, qty, true
}

// Quote handles POST /trades/quote.
func (h *TradeHandler) Quote(w http.ResponseWriter, r *http.Request) {
	offerID, qty, ok := h.parseTrade(w, r)
	if !ok {
		return
	}

	q, err := h.trades.Quote(offerID, qty)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, quoteResponse{
		OfferID:     q.OfferID,
		ProductID:   q.ProductID,
		ProductName: q.ProductName,
		Side:        string(q.Side),
		Quantity:    q.Quantity,
		UnitPrice:   domain.CentsToDollars(q.UnitPrice),
		Amount:      domain.CentsToDollars(q.Amount),
		Balance:     domain.CentsToDollars(q.Balance),
		Sufficient:  q.Sufficient,
	})
}

// Execute handles POST /trades.
func (h *TradeHandler) Execute(w http.ResponseWriter, r *http.Request) {
	offerID, qty, ok := h.parseTrade(w, r)
	if !ok {
		return
	}

	deal, err := h.trades.Execute(offerID, qty)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildDealResponse(deal))
}

// ListDeals handles GET /deals.
func (h *TradeHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	deals := h.trades.Deals()
	resp := make([]dealResponse, len(deals))
	for i, d := range deals {
		resp[i] = buildDealResponse(d)
	}
	WriteJSON(w, http.StatusOK, map[string][]dealResponse{"deals": resp})
}

// Balance handles GET /balance.
func (h *TradeHandler) Balance(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, balanceResponse{
		Balance: domain.CentsToDollars(h.trades.Balance()),
		Admin:   h.trades.AdminEnabled(),
	})
}
