package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
	"github.com/efreitasn/goodsexchange/internal/service"
)

// OfferHandler handles HTTP requests for the acting user's listings.
type OfferHandler struct {
	trades *service.TradeService
}

// NewOfferHandler creates a new OfferHandler.
func NewOfferHandler(trades *service.TradeService) *OfferHandler {
	return &OfferHandler{trades: trades}
}

// createOfferRequest is the JSON request body for POST /offers.
type createOfferRequest struct {
	ProductID   string      `json:"product_id"`
	ProductName string      `json:"product_name"`
	Side        string      `json:"side"`
	Price       float64     `json:"price"`
	Quantity    json.Number `json:"quantity"`
}

// updateOfferRequest is the JSON request body for PATCH /offers/{offer_id}.
type updateOfferRequest struct {
	Active    *bool        `json:"active"`
	Visible   *bool        `json:"visible"`
	ProductID *string      `json:"product_id"`
	Price     *float64     `json:"price"`
	Quantity  *json.Number `json:"quantity"`
}

// Create handles POST /offers.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOfferRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	qty, ok := parseWholeNumber(req.Quantity)
	if !ok {
		mapError(w, domain.ErrInvalidListing)
		return
	}
	price, err := domain.DollarsToCents(req.Price)
	if err != nil {
		mapError(w, domain.ErrInvalidListing)
		return
	}

	offer, err := h.trades.CreateOffer(engine.NewOffer{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Side:        domain.Side(req.Side),
		Price:       price,
		Quantity:    qty,
	})
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, buildOfferResponse(offer))
}

// Update handles PATCH /offers/{offer_id}.
func (h *OfferHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateOfferRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	patch := engine.OfferPatch{
		Active:    req.Active,
		Visible:   req.Visible,
		ProductID: req.ProductID,
	}
	if req.Price != nil {
		cents, err := domain.DollarsToCents(*req.Price)
		if err != nil {
			mapError(w, domain.ErrInvalidListing)
			return
		}
		patch.Price = &cents
	}
	if req.Quantity != nil {
		qty, ok := parseWholeNumber(*req.Quantity)
		if !ok {
			mapError(w, domain.ErrInvalidListing)
			return
		}
		patch.Quantity = &qty
	}

	offer, err := h.trades.UpdateOffer(chi.URLParam(r, "offer_id"), patch)
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, buildOfferResponse(offer))
}
