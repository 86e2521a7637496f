package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/service"
)

// AdminHandler handles HTTP requests for administrative mode.
type AdminHandler struct {
	trades *service.TradeService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(trades *service.TradeService) *AdminHandler {
	return &AdminHandler{trades: trades}
}

type unlockRequest struct {
	Password string `json:"password"`
}

type adminSessionResponse struct {
	Admin bool `json:"admin"`
}

// adminOfferRequest is the JSON request body for PUT /admin/offers/{offer_id}.
// Omitted fields are left unchanged.
type adminOfferRequest struct {
	Price    *float64     `json:"price"`
	Quantity *json.Number `json:"quantity"`
}

// adminBalanceRequest accepts the balance as a JSON number or a numeric
// string, so that non-numeric input is reported as invalid_balance_edit.
type adminBalanceRequest struct {
	Balance json.RawMessage `json:"balance"`
}

// Unlock handles POST /admin/session.
func (h *AdminHandler) Unlock(w http.ResponseWriter, r *http.Request) {
	var req unlockRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if err := h.trades.UnlockAdmin(req.Password); err != nil {
		mapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, adminSessionResponse{Admin: true})
}

// Lock handles DELETE /admin/session.
func (h *AdminHandler) Lock(w http.ResponseWriter, r *http.Request) {
	h.trades.LockAdmin()
	WriteJSON(w, http.StatusOK, adminSessionResponse{Admin: false})
}

// EditOffer handles PUT /admin/offers/{offer_id}.
func (h *AdminHandler) EditOffer(w http.ResponseWriter, r *http.Request) {
	var req adminOfferRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	var price, qty *int64
	if req.Price != nil {
		cents, err := domain.DollarsToCents(*req.Price)
		if err != nil {
			mapError(w, domain.ErrInvalidListing)
			return
		}
		price = &cents
	}
	if req.Quantity != nil {
		n, ok := parseWholeNumber(*req.Quantity)
		if !ok {
			mapError(w, domain.ErrInvalidListing)
			return
		}
		qty = &n
	}

	offer, err := h.trades.AdminEditOffer(chi.URLParam(r, "offer_id"), price, qty)
	if err != nil {
		mapError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, buildOfferResponse(offer))
}

// SetBalance handles PUT /admin/balance.
func (h *AdminHandler) SetBalance(w http.ResponseWriter, r *http.Request) {
	var req adminBalanceRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	if !h.trades.AdminEnabled() {
		mapError(w, domain.ErrNotAuthorized)
		return
	}
	cents, ok := parseAmount(req.Balance)
	if !ok {
		mapError(w, domain.ErrInvalidBalanceEdit)
		return
	}
	if err := h.trades.AdminSetBalance(cents); err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, balanceResponse{
		Balance: domain.CentsToDollars(h.trades.Balance()),
		Admin:   true,
	})
}
