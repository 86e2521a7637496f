package handler

import (
	"errors"
	"net/http"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// mapError maps domain errors to HTTP responses.
func mapError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		WriteError(w, http.StatusBadRequest, "validation_error", validationErr.Message)
		return
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		WriteError(w, http.StatusNotFound, "product_not_found", err.Error())
	case errors.Is(err, domain.ErrOfferNotFound):
		WriteError(w, http.StatusNotFound, "offer_not_found", err.Error())
	case errors.Is(err, domain.ErrOfferUnavailable):
		WriteError(w, http.StatusConflict, "offer_unavailable", err.Error())
	case errors.Is(err, domain.ErrInsufficientFunds):
		WriteError(w, http.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, domain.ErrInvalidQuantity):
		WriteError(w, http.StatusUnprocessableEntity, "invalid_quantity", err.Error())
	case errors.Is(err, domain.ErrInvalidListing):
		WriteError(w, http.StatusUnprocessableEntity, "invalid_listing", err.Error())
	case errors.Is(err, domain.ErrInvalidBalanceEdit):
		WriteError(w, http.StatusUnprocessableEntity, "invalid_balance_edit", err.Error())
	case errors.Is(err, domain.ErrNotAuthorized):
		WriteError(w, http.StatusForbidden, "not_authorized", err.Error())
	case errors.Is(err, domain.ErrNotOwner):
		WriteError(w, http.StatusForbidden, "not_owner", err.Error())
	default:
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
