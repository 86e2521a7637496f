package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// WriteJSON writes a JSON response with the given status code and data.
// Sets Content-Type to application/json before writing the status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data) // Write error intentionally ignored in response helper
}

// errorResponse is the standard error response format.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// WriteError writes a standard error response with the given status code,
// error code, and human-readable message.
func WriteError(w http.ResponseWriter, status int, errorCode, message string) {
	WriteJSON(w, status, errorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// ParseJSON decodes the request body as JSON into v.
// It validates that the Content-Type header is application/json and
// returns an error for missing/incorrect content type or malformed JSON.
func ParseJSON(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("Request body must be valid JSON with Content-Type: application/json")
	}

	return nil
}

// parseWholeNumber parses a JSON number that must be an integer within the
// int64 range. "3" and "3.0" are accepted, "2.5" and "1e19" are not.
func parseWholeNumber(n json.Number) (int64, bool) {
	if n == "" {
		return 0, false
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil || !domain.FitsInt64(d) || !d.IsInteger() {
		return 0, false
	}
	return d.IntPart(), true
}

// parseAmount parses a currency amount given as a JSON number or a numeric
// string, rounded to cents. Amounts that do not fit in int64 cents are
// rejected.
func parseAmount(raw json.RawMessage) (int64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return 0, false
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
	}
	cents, err := domain.ParseCents(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return cents, true
}

func formatTime(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// offerResponse is the JSON form of an offer.
type offerResponse struct {
	OfferID  string  `json:"offer_id"`
	Side     string  `json:"side"`
	Owner    string  `json:"owner"`
	Source   string  `json:"source"`
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
	Active   bool    `json:"active"`
	Visible  bool    `json:"visible"`
	Public   bool    `json:"public"`
}

func buildOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		OfferID:  o.OfferID,
		Side:     string(o.Side),
		Owner:    o.Owner,
		Source:   o.Source,
		Price:    domain.CentsToDollars(o.Price),
		Quantity: o.Quantity,
		Active:   o.Active,
		Visible:  o.Visible,
		Public:   o.IsPublic(),
	}
}

// dealResponse is the JSON form of a deal.
type dealResponse struct {
	DealID      string  `json:"deal_id"`
	OfferID     string  `json:"offer_id"`
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Side        string  `json:"side"`
	Quantity    int64   `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Amount      float64 `json:"amount"`
	ExecutedAt  string  `json:"executed_at"`
}

func buildDealResponse(d *domain.Deal) dealResponse {
	return dealResponse{
		DealID:      d.DealID,
		OfferID:     d.OfferID,
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Side:        string(d.Side),
		Quantity:    d.Quantity,
		UnitPrice:   domain.CentsToDollars(d.UnitPrice),
		Amount:      domain.CentsToDollars(d.Amount()),
		ExecutedAt:  formatTime(d.ExecutedAt),
	}
}
