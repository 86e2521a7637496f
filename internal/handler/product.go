package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/service"
)

// ProductHandler handles HTTP requests for catalog endpoints.
type ProductHandler struct {
	market *service.MarketService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(market *service.MarketService) *ProductHandler {
	return &ProductHandler{market: market}
}

// summaryResponse is the JSON form of a side summary.
type summaryResponse struct {
	Avg      float64 `json:"avg"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	TotalQty int64   `json:"total_qty"`
}

func buildSummaryResponse(s domain.Summary) summaryResponse {
	return summaryResponse{
		Avg:      domain.CentsToDollars(s.Avg),
		Min:      domain.CentsToDollars(s.Min),
		Max:      domain.CentsToDollars(s.Max),
		TotalQty: s.TotalQty,
	}
}

type productRowResponse struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category"`
	Summary   summaryResponse `json:"summary"`
}

type listProductsResponse struct {
	Side     string               `json:"side"`
	Products []productRowResponse `json:"products"`
}

type productDetailResponse struct {
	ProductID  string          `json:"product_id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Ask        summaryResponse `json:"ask"`
	Bid        summaryResponse `json:"bid"`
	OfferCount int             `json:"offer_count"`
}

type productOffersResponse struct {
	ProductID string          `json:"product_id"`
	Side      string          `json:"side"`
	Offers    []offerResponse `json:"offers"`
}

type suggestionResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

// sideParam reads the side query parameter, defaulting to ask.
func sideParam(r *http.Request) domain.Side {
	side := r.URL.Query().Get("side")
	if side == "" {
		return domain.SideAsk
	}
	return domain.Side(side)
}

// List handles GET /products.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side := sideParam(r)

	rows, err := h.market.List(service.ListQuery{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Side:     side,
		Sort:     service.SortKey(q.Get("sort")),
		Dir:      service.SortDir(q.Get("dir")),
	})
	if err != nil {
		mapError(w, err)
		return
	}

	resp := listProductsResponse{
		Side:     string(side),
		Products: make([]productRowResponse, len(rows)),
	}
	for i, row := range rows {
		resp.Products[i] = productRowResponse{
			ProductID: row.Product.ProductID,
			Name:      row.Product.Name,
			Category:  row.Product.Category,
			Summary:   buildSummaryResponse(row.Summary),
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Suggestions handles GET /products/suggestions.
func (h *ProductHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	matches := h.market.Suggestions(r.URL.Query().Get("q"))
	resp := make([]suggestionResponse, len(matches))
	for i, m := range matches {
		resp[i] = suggestionResponse{ProductID: m.ProductID, Name: m.Name}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Categories handles GET /categories.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string][]string{"categories": h.market.Categories()})
}

// Get handles GET /products/{product_id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.market.Product(chi.URLParam(r, "product_id"))
	if err != nil {
		mapError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, productDetailResponse{
		ProductID:  detail.Product.ProductID,
		Name:       detail.Product.Name,
		Category:   detail.Product.Category,
		Ask:        buildSummaryResponse(detail.Ask),
		Bid:        buildSummaryResponse(detail.Bid),
		OfferCount: len(detail.Product.Offers),
	})
}

// Offers handles GET /products/{product_id}/offers.
func (h *ProductHandler) Offers(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	side := sideParam(r)
	q := r.URL.Query()

	offers, err := h.market.ProductOffers(productID, side, service.OfferSortKey(q.Get("sort")), service.SortDir(q.Get("dir")))
	if err != nil {
		mapError(w, err)
		return
	}

	resp := productOffersResponse{
		ProductID: productID,
		Side:      string(side),
		Offers:    make([]offerResponse, len(offers)),
	}
	for i, o := range offers {
		resp.Offers[i] = buildOfferResponse(o)
	}
	WriteJSON(w, http.StatusOK, resp)
}
