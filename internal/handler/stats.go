package handler

import (
	"net/http"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/service"
)

// StatsHandler handles HTTP requests for deal statistics.
type StatsHandler struct {
	stats *service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(stats *service.StatsService) *StatsHandler {
	return &StatsHandler{stats: stats}
}

type statsRowResponse struct {
	Period      string  `json:"period"`
	ProductName string  `json:"product_name,omitempty"`
	TotalQty    int64   `json:"total_qty"`
	AvgPrice    float64 `json:"avg_price"`
}

// statsResponse carries no_data so clients can tell "no trades happened"
// apart from an empty period.
type statsResponse struct {
	Period string             `json:"period"`
	Mode   string             `json:"mode"`
	NoData bool               `json:"no_data"`
	Rows   []statsRowResponse `json:"rows"`
}

type totalsRowResponse struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Side        string  `json:"side"`
	DealCount   int     `json:"deal_count"`
	TotalQty    int64   `json:"total_qty"`
	TotalAmount float64 `json:"total_amount"`
	AvgPrice    float64 `json:"avg_price"`
}

type totalsResponse struct {
	NoData bool                `json:"no_data"`
	Rows   []totalsRowResponse `json:"rows"`
}

// Stats handles GET /stats.
func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := service.StatsQuery{
		Period:    service.Granularity(q.Get("period")),
		Mode:      service.StatsMode(q.Get("mode")),
		ProductID: q.Get("product_id"),
		Side:      domain.Side(q.Get("side")),
	}
	if query.Period == "" {
		query.Period = service.GranularityDay
	}
	if query.Mode == "" {
		query.Mode = service.StatsModeMarket
	}

	result, err := h.stats.Stats(query)
	if err != nil {
		mapError(w, err)
		return
	}

	resp := statsResponse{
		Period: string(query.Period),
		Mode:   string(query.Mode),
		NoData: result.NoData,
		Rows:   make([]statsRowResponse, len(result.Rows)),
	}
	for i, row := range result.Rows {
		resp.Rows[i] = statsRowResponse{
			Period:      row.Period,
			ProductName: row.ProductName,
			TotalQty:    row.TotalQty,
			AvgPrice:    domain.CentsToDollars(row.AvgPrice),
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// Totals handles GET /stats/totals.
func (h *StatsHandler) Totals(w http.ResponseWriter, r *http.Request) {
	result, err := h.stats.Totals(domain.Side(r.URL.Query().Get("side")))
	if err != nil {
		mapError(w, err)
		return
	}

	resp := totalsResponse{
		NoData: result.NoData,
		Rows:   make([]totalsRowResponse, len(result.Rows)),
	}
	for i, row := range result.Rows {
		resp.Rows[i] = totalsRowResponse{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Side:        string(row.Side),
			DealCount:   row.DealCount,
			TotalQty:    row.TotalQty,
			TotalAmount: domain.DecimalCentsToDollars(row.TotalAmount),
			AvgPrice:    domain.CentsToDollars(row.AvgPrice),
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}
