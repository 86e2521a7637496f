package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/efreitasn/goodsexchange/internal/service"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware.
func NewRouter(
	market *service.MarketService,
	trades *service.TradeService,
	stats *service.StatsService,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(requestLogging(logger))
	r.Use(contentTypeJSON)

	productH := NewProductHandler(market)
	offerH := NewOfferHandler(trades)
	tradeH := NewTradeHandler(trades)
	statsH := NewStatsHandler(stats)
	adminH := NewAdminHandler(trades)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Catalog routes.
	r.Get("/products", productH.List)
	r.Get("/products/suggestions", productH.Suggestions)
	r.Get("/products/{product_id}", productH.Get)
	r.Get("/products/{product_id}/offers", productH.Offers)
	r.Get("/categories", productH.Categories)

	// Listing routes.
	r.Post("/offers", offerH.Create)
	r.Patch("/offers/{offer_id}", offerH.Update)

	// Trade routes.
	r.Post("/trades/quote", tradeH.Quote)
	r.Post("/trades", tradeH.Execute)
	r.Get("/deals", tradeH.ListDeals)
	r.Get("/balance", tradeH.Balance)

	// Stats routes.
	r.Get("/stats", statsH.Stats)
	r.Get("/stats/totals", statsH.Totals)

	// Admin routes.
	r.Route("/admin", func(r chi.Router) {
		r.Post("/session", adminH.Unlock)
		r.Delete("/session", adminH.Lock)
		r.Put("/offers/{offer_id}", adminH.EditOffer)
		r.Put("/balance", adminH.SetBalance)
	})

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
