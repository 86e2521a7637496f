package service

import (
	"log/slog"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
)

// TradeService is the write side of the ledger: trades, the acting user's
// listings and administrative corrections. It logs every accepted and
// rejected mutation.
type TradeService struct {
	ledger *engine.Ledger
	logger *slog.Logger
}

// NewTradeService creates a new TradeService with the given dependencies.
func NewTradeService(ledger *engine.Ledger, logger *slog.Logger) *TradeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TradeService{
		ledger: ledger,
		logger: logger,
	}
}

// Quote previews a trade without changing anything.
func (s *TradeService) Quote(offerID string, quantity int64) (*engine.Quote, error) {
	return s.ledger.QuoteTrade(offerID, quantity)
}

// Execute settles a trade against an offer.
func (s *TradeService) Execute(offerID string, quantity int64) (*domain.Deal, error) {
	deal, err := s.ledger.ExecuteTrade(offerID, quantity)
	if err != nil {
		s.logger.Debug("trade rejected",
			slog.String("offer_id", offerID),
			slog.Int64("quantity", quantity),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.logger.Info("trade executed",
		slog.String("deal_id", deal.DealID),
		slog.String("offer_id", deal.OfferID),
		slog.String("product_id", deal.ProductID),
		slog.String("side", string(deal.Side)),
		slog.Int64("quantity", deal.Quantity),
		slog.Int64("unit_price_cents", deal.UnitPrice),
	)
	return deal, nil
}

// Balance returns the acting user's balance in cents.
func (s *TradeService) Balance() int64 {
	return s.ledger.Balance()
}

// Deals returns the retained deal history, oldest first.
func (s *TradeService) Deals() []*domain.Deal {
	return s.ledger.Deals()
}

// AdminEnabled reports whether administrative mode is on.
func (s *TradeService) AdminEnabled() bool {
	return s.ledger.AdminEnabled()
}

// CreateOffer lists a new offer for the acting user.
func (s *TradeService) CreateOffer(req engine.NewOffer) (*domain.Offer, error) {
	offer, err := s.ledger.CreateOffer(req)
	if err != nil {
		s.logger.Debug("listing rejected",
			slog.String("product_id", req.ProductID),
			slog.String("product_name", req.ProductName),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.logger.Info("offer listed",
		slog.String("offer_id", offer.OfferID),
		slog.String("side", string(offer.Side)),
		slog.Int64("price_cents", offer.Price),
		slog.Int64("quantity", offer.Quantity),
	)
	return offer, nil
}

// UpdateOffer applies an owner's patch to one of their offers.
func (s *TradeService) UpdateOffer(offerID string, patch engine.OfferPatch) (*domain.Offer, error) {
	offer, err := s.ledger.UpdateOwnOffer(offerID, patch)
	if err != nil {
		s.logger.Debug("offer update rejected",
			slog.String("offer_id", offerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.logger.Info("offer updated", slog.String("offer_id", offerID))
	return offer, nil
}

// UnlockAdmin enters administrative mode.
func (s *TradeService) UnlockAdmin(credential string) error {
	if err := s.ledger.UnlockAdmin(credential); err != nil {
		s.logger.Warn("admin unlock rejected")
		return err
	}
	s.logger.Info("admin mode enabled")
	return nil
}

// LockAdmin leaves administrative mode.
func (s *TradeService) LockAdmin() {
	s.ledger.LockAdmin()
	s.logger.Info("admin mode disabled")
}

// AdminEditOffer overwrites an offer's price and/or quantity.
func (s *TradeService) AdminEditOffer(offerID string, price, quantity *int64) (*domain.Offer, error) {
	offer, err := s.ledger.AdminEditOffer(offerID, price, quantity)
	if err != nil {
		s.logger.Debug("admin offer edit rejected",
			slog.String("offer_id", offerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	s.logger.Info("admin offer edit",
		slog.String("offer_id", offer.OfferID),
		slog.Int64("price_cents", offer.Price),
		slog.Int64("quantity", offer.Quantity),
	)
	return offer, nil
}

// AdminSetBalance overwrites the balance.
func (s *TradeService) AdminSetBalance(cents int64) error {
	before := s.ledger.Balance()
	if err := s.ledger.AdminSetBalance(cents); err != nil {
		s.logger.Debug("admin balance edit rejected", slog.String("error", err.Error()))
		return err
	}
	s.logger.Info("admin balance edit",
		slog.Int64("from_cents", before),
		slog.Int64("to_cents", cents),
	)
	return nil
}
