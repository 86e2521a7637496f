package engine

import (
	"math"

	"github.com/google/uuid"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// Quote is the read-only preview of a trade against one offer.
type Quote struct {
	OfferID     string
	ProductID   string
	ProductName string
	Side        domain.Side
	Quantity    int64
	UnitPrice   int64 // cents
	Amount      int64 // cents
	Balance     int64 // balance at quote time
	Sufficient  bool  // false when an ask-side trade would overdraw the balance
}

// QuoteTrade validates a trade and reports its amount without changing
// anything. Insufficient funds is reported through Quote.Sufficient rather
// than as an error so the caller can show the shortfall before confirming.
func (l *Ledger) QuoteTrade(offerID string, quantity int64) (*Quote, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	product, offer, err := l.tradable(offerID, quantity)
	if err != nil {
		return nil, err
	}

	amount, err := domain.TradeAmount(offer.Price, quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}
	_, err = settle(l.balance, offer.Side, amount)
	if err != nil && err != domain.ErrInsufficientFunds {
		return nil, err
	}
	return &Quote{
		OfferID:     offer.OfferID,
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Side:        offer.Side,
		Quantity:    quantity,
		UnitPrice:   offer.Price,
		Amount:      amount,
		Balance:     l.balance,
		Sufficient:  err == nil,
	}, nil
}

// ExecuteTrade settles quantity units against an offer.
//
// Checks run in order and the first failure wins: the offer must be public
// (ErrOfferUnavailable), 1 <= quantity <= offer quantity
// (ErrInvalidQuantity, also returned when the amount or the credited
// balance would not fit in int64), and an ask-side trade must be covered by
// the balance (ErrInsufficientFunds). On success the balance is debited (ask)
// or credited (bid), the offer quantity drops by quantity and exactly one
// deal is appended, all under the ledger lock.
func (l *Ledger) ExecuteTrade(offerID string, quantity int64) (*domain.Deal, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	product, offer, err := l.tradable(offerID, quantity)
	if err != nil {
		return nil, err
	}

	amount, err := domain.TradeAmount(offer.Price, quantity)
	if err != nil {
		return nil, domain.ErrInvalidQuantity
	}
	balance, err := settle(l.balance, offer.Side, amount)
	if err != nil {
		return nil, err
	}

	deal := &domain.Deal{
		DealID:      uuid.New().String(),
		OfferID:     offer.OfferID,
		ProductID:   product.ProductID,
		ProductName: product.Name,
		Side:        offer.Side,
		Quantity:    quantity,
		UnitPrice:   offer.Price,
		ExecutedAt:  l.now(),
	}

	l.balance = balance
	offer.Quantity -= quantity
	l.deals.Append(deal)

	return deal, nil
}

// tradable runs the offer and quantity checks shared by quote and execute.
// The caller must hold l.mu.
func (l *Ledger) tradable(offerID string, quantity int64) (*domain.Product, *domain.Offer, error) {
	product, offer, err := l.catalog.FindOffer(offerID)
	if err != nil || !offer.IsPublic() {
		return nil, nil, domain.ErrOfferUnavailable
	}
	if quantity < 1 || quantity > offer.Quantity {
		return nil, nil, domain.ErrInvalidQuantity
	}
	return product, offer, nil
}

// settle returns the balance after a trade of amount on side. A credit that
// would overflow is rejected as ErrInvalidQuantity.
func settle(balance int64, side domain.Side, amount int64) (int64, error) {
	if side == domain.SideAsk {
		if balance < amount {
			return 0, domain.ErrInsufficientFunds
		}
		return balance - amount, nil
	}
	if amount > math.MaxInt64-balance {
		return 0, domain.ErrInvalidQuantity
	}
	return balance + amount, nil
}
