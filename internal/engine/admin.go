package engine

import "github.com/efreitasn/goodsexchange/internal/domain"

// UnlockAdmin enables administrative mode when the configured authorizer
// accepts credential. Returns ErrNotAuthorized otherwise, including when no
// authorizer is configured.
func (l *Ledger) UnlockAdmin(credential string) error {
	if l.authorizer == nil || !l.authorizer.Authorize(credential) {
		return domain.ErrNotAuthorized
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.admin = true
	return nil
}

// LockAdmin leaves administrative mode.
func (l *Ledger) LockAdmin() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.admin = false
}

// AdminEnabled reports whether administrative mode is on.
func (l *Ledger) AdminEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.admin
}

// AdminEditOffer overwrites an offer's price and/or quantity as an
// administrative correction. It bypasses trade accounting: no deal is
// recorded and the balance is untouched.
func (l *Ledger) AdminEditOffer(offerID string, price, quantity *int64) (*domain.Offer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.admin {
		return nil, domain.ErrNotAuthorized
	}
	_, offer, err := l.catalog.FindOffer(offerID)
	if err != nil {
		return nil, err
	}
	if (price != nil && !domain.ValidPrice(*price)) || (quantity != nil && !domain.ValidQuantity(*quantity)) {
		return nil, domain.ErrInvalidListing
	}

	if price != nil {
		offer.Price = *price
	}
	if quantity != nil {
		offer.Quantity = *quantity
	}
	return offer.Clone(), nil
}

// AdminSetBalance overwrites the balance. Negative values are rejected with
// ErrInvalidBalanceEdit.
func (l *Ledger) AdminSetBalance(cents int64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.admin {
		return domain.ErrNotAuthorized
	}
	if cents < 0 {
		return domain.ErrInvalidBalanceEdit
	}
	l.balance = cents
	return nil
}
