package engine

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// NewOffer describes a listing created by the acting user. The product is
// selected by ProductID when set, otherwise by case-insensitive Name.
type NewOffer struct {
	ProductID   string
	ProductName string
	Side        domain.Side
	Price       int64 // cents
	Quantity    int64
}

// OfferPatch is a partial update of an offer. Nil fields are left unchanged.
type OfferPatch struct {
	Active    *bool
	Visible   *bool
	ProductID *string
	Price     *int64 // cents
	Quantity  *int64
}

// CreateOffer lists a new public offer owned by the acting user. It returns
// ErrInvalidListing for a non-positive price or quantity, a price above
// domain.MaxPrice or quantity above domain.MaxQuantity, an unknown side,
// or a product that does not exist and may not be created implicitly.
func (l *Ledger) CreateOffer(req NewOffer) (*domain.Offer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !req.Side.Valid() || req.Price <= 0 || req.Quantity <= 0 ||
		!domain.ValidPrice(req.Price) || !domain.ValidQuantity(req.Quantity) {
		return nil, domain.ErrInvalidListing
	}

	product, created, err := l.resolveListingProduct(req)
	if err != nil {
		return nil, err
	}

	offer := &domain.Offer{
		OfferID:  uuid.New().String(),
		Side:     req.Side,
		Owner:    l.policy.UserName,
		Source:   fmt.Sprintf("Personal listing (%s)", req.Side),
		Price:    req.Price,
		Quantity: req.Quantity,
		Active:   true,
		Visible:  true,
	}

	if created {
		product.Offers = []*domain.Offer{offer}
		l.catalog.AddProduct(product)
	} else if err := l.catalog.AddOffer(product, offer); err != nil {
		return nil, err
	}
	return offer.Clone(), nil
}

// resolveListingProduct finds the product a new listing targets, or builds
// (without storing) a new one when policy allows. The caller must hold l.mu.
func (l *Ledger) resolveListingProduct(req NewOffer) (*domain.Product, bool, error) {
	if req.ProductID != "" {
		p, err := l.catalog.FindProduct(req.ProductID)
		if err != nil {
			return nil, false, domain.ErrInvalidListing
		}
		return p, false, nil
	}

	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		return nil, false, domain.ErrInvalidListing
	}
	if p, ok := l.catalog.FindProductByName(name); ok {
		return p, false, nil
	}
	if !l.policy.AllowImplicitProductCreation {
		return nil, false, domain.ErrInvalidListing
	}
	return &domain.Product{
		ProductID: uuid.New().String(),
		Name:      name,
		Category:  l.policy.ImplicitCategory,
	}, true, nil
}

// UpdateOwnOffer applies an owner's listing-management patch: toggling
// active/visible, moving the offer to another product, or overwriting price
// and quantity. No deal is recorded and the balance is untouched.
//
// Returns ErrOfferNotFound, ErrNotOwner when the offer belongs to someone
// else, ErrInvalidListing for a price or quantity outside the offer limits
// and
// ErrProductNotFound for an unknown target product.
func (l *Ledger) UpdateOwnOffer(offerID string, patch OfferPatch) (*domain.Offer, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	from, offer, err := l.catalog.FindOffer(offerID)
	if err != nil {
		return nil, err
	}
	if offer.Owner != l.policy.UserName {
		return nil, domain.ErrNotOwner
	}
	if (patch.Price != nil && !domain.ValidPrice(*patch.Price)) ||
		(patch.Quantity != nil && !domain.ValidQuantity(*patch.Quantity)) {
		return nil, domain.ErrInvalidListing
	}
	if patch.ProductID != nil && *patch.ProductID != from.ProductID {
		if _, err := l.catalog.FindProduct(*patch.ProductID); err != nil {
			return nil, err
		}
		if err := l.catalog.MoveOffer(offerID, *patch.ProductID); err != nil {
			return nil, err
		}
	}

	if patch.Active != nil {
		offer.Active = *patch.Active
	}
	if patch.Visible != nil {
		offer.Visible = *patch.Visible
	}
	if patch.Price != nil {
		offer.Price = *patch.Price
	}
	if patch.Quantity != nil {
		offer.Quantity = *patch.Quantity
	}
	return offer.Clone(), nil
}

// SetOfferActive withdraws (false) or reactivates (true) an owned offer.
func (l *Ledger) SetOfferActive(offerID string, active bool) (*domain.Offer, error) {
	return l.UpdateOwnOffer(offerID, OfferPatch{Active: &active})
}

// SetOfferVisible hides (false) or publishes (true) an owned offer.
func (l *Ledger) SetOfferVisible(offerID string, visible bool) (*domain.Offer, error) {
	return l.UpdateOwnOffer(offerID, OfferPatch{Visible: &visible})
}

// MoveOwnOffer reassigns an owned offer to another product.
func (l *Ledger) MoveOwnOffer(offerID, productID string) (*domain.Offer, error) {
	return l.UpdateOwnOffer(offerID, OfferPatch{ProductID: &productID})
}

// EditOwnOffer overwrites the price and quantity of an owned offer.
func (l *Ledger) EditOwnOffer(offerID string, price, quantity int64) (*domain.Offer, error) {
	return l.UpdateOwnOffer(offerID, OfferPatch{Price: &price, Quantity: &quantity})
}
