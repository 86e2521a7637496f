package store

import (
	"strings"
	"sync"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// Catalog is an in-memory store for products in catalog order, with a
// primary index by product_id and a secondary index offer_id → owning product.
//
// The catalog only guards its own indexes. Offer fields are mutated by the
// engine, which serializes all access through its ledger lock.
type Catalog struct {
	mu         sync.RWMutex
	products   []*domain.Product
	byID       map[string]*domain.Product
	offerIndex map[string]*domain.Product
	categories *domain.CategoryRegistry
}

// NewCatalog creates an empty Catalog that registers product categories in
// the given registry.
func NewCatalog(categories *domain.CategoryRegistry) *Catalog {
	return &Catalog{
		byID:       make(map[string]*domain.Product),
		offerIndex: make(map[string]*domain.Product),
		categories: categories,
	}
}

// AddProduct appends a product, with any offers it already owns, to the
// catalog. A product whose ID is already present is ignored.
func (c *Catalog) AddProduct(p *domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byID[p.ProductID]; exists {
		return
	}
	c.products = append(c.products, p)
	c.byID[p.ProductID] = p
	for _, o := range p.Offers {
		c.offerIndex[o.OfferID] = p
	}
	c.categories.Register(p.Category)
}

// FindProduct retrieves a product by ID. It returns
// domain.ErrProductNotFound if the product does not exist.
func (c *Catalog) FindProduct(id string) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.byID[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

// FindProductByName looks a product up by case-insensitive name.
func (c *Catalog) FindProductByName(name string) (*domain.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, p := range c.products {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// FindOffer returns an offer together with its owning product. It returns
// domain.ErrOfferNotFound if no product owns the offer.
func (c *Catalog) FindOffer(offerID string) (*domain.Product, *domain.Offer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.offerIndex[offerID]
	if !ok {
		return nil, nil, domain.ErrOfferNotFound
	}
	for _, o := range p.Offers {
		if o.OfferID == offerID {
			return p, o, nil
		}
	}
	return nil, nil, domain.ErrOfferNotFound
}

// AddOffer appends an offer to a product that is already in the catalog.
func (c *Catalog) AddOffer(p *domain.Product, o *domain.Offer) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byID[p.ProductID]; !ok {
		return domain.ErrProductNotFound
	}
	p.Offers = append(p.Offers, o)
	c.offerIndex[o.OfferID] = p
	return nil
}

// MoveOffer detaches an offer from its current product and appends it to
// the target product, keeping the offer's identity and fields.
func (c *Catalog) MoveOffer(offerID, toProductID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	to, ok := c.byID[toProductID]
	if !ok {
		return domain.ErrProductNotFound
	}
	from, ok := c.offerIndex[offerID]
	if !ok {
		return domain.ErrOfferNotFound
	}
	if from == to {
		return nil
	}

	for i, o := range from.Offers {
		if o.OfferID != offerID {
			continue
		}
		from.Offers = append(from.Offers[:i:i], from.Offers[i+1:]...)
		to.Offers = append(to.Offers, o)
		c.offerIndex[offerID] = to
		return nil
	}
	return domain.ErrOfferNotFound
}

// Products returns all products in catalog order. The slice is a copy; the
// products are shared.
func (c *Catalog) Products() []*domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]*domain.Product, len(c.products))
	copy(result, c.products)
	return result
}
