package engine

import (
	"sync"
	"time"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/store"
)

// Authorizer is the out-of-band credential check that unlocks
// administrative operations on a ledger.
type Authorizer interface {
	Authorize(credential string) bool
}

// AuthorizerFunc adapts a plain function to the Authorizer interface.
type AuthorizerFunc func(credential string) bool

// Authorize calls f(credential).
func (f AuthorizerFunc) Authorize(credential string) bool {
	return f(credential)
}

// Policy holds listing rules for the acting user.
type Policy struct {
	// UserName is the owner recorded on offers the acting user creates.
	UserName string
	// AllowImplicitProductCreation lets a listing for an unknown product
	// name create that product instead of being rejected.
	AllowImplicitProductCreation bool
	// ImplicitCategory is the category given to implicitly created products.
	ImplicitCategory string
}

// LedgerConfig carries the construction parameters of a Ledger.
type LedgerConfig struct {
	InitialBalance int64 // cents
	Policy         Policy
	Authorizer     Authorizer       // nil disables administrative mode
	Clock          func() time.Time // nil uses time.Now
}

// Ledger is one trading session: the catalog, the acting user's balance and
// the deal history, mutated as a unit.
//
// A single lock covers all three. Every mutation checks all of its
// preconditions before changing anything, so a rejected call leaves the
// ledger exactly as it was. Read accessors return deep copies.
type Ledger struct {
	mu         sync.RWMutex
	catalog    *store.Catalog
	deals      *store.DealLog
	balance    int64
	admin      bool
	policy     Policy
	authorizer Authorizer
	now        func() time.Time
}

// NewLedger creates a Ledger over the given catalog and deal log.
func NewLedger(catalog *store.Catalog, deals *store.DealLog, cfg LedgerConfig) *Ledger {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	balance := cfg.InitialBalance
	if balance < 0 {
		balance = 0
	}
	return &Ledger{
		catalog:    catalog,
		deals:      deals,
		balance:    balance,
		policy:     cfg.Policy,
		authorizer: cfg.Authorizer,
		now:        now,
	}
}

// Balance returns the acting user's balance in cents.
func (l *Ledger) Balance() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balance
}

// Products returns a deep copy of the catalog in catalog order.
func (l *Ledger) Products() []*domain.Product {
	l.mu.RLock()
	defer l.mu.RUnlock()

	products := l.catalog.Products()
	result := make([]*domain.Product, len(products))
	for i, p := range products {
		result[i] = p.Clone()
	}
	return result
}

// Product returns a deep copy of one product.
func (l *Ledger) Product(productID string) (*domain.Product, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	p, err := l.catalog.FindProduct(productID)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

// Deals returns the retained deal history in chronological order. Deals
// are immutable and shared.
func (l *Ledger) Deals() []*domain.Deal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.deals.All()
}

// UserName returns the owner name of the acting user.
func (l *Ledger) UserName() string {
	return l.policy.UserName
}
