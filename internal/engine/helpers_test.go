package engine

import (
	"time"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/store"
)

const testUser = "current-user"

var testNow = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// newTestLedger creates a ledger with a fixed clock and an authorizer that
// accepts the credential "secret".
func newTestLedger(balance int64, policy Policy) (*Ledger, *store.Catalog, *store.DealLog) {
	if policy.UserName == "" {
		policy.UserName = testUser
	}
	catalog := store.NewCatalog(domain.NewCategoryRegistry())
	deals := store.NewDealLog(100)
	l := NewLedger(catalog, deals, LedgerConfig{
		InitialBalance: balance,
		Policy:         policy,
		Authorizer:     AuthorizerFunc(func(c string) bool { return c == "secret" }),
		Clock:          func() time.Time { return testNow },
	})
	return l, catalog, deals
}

// addProduct stores a product with a single offer and returns the offer.
func addProduct(c *store.Catalog, productID, offerID string, side domain.Side, price, qty int64) *domain.Offer {
	o := &domain.Offer{
		OfferID:  offerID,
		Side:     side,
		Owner:    "NotAHamster",
		Price:    price,
		Quantity: qty,
		Active:   true,
		Visible:  true,
	}
	c.AddProduct(&domain.Product{
		ProductID: productID,
		Name:      "Product " + productID,
		Category:  "Test",
		Offers:    []*domain.Offer{o},
	})
	return o
}
