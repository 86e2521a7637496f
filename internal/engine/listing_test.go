package engine

import (
	"errors"
	"testing"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

func TestCreateOffer_ExistingProductByID(t *testing.T) {
	l, _, _ := newTestLedger(0, Policy{})
	addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)

	o, err := l.CreateOffer(NewOffer{ProductID: "p1", Side: domain.SideBid, Price: 250, Quantity: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Owner != testUser || !o.Active || !o.Visible || o.Price != 250 || o.Quantity != 4 {
		t.Errorf("offer = %+v", o)
	}

	p, _ := l.Product("p1")
	if len(p.Offers) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(p.Offers))
	}
}

func TestCreateOffer_ExistingProductByName(t *testing.T) {
	l, _, _ := newTestLedger(0, Policy{})
	addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)

	if _, err := l.CreateOffer(NewOffer{ProductName: "  product P1 ", Side: domain.SideAsk, Price: 1, Quantity: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p, _ := l.Product("p1")
	if len(p.Offers) != 2 {
		t.Fatalf("expected listing on p1, got %d offers", len(p.Offers))
	}
}

func TestCreateOffer_UnknownProduct_Policy(t *testing.T) {
	strict, _, _ := newTestLedger(0, Policy{})
	_, err := strict.CreateOffer(NewOffer{ProductName: "Уголь", Side: domain.SideAsk, Price: 100, Quantity: 1})
	if !errors.Is(err, domain.ErrInvalidListing) {
		t.Fatalf("expected ErrInvalidListing, got %v", err)
	}
	if n := len(strict.Products()); n != 0 {
		t.Fatalf("expected no product created, got %d", n)
	}

	lenient, _, _ := newTestLedger(0, Policy{AllowImplicitProductCreation: true, ImplicitCategory: "User listings"})
	o, err := lenient.CreateOffer(NewOffer{ProductName: "Уголь", Side: domain.SideAsk, Price: 100, Quantity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	products := lenient.Products()
	if len(products) != 1 {
		t.Fatalf("expected 1 product, got %d", len(products))
	}
	p := products[0]
	if p.Name != "Уголь" || p.Category != "User listings" {
		t.Errorf("product = %+v", p)
	}
	if len(p.Offers) != 1 || p.Offers[0].OfferID != o.OfferID {
		t.Errorf("expected created offer on new product")
	}
	if _, _, err := lenient.catalog.FindOffer(o.OfferID); err != nil {
		t.Errorf("new offer not indexed: %v", err)
	}
}

func TestCreateOffer_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  NewOffer
	}{
		{"zero price", NewOffer{ProductID: "p1", Side: domain.SideAsk, Price: 0, Quantity: 1}},
		{"negative price", NewOffer{ProductID: "p1", Side: domain.SideAsk, Price: -1, Quantity: 1}},
		{"zero quantity", NewOffer{ProductID: "p1", Side: domain.SideAsk, Price: 1, Quantity: 0}},
		{"bad side", NewOffer{ProductID: "p1", Side: "sell", Price: 1, Quantity: 1}},
		{"unknown product id", NewOffer{ProductID: "nope", Side: domain.SideAsk, Price: 1, Quantity: 1}},
		{"blank name", NewOffer{ProductName: "  ", Side: domain.SideAsk, Price: 1, Quantity: 1}},
		{"price above limit", NewOffer{ProductID: "p1", Side: domain.SideBid, Price: domain.MaxPrice + 1, Quantity: 1}},
		{"quantity above limit", NewOffer{ProductID: "p1", Side: domain.SideBid, Price: 1, Quantity: domain.MaxQuantity + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _, _ := newTestLedger(0, Policy{AllowImplicitProductCreation: true})
			addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)
			if _, err := l.CreateOffer(tt.req); !errors.Is(err, domain.ErrInvalidListing) {
				t.Fatalf("expected ErrInvalidListing, got %v", err)
			}
		})
	}
}

func TestOwnerOperations(t *testing.T) {
	l, _, deals := newTestLedger(1000, Policy{})
	addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)
	addProduct(l.catalog, "p2", "o2", domain.SideAsk, 100, 1)

	own, err := l.CreateOffer(NewOffer{ProductID: "p1", Side: domain.SideAsk, Price: 500, Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	o, err := l.SetOfferVisible(own.OfferID, false)
	if err != nil || o.Visible {
		t.Fatalf("SetOfferVisible: %+v, %v", o, err)
	}
	if _, err := l.ExecuteTrade(own.OfferID, 1); !errors.Is(err, domain.ErrOfferUnavailable) {
		t.Fatalf("hidden offer should be unavailable, got %v", err)
	}

	if _, err := l.SetOfferVisible(own.OfferID, true); err != nil {
		t.Fatal(err)
	}
	if o, err = l.SetOfferActive(own.OfferID, false); err != nil || o.Active {
		t.Fatalf("SetOfferActive: %+v, %v", o, err)
	}
	if _, err := l.SetOfferActive(own.OfferID, true); err != nil {
		t.Fatal(err)
	}

	if o, err = l.EditOwnOffer(own.OfferID, 750, 2); err != nil || o.Price != 750 || o.Quantity != 2 {
		t.Fatalf("EditOwnOffer: %+v, %v", o, err)
	}

	if _, err := l.MoveOwnOffer(own.OfferID, "p2"); err != nil {
		t.Fatalf("MoveOwnOffer: %v", err)
	}
	p2, _ := l.Product("p2")
	if len(p2.Offers) != 2 || p2.Offers[1].OfferID != own.OfferID || p2.Offers[1].Price != 750 {
		t.Fatalf("expected moved offer on p2 with fields intact, got %+v", p2.Offers)
	}

	if deals.Len() != 0 || l.Balance() != 1000 {
		t.Fatal("listing management must not record deals or touch the balance")
	}
}

func TestUpdateOwnOffer_Errors(t *testing.T) {
	l, _, _ := newTestLedger(0, Policy{})
	addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)
	own, _ := l.CreateOffer(NewOffer{ProductID: "p1", Side: domain.SideAsk, Price: 1, Quantity: 1})

	if _, err := l.SetOfferActive("o1", false); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if _, err := l.SetOfferActive("nope", false); !errors.Is(err, domain.ErrOfferNotFound) {
		t.Errorf("expected ErrOfferNotFound, got %v", err)
	}
	if _, err := l.EditOwnOffer(own.OfferID, -1, 1); !errors.Is(err, domain.ErrInvalidListing) {
		t.Errorf("expected ErrInvalidListing, got %v", err)
	}
	if _, err := l.MoveOwnOffer(own.OfferID, "nope"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}

	// A rejected patch applies nothing, even the valid parts.
	active := false
	neg := int64(-5)
	if _, err := l.UpdateOwnOffer(own.OfferID, OfferPatch{Active: &active, Quantity: &neg}); err == nil {
		t.Fatal("expected error")
	}
	p, _ := l.Product("p1")
	if !p.Offers[1].Active {
		t.Fatal("rejected patch partially applied")
	}
}

func TestUpdateOwnOffer_RejectsValuesAboveLimits(t *testing.T) {
	l, _, _ := newTestLedger(0, Policy{})
	addProduct(l.catalog, "p1", "o1", domain.SideAsk, 100, 1)
	own, err := l.CreateOffer(NewOffer{ProductID: "p1", Side: domain.SideBid, Price: 500, Quantity: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := l.EditOwnOffer(own.OfferID, domain.MaxPrice+1, 1); !errors.Is(err, domain.ErrInvalidListing) {
		t.Errorf("price above limit: got %v, want ErrInvalidListing", err)
	}
	if _, err := l.EditOwnOffer(own.OfferID, 1, domain.MaxQuantity+1); !errors.Is(err, domain.ErrInvalidListing) {
		t.Errorf("quantity above limit: got %v, want ErrInvalidListing", err)
	}
	o, err := l.EditOwnOffer(own.OfferID, domain.MaxPrice, domain.MaxQuantity)
	if err != nil || o.Price != domain.MaxPrice || o.Quantity != domain.MaxQuantity {
		t.Fatalf("edit at limits: %+v, %v", o, err)
	}
}
