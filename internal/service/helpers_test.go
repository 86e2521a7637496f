package service

import (
	"io"
	"log/slog"
	"time"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
	"github.com/efreitasn/goodsexchange/internal/store"
)

const testUser = "current-user"

type testEnv struct {
	ledger     *engine.Ledger
	catalog    *store.Catalog
	categories *domain.CategoryRegistry
	now        time.Time
}

func newTestEnv(balance int64) *testEnv {
	env := &testEnv{
		categories: domain.NewCategoryRegistry(),
		now:        time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	env.catalog = store.NewCatalog(env.categories)
	env.ledger = engine.NewLedger(env.catalog, store.NewDealLog(100), engine.LedgerConfig{
		InitialBalance: balance,
		Policy:         engine.Policy{UserName: testUser},
		Authorizer:     engine.AuthorizerFunc(func(c string) bool { return c == "secret" }),
		Clock:          func() time.Time { return env.now },
	})
	return env
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func offer(id string, side domain.Side, price, qty int64) *domain.Offer {
	return &domain.Offer{
		OfferID:  id,
		Side:     side,
		Owner:    "NotAHamster",
		Price:    price,
		Quantity: qty,
		Active:   true,
		Visible:  true,
	}
}

func product(id, name, category string, offers ...*domain.Offer) *domain.Product {
	return &domain.Product{ProductID: id, Name: name, Category: category, Offers: offers}
}
