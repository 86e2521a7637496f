// Package seed builds the initial catalog from a list of
// (name, category, base price) entries.
package seed

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/efreitasn/goodsexchange/internal/domain"
)

// DefaultCategory is used for entries without a category.
const DefaultCategory = "Uncategorized"

// Entry is one seed record.
type Entry struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	BasePrice string `yaml:"base_price"`
}

// tier is one price level listed for every seeded product.
type tier struct {
	factor   decimal.Decimal
	quantity int64
	source   string
}

var (
	tiers = []tier{
		{decimal.NewFromInt(1), 20, "Base price"},
		{decimal.RequireFromString("0.9"), 15, "Discount -10%"},
		{decimal.RequireFromString("1.1"), 10, "Markup +10%"},
	}
	bidFactor      = decimal.RequireFromString("0.95")
	bidQtyFactor   = decimal.RequireFromString("0.7")
	minBidQuantity = int64(5)
)

// Load reads seed entries from a YAML file.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a YAML sequence of entries.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := yaml.NewDecoder(r).Decode(&entries); err != nil {
		if err == io.EOF {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("decode seed entries: %w", err)
	}
	return entries, nil
}

// Products expands entries into products. Every product gets three ask
// tiers (base price with quantity 20, -10% with 15, +10% with 10), each
// paired with a bid at 95% of the tier price for max(5, floor(0.7*qty))
// units. All offers belong to owner.
func Products(entries []Entry, owner string) ([]*domain.Product, error) {
	products := make([]*domain.Product, 0, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("seed entry %d: name is required", i)
		}
		base, err := decimal.NewFromString(strings.TrimSpace(e.BasePrice))
		if err != nil {
			return nil, fmt.Errorf("seed entry %d (%s): incorrect base_price %q: %w", i, name, e.BasePrice, err)
		}
		if !base.IsPositive() {
			return nil, fmt.Errorf("seed entry %d (%s): base_price must be greater than 0", i, name)
		}
		if !domain.FitsInt64(base) {
			return nil, fmt.Errorf("seed entry %d (%s): base_price %q is out of range", i, name, e.BasePrice)
		}
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = DefaultCategory
		}

		p := &domain.Product{
			ProductID: uuid.New().String(),
			Name:      name,
			Category:  category,
			Offers:    make([]*domain.Offer, 0, 2*len(tiers)),
		}
		for _, t := range tiers {
			askPrice, err := domain.DecimalToCents(base.Mul(t.factor))
			if err != nil || !domain.ValidPrice(askPrice) {
				return nil, fmt.Errorf("seed entry %d (%s): base_price %q exceeds the price limit", i, name, e.BasePrice)
			}
			p.Offers = append(p.Offers,
				&domain.Offer{
					OfferID:  uuid.New().String(),
					Side:     domain.SideAsk,
					Owner:    owner,
					Source:   t.source,
					Price:    askPrice,
					Quantity: t.quantity,
					Active:   true,
					Visible:  true,
				},
				&domain.Offer{
					OfferID:  uuid.New().String(),
					Side:     domain.SideBid,
					Owner:    owner,
					Source:   t.source + " (bid)",
					Price:    domain.ScaleCents(askPrice, bidFactor),
					Quantity: bidQuantity(t.quantity),
					Active:   true,
					Visible:  true,
				},
			)
		}
		products = append(products, p)
	}
	return products, nil
}

func bidQuantity(askQty int64) int64 {
	q := decimal.NewFromInt(askQty).Mul(bidQtyFactor).Floor().IntPart()
	if q < minBidQuantity {
		return minBidQuantity
	}
	return q
}
