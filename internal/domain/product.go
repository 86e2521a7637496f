package domain

import "github.com/shopspring/decimal"

// Product is a catalog entry owning an ordered collection of offers.
type Product struct {
	ProductID string
	Name      string
	Category  string
	Offers    []*Offer
}

// Clone returns a deep copy of the product and its offers.
func (p *Product) Clone() *Product {
	c := &Product{
		ProductID: p.ProductID,
		Name:      p.Name,
		Category:  p.Category,
		Offers:    make([]*Offer, len(p.Offers)),
	}
	for i, o := range p.Offers {
		c.Offers[i] = o.Clone()
	}
	return c
}

// HasPublic reports whether the product has at least one public offer on side.
func (p *Product) HasPublic(side Side) bool {
	for _, o := range p.Offers {
		if o.Side == side && o.IsPublic() {
			return true
		}
	}
	return false
}

// Summary holds price and quantity aggregates over a product's public offers
// of one side. Prices are in cents.
type Summary struct {
	Avg      int64
	Min      int64
	Max      int64
	TotalQty int64
}

// Summary computes the quantity-weighted average, plain min/max price and
// total quantity over the public offers of the given side. When there is no
// public quantity every field is zero.
func (p *Product) Summary(side Side) Summary {
	var s Summary
	weighted := decimal.Zero
	first := true
	for _, o := range p.Offers {
		if o.Side != side || !o.IsPublic() {
			continue
		}
		if first || o.Price < s.Min {
			s.Min = o.Price
		}
		if first || o.Price > s.Max {
			s.Max = o.Price
		}
		first = false
		weighted = weighted.Add(Weighted(o.Price, o.Quantity))
		s.TotalQty += o.Quantity
	}
	if s.TotalQty == 0 {
		return Summary{}
	}
	s.Avg = DivRound(weighted, s.TotalQty)
	return s
}
