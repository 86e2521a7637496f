package domain

import "time"

// Deal is the immutable record of one executed trade. UnitPrice is the
// offer's listed price at execution time, not the settled amount.
type Deal struct {
	DealID      string
	OfferID     string
	ProductID   string
	ProductName string
	Side        Side
	Quantity    int64
	UnitPrice   int64 // cents
	ExecutedAt  time.Time
}

// Amount returns the settled amount of the deal in cents. A deal is only
// recorded when its amount fits in int64.
func (d *Deal) Amount() int64 {
	return d.UnitPrice * d.Quantity
}
