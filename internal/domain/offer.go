package domain

// Side indicates whether an offer is an ask (owner sells) or a bid (owner buys).
type Side string

const (
	SideAsk Side = "ask"
	SideBid Side = "bid"
)

// Valid reports whether s is one of the known sides.
func (s Side) Valid() bool {
	return s == SideAsk || s == SideBid
}

// Offer is a standing, priced willingness to trade one product on one side.
// Offers are never removed; an exhausted offer stays in place as price history.
type Offer struct {
	OfferID  string
	Side     Side
	Owner    string
	Source   string
	Price    int64 // cents
	Quantity int64
	Active   bool
	Visible  bool
}

// IsPublic reports whether the offer is listed and tradable.
func (o *Offer) IsPublic() bool {
	return o.Active && o.Visible && o.Quantity > 0
}

// Clone returns a copy of the offer.
func (o *Offer) Clone() *Offer {
	c := *o
	return &c
}
