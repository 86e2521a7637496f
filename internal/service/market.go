package service

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
)

// maxSuggestions caps the number of search suggestions returned.
const maxSuggestions = 8

// SortKey selects the product list ordering. SortNone keeps catalog order.
type SortKey string

const (
	SortNone          SortKey = ""
	SortName          SortKey = "name"
	SortAveragePrice  SortKey = "averagePrice"
	SortTotalQuantity SortKey = "totalQuantity"
	SortCategory      SortKey = "category"
	SortMinPrice      SortKey = "minPrice"
	SortMaxPrice      SortKey = "maxPrice"
)

var validSortKeys = map[SortKey]bool{
	SortNone:          true,
	SortName:          true,
	SortAveragePrice:  true,
	SortTotalQuantity: true,
	SortCategory:      true,
	SortMinPrice:      true,
	SortMaxPrice:      true,
}

// OfferSortKey selects the ordering of one product's offers.
type OfferSortKey string

const (
	OfferSortPrice    OfferSortKey = "price"
	OfferSortQuantity OfferSortKey = "quantity"
	OfferSortOwner    OfferSortKey = "owner"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// ListQuery filters and orders the product list.
type ListQuery struct {
	Query    string // case-insensitive substring of the product name
	Category string // "" or domain.CategoryAll matches every category
	Side     domain.Side
	Sort     SortKey
	Dir      SortDir
}

// ProductRow is one product of the market list with its summary for the
// queried side.
type ProductRow struct {
	Product *domain.Product
	Summary domain.Summary
}

// ProductDetail is a product with summaries for both sides.
type ProductDetail struct {
	Product *domain.Product
	Ask     domain.Summary
	Bid     domain.Summary
}

// Suggestion is a search completion.
type Suggestion struct {
	ProductID string
	Name      string
}

// MarketService serves the read side of the catalog: the filtered and sorted
// market list, product cards, offer lists, suggestions and categories.
type MarketService struct {
	ledger     *engine.Ledger
	categories *domain.CategoryRegistry
}

// NewMarketService creates a new MarketService with the given dependencies.
func NewMarketService(ledger *engine.Ledger, categories *domain.CategoryRegistry) *MarketService {
	return &MarketService{
		ledger:     ledger,
		categories: categories,
	}
}

// List validates q and returns the matching products.
func (s *MarketService) List(q ListQuery) ([]ProductRow, error) {
	if !q.Side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be 'ask' or 'bid'"}
	}
	if !validSortKeys[q.Sort] {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Unknown sort key: %s. Must be one of: name, averagePrice, totalQuantity, category, minPrice, maxPrice", q.Sort),
		}
	}
	if q.Dir == "" {
		q.Dir = SortAsc
	}
	if q.Dir != SortAsc && q.Dir != SortDesc {
		return nil, &domain.ValidationError{Message: "dir must be 'asc' or 'desc'"}
	}
	return FilterSort(s.ledger.Products(), q), nil
}

// FilterSort selects the products whose name contains q.Query, whose
// category matches q.Category and that have at least one public offer on
// q.Side, then orders them by q.Sort. Text keys use Russian collation.
// Numeric keys use the side's summary. The sort is stable, so ties and
// SortNone keep catalog order.
func FilterSort(products []*domain.Product, q ListQuery) []ProductRow {
	fold := cases.Fold()
	query := fold.String(strings.TrimSpace(q.Query))

	rows := make([]ProductRow, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(fold.String(p.Name), query) {
			continue
		}
		if q.Category != "" && q.Category != domain.CategoryAll && p.Category != q.Category {
			continue
		}
		if !p.HasPublic(q.Side) {
			continue
		}
		rows = append(rows, ProductRow{Product: p, Summary: p.Summary(q.Side)})
	}

	if q.Sort == SortNone {
		return rows
	}

	col := collate.New(language.Russian)
	cmp := func(a, b ProductRow) int {
		switch q.Sort {
		case SortName:
			return col.CompareString(a.Product.Name, b.Product.Name)
		case SortCategory:
			return col.CompareString(a.Product.Category, b.Product.Category)
		case SortAveragePrice:
			return compareInt64(a.Summary.Avg, b.Summary.Avg)
		case SortTotalQuantity:
			return compareInt64(a.Summary.TotalQty, b.Summary.TotalQty)
		case SortMinPrice:
			return compareInt64(a.Summary.Min, b.Summary.Min)
		case SortMaxPrice:
			return compareInt64(a.Summary.Max, b.Summary.Max)
		}
		return 0
	}

	sort.SliceStable(rows, func(i, j int) bool {
		c := cmp(rows[i], rows[j])
		if q.Dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return rows
}

// Product returns one product with its ask and bid summaries.
func (s *MarketService) Product(productID string) (*ProductDetail, error) {
	p, err := s.ledger.Product(productID)
	if err != nil {
		return nil, err
	}
	return &ProductDetail{
		Product: p,
		Ask:     p.Summary(domain.SideAsk),
		Bid:     p.Summary(domain.SideBid),
	}, nil
}

// ProductOffers lists one product's offers on side, ordered by key. Offers
// that are not public are only included for their owner.
func (s *MarketService) ProductOffers(productID string, side domain.Side, key OfferSortKey, dir SortDir) ([]*domain.Offer, error) {
	if !side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be 'ask' or 'bid'"}
	}
	if key == "" {
		key = OfferSortPrice
	}
	if key != OfferSortPrice && key != OfferSortQuantity && key != OfferSortOwner {
		return nil, &domain.ValidationError{Message: "sort must be one of: price, quantity, owner"}
	}
	if dir == "" {
		dir = SortAsc
	}
	if dir != SortAsc && dir != SortDesc {
		return nil, &domain.ValidationError{Message: "dir must be 'asc' or 'desc'"}
	}

	p, err := s.ledger.Product(productID)
	if err != nil {
		return nil, err
	}

	viewer := s.ledger.UserName()
	offers := make([]*domain.Offer, 0, len(p.Offers))
	for _, o := range p.Offers {
		if o.Side == side && (o.IsPublic() || o.Owner == viewer) {
			offers = append(offers, o)
		}
	}

	col := collate.New(language.Russian)
	sort.SliceStable(offers, func(i, j int) bool {
		var c int
		switch key {
		case OfferSortPrice:
			c = compareInt64(offers[i].Price, offers[j].Price)
		case OfferSortQuantity:
			c = compareInt64(offers[i].Quantity, offers[j].Quantity)
		case OfferSortOwner:
			c = col.CompareString(offers[i].Owner, offers[j].Owner)
		}
		if dir == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return offers, nil
}

// Suggestions returns up to eight products whose name starts with query,
// case-insensitively, in catalog order. A blank query yields none.
func (s *MarketService) Suggestions(query string) []Suggestion {
	fold := cases.Fold()
	prefix := fold.String(strings.TrimSpace(query))
	result := []Suggestion{}
	if prefix == "" {
		return result
	}
	for _, p := range s.ledger.Products() {
		if !strings.HasPrefix(fold.String(p.Name), prefix) {
			continue
		}
		result = append(result, Suggestion{ProductID: p.ProductID, Name: p.Name})
		if len(result) == maxSuggestions {
			break
		}
	}
	return result
}

// Categories returns "all" followed by every category in first-seen order.
func (s *MarketService) Categories() []string {
	return s.categories.List()
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
