package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/btree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/efreitasn/goodsexchange/internal/domain"
	"github.com/efreitasn/goodsexchange/internal/engine"
)

// Granularity is the period a deal is bucketed into.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// StatsMode selects how deals are grouped within a period.
type StatsMode string

const (
	// StatsModeMarket groups by period and product name.
	StatsModeMarket StatsMode = "market"
	// StatsModeProduct restricts to one product and groups by period only.
	StatsModeProduct StatsMode = "product"
)

// StatsQuery selects and groups deals for the stats table.
type StatsQuery struct {
	Period    Granularity
	Mode      StatsMode
	ProductID string      // required in StatsModeProduct
	Side      domain.Side // "" matches both sides
}

// StatsRow is one group of the stats table. ProductName is empty in
// StatsModeProduct.
type StatsRow struct {
	Period      string
	ProductName string
	TotalQty    int64
	AvgPrice    int64 // cents, quantity-weighted
}

// StatsResult is the stats table. NoData is set when no deal matched the
// query, which is distinct from rows whose quantity happens to be zero.
type StatsResult struct {
	Rows   []StatsRow
	NoData bool
}

// TotalsRow holds lifetime totals for one product and side.
type TotalsRow struct {
	ProductID   string
	ProductName string
	Side        domain.Side
	DealCount   int
	TotalQty    int64
	TotalAmount decimal.Decimal // cents, may exceed int64
	AvgPrice    int64           // cents, quantity-weighted
}

// TotalsResult is the per-product totals table.
type TotalsResult struct {
	Rows   []TotalsRow
	NoData bool
}

// StatsService aggregates the deal history.
type StatsService struct {
	ledger *engine.Ledger
	loc    *time.Location
}

// NewStatsService creates a StatsService. Period keys are computed in loc.
func NewStatsService(ledger *engine.Ledger, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.Local
	}
	return &StatsService{
		ledger: ledger,
		loc:    loc,
	}
}

// Stats validates q and aggregates the current deal history.
func (s *StatsService) Stats(q StatsQuery) (*StatsResult, error) {
	if q.Period == "" {
		q.Period = GranularityDay
	}
	if q.Period != GranularityDay && q.Period != GranularityWeek && q.Period != GranularityMonth {
		return nil, &domain.ValidationError{
			Message: fmt.Sprintf("Unknown period: %s. Must be one of: day, week, month", q.Period),
		}
	}
	if q.Mode == "" {
		q.Mode = StatsModeMarket
	}
	if q.Mode != StatsModeMarket && q.Mode != StatsModeProduct {
		return nil, &domain.ValidationError{Message: "mode must be 'market' or 'product'"}
	}
	if q.Side != "" && !q.Side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be 'ask' or 'bid'"}
	}
	if q.Mode == StatsModeProduct {
		if q.ProductID == "" {
			return nil, &domain.ValidationError{Message: "product_id is required in product mode"}
		}
		if _, err := s.ledger.Product(q.ProductID); err != nil {
			return nil, err
		}
	}

	result := Aggregate(s.ledger.Deals(), q, s.loc)
	return &result, nil
}

// Totals returns per-product, per-side totals over the deal history.
func (s *StatsService) Totals(side domain.Side) (*TotalsResult, error) {
	if side != "" && !side.Valid() {
		return nil, &domain.ValidationError{Message: "side must be 'ask' or 'bid'"}
	}
	result := Totals(s.ledger.Deals(), side)
	return &result, nil
}

// PeriodKey formats t as the bucket key for g: YYYY-MM-DD, YYYY-MM, or
// YYYY-Www where ww = ceil((day of year + weekday of Jan 1) / 7).
func PeriodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityWeek:
		jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
		week := (t.YearDay() + int(jan1.Weekday()) + 6) / 7
		return fmt.Sprintf("%04d-W%02d", t.Year(), week)
	default:
		return t.Format("2006-01-02")
	}
}

type statsGroup struct {
	sortKey  string
	row      StatsRow
	weighted decimal.Decimal
}

// Aggregate buckets deals into periods and computes total quantity and
// weighted average price per group. Rows are ordered by the concatenated
// group key under Russian collation.
func Aggregate(deals []*domain.Deal, q StatsQuery, loc *time.Location) StatsResult {
	if loc == nil {
		loc = time.Local
	}

	col := collate.New(language.Russian)
	groups := btree.NewG(8, func(a, b *statsGroup) bool {
		if c := col.CompareString(a.sortKey, b.sortKey); c != 0 {
			return c < 0
		}
		return a.sortKey < b.sortKey
	})

	for _, d := range deals {
		if q.Side != "" && d.Side != q.Side {
			continue
		}
		if q.Mode == StatsModeProduct && d.ProductID != q.ProductID {
			continue
		}

		row := StatsRow{Period: PeriodKey(d.ExecutedAt.In(loc), q.Period)}
		if q.Mode != StatsModeProduct {
			row.ProductName = d.ProductName
		}
		probe := &statsGroup{sortKey: row.Period + row.ProductName, row: row, weighted: decimal.Zero}

		g, ok := groups.Get(probe)
		if !ok {
			g = probe
			groups.ReplaceOrInsert(g)
		}
		g.row.TotalQty += d.Quantity
		g.weighted = g.weighted.Add(domain.Weighted(d.UnitPrice, d.Quantity))
	}

	if groups.Len() == 0 {
		return StatsResult{Rows: []StatsRow{}, NoData: true}
	}

	rows := make([]StatsRow, 0, groups.Len())
	groups.Ascend(func(g *statsGroup) bool {
		g.row.AvgPrice = domain.DivRound(g.weighted, g.row.TotalQty)
		rows = append(rows, g.row)
		return true
	})
	return StatsResult{Rows: rows}
}

// Totals sums deals per product and side, in order of each pair's first
// deal.
func Totals(deals []*domain.Deal, side domain.Side) TotalsResult {
	index := make(map[string]int)
	rows := []TotalsRow{}
	for _, d := range deals {
		if side != "" && d.Side != side {
			continue
		}
		key := strings.Join([]string{d.ProductID, string(d.Side)}, "/")
		i, ok := index[key]
		if !ok {
			i = len(rows)
			index[key] = i
			rows = append(rows, TotalsRow{
				ProductID:   d.ProductID,
				ProductName: d.ProductName,
				Side:        d.Side,
				TotalAmount: decimal.Zero,
			})
		}
		rows[i].DealCount++
		rows[i].TotalQty += d.Quantity
		rows[i].TotalAmount = rows[i].TotalAmount.Add(domain.Weighted(d.UnitPrice, d.Quantity))
	}

	for i := range rows {
		rows[i].AvgPrice = domain.DivRound(rows[i].TotalAmount, rows[i].TotalQty)
	}
	return TotalsResult{Rows: rows, NoData: len(rows) == 0}
}
