// Package analytics folds a set of sales into the reporting views shown on
// the dashboard and the sales summary page.
package analytics

import (
	"slices"
	"strings"

	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/money"
)

// TopItemsLimit caps the number of rows in SalesSummary.TopSellingItems.
const TopItemsLimit = 5

// Summarize filters sales by rng and aggregates them. Revenue totals use the
// stored sale total; item and category revenue use price × quantity of each
// line, so the two bases may differ. It never fails: empty input yields zero
// scalars and empty slices.
func Summarize(sales []domain.Sale, rng domain.DateRange) domain.SalesSummary {
	filtered := Filter(sales, rng)

	summary := domain.SalesSummary{
		TopSellingItems: make([]domain.TopSellingItem, 0, TopItemsLimit),
		SalesByCategory: make([]domain.CategorySales, 0),
		SalesByDate:     make([]domain.DateSales, 0),
	}

	items := newGroup[domain.TopSellingItem]()
	categories := newGroup[domain.CategorySales]()
	dates := newGroup[domain.DateSales]()

	for _, sale := range filtered {
		summary.TotalSales++
		summary.TotalRevenueCents += sale.TotalCents

		day := dates.get(sale.Date, func() domain.DateSales {
			return domain.DateSales{Date: sale.Date}
		})
		day.Count++
		day.RevenueCents += sale.TotalCents

		for _, item := range sale.Items {
			lineRevenue := item.LineTotalCents()

			top := items.get(item.ID, func() domain.TopSellingItem {
				return domain.TopSellingItem{ProductID: item.ID, Name: item.Name}
			})
			top.Quantity += item.Quantity
			top.RevenueCents += lineRevenue

			cat := categories.get(item.Category, func() domain.CategorySales {
				return domain.CategorySales{Category: item.Category}
			})
			cat.Count += item.Quantity
			cat.RevenueCents += lineRevenue
		}
	}

	summary.AverageOrderValue = money.Average(summary.TotalRevenueCents, summary.TotalSales)

	// Stable sorts keep first-seen order among ties.
	topItems := items.values()
	slices.SortStableFunc(topItems, func(a, b domain.TopSellingItem) int {
		return b.Quantity - a.Quantity
	})
	if len(topItems) > TopItemsLimit {
		topItems = topItems[:TopItemsLimit]
	}
	summary.TopSellingItems = append(summary.TopSellingItems, topItems...)

	byCategory := categories.values()
	slices.SortStableFunc(byCategory, func(a, b domain.CategorySales) int {
		return compareInt64(b.RevenueCents, a.RevenueCents)
	})
	summary.SalesByCategory = append(summary.SalesByCategory, byCategory...)

	byDate := dates.values()
	slices.SortStableFunc(byDate, func(a, b domain.DateSales) int {
		return strings.Compare(a.Date, b.Date)
	})
	summary.SalesByDate = append(summary.SalesByDate, byDate...)

	return summary
}

// Filter returns the sales whose date lies in the closed interval of rng.
// When either bound is missing every sale is returned. A reversed range
// matches nothing.
func Filter(sales []domain.Sale, rng domain.DateRange) []domain.Sale {
	if !rng.Bounded() {
		return sales
	}
	start := rng.Start.Format(domain.DateLayout)
	end := rng.End.Format(domain.DateLayout)

	out := make([]domain.Sale, 0, len(sales))
	for _, sale := range sales {
		if sale.Date < start || sale.Date > end {
			continue
		}
		out = append(out, sale)
	}
	return out
}

func compareInt64(a int64, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// group accumulates rows by key and remembers first-seen key order, so the
// result never depends on map iteration.
type group[T any] struct {
	index map[string]int
	rows  []T
}

func newGroup[T any]() *group[T] {
	return &group[T]{index: make(map[string]int)}
}

func (g *group[T]) get(key string, init func() T) *T {
	if i, ok := g.index[key]; ok {
		return &g.rows[i]
	}
	g.index[key] = len(g.rows)
	g.rows = append(g.rows, init())
	return &g.rows[len(g.rows)-1]
}

func (g *group[T]) values() []T {
	out := make([]T, len(g.rows))
	copy(out, g.rows)
	return out
}
