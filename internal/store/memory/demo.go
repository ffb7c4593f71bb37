package memory

import (
	"fmt"
	"math/rand/v2"
	"time"

	"butikpos/backend/internal/domain"
)

var (
	demoCategories = []string{"T-Shirts", "Jeans", "Dresses", "Hoodies", "Jackets"}
	demoSizes      = []string{"S", "M", "L", "XL"}
	demoColors     = []string{"Black", "White", "Blue", "Red", "Gray"}
)

// DemoSales generates n sales spread over the 30 days before now. Each sale
// carries 1-5 lines with repeated products merged into one line, and its
// total is the sum of its lines. The same seed always yields the same sales.
func DemoSales(now time.Time, n int, seed uint64) []domain.Sale {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	sales := make([]domain.Sale, 0, n)

	for i := 0; i < n; i++ {
		date := now.AddDate(0, 0, -rng.IntN(30)).Format(domain.DateLayout)
		lineCount := rng.IntN(5) + 1

		items := make([]domain.CartItem, 0, lineCount)
		positions := make(map[string]int, lineCount)
		var total int64

		for j := 0; j < lineCount; j++ {
			productID := fmt.Sprintf("%d", rng.IntN(10)+1)
			qty := rng.IntN(3) + 1
			priceCents := int64(rng.IntN(10000) + 1000)

			if pos, ok := positions[productID]; ok {
				items[pos].Quantity += qty
				total += items[pos].PriceCents * int64(qty)
				continue
			}

			positions[productID] = len(items)
			items = append(items, domain.CartItem{
				Product: domain.Product{
					ID:         productID,
					Name:       "Product " + productID,
					Category:   demoCategories[rng.IntN(len(demoCategories))],
					PriceCents: priceCents,
					Size:       demoSizes[rng.IntN(len(demoSizes))],
					Color:      demoColors[rng.IntN(len(demoColors))],
					ImageURL:   defaultImageURL,
					Stock:      rng.IntN(20) + 5,
				},
				Quantity: qty,
			})
			total += priceCents * int64(qty)
		}

		sale := domain.Sale{
			ID:            fmt.Sprintf("SALE-%d", 1000+i),
			Items:         items,
			TotalCents:    total,
			PaymentMethod: domain.PaymentMethods[rng.IntN(len(domain.PaymentMethods))],
			Date:          date,
		}
		if rng.Float64() > 0.3 {
			name := fmt.Sprintf("Customer %d", i+1)
			sale.CustomerName = &name
		}
		sales = append(sales, sale)
	}
	return sales
}
