package report

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"butikpos/backend/internal/domain"
)

func sampleSummary() domain.SalesSummary {
	return domain.SalesSummary{
		TotalSales:        2,
		TotalRevenueCents: 3745,
		AverageOrderValue: decimal.RequireFromString("18.725"),
		TopSellingItems: []domain.TopSellingItem{
			{ProductID: "p1", Name: "Tee, Classic", Quantity: 3, RevenueCents: 3000},
			{ProductID: "p2", Name: "<b>Jeans</b>", Quantity: 1, RevenueCents: 500},
		},
		SalesByCategory: []domain.CategorySales{
			{Category: "Jeans", Count: 1, RevenueCents: 1605},
			{Category: "T-Shirts", Count: 2, RevenueCents: 3745},
		},
		SalesByDate: []domain.DateSales{{Date: "2024-01-05", Count: 2, RevenueCents: 3745}},
	}
}

func TestCSVAllTime(t *testing.T) {
	out, err := CSV(sampleSummary(), domain.DateRange{})
	require.NoError(t, err)

	r := csv.NewReader(strings.NewReader(out))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"summary", "range", "All time"}, records[1])
	assert.Equal(t, []string{"summary", "total_revenue", "37.45"}, records[3])
	assert.Equal(t, []string{"summary", "average_order_value", "18.73"}, records[4])
	assert.Contains(t, records, []string{"top_items", "p1", "Tee, Classic", "3", "30.00", "80.1"})
	assert.Contains(t, records, []string{"categories", "Jeans", "1", "16.05", "42.9"})
	assert.Contains(t, records, []string{"dates", "2024-01-05", "2", "37.45"})
}

func TestCSVRangeLabelAndZeroRevenue(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	summary := domain.SalesSummary{
		TopSellingItems: []domain.TopSellingItem{{ProductID: "free", Name: "Sample", Quantity: 1}},
	}

	out, err := CSV(summary, domain.DateRange{Start: &start, End: &end})
	require.NoError(t, err)
	assert.Contains(t, out, "summary,range,2024-01-01 to 2024-01-31\n")
	assert.Contains(t, out, "top_items,free,Sample,1,0.00,0.0\n")
}

func TestPrintableHTMLEscapesAndLabels(t *testing.T) {
	out, err := PrintableHTML(sampleSummary(), domain.DateRange{})
	require.NoError(t, err)

	assert.Contains(t, out, "Period: All time")
	assert.Contains(t, out, "Total Revenue: 37.45")
	assert.Contains(t, out, "&lt;b&gt;Jeans&lt;/b&gt;")
	assert.NotContains(t, out, "<b>Jeans</b>")
	assert.Contains(t, out, "13.4%")
}
