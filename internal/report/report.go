// Package report renders a computed SalesSummary for export. Values are taken
// from the summary as-is; only percent-of-total columns are derived.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"

	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/money"
)

// CSV writes the summary as section,key,value rows followed by one block per
// breakdown table.
func CSV(summary domain.SalesSummary, rng domain.DateRange) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	rows := [][]string{
		{"section", "key", "value"},
		{"summary", "range", rng.Label()},
		{"summary", "total_sales", strconv.Itoa(summary.TotalSales)},
		{"summary", "total_revenue", money.Format(summary.TotalRevenueCents)},
		{"summary", "average_order_value", summary.AverageOrderValue.StringFixed(2)},
		{},
		{"top_items", "product_id", "name", "quantity", "revenue", "percent_of_total"},
	}
	for _, item := range summary.TopSellingItems {
		rows = append(rows, []string{
			"top_items",
			item.ProductID,
			item.Name,
			strconv.Itoa(item.Quantity),
			money.Format(item.RevenueCents),
			money.Share(item.RevenueCents, summary.TotalRevenueCents).StringFixed(1),
		})
	}

	rows = append(rows, []string{}, []string{"categories", "category", "sales", "revenue", "percent_of_total"})
	for _, cat := range summary.SalesByCategory {
		rows = append(rows, []string{
			"categories",
			cat.Category,
			strconv.Itoa(cat.Count),
			money.Format(cat.RevenueCents),
			money.Share(cat.RevenueCents, summary.TotalRevenueCents).StringFixed(1),
		})
	}

	rows = append(rows, []string{}, []string{"dates", "date", "sales", "revenue"})
	for _, day := range summary.SalesByDate {
		rows = append(rows, []string{"dates", day.Date, strconv.Itoa(day.Count), money.Format(day.RevenueCents)})
	}

	if err := w.WriteAll(rows); err != nil {
		return "", fmt.Errorf("write report csv: %w", err)
	}
	return buf.String(), nil
}

type htmlRow struct {
	Label   string
	Count   int
	Revenue string
	Share   string
}

type htmlView struct {
	Range        string
	TotalSales   int
	TotalRevenue string
	Average      string
	Items        []htmlRow
	Categories   []htmlRow
	Dates        []htmlRow
}

var summaryHTMLTmpl = template.Must(template.New("sales-summary").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Sales Report {{.Range}}</title>
  <style>
    body { font-family: sans-serif; margin: 24px; }
    table { width: 100%; border-collapse: collapse; margin-top: 8px; }
    th, td { border: 1px solid #ddd; padding: 6px; font-size: 13px; }
    td.num { text-align: right; }
    h2, h3 { margin-bottom: 4px; }
  </style>
</head>
<body>
  <h2>Sales Report</h2>
  <p>Period: {{.Range}}</p>
  <p>Total Sales: {{.TotalSales}} | Total Revenue: {{.TotalRevenue}} | Average Order Value: {{.Average}}</p>

  <h3>Top Selling Items</h3>
  <table>
    <thead><tr><th>Product</th><th>Quantity</th><th>Revenue</th><th>% of Total</th></tr></thead>
    <tbody>{{range .Items}}<tr><td>{{.Label}}</td><td class="num">{{.Count}}</td><td class="num">{{.Revenue}}</td><td class="num">{{.Share}}%</td></tr>{{end}}</tbody>
  </table>

  <h3>Sales by Category</h3>
  <table>
    <thead><tr><th>Category</th><th>Sales</th><th>Revenue</th><th>% of Total</th></tr></thead>
    <tbody>{{range .Categories}}<tr><td>{{.Label}}</td><td class="num">{{.Count}}</td><td class="num">{{.Revenue}}</td><td class="num">{{.Share}}%</td></tr>{{end}}</tbody>
  </table>

  <h3>Sales by Date</h3>
  <table>
    <thead><tr><th>Date</th><th>Sales</th><th>Revenue</th></tr></thead>
    <tbody>{{range .Dates}}<tr><td>{{.Label}}</td><td class="num">{{.Count}}</td><td class="num">{{.Revenue}}</td></tr>{{end}}</tbody>
  </table>
</body>
</html>
`))

// PrintableHTML renders the summary as a standalone page suitable for the
// browser's print-to-PDF.
func PrintableHTML(summary domain.SalesSummary, rng domain.DateRange) (string, error) {
	view := htmlView{
		Range:        rng.Label(),
		TotalSales:   summary.TotalSales,
		TotalRevenue: money.Format(summary.TotalRevenueCents),
		Average:      summary.AverageOrderValue.StringFixed(2),
	}
	for _, item := range summary.TopSellingItems {
		view.Items = append(view.Items, htmlRow{
			Label:   item.Name,
			Count:   item.Quantity,
			Revenue: money.Format(item.RevenueCents),
			Share:   money.Share(item.RevenueCents, summary.TotalRevenueCents).StringFixed(1),
		})
	}
	for _, cat := range summary.SalesByCategory {
		view.Categories = append(view.Categories, htmlRow{
			Label:   cat.Category,
			Count:   cat.Count,
			Revenue: money.Format(cat.RevenueCents),
			Share:   money.Share(cat.RevenueCents, summary.TotalRevenueCents).StringFixed(1),
		})
	}
	for _, day := range summary.SalesByDate {
		view.Dates = append(view.Dates, htmlRow{Label: day.Date, Count: day.Count, Revenue: money.Format(day.RevenueCents)})
	}

	var buf bytes.Buffer
	if err := summaryHTMLTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}
