package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for sale dates and report ranges.
const DateLayout = "2006-01-02"

type Product struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	PriceCents int64  `json:"price_cents"`
	Size       string `json:"size"`
	Color      string `json:"color"`
	ImageURL   string `json:"image_url"`
	Stock      int    `json:"stock"`
}

// ProductFilter narrows a catalog listing. Query matches product names
// case-insensitively; Category must match exactly. Empty fields match all.
type ProductFilter struct {
	Query    string
	Category string
}

// CartItem is a product snapshot plus the quantity sold on one line.
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// LineTotalCents is price × quantity for the line.
func (c CartItem) LineTotalCents() int64 {
	return c.PriceCents * int64(c.Quantity)
}

type Sale struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	TotalCents    int64      `json:"total_cents"`
	PaymentMethod string     `json:"payment_method"`
	Date          string     `json:"date"`
	CustomerName  *string    `json:"customer_name,omitempty"`
}

// Clone returns a copy that shares no mutable state with s.
func (s Sale) Clone() Sale {
	dup := s
	dup.Items = make([]CartItem, len(s.Items))
	copy(dup.Items, s.Items)
	if s.CustomerName != nil {
		name := *s.CustomerName
		dup.CustomerName = &name
	}
	return dup
}

const (
	PaymentCash          = "Cash"
	PaymentCreditCard    = "Credit Card"
	PaymentDebitCard     = "Debit Card"
	PaymentMobilePayment = "Mobile Payment"
)

// PaymentMethods lists the accepted payment methods in display order.
var PaymentMethods = []string{PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentMobilePayment}

// DateRange is an inclusive calendar-date window. A nil bound means the
// range is open and no filtering is applied.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Bounded reports whether both ends are present.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Label renders the range for report headers.
func (r DateRange) Label() string {
	if !r.Bounded() {
		return "All time"
	}
	return r.Start.Format(DateLayout) + " to " + r.End.Format(DateLayout)
}

type TopSellingItem struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	RevenueCents int64  `json:"revenue_cents"`
}

type CategorySales struct {
	Category     string `json:"category"`
	Count        int    `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type DateSales struct {
	Date         string `json:"date"`
	Count        int    `json:"count"`
	RevenueCents int64  `json:"revenue_cents"`
}

type SalesSummary struct {
	TotalSales        int              `json:"total_sales"`
	TotalRevenueCents int64            `json:"total_revenue_cents"`
	AverageOrderValue decimal.Decimal  `json:"average_order_value"`
	TopSellingItems   []TopSellingItem `json:"top_selling_items"`
	SalesByCategory   []CategorySales  `json:"sales_by_category"`
	SalesByDate       []DateSales      `json:"sales_by_date"`
}

type SummaryQuery struct {
	Start      string `json:"start"`
	End        string `json:"end"`
	PresetDays int    `json:"preset_days"`
}

type SummaryResponse struct {
	Start   string       `json:"start,omitempty"`
	End     string       `json:"end,omitempty"`
	Label   string       `json:"label"`
	Summary SalesSummary `json:"summary"`
}

type CheckoutLine struct {
	ProductID string `json:"product_id"`
	Qty       int    `json:"qty"`
}

type CheckoutRequest struct {
	PaymentMethod string         `json:"payment_method"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	CartItems     []CheckoutLine `json:"cart_items"`
}

type CheckoutResponse struct {
	Sale          Sale  `json:"sale"`
	SubtotalCents int64 `json:"subtotal_cents"`
	TaxCents      int64 `json:"tax_cents"`
	ItemCount     int   `json:"item_count"`
}

type Dashboard struct {
	Start       string       `json:"start"`
	End         string       `json:"end"`
	Summary     SalesSummary `json:"summary"`
	TopCategory string       `json:"top_category,omitempty"`
	RecentSales []Sale       `json:"recent_sales"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	Role        string `json:"role"`
	ExpiresAt   string `json:"expires_at"`
}

type Actor struct {
	Username string
	Role     string
}

// UserAccount is an internal persistence model for auth credentials.
type UserAccount struct {
	Username  string
	Password  string
	Role      string
	Active    bool
	CreatedAt time.Time
}

const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

type CashierCreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CashierUser struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
