package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"butikpos/backend/internal/analytics"
	"butikpos/backend/internal/cache"
	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/ledger"
	"butikpos/backend/internal/money"
	"butikpos/backend/internal/store"
	"butikpos/backend/internal/xid"
)

const (
	dashboardDays      = 30
	recentSalesOnBoard = 5
)

type actorContextKey struct{}

func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorContextKey{}, actor)
}

func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorContextKey{}).(domain.Actor)
	return actor, ok
}

type Options struct {
	TaxRatePercent decimal.Decimal
	Location       *time.Location
	Cache          cache.SummaryCache
	CacheTTL       time.Duration
	Now            func() time.Time
}

type Service struct {
	ledger   *ledger.Ledger
	catalog  store.Catalog
	cache    cache.SummaryCache
	cacheTTL time.Duration
	taxRate  decimal.Decimal
	loc      *time.Location
	now      func() time.Time
}

func New(l *ledger.Ledger, catalog store.Catalog, opts Options) *Service {
	if opts.Cache == nil {
		opts.Cache = cache.NoopSummaryCache{}
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Minute
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.TaxRatePercent.IsNegative() {
		opts.TaxRatePercent = decimal.Zero
	}

	return &Service{
		ledger:   l,
		catalog:  catalog,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		taxRate:  opts.TaxRatePercent,
		loc:      opts.Location,
		now:      opts.Now,
	}
}

func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	category := strings.TrimSpace(filter.Category)
	if query == "" && category == "" {
		return products, nil
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category != "" && p.Category != category {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// Checkout prices the cart against the catalog, adds tax and appends the
// resulting sale to the ledger.
func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.CheckoutResponse, error) {
	req.PaymentMethod = strings.TrimSpace(req.PaymentMethod)
	if req.PaymentMethod == "" {
		req.PaymentMethod = domain.PaymentCash
	}
	if !isSupportedPaymentMethod(req.PaymentMethod) {
		return domain.CheckoutResponse{}, fmt.Errorf("%w: unsupported payment method %q", store.ErrInvalidTransaction, req.PaymentMethod)
	}

	for _, line := range req.CartItems {
		if line.Qty > ledger.MaxQuantity {
			return domain.CheckoutResponse{}, fmt.Errorf("%w: quantity for %s exceeds %d", store.ErrInvalidTransaction, line.ProductID, ledger.MaxQuantity)
		}
	}
	normalized := normalizeItems(req.CartItems)
	if len(normalized) == 0 {
		return domain.CheckoutResponse{}, fmt.Errorf("%w: cart is empty", store.ErrInvalidTransaction)
	}

	ids := make([]string, 0, len(normalized))
	for _, item := range normalized {
		ids = append(ids, item.ProductID)
	}
	products, err := s.catalog.GetProductsByIDs(ctx, ids)
	if err != nil {
		return domain.CheckoutResponse{}, err
	}

	items := make([]domain.CartItem, 0, len(normalized))
	subtotal := int64(0)
	itemCount := 0
	for _, line := range normalized {
		product, exists := products[line.ProductID]
		if !exists {
			return domain.CheckoutResponse{}, fmt.Errorf("%w: unknown product %s", store.ErrInvalidTransaction, line.ProductID)
		}
		item := domain.CartItem{Product: product, Quantity: line.Qty}
		items = append(items, item)
		subtotal += item.LineTotalCents()
		itemCount += line.Qty
	}

	taxCents := money.ApplyRate(subtotal, s.taxRate)
	sale := domain.Sale{
		ID:            xid.New("sale"),
		Items:         items,
		TotalCents:    subtotal + taxCents,
		PaymentMethod: req.PaymentMethod,
		Date:          analytics.Today(s.now(), s.loc),
		CustomerName:  normalizeCustomerName(req.CustomerName),
	}

	if err := s.ledger.Append(sale); err != nil {
		return domain.CheckoutResponse{}, err
	}
	log.Printf("[service] sale recorded id=%s total=%s items=%d", sale.ID, money.Format(sale.TotalCents), itemCount)

	return domain.CheckoutResponse{
		Sale:          sale,
		SubtotalCents: subtotal,
		TaxCents:      taxCents,
		ItemCount:     itemCount,
	}, nil
}

// RecordSale appends an already priced sale. An empty id is assigned.
func (s *Service) RecordSale(_ context.Context, sale domain.Sale) (domain.Sale, error) {
	if strings.TrimSpace(sale.ID) == "" {
		sale.ID = xid.New("sale")
	}
	sale.PaymentMethod = strings.TrimSpace(sale.PaymentMethod)
	if !isSupportedPaymentMethod(sale.PaymentMethod) {
		return domain.Sale{}, fmt.Errorf("%w: unsupported payment method %q", ledger.ErrInvalidSale, sale.PaymentMethod)
	}
	sale.CustomerName = normalizeCustomerName(sale.CustomerName)

	if err := s.ledger.Append(sale); err != nil {
		return domain.Sale{}, err
	}
	return sale.Clone(), nil
}

// Summary validates the query, then aggregates the current ledger snapshot.
func (s *Service) Summary(ctx context.Context, query domain.SummaryQuery) (domain.SummaryResponse, error) {
	rng, err := s.resolveRange(query)
	if err != nil {
		return domain.SummaryResponse{}, err
	}

	summary := s.summarize(ctx, rng)
	resp := domain.SummaryResponse{Label: rng.Label(), Summary: summary}
	if rng.Bounded() {
		resp.Start = rng.Start.Format(domain.DateLayout)
		resp.End = rng.End.Format(domain.DateLayout)
	}
	return resp, nil
}

func (s *Service) Dashboard(ctx context.Context) (domain.Dashboard, error) {
	rng := analytics.LastDays(s.now(), s.loc, dashboardDays)
	summary := s.summarize(ctx, rng)

	board := domain.Dashboard{
		Start:       rng.Start.Format(domain.DateLayout),
		End:         rng.End.Format(domain.DateLayout),
		Summary:     summary,
		RecentSales: s.recent(recentSalesOnBoard),
	}
	if len(summary.SalesByCategory) > 0 {
		board.TopCategory = summary.SalesByCategory[0].Category
	}
	return board, nil
}

func (s *Service) RecentSales(_ context.Context, limit int) ([]domain.Sale, error) {
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	return s.recent(limit), nil
}

// recent orders sales newest date first; within a date, later appends come first.
func (s *Service) recent(limit int) []domain.Sale {
	sales := s.ledger.Snapshot()
	slices.Reverse(sales)
	slices.SortStableFunc(sales, func(a, b domain.Sale) int {
		return strings.Compare(b.Date, a.Date)
	})
	if len(sales) > limit {
		sales = sales[:limit]
	}
	return sales
}

func (s *Service) resolveRange(query domain.SummaryQuery) (domain.DateRange, error) {
	if query.PresetDays != 0 {
		if !analytics.IsPreset(query.PresetDays) {
			return domain.DateRange{}, fmt.Errorf("%w: preset must be one of %v days", analytics.ErrInvalidRange, analytics.PresetDays)
		}
		return analytics.LastDays(s.now(), s.loc, query.PresetDays), nil
	}
	return analytics.ParseRange(query.Start, query.End)
}

func (s *Service) summarize(ctx context.Context, rng domain.DateRange) domain.SalesSummary {
	ledgerID := s.ledger.ID()
	key := cache.SummaryKey(ledgerID, s.ledger.Version(), rng)
	if cached, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return *cached
	} else if err != nil {
		log.Printf("[service] WARN: summary cache read failed key=%s: %v", key, err)
	}

	sales, version := s.ledger.SnapshotWithVersion()
	summary := analytics.Summarize(sales, rng)

	if err := s.cache.Set(ctx, cache.SummaryKey(ledgerID, version, rng), &summary, s.cacheTTL); err != nil {
		log.Printf("[service] WARN: summary cache write failed: %v", err)
	}
	return summary
}

func normalizeItems(items []domain.CheckoutLine) []domain.CheckoutLine {
	aggregated := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		id := strings.TrimSpace(item.ProductID)
		if id == "" || item.Qty < 1 {
			continue
		}
		if _, seen := aggregated[id]; !seen {
			order = append(order, id)
		}
		aggregated[id] += item.Qty
	}

	result := make([]domain.CheckoutLine, 0, len(order))
	for _, id := range order {
		result = append(result, domain.CheckoutLine{ProductID: id, Qty: aggregated[id]})
	}
	return result
}

func normalizeCustomerName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func isSupportedPaymentMethod(method string) bool {
	return slices.Contains(domain.PaymentMethods, method)
}

// IsValidationError reports whether err was caused by caller input.
func IsValidationError(err error) bool {
	return errors.Is(err, store.ErrInvalidTransaction) ||
		errors.Is(err, ledger.ErrInvalidSale) ||
		errors.Is(err, analytics.ErrInvalidRange)
}
