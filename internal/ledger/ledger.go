// Package ledger holds the append-only log of completed sales.
//
// Appends are serialized behind a write lock and become visible to readers
// atomically. Snapshots are deep copies, so a caller can iterate them while
// new sales keep arriving.
package ledger

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"butikpos/backend/internal/domain"
	"butikpos/backend/internal/xid"
)

// Upper bounds on sale amounts. They keep line totals and summary sums far
// from int64 overflow.
const (
	MaxQuantity   = 10_000
	MaxPriceCents = 10_000_000_000
	MaxTotalCents = 1_000_000_000_000
	MaxLineItems  = 500
)

var (
	ErrInvalidSale   = errors.New("invalid sale")
	ErrDuplicateSale = errors.New("duplicate sale id")
)

// DuplicateSaleError is returned when a sale id has already been appended.
type DuplicateSaleError struct {
	SaleID string
}

func (e *DuplicateSaleError) Error() string {
	return fmt.Sprintf("sale %s already recorded", e.SaleID)
}

func (e *DuplicateSaleError) Is(target error) bool {
	return target == ErrDuplicateSale
}

type Ledger struct {
	id      string
	mu      sync.RWMutex
	sales   []domain.Sale
	ids     map[string]struct{}
	version uint64
}

func New() *Ledger {
	return &Ledger{
		id:    xid.New("ledger"),
		sales: make([]domain.Sale, 0, 64),
		ids:   make(map[string]struct{}),
	}
}

// Append validates sale and adds a private copy of it to the end of the log.
func (l *Ledger) Append(sale domain.Sale) error {
	if err := Validate(sale); err != nil {
		return err
	}
	stored := sale.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.ids[stored.ID]; exists {
		return &DuplicateSaleError{SaleID: stored.ID}
	}
	l.sales = append(l.sales, stored)
	l.ids[stored.ID] = struct{}{}
	l.version++
	return nil
}

// Snapshot returns a copy of every sale in append order.
func (l *Ledger) Snapshot() []domain.Sale {
	sales, _ := l.SnapshotWithVersion()
	return sales
}

// SnapshotWithVersion returns the snapshot together with the version it
// corresponds to.
func (l *Ledger) SnapshotWithVersion() ([]domain.Sale, uint64) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.Sale, len(l.sales))
	for i, sale := range l.sales {
		out[i] = sale.Clone()
	}
	return out, l.version
}

// ID identifies this ledger instance. Two ledgers never share an ID, even
// across processes, so (ID, Version) names one exact log state.
func (l *Ledger) ID() string {
	return l.id
}

// Version increases by one on every successful append.
func (l *Ledger) Version() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.version
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sales)
}

// Validate checks the shape of a sale before it is accepted.
func Validate(sale domain.Sale) error {
	if strings.TrimSpace(sale.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidSale)
	}
	if _, err := time.Parse(domain.DateLayout, sale.Date); err != nil {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidSale, sale.Date)
	}
	if sale.TotalCents < 0 {
		return fmt.Errorf("%w: negative total", ErrInvalidSale)
	}
	if sale.TotalCents > MaxTotalCents {
		return fmt.Errorf("%w: total exceeds %d cents", ErrInvalidSale, int64(MaxTotalCents))
	}
	if len(sale.Items) == 0 {
		return fmt.Errorf("%w: sale has no items", ErrInvalidSale)
	}
	if len(sale.Items) > MaxLineItems {
		return fmt.Errorf("%w: more than %d line items", ErrInvalidSale, MaxLineItems)
	}
	for _, item := range sale.Items {
		if strings.TrimSpace(item.ID) == "" {
			return fmt.Errorf("%w: line item without product id", ErrInvalidSale)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: product %s has quantity %d", ErrInvalidSale, item.ID, item.Quantity)
		}
		if item.Quantity > MaxQuantity {
			return fmt.Errorf("%w: product %s quantity exceeds %d", ErrInvalidSale, item.ID, MaxQuantity)
		}
		if item.PriceCents < 0 {
			return fmt.Errorf("%w: product %s has negative price", ErrInvalidSale, item.ID)
		}
		if item.PriceCents > MaxPriceCents {
			return fmt.Errorf("%w: product %s price exceeds %d cents", ErrInvalidSale, item.ID, int64(MaxPriceCents))
		}
	}
	return nil
}
