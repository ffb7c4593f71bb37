package cache

import (
	"context"
	"fmt"
	"time"

	"butikpos/backend/internal/domain"
)

// SummaryCache stores computed summaries. Keys embed the ledger version, so
// an append makes older entries unreachable instead of stale.
type SummaryCache interface {
	Get(ctx context.Context, key string) (*domain.SalesSummary, bool, error)
	Set(ctx context.Context, key string, value *domain.SalesSummary, ttl time.Duration) error
}

type NoopSummaryCache struct{}

func (NoopSummaryCache) Get(_ context.Context, _ string) (*domain.SalesSummary, bool, error) {
	return nil, false, nil
}

func (NoopSummaryCache) Set(_ context.Context, _ string, _ *domain.SalesSummary, _ time.Duration) error {
	return nil
}

// SummaryKey builds the cache key for a ledger instance, its version and a
// range. The ledger id keeps restarted or parallel processes sharing one Redis
// from reading each other's entries.
func SummaryKey(ledgerID string, version uint64, rng domain.DateRange) string {
	start, end := "*", "*"
	if rng.Bounded() {
		start = rng.Start.Format(domain.DateLayout)
		end = rng.End.Format(domain.DateLayout)
	}
	return fmt.Sprintf("pos:summary:%s:v%d:%s:%s", ledgerID, version, start, end)
}
