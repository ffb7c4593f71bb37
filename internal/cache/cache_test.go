package cache

import (
	"context"
	"testing"
	"time"

	"butikpos/backend/internal/domain"
)

func TestSummaryKeyIncludesVersionAndRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	got := SummaryKey("ledger-a", 3, domain.DateRange{Start: &start, End: &end})
	if got != "pos:summary:ledger-a:v3:2024-01-01:2024-01-31" {
		t.Fatalf("unexpected key %s", got)
	}
	if SummaryKey("ledger-a", 4, domain.DateRange{Start: &start, End: &end}) == got {
		t.Fatalf("expected version to change the key")
	}
	if SummaryKey("ledger-b", 3, domain.DateRange{Start: &start, End: &end}) == got {
		t.Fatalf("expected ledger id to change the key")
	}
	if open := SummaryKey("ledger-a", 3, domain.DateRange{Start: &start}); open != "pos:summary:ledger-a:v3:*:*" {
		t.Fatalf("expected half-open range to key as unbounded, got %s", open)
	}
}

func TestNoopSummaryCacheAlwaysMisses(t *testing.T) {
	var c SummaryCache = NoopSummaryCache{}
	if err := c.Set(context.Background(), "k", &domain.SalesSummary{TotalSales: 1}, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	got, ok, err := c.Get(context.Background(), "k")
	if err != nil || ok || got != nil {
		t.Fatalf("expected miss, got %v %v %v", got, ok, err)
	}
}
