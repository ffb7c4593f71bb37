package main

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"butikpos/backend/internal/config"
	"butikpos/backend/internal/ledger"
)

func TestValidateSecurityConfigRejectsWeakValues(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "short"})
	if err == nil {
		t.Fatalf("expected weak security config to be rejected")
	}
}

func TestValidateSecurityConfigRejectsNegativeTax(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef", TaxRatePercent: decimal.NewFromInt(-1)})
	if err == nil {
		t.Fatalf("expected negative tax rate to be rejected")
	}
}

func TestValidateSecurityConfigAcceptsStrongValues(t *testing.T) {
	err := validateSecurityConfig(config.Config{AuthSecret: "0123456789abcdef0123456789abcdef", TaxRatePercent: decimal.NewFromInt(7)})
	if err != nil {
		t.Fatalf("expected strong config to pass, got %v", err)
	}
}

func TestSeedDemoSalesFillsLedger(t *testing.T) {
	l := ledger.New()
	if err := seedDemoSales(l, time.Date(2024, 6, 30, 9, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if l.Len() != demoSaleCount {
		t.Fatalf("expected %d sales, got %d", demoSaleCount, l.Len())
	}
}
