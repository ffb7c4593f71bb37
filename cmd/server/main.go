package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"butikpos/backend/internal/cache"
	"butikpos/backend/internal/config"
	"butikpos/backend/internal/httpapi"
	"butikpos/backend/internal/ledger"
	"butikpos/backend/internal/service"
	"butikpos/backend/internal/store/memory"
)

const demoSaleCount = 50

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.SecretsID != "" {
		client, err := config.NewSecretsClient(ctx, cfg.AWSEndpointURL)
		if err != nil {
			log.Fatalf("secrets manager unavailable: %v", err)
		}
		if cfg, err = config.ResolveSecrets(ctx, cfg, client); err != nil {
			log.Fatalf("resolve secrets: %v", err)
		}
	}
	if err := validateSecurityConfig(cfg); err != nil {
		log.Fatalf("invalid security configuration: %v", err)
	}

	loc := cfg.Location()
	catalog := memory.NewSeeded()
	sales := ledger.New()
	if cfg.SeedDemoSales {
		if err := seedDemoSales(sales, time.Now().In(loc)); err != nil {
			log.Fatalf("seed demo sales: %v", err)
		}
		log.Printf("ledger: seeded %d demo sales", sales.Len())
	}

	closers := make([]func() error, 0, 1)
	summaryCache := cache.SummaryCache(cache.NoopSummaryCache{})
	if cfg.RedisAddr != "" {
		redisCache := cache.NewRedisSummaryCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := redisCache.Ping(ctx); err != nil {
			log.Printf("redis unavailable (%v), using noop cache", err)
		} else {
			summaryCache = redisCache
			closers = append(closers, redisCache.Close)
			log.Println("cache: redis")
		}
	} else {
		log.Println("cache: noop")
	}

	svc := service.New(sales, catalog, service.Options{
		TaxRatePercent: cfg.TaxRatePercent,
		Location:       loc,
		Cache:          summaryCache,
		CacheTTL:       time.Duration(cfg.SummaryCacheTTLSeconds) * time.Second,
	})
	auth := httpapi.NewAuthManager(cfg.AuthSecret, time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute, catalog)
	api := httpapi.New(svc, auth, cfg.AllowedOrigin)

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           api.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("POS backend listening on %s", cfg.Address())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Printf("close error: %v", err)
		}
	}

	log.Println("server stopped")
}

func seedDemoSales(l *ledger.Ledger, now time.Time) error {
	for _, sale := range memory.DemoSales(now, demoSaleCount, uint64(now.Unix())) {
		if err := l.Append(sale); err != nil {
			return err
		}
	}
	return nil
}

func validateSecurityConfig(cfg config.Config) error {
	if len(cfg.AuthSecret) < 32 {
		return fmt.Errorf("AUTH_SECRET must be set and at least 32 characters")
	}
	if cfg.TaxRatePercent.IsNegative() {
		return fmt.Errorf("TAX_RATE_PERCENT must not be negative")
	}
	return nil
}
