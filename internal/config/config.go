package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port                   string
	AllowedOrigin          string
	RedisAddr              string
	RedisPassword          string
	RedisDB                int
	SummaryCacheTTLSeconds int
	AuthSecret             string
	AccessTokenTTLMinutes  int
	TaxRatePercent         decimal.Decimal
	ReportTimezone         string
	SeedDemoSales          bool
	SecretsID              string
	AWSEndpointURL         string
}

func Load() Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	cacheTTL, err := strconv.Atoi(getEnv("SUMMARY_CACHE_TTL_SECONDS", "60"))
	if err != nil || cacheTTL < 1 {
		cacheTTL = 60
	}
	tokenTTL, err := strconv.Atoi(getEnv("ACCESS_TOKEN_TTL_MINUTES", "480"))
	if err != nil || tokenTTL < 1 {
		tokenTTL = 480
	}
	taxRate, err := decimal.NewFromString(getEnv("TAX_RATE_PERCENT", "7"))
	if err != nil || taxRate.IsNegative() {
		log.Printf("[config] WARN: invalid TAX_RATE_PERCENT %q, using 7", os.Getenv("TAX_RATE_PERCENT"))
		taxRate = decimal.NewFromInt(7)
	}
	seedDemo, _ := strconv.ParseBool(getEnv("SEED_DEMO_SALES", "false"))

	return Config{
		Port:                   getEnv("PORT", "8080"),
		AllowedOrigin:          getEnv("ALLOWED_ORIGIN", "http://127.0.0.1:3000"),
		RedisAddr:              os.Getenv("REDIS_ADDR"),
		RedisPassword:          os.Getenv("REDIS_PASSWORD"),
		RedisDB:                redisDB,
		SummaryCacheTTLSeconds: cacheTTL,
		AuthSecret:             strings.TrimSpace(os.Getenv("AUTH_SECRET")),
		AccessTokenTTLMinutes:  tokenTTL,
		TaxRatePercent:         taxRate,
		ReportTimezone:         getEnv("REPORT_TIMEZONE", "UTC"),
		SeedDemoSales:          seedDemo,
		SecretsID:              strings.TrimSpace(os.Getenv("SECRETS_ID")),
		AWSEndpointURL:         strings.TrimSpace(os.Getenv("AWS_ENDPOINT_URL")),
	}
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Location resolves ReportTimezone, falling back to UTC for unknown names.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		log.Printf("[config] WARN: unknown REPORT_TIMEZONE %q, using UTC", c.ReportTimezone)
		return time.UTC
	}
	return loc
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}
