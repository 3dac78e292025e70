package config

import (
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	Port            string
	TaxRate         decimal.Decimal
	RabbitURL       string // empty disables the broker
	SeedSampleData  bool
	LogLevel        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8081"),
		TaxRate:         parseDecimal(getenv("TAX_RATE", "0.20"), decimal.RequireFromString("0.20")),
		RabbitURL:       getenv("RABBITMQ_URL", ""),
		SeedSampleData:  parseBool(getenv("SEED_SAMPLE_DATA", "true"), true),
		LogLevel:        strings.ToLower(getenv("LOG_LEVEL", "info")),
		RequestTimeout:  parseDuration(getenv("REQUEST_TIMEOUT", "3s"), 3*time.Second),
		ShutdownTimeout: parseDuration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseDecimal(v string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || d.IsNegative() {
		return def
	}
	return d
}

func parseBool(v string, def bool) bool {
	switch strings.TrimSpace(v) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}
