package config

import (
	"os"
	"strconv"
)

type Config struct {
	Env               string
	HTTPPort          string
	DatabaseURL       string // empty: in-memory stores
	LedgerMaxDelayMS  int    // simulated substrate latency (memory stores only)
	HistoryMaxDelayMS int
	RateRPS           int
}

func Load() Config {
	return Config{
		Env:               get("APP_ENV", "dev"),
		HTTPPort:          get("HTTP_PORT", "8080"),
		DatabaseURL:       get("DATABASE_URL", ""),
		LedgerMaxDelayMS:  getInt("LEDGER_MAX_DELAY_MS", 200),
		HistoryMaxDelayMS: getInt("HISTORY_MAX_DELAY_MS", 300),
		RateRPS:           getInt("RATE_RPS", 100),
	}
}

func get(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
