package main

import (
	"os"
	"strconv"
	"strings"
)

type config struct {
	Addr             string
	Capacity         int64
	Base             float64
	HitReinforcement bool
	MissTracking     bool
	OldScoreLimit    int
	RateLimit        float64
	RateBurst        int
	Metrics          bool
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseIntEnv(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return def
}

func parseFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func parseBoolEnv(key string, def bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

func loadConfig() config {
	return config{
		Addr:             envOr("SCORECACHE_HTTP_ADDR", ":8080"),
		Capacity:         parseIntEnv("SCORECACHE_CAPACITY_BYTES", 1_000_000_000),
		Base:             parseFloatEnv("SCORECACHE_BASE", 1.001),
		HitReinforcement: parseBoolEnv("SCORECACHE_HIT_REINFORCEMENT", false),
		MissTracking:     parseBoolEnv("SCORECACHE_MISS_TRACKING", false),
		OldScoreLimit:    int(parseIntEnv("SCORECACHE_OLDSCORE_LIMIT", 0)),
		RateLimit:        parseFloatEnv("SCORECACHE_RATE_LIMIT", 0),
		RateBurst:        int(parseIntEnv("SCORECACHE_RATE_BURST", 0)),
		Metrics:          parseBoolEnv("SCORECACHE_METRICS", true),
	}
}
