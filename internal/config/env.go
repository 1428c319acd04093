package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Helpers shared by the sub-configs.  Each returns the default when the
// variable is unset or cannot be parsed.

func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(os.Getenv(k)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envInt64(k string, d int64) int64 {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.ParseInt(v, 10, 64); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}
