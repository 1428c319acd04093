package config

import (
    "fmt"
    "os"
    "time"

    "github.com/pelletier/go-toml/v2"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/lelang-masjid/internal/lelang"
)

// AuctionConfig holds the bidding policy of the engine.
type AuctionConfig struct {
    ExtensionWindow  time.Duration
    Policy           lelang.IncrementPolicy
    SweepInterval    time.Duration
    HistoryCacheSize int
    PolicyFile       string
}

// policyFile mirrors the TOML overlay.  Absent keys leave the env value in
// place.  Durations use Go syntax ("90s", "2m") and percent is a decimal
// string so that "2.5" is exact:
//
//    extension_window = "2m"
//    sweep_interval   = "5s"
//    history_cache_size = 256
//
//    [increment]
//    floor   = 1000
//    percent = "2.5"
type policyFile struct {
    ExtensionWindow  *string `toml:"extension_window"`
    SweepInterval    *string `toml:"sweep_interval"`
    HistoryCacheSize *int    `toml:"history_cache_size"`
    Increment        struct {
        Floor   *int64  `toml:"floor"`
        Percent *string `toml:"percent"`
    } `toml:"increment"`
}

// LoadAuctionConfig reads LELANG_* variables, then applies the TOML file
// named by LELANG_POLICY_FILE when set.  Invalid values are errors rather
// than silent defaults: a wrong increment changes who wins.
func LoadAuctionConfig() (AuctionConfig, error) {
    c := AuctionConfig{
        ExtensionWindow:  envDur("LELANG_EXTENSION_WINDOW", lelang.DefaultExtensionWindow),
        Policy:           lelang.DefaultIncrementPolicy(),
        SweepInterval:    envDur("LELANG_SWEEP_INTERVAL", 5*time.Second),
        HistoryCacheSize: envInt("LELANG_HISTORY_CACHE_SIZE", 256),
        PolicyFile:       getenv("LELANG_POLICY_FILE", ""),
    }
    c.Policy.Floor = envInt64("LELANG_INCREMENT_FLOOR", c.Policy.Floor)
    if v := getenv("LELANG_INCREMENT_PERCENT", ""); v != "" {
        pct, err := decimal.NewFromString(v)
        if err != nil {
            return c, fmt.Errorf("LELANG_INCREMENT_PERCENT: %w", err)
        }
        c.Policy.Percent = pct
    }
    if c.PolicyFile != "" {
        raw, err := os.ReadFile(c.PolicyFile)
        if err != nil {
            return c, fmt.Errorf("read policy file: %w", err)
        }
        if err := c.apply(raw); err != nil {
            return c, fmt.Errorf("policy file %s: %w", c.PolicyFile, err)
        }
    }
    return c, c.validate()
}

func (c *AuctionConfig) apply(raw []byte) error {
    var f policyFile
    if err := toml.Unmarshal(raw, &f); err != nil {
        return err
    }
    if f.ExtensionWindow != nil {
        d, err := time.ParseDuration(*f.ExtensionWindow)
        if err != nil {
            return fmt.Errorf("extension_window: %w", err)
        }
        c.ExtensionWindow = d
    }
    if f.SweepInterval != nil {
        d, err := time.ParseDuration(*f.SweepInterval)
        if err != nil {
            return fmt.Errorf("sweep_interval: %w", err)
        }
        c.SweepInterval = d
    }
    if f.HistoryCacheSize != nil {
        c.HistoryCacheSize = *f.HistoryCacheSize
    }
    if f.Increment.Floor != nil {
        c.Policy.Floor = *f.Increment.Floor
    }
    if f.Increment.Percent != nil {
        pct, err := decimal.NewFromString(*f.Increment.Percent)
        if err != nil {
            return fmt.Errorf("increment.percent: %w", err)
        }
        c.Policy.Percent = pct
    }
    return nil
}

func (c AuctionConfig) validate() error {
    switch {
    case c.ExtensionWindow <= 0:
        return fmt.Errorf("extension window must be positive, got %s", c.ExtensionWindow)
    case c.SweepInterval <= 0:
        return fmt.Errorf("sweep interval must be positive, got %s", c.SweepInterval)
    case c.Policy.Floor < 1:
        return fmt.Errorf("increment floor must be at least 1, got %d", c.Policy.Floor)
    case c.Policy.Floor > lelang.MaxAmount:
        return fmt.Errorf("increment floor must be at most %d, got %d", lelang.MaxAmount, c.Policy.Floor)
    case c.Policy.Percent.IsNegative():
        return fmt.Errorf("increment percent must not be negative, got %s", c.Policy.Percent)
    }
    return nil
}
