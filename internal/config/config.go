package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strings"

    "github.com/joho/godotenv"
)

// Store drivers accepted in STORE_DRIVER.
const (
    DriverMySQL = "mysql"
    DriverBolt  = "bolt"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env             string // application environment (e.g. "dev", "prod")
    Port            string // HTTP port to listen on
    StoreDriver     string // "mysql" (default) or "bolt"
    BoltPath        string // database file when StoreDriver is "bolt"
    DBUser          string // database username
    DBPass          string // database password (optional)
    DBHost          string // database host address
    DBPort          string // database port number
    DBName          string // database name
    JWTSecret       string // secret used to verify organizer JWTs
    AMQPURL         string // RabbitMQ broker for settlement hand-off; empty disables it
    SettlementQueue string // durable queue receiving settlements
    LedgerConsumer  bool   // run the reference ledger intake consumer in-process
    LedgerLogPath   string // where the intake consumer appends settlements
    NATSURL         string // optional NATS server for bid events; empty disables
}

// Load reads configuration values from the environment, after merging a
// .env file from the working directory when one exists.  Required variables
// are enforced by must() and missing values cause the program to exit with
// a fatal log message.  DB_* are only required for the mysql driver.
func Load() Config {
    if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
        log.Printf("config: ignoring .env: %v", err)
    }
    cfg := Config{
        Env:             must("APP_ENV"),
        Port:            must("APP_PORT"),
        StoreDriver:     strings.ToLower(getenv("STORE_DRIVER", DriverMySQL)),
        BoltPath:        getenv("BOLT_PATH", "data/lelang.db"),
        JWTSecret:       must("JWT_SECRET"),
        AMQPURL:         amqpURL(),
        SettlementQueue: getenv("SETTLEMENT_QUEUE", "lelang.settled"),
        LedgerConsumer:  envBool("LEDGER_CONSUMER_ENABLED", false),
        LedgerLogPath:   getenv("LEDGER_LOG_PATH", "logs/kas_settlements.log"),
        NATSURL:         os.Getenv("NATS_URL"),
    }
    switch cfg.StoreDriver {
    case DriverMySQL:
        cfg.DBUser = must("DB_USER")
        cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
        cfg.DBHost = must("DB_HOST")
        cfg.DBPort = must("DB_PORT")
        cfg.DBName = must("DB_NAME")
    case DriverBolt:
    default:
        log.Fatalf("invalid STORE_DRIVER %q (want mysql or bolt)", cfg.StoreDriver)
    }
    return cfg
}

// amqpURL prefers RABBITMQ_URL, then AMQP_URL.  Empty disables the
// settlement hand-off.
func amqpURL() string {
    if v := os.Getenv("RABBITMQ_URL"); v != "" {
        return v
    }
    return os.Getenv("AMQP_URL")
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
