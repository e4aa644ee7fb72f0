package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// StoreBackend selects the recipe/user store: sqlite, mongo or redis.
	StoreBackend string `env:"STORE_BACKEND, default=sqlite"`

	SQLite SQLiteConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Admin  AdminConfig

	// NotifyWorkers is the number of background mail delivery workers.
	NotifyWorkers int `env:"NOTIFY_WORKERS, default=4"`

	// DatasetPath points at the CSV indicator export served on /v1/dataset.
	// Empty disables the endpoint.
	DatasetPath string `env:"DATASET_PATH"`
}

type SQLiteConfig struct {
	// Path is the recipe/user database file. ":memory:" keeps it in RAM.
	Path string `env:"SQLITE_PATH, default=recetario.db"`
	// BudgetPath is the expense ledger file. The ledger always lives in
	// SQLite regardless of STORE_BACKEND.
	BudgetPath string `env:"BUDGET_DB_PATH, default=presupuesto.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=recetario"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type SMTPConfig struct {
	// Addr is the relay host:port. Empty falls back to log-only delivery.
	Addr string `env:"SMTP_ADDR"`
	From string `env:"SMTP_FROM, default=recetario@localhost"`
}

// AdminConfig seeds the first admin account at startup. All three fields
// must be set; an existing account with the same username is left alone.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME"`
	Password string `env:"ADMIN_PASSWORD"`
	Email    string `env:"ADMIN_EMAIL"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
