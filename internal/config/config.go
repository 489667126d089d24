// Package config loads process settings from the environment, reading .env
// first for local runs.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/phenrril/codstore/internal/adapters/kv/redisstore"
)

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type DBConfig struct {
	DSN      string `envconfig:"DB_DSN"`
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"codstore"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// ConnString prefers DB_DSN and otherwise assembles a key/value DSN.
func (c DBConfig) ConnString() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	return "host=" + c.Host + " user=" + c.User + " password=" + c.Password + " dbname=" + c.Name + " port=" + c.Port + " sslmode=" + c.SSLMode
}

type KafkaConfig struct {
	Brokers string `envconfig:"KAFKA_BROKERS"`
	Topic   string `envconfig:"KAFKA_TOPIC" default:"codstore.orders"`
}

type TelegramConfig struct {
	BotToken string `envconfig:"TELEGRAM_BOT_TOKEN"`
	ChatIDs  string `envconfig:"TELEGRAM_CHAT_IDS"`
}

// SMTPConfig drives the e-mail alert used when Telegram is down or absent.
type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	User     string `envconfig:"SMTP_USER"`
	Password string `envconfig:"SMTP_PASS"`
	From     string `envconfig:"SMTP_FROM"`
	To       string `envconfig:"ORDER_NOTIFY_EMAIL"`
}

type GoogleConfig struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
}

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	Port     string `envconfig:"PORT" default:"8080"`
	BaseURL  string `envconfig:"BASE_URL" default:"http://localhost:8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// StoreBackend selects postgres or the in-process memory repositories.
	StoreBackend string `envconfig:"STORE_BACKEND" default:"postgres"`
	DB           DBConfig

	// Carts and admin sessions go to redis when REDIS_URL is set, else pebble.
	Redis     redisstore.Config
	PebbleDir string `envconfig:"PEBBLE_DIR" default:"data/kv"`

	Kafka    KafkaConfig
	Telegram TelegramConfig
	SMTP     SMTPConfig
	Google   GoogleConfig

	SessionKey    string        `envconfig:"SESSION_KEY" default:"dev-insecure"`
	JWTSecret     string        `envconfig:"JWT_ADMIN_SECRET"`
	SessionTTL    time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"12h"`
	AdminEmail    string        `envconfig:"ADMIN_EMAIL"`
	AdminPassword string        `envconfig:"ADMIN_PASSWORD"`

	// RateLimit is requests per minute per client address; 0 turns it off.
	RateLimit  int  `envconfig:"RATE_LIMIT_PER_MINUTE" default:"120"`
	TrustProxy bool `envconfig:"TRUST_PROXY"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func (c Config) Production() bool {
	e := strings.ToLower(c.AppEnv)
	return e == "production" || e == "prod"
}

// Load reads .env when present and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() (Config, error) {
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return c, fmt.Errorf("config: %w", err)
	}
	c.StoreBackend = strings.ToLower(strings.TrimSpace(c.StoreBackend))
	if c.JWTSecret == "" {
		c.JWTSecret = c.SessionKey
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	if c.StoreBackend != BackendPostgres && c.StoreBackend != BackendMemory {
		return fmt.Errorf("config: STORE_BACKEND must be %s or %s, got %q", BackendPostgres, BackendMemory, c.StoreBackend)
	}
	if c.Production() && c.SessionKey == "dev-insecure" {
		return errors.New("config: SESSION_KEY must be set in production")
	}
	if c.SessionTTL <= 0 {
		return errors.New("config: ADMIN_SESSION_TTL must be positive")
	}
	if c.RateLimit < 0 {
		return errors.New("config: RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if (c.AdminEmail == "") != (c.AdminPassword == "") {
		return errors.New("config: ADMIN_EMAIL and ADMIN_PASSWORD go together")
	}
	return nil
}
